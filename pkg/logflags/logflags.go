package logflags

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

var stream = false
var repl = false
var cli = false

var logOut io.WriteCloser

func makeLogger(flag bool, fields Fields) Logger {
	if lf := loggerFactory; lf != nil {
		return lf(flag, fields, logOut)
	}
	logger := logrus.New().WithFields(logrus.Fields(fields))
	logger.Logger.Formatter = DefaultFormatter()
	if logOut != nil {
		logger.Logger.Out = logOut
	}
	logger.Logger.Level = logrus.DebugLevel
	if !flag {
		logger.Logger.Level = logrus.ErrorLevel
	}
	return &logrusLogger{logger}
}

// Stream returns true if the lebio package should log every value it
// decodes or encodes.
func Stream() bool {
	return stream
}

// StreamLogger returns a logger for the lebio package.
func StreamLogger() Logger {
	return makeLogger(stream, Fields{"layer": "stream"})
}

// REPL returns true if the interactive shell should log the commands it
// executes.
func REPL() bool {
	return repl
}

// REPLLogger returns a logger for the interactive shell.
func REPLLogger() Logger {
	return makeLogger(repl, Fields{"layer": "repl"})
}

// CLI returns true if lebtool subcommands should log.
func CLI() bool {
	return cli
}

func CLILogger() Logger {
	return makeLogger(cli, Fields{"layer": "cli"})
}

var errLogstrWithoutLog = errors.New("--log-output specified without --log")

// Setup sets lebtool flags based on the contents of logstr.
// If logDest is not empty logs will be redirected to the file descriptor or
// file path specified by logDest. File paths are rotated once they reach
// 10 megabytes.
func Setup(logFlag bool, logstr string, logDest string) error {
	if logDest != "" {
		n, err := strconv.Atoi(logDest)
		if err == nil {
			logOut = os.NewFile(uintptr(n), "lebtool-logs")
		} else {
			logOut = &lumberjack.Logger{
				Filename:   logDest,
				MaxSize:    10,
				MaxBackups: 3,
			}
		}
		log.SetOutput(logOut)
	}
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if !logFlag {
		log.SetOutput(ioutil.Discard)
		if logstr != "" {
			return errLogstrWithoutLog
		}
		return nil
	}
	if logstr == "" {
		logstr = "cli"
	}
	v := strings.Split(logstr, ",")
	for _, logcmd := range v {
		switch logcmd {
		case "stream":
			stream = true
		case "repl":
			repl = true
		case "cli":
			cli = true
		default:
			fmt.Fprintf(os.Stderr, "Warning: unknown log output value %q, run 'lebtool help log' for usage.\n", logcmd)
		}
	}
	return nil
}

// Close closes the logger output.
func Close() {
	if logOut != nil {
		logOut.Close()
	}
}

var textFormatterInstance = &textFormatter{}

// DefaultFormatter provides a simplified version of logrus.TextFormatter that
// doesn't make logs unreadable when they are output to a text file or to a
// terminal that doesn't support colors.
func DefaultFormatter() logrus.Formatter {
	return textFormatterInstance
}

type textFormatter struct {
}

func (f *textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s layer=%v", entry.Time.Format("2006-01-02T15:04:05Z07:00"), entry.Level, entry.Data["layer"])
	for k, v := range entry.Data {
		if k == "layer" {
			continue
		}
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	fmt.Fprintf(&b, " %s\n", entry.Message)
	return []byte(b.String()), nil
}
