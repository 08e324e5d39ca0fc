package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-delve/liner"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/go-delve/leb128/pkg/config"
	"github.com/go-delve/leb128/pkg/format"
	"github.com/go-delve/leb128/pkg/leb128"
	"github.com/go-delve/leb128/pkg/logflags"
)

const (
	historyFile string = ".lebtool_history"

	ansiBlack   = 30
	ansiWhite   = 37
	ansiBrBlack = 90
	ansiBrWhite = 97
)

// Term represents the terminal running the lebtool shell.
type Term struct {
	conf     *config.Config
	prompt   string
	line     *liner.State
	cmds     *Commands
	stdout   io.Writer
	settings Settings
	log      logflags.Logger
}

// New returns a new Term.
func New(conf *config.Config) *Term {
	cmds := ShellCommands()
	if conf != nil && conf.Aliases != nil {
		cmds.Merge(conf.Aliases)
	}

	if conf == nil {
		conf = &config.Config{}
	}

	s, err := SettingsFromConfig(conf, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v, using 64 bit width.\n", err)
		s.Width = leb128.Width64
	}

	return &Term{
		conf:     conf,
		prompt:   "(leb) ",
		line:     liner.NewLiner(),
		cmds:     cmds,
		stdout:   colorable.NewColorableStdout(),
		settings: s,
		log:      logflags.REPLLogger(),
	}
}

// SettingsFromConfig returns the settings selected by the configuration
// file for output written to out.
func SettingsFromConfig(conf *config.Config, out *os.File) (Settings, error) {
	s := Settings{Signed: conf.Signed}
	if UseColor(conf, out) {
		s.Palette = format.DefaultPalette()
		if validColor(conf.ContinuationColor) {
			s.Palette.Continuation = conf.ContinuationColor
		}
		if validColor(conf.TerminatorColor) {
			s.Palette.Terminator = conf.TerminatorColor
		}
	}
	w, ok := leb128.ParseWidth(conf.Width())
	if !ok {
		return s, fmt.Errorf("unsupported default-width %d", conf.Width())
	}
	s.Width = w
	return s, nil
}

// UseColor returns true if colored output should be written to out.
func UseColor(conf *config.Config, out *os.File) bool {
	if conf != nil && conf.Color != nil {
		return *conf.Color
	}
	if strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return false
	}
	return out != nil && isatty.IsTerminal(out.Fd())
}

func validColor(c int) bool {
	return (c >= ansiBlack && c <= ansiWhite) || (c >= ansiBrBlack && c <= ansiBrWhite)
}

// Close returns the terminal to its previous mode.
func (t *Term) Close() {
	t.line.Close()
}

// Run begins running the shell in the terminal.
func (t *Term) Run() (int, error) {
	defer t.Close()

	t.line.SetCompleter(func(line string) []string {
		if strings.Contains(line, " ") {
			return nil
		}
		return t.cmds.Complete(line)
	})

	fullHistoryFile, err := config.GetConfigFilePath(historyFile)
	if err != nil {
		fmt.Printf("Unable to load history file: %v.", err)
	}

	f, err := os.Open(fullHistoryFile)
	if err != nil {
		f, err = os.Create(fullHistoryFile)
		if err != nil {
			fmt.Printf("Unable to open history file: %v. History will not be saved for this session.", err)
		}
	}

	if f != nil {
		t.line.ReadHistory(f)
		f.Close()
	}
	fmt.Println("Type 'help' for list of commands.")

	for {
		cmdstr, err := t.promptForInput()
		if err != nil {
			if err == io.EOF {
				fmt.Println("exit")
				return t.handleExit(fullHistoryFile)
			}
			return 1, fmt.Errorf("Prompt for input failed.\n")
		}

		if err := t.cmds.Call(cmdstr, t); err != nil {
			if _, ok := err.(ExitRequestError); ok {
				return t.handleExit(fullHistoryFile)
			}
			fmt.Fprintf(os.Stderr, "Command failed: %s\n", err)
		}
	}
}

func (t *Term) promptForInput() (string, error) {
	l, err := t.line.Prompt(t.prompt)
	if err != nil {
		return "", err
	}

	l = strings.TrimSuffix(l, "\n")
	if l != "" {
		t.line.AppendHistory(l)
	}

	return l, nil
}

func (t *Term) handleExit(fullHistoryFile string) (int, error) {
	if f, err := os.Create(fullHistoryFile); err == nil {
		_, err = t.line.WriteHistory(f)
		if err != nil {
			fmt.Println("readline history error:", err)
		}
		f.Close()
	} else {
		fmt.Println("Unable to open history file:", err)
	}
	return 0, nil
}
