package cmds

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/go-delve/leb128/cmd/lebtool/cmds/helphelpers"
	"github.com/go-delve/leb128/pkg/config"
	"github.com/go-delve/leb128/pkg/format"
	"github.com/go-delve/leb128/pkg/leb128"
	"github.com/go-delve/leb128/pkg/logflags"
	"github.com/go-delve/leb128/pkg/terminal"
	"github.com/go-delve/leb128/pkg/version"
)

var (
	// log is whether to log debug statements.
	log bool
	// logOutput is a comma separated list of components that should produce debug output.
	logOutput string
	// logDest is the file path or file descriptor where logs should go.
	logDest string

	// signed selects SLEB128 instead of ULEB128.
	signed bool
	// width is the bit width of the values.
	width int
	// verbose also prints the bits of every group.
	verbose bool

	// rootCommand is the root of the command tree.
	rootCommand *cobra.Command

	conf *config.Config

	// stdout is where the output of the subcommands is written, colors are
	// enabled automatically when stdoutFile is a terminal.
	stdout     io.Writer = colorable.NewColorableStdout()
	stdoutFile           = os.Stdout
	// stdin is read by dump when no file is given.
	stdin io.Reader = os.Stdin
)

const lebtoolCommandLongDesc = `lebtool encodes and decodes LEB128 integers.

Unsigned values use ULEB128 and signed values (--signed) use SLEB128. Every
value has a bit width (--width) of 8, 16, 32, 64 or 128 bits: encoding
rejects values that do not fit and decoding rejects inputs that would
overflow the width or that end in the middle of a value.

Defaults for --width and --signed are read from the configuration file,
see 'lebtool help config'.`

// New returns an initialized command tree.
func New(docCall bool) *cobra.Command {
	// Config setup and load. Generated documentation shows the built-in
	// defaults.
	if docCall {
		conf = &config.Config{}
	} else {
		conf = config.LoadConfig()
	}

	// Main lebtool root command.
	rootCommand = &cobra.Command{
		Use:           "lebtool",
		Short:         "lebtool is a LEB128 encoder and decoder.",
		Long:          lebtoolCommandLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logflags.Setup(log, logOutput, logDest); err != nil {
				return err
			}
			if _, ok := leb128.ParseWidth(width); !ok {
				return fmt.Errorf("unsupported width %d, must be one of 8, 16, 32, 64, 128", width)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logflags.Close()
		},
	}

	rootCommand.PersistentFlags().BoolVarP(&log, "log", "", false, "Enable logging.")
	rootCommand.PersistentFlags().StringVarP(&logOutput, "log-output", "", "", `Comma separated list of components that should produce debug output (see 'lebtool help log')`)
	rootCommand.PersistentFlags().StringVarP(&logDest, "log-dest", "", "", "Writes logs to the specified file or file descriptor (see 'lebtool help log').")

	rootCommand.PersistentFlags().BoolVarP(&signed, "signed", "s", conf.Signed, "Use SLEB128 instead of ULEB128.")
	rootCommand.PersistentFlags().IntVarP(&width, "width", "w", conf.Width(), "Bit width of the values: 8, 16, 32, 64 or 128.")
	rootCommand.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also print the bits of every group.")

	defaultHelp := rootCommand.HelpFunc()
	rootCommand.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helphelpers.Prepare(cmd)
		defaultHelp(cmd, args)
	})

	// 'encode' subcommand.
	encodeCommand := &cobra.Command{
		Use:   "encode <value>...",
		Short: "Encodes integers.",
		Long: `Encodes integers and prints their encoding as hex bytes.

Values can be written in decimal or with a 0x, 0o or 0b prefix. Values that
do not fit the selected width are rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logflags.CLILogger().Debugf("encode %v", args)
			return terminal.Encode(stdout, settings(), args)
		},
	}
	rootCommand.AddCommand(encodeCommand)

	// 'decode' subcommand.
	decodeCommand := &cobra.Command{
		Use:   "decode <hex>...",
		Short: "Decodes hex bytes.",
		Long: `Decodes a sequence of values written as hex bytes.

The arguments are concatenated, bytes can be separated by spaces, commas or
colons and can have a 0x prefix:

	lebtool decode ac02 7e
	lebtool decode -s "0xac, 0x02, 0x7e"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := format.ParseHex(args...)
			if err != nil {
				return err
			}
			logflags.CLILogger().Debugf("decode %d bytes", len(data))
			return terminal.Decode(stdout, settings(), data)
		},
	}
	rootCommand.AddCommand(decodeCommand)

	// 'dump' subcommand.
	dumpCommand := &cobra.Command{
		Use:   "dump [file]",
		Short: "Decodes the values stored in a binary file.",
		Long: `Decodes the values stored back to back in a binary file.

If no file is specified the standard input is read. Decoding stops at the end
of the file, or at the first value that overflows or is truncated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: dumpCmd,
	}
	rootCommand.AddCommand(dumpCommand)

	// 'split' subcommand.
	splitCommand := &cobra.Command{
		Use:   "split <hex>...",
		Short: "Splits hex bytes into values without decoding them.",
		Long: `Splits hex bytes into values without decoding them.

Every group up to and including the first one with a clear continuation bit
belongs to the same value, no width or overflow check is made.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := format.ParseHex(args...)
			if err != nil {
				return err
			}
			return terminal.Split(stdout, settings(), data)
		},
	}
	rootCommand.AddCommand(splitCommand)

	// 'repl' subcommand.
	replCommand := &cobra.Command{
		Use:   "repl",
		Short: "Starts an interactive shell.",
		Long: `Starts an interactive shell.

The shell accepts the encode, decode and split commands, and the width and
signed commands to change the defaults. Type 'help' in the shell for the
full list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := terminal.New(conf).Run()
			if err != nil {
				return err
			}
			if status != 0 {
				return fmt.Errorf("shell exited with status %d", status)
			}
			return nil
		},
	}
	rootCommand.AddCommand(replCommand)

	// 'version' subcommand.
	var versionVerbose = false
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "lebtool version %s\n", version.LebtoolVersion)
			if versionVerbose {
				fmt.Fprint(stdout, version.BuildInfo())
			}
		},
	}
	versionCommand.Flags().BoolVar(&versionVerbose, "full", false, "Also print the Go version and the versions of the modules lebtool is built with.")
	rootCommand.AddCommand(versionCommand)

	rootCommand.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "Help about logging flags.",
		Long: `Logging can be enabled by specifying the --log flag and using the
--log-output flag to select which components should produce logs.

The argument of --log-output must be a comma separated list of component
names selected from this list:


	cli	Log subcommands (default)
	stream	Log every value read or written by the stream decoder
	repl	Log the commands executed by the interactive shell

Additionally --log-dest can be used to specify where the logs should be
written.
If the argument is a number it will be interpreted as a file descriptor,
otherwise as a file path. Log files are rotated when they reach 10
megabytes.
`,
	})

	rootCommand.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Help about the configuration file.",
		Long: `The configuration file is called config.yml and is stored in the
.lebtool directory of the home directory of the user, or in the directory
named by the LEBTOOL_CONFIG_DIR environment variable.

A commented default configuration is written the first time lebtool runs.
The following keys are recognized:

	default-width		default for --width
	signed			default for --signed
	color			force colored output on or off
	continuation-color	ANSI color of groups with the continuation bit set
	terminator-color	ANSI color of the last group of every value
	aliases			additional aliases for the shell commands
`,
	})

	rootCommand.DisableAutoGenTag = true

	return rootCommand
}

// settings returns the settings selected by the configuration file and by
// the command line flags. The flags were validated by PersistentPreRunE.
func settings() terminal.Settings {
	s, err := terminal.SettingsFromConfig(conf, stdoutFile)
	if err != nil {
		logflags.CLILogger().Debugf("configuration: %v", err)
	}
	s.Width, _ = leb128.ParseWidth(width)
	s.Signed = signed
	s.Verbose = verbose
	return s
}

func dumpCmd(cmd *cobra.Command, args []string) error {
	var r io.Reader = stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return terminal.Dump(stdout, settings(), bufio.NewReader(r))
}
