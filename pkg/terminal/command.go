// Package terminal implements functions for responding to user
// input and dispatching to appropriate encoder / decoder commands.
package terminal

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cosiner/argv"
	"github.com/derekparker/trie"

	"github.com/go-delve/leb128/pkg/format"
	"github.com/go-delve/leb128/pkg/leb128"
)

type cmdfunc func(t *Term, args []string) error

type command struct {
	aliases        []string
	builtinAliases []string
	helpMsg        string
	cmdFn          cmdfunc
}

// Returns true if the command string matches one of the aliases for this command
func (c command) match(cmdstr string) bool {
	for _, v := range c.aliases {
		if v == cmdstr {
			return true
		}
	}
	return false
}

// Commands represents the commands for the lebtool shell.
type Commands struct {
	cmds []command
	// index maps every alias to the position of its command in cmds, it
	// is used for completion.
	index *trie.Trie
}

// byFirstAlias will sort by the first
// alias of a command.
type byFirstAlias []command

func (a byFirstAlias) Len() int           { return len(a) }
func (a byFirstAlias) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byFirstAlias) Less(i, j int) bool { return a[i].aliases[0] < a[j].aliases[0] }

// ShellCommands returns a Commands struct with default commands defined.
func ShellCommands() *Commands {
	c := &Commands{}

	c.cmds = []command{
		{aliases: []string{"help", "h"}, cmdFn: c.help, helpMsg: `Prints the help message.

	help [command]

Type "help" followed by the name of a command for more information about it.`},
		{aliases: []string{"encode", "enc", "e"}, cmdFn: encode, helpMsg: `Encodes integers.

	encode [-s|-u] [-w <width>] <value>...

Values can be written in decimal or with a 0x, 0o or 0b prefix. The -s and -u
flags select SLEB128 or ULEB128 for this command only, -w selects the width.`},
		{aliases: []string{"decode", "dec", "d"}, cmdFn: decode, helpMsg: `Decodes hex bytes.

	decode [-s|-u] [-w <width>] <hex>...

The arguments are concatenated and decoded as consecutive values.`},
		{aliases: []string{"split"}, cmdFn: split, helpMsg: `Splits hex bytes into values without decoding them.

	split <hex>...`},
		{aliases: []string{"width", "w"}, cmdFn: width, helpMsg: `Shows or sets the default width.

	width [8|16|32|64|128]`},
		{aliases: []string{"signed"}, cmdFn: signed, helpMsg: `Shows or sets the default signedness.

	signed [on|off]`},
		{aliases: []string{"verbose", "v"}, cmdFn: verbose, helpMsg: `Toggles printing the bits of every group.

	verbose [on|off]`},
		{aliases: []string{"exit", "quit", "q"}, cmdFn: exitCommand, helpMsg: "Exit the shell."},
	}

	sort.Sort(byFirstAlias(c.cmds))
	c.reindex()
	return c
}

func (c *Commands) reindex() {
	c.index = trie.New()
	for i, cmd := range c.cmds {
		for _, alias := range cmd.aliases {
			c.index.Add(alias, i)
		}
	}
}

// Register custom commands. Expects cf to be a func of type cmdfunc,
// returning only an error.
func (c *Commands) Register(cmdstr string, cf cmdfunc, helpMsg string) {
	for i := range c.cmds {
		if c.cmds[i].match(cmdstr) {
			c.cmds[i].cmdFn = cf
			return
		}
	}

	c.cmds = append(c.cmds, command{aliases: []string{cmdstr}, cmdFn: cf, helpMsg: helpMsg})
	c.reindex()
}

// Find will look up the command function for the given command input.
// If it cannot find the command it will default to noCmdAvailable().
func (c *Commands) Find(cmdstr string) cmdfunc {
	if cmdstr == "" {
		return nullCommand
	}
	if n, ok := c.index.Find(cmdstr); ok {
		return c.cmds[n.Meta().(int)].cmdFn
	}
	return noCmdAvailable
}

// Complete returns the aliases starting with prefix, sorted. Like Find it
// is case-sensitive.
func (c *Commands) Complete(prefix string) []string {
	r := c.index.PrefixSearch(prefix)
	sort.Strings(r)
	return r
}

// Call takes a command to execute.
func (c *Commands) Call(cmdstr string, t *Term) error {
	cmdstr = strings.TrimSpace(cmdstr)
	if cmdstr == "" {
		return nil
	}
	v, err := argv.Argv(cmdstr,
		func(s string) (string, error) {
			return "", fmt.Errorf("Backtick not supported in '%s'", s)
		},
		nil)
	if err != nil {
		return err
	}
	if len(v) != 1 {
		return fmt.Errorf("illegal command line '%s'", cmdstr)
	}
	args := v[0]
	if len(args) == 0 {
		return nil
	}
	if t.log != nil {
		t.log.WithField("args", args[1:]).Debugf("command %s", args[0])
	}
	return c.Find(args[0])(t, args[1:])
}

// Merge takes aliases defined in the config struct and merges them with the default aliases.
func (c *Commands) Merge(allAliases map[string][]string) {
	for i := range c.cmds {
		if c.cmds[i].builtinAliases != nil {
			c.cmds[i].aliases = append(c.cmds[i].aliases[:0], c.cmds[i].builtinAliases...)
		}
	}
	for i := range c.cmds {
		if aliases, ok := allAliases[c.cmds[i].aliases[0]]; ok {
			if c.cmds[i].builtinAliases == nil {
				c.cmds[i].builtinAliases = make([]string, len(c.cmds[i].aliases))
				copy(c.cmds[i].builtinAliases, c.cmds[i].aliases)
			}
			c.cmds[i].aliases = append(c.cmds[i].aliases, aliases...)
		}
	}
	c.reindex()
}

var errNoCmd = errors.New("command not available")

func noCmdAvailable(t *Term, args []string) error {
	return errNoCmd
}

func nullCommand(t *Term, args []string) error {
	return nil
}

// ExitRequestError is returned when the user
// exits the shell.
type ExitRequestError struct{}

func (ere ExitRequestError) Error() string {
	return ""
}

func exitCommand(t *Term, args []string) error {
	return ExitRequestError{}
}

func (c *Commands) help(t *Term, args []string) error {
	if len(args) > 0 {
		for _, cmd := range c.cmds {
			if cmd.match(args[0]) {
				fmt.Fprintln(t.stdout, cmd.helpMsg)
				return nil
			}
		}
		return errNoCmd
	}

	fmt.Fprintln(t.stdout, "The following commands are available:")
	w := new(tabwriter.Writer)
	w.Init(t.stdout, 0, 8, 0, '-', 0)
	for _, cmd := range c.cmds {
		h := cmd.helpMsg
		if idx := strings.Index(h, "\n"); idx >= 0 {
			h = h[:idx]
		}
		if len(cmd.aliases) > 1 {
			fmt.Fprintf(w, "    %s (alias: %s) \t %s\n", cmd.aliases[0], strings.Join(cmd.aliases[1:], " | "), h)
		} else {
			fmt.Fprintf(w, "    %s \t %s\n", cmd.aliases[0], h)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(t.stdout)
	fmt.Fprintln(t.stdout, "Type help followed by a command for full documentation.")
	return nil
}

// parseFlags removes the -s, -u and -w flags from the front of args and
// returns the settings they select.
func parseFlags(s Settings, args []string) (Settings, []string, error) {
	for len(args) > 0 {
		switch args[0] {
		case "-s":
			s.Signed = true
		case "-u":
			s.Signed = false
		case "-w":
			if len(args) < 2 {
				return s, nil, errors.New("-w requires a width")
			}
			w, err := parseWidth(args[1])
			if err != nil {
				return s, nil, err
			}
			s.Width = w
			args = args[1:]
		case "--":
			return s, args[1:], nil
		default:
			return s, args, nil
		}
		args = args[1:]
	}
	return s, args, nil
}

func parseWidth(str string) (leb128.Width, error) {
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("invalid width %q", str)
	}
	w, ok := leb128.ParseWidth(n)
	if !ok {
		return 0, fmt.Errorf("unsupported width %d, must be one of 8, 16, 32, 64, 128", n)
	}
	return w, nil
}

func parseOnOff(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", str)
}

func encode(t *Term, args []string) error {
	s, args, err := parseFlags(t.settings, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("not enough arguments")
	}
	return Encode(t.stdout, s, args)
}

func decode(t *Term, args []string) error {
	s, args, err := parseFlags(t.settings, args)
	if err != nil {
		return err
	}
	data, err := format.ParseHex(args...)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("not enough arguments")
	}
	return Decode(t.stdout, s, data)
}

func split(t *Term, args []string) error {
	data, err := format.ParseHex(args...)
	if err != nil {
		return err
	}
	return Split(t.stdout, t.settings, data)
}

func width(t *Term, args []string) error {
	if len(args) > 0 {
		w, err := parseWidth(args[0])
		if err != nil {
			return err
		}
		t.settings.Width = w
	}
	fmt.Fprintf(t.stdout, "width = %d\n", int(t.settings.Width))
	return nil
}

func signed(t *Term, args []string) error {
	if len(args) > 0 {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		t.settings.Signed = on
	}
	fmt.Fprintf(t.stdout, "signed = %v (%s)\n", t.settings.Signed, t.settings.kind())
	return nil
}

func verbose(t *Term, args []string) error {
	on := !t.settings.Verbose
	if len(args) > 0 {
		var err error
		if on, err = parseOnOff(args[0]); err != nil {
			return err
		}
	}
	t.settings.Verbose = on
	fmt.Fprintf(t.stdout, "verbose = %v\n", on)
	return nil
}
