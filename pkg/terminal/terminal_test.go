package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-delve/leb128/pkg/config"
	"github.com/go-delve/leb128/pkg/leb128"
)

type FakeTerminal struct {
	*Term
	out *bytes.Buffer
	t   testing.TB
}

func newFakeTerminal(t testing.TB, aliases map[string][]string) *FakeTerminal {
	cmds := ShellCommands()
	if aliases != nil {
		cmds.Merge(aliases)
	}
	out := new(bytes.Buffer)
	return &FakeTerminal{
		Term: &Term{
			cmds:     cmds,
			stdout:   out,
			settings: Settings{Width: leb128.Width64},
		},
		out: out,
		t:   t,
	}
}

func (ft *FakeTerminal) Exec(cmdstr string) (string, error) {
	ft.out.Reset()
	err := ft.cmds.Call(cmdstr, ft.Term)
	return ft.out.String(), err
}

func (ft *FakeTerminal) MustExec(cmdstr string) string {
	out, err := ft.Exec(cmdstr)
	if err != nil {
		ft.t.Fatalf("Error executing <%s>: %v", cmdstr, err)
	}
	return out
}

func TestEncodeCommand(t *testing.T) {
	ft := newFakeTerminal(t, nil)
	assert.Equal(t, "300 => ac 02 (2 bytes)\n", ft.MustExec("encode 300"))
	assert.Equal(t, "-2 => 7e (1 bytes)\n", ft.MustExec("enc -s -2"))
	assert.Equal(t, "0 => 00 (1 bytes)\n-1 => 7f (1 bytes)\n", ft.MustExec("e -s -w 8 0 -1"))

	_, err := ft.Exec("encode -w 8 256")
	assert.Error(t, err)
	_, err = ft.Exec("encode -w 12 1")
	assert.Error(t, err)
	_, err = ft.Exec("encode")
	assert.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	ft := newFakeTerminal(t, nil)
	out := ft.MustExec("decode ac02")
	assert.Equal(t, "0x0000: ac 02 => 300\n", out)

	ft.MustExec("signed on")
	out = ft.MustExec(`dec "ac 02" 7e`)
	assert.Equal(t, "0x0000: ac 02 => 300\n0x0002: 7e => -2\n", out)

	out = ft.MustExec("decode -u -w 8 80 00")
	assert.Equal(t, "0x0000: 80 00 => 0\n", out)

	_, err := ft.Exec("decode -u -w 8 ff ff 7f")
	assert.True(t, strings.Contains(err.Error(), "overflows"), "got %v", err)

	_, err = ft.Exec("decode 80")
	assert.Equal(t, leb128.Truncated, leb128.KindOf(err))

	ft.MustExec("verbose on")
	out = ft.MustExec("decode 7e")
	assert.Equal(t, "0x0000: 7e => -2\n\t0|1111110\n", out)
}

func TestSplitCommand(t *testing.T) {
	ft := newFakeTerminal(t, nil)
	out, err := ft.Exec("split ac027e80")
	assert.Equal(t, "0x0000: ac 02\n0x0002: 7e\n", out)
	assert.Equal(t, leb128.Truncated, leb128.KindOf(err))
}

func TestSettingsCommands(t *testing.T) {
	ft := newFakeTerminal(t, nil)
	assert.Equal(t, "width = 64\n", ft.MustExec("width"))
	assert.Equal(t, "width = 16\n", ft.MustExec("width 16"))
	assert.Equal(t, leb128.Width16, ft.settings.Width)
	_, err := ft.Exec("width 7")
	assert.Error(t, err)

	assert.Equal(t, "signed = true (sleb128)\n", ft.MustExec("signed on"))
	_, err = ft.Exec("signed maybe")
	assert.Error(t, err)
}

func TestCommandDispatch(t *testing.T) {
	ft := newFakeTerminal(t, map[string][]string{"decode": {"dd"}})

	out := ft.MustExec("dd 7f")
	assert.Equal(t, "0x0000: 7f => 127\n", out)

	_, err := ft.Exec("frobnicate")
	assert.Equal(t, errNoCmd, err)

	_, err = ft.Exec("exit")
	assert.IsType(t, ExitRequestError{}, err)

	_, err = ft.Exec("encode `date`")
	assert.Error(t, err)

	assert.Equal(t, "", ft.MustExec("   "))

	out = ft.MustExec("help")
	assert.Contains(t, out, "decode (alias: dec | d | dd)")
	out = ft.MustExec("help split")
	assert.Contains(t, out, "split <hex>...")
}

func TestComplete(t *testing.T) {
	cmds := ShellCommands()
	assert.Equal(t, []string{"d", "dec", "decode"}, cmds.Complete("d"))
	assert.Equal(t, []string{"signed", "split"}, cmds.Complete("s"))
	assert.Empty(t, cmds.Complete("x"))

	// Completion never offers what Find rejects.
	assert.Empty(t, cmds.Complete("ENC"))
	ft := newFakeTerminal(t, nil)
	_, err := ft.Exec("ENC 1")
	assert.Equal(t, errNoCmd, err)
	for _, alias := range cmds.Complete("e") {
		_, err := ft.Exec(alias + " 1")
		assert.NotEqual(t, errNoCmd, err, "alias %s", alias)
	}
}

func TestSettingsFromConfig(t *testing.T) {
	on := true
	s, err := SettingsFromConfig(&config.Config{DefaultWidth: 32, Signed: true, Color: &on, ContinuationColor: 31}, nil)
	require.NoError(t, err)
	assert.Equal(t, leb128.Width32, s.Width)
	assert.True(t, s.Signed)
	require.NotNil(t, s.Palette)
	assert.Equal(t, 31, s.Palette.Continuation)
	assert.Equal(t, 32, s.Palette.Terminator)

	off := false
	s, err = SettingsFromConfig(&config.Config{Color: &off}, nil)
	require.NoError(t, err)
	assert.Nil(t, s.Palette)
	assert.Equal(t, leb128.Width64, s.Width)

	_, err = SettingsFromConfig(&config.Config{DefaultWidth: 24, Color: &off}, nil)
	assert.Error(t, err)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	ShellCommands().WriteMarkdown(&buf)
	out := buf.String()
	assert.Contains(t, out, "[decode](#decode) | Decodes hex bytes.\n")
	assert.Contains(t, out, "## encode\nEncodes integers.\n")
	assert.Contains(t, out, "Aliases: enc e\n")
	assert.Contains(t, out, "`.lebtool_history`")
}
