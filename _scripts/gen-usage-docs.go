//go:build ignore
// +build ignore

package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra/doc"

	"github.com/go-delve/leb128/cmd/lebtool/cmds"
	"github.com/go-delve/leb128/cmd/lebtool/cmds/helphelpers"
	"github.com/go-delve/leb128/pkg/terminal"
)

const defaultUsageDir = "./Documentation/usage"

func main() {
	usageDir := defaultUsageDir
	if len(os.Args) > 1 {
		usageDir = os.Args[1]
	}
	if err := os.MkdirAll(usageDir, 0755); err != nil {
		log.Fatal(err)
	}
	root := cmds.New(true)

	cmdnames := []string{}
	for _, subcmd := range root.Commands() {
		cmdnames = append(cmdnames, subcmd.Name())
	}
	helphelpers.Prepare(root)
	if err := doc.GenMarkdownTree(root, usageDir); err != nil {
		log.Fatal(err)
	}
	root = nil
	// GenMarkdownTree ignores additional help topic commands, so we have to do this manually
	for _, cmdname := range cmdnames {
		cmd, _, _ := cmds.New(true).Find([]string{cmdname})
		helphelpers.Prepare(cmd)
		if err := doc.GenMarkdownTree(cmd, usageDir); err != nil {
			log.Fatal(err)
		}
	}

	fh, err := os.Create(filepath.Join(usageDir, "shell.md"))
	if err != nil {
		log.Fatalf("creating shell.md: %v", err)
	}
	defer fh.Close()
	terminal.ShellCommands().WriteMarkdown(fh)
}
