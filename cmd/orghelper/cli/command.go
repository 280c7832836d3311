// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is a node in the command tree: either a group with
// Subcommands or a leaf with Run.
type Command struct {
	// Name is the word typed to select this command.
	Name string

	// Summary is the one-liner shown in the parent's command list.
	Summary string

	// Description is the long help text. Summary is used when empty.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	Examples []Example

	// Flags builds the command's flag set. It may be called more than
	// once (parse, suggestion, help) and must bind the same targets
	// each time.
	Flags func() *pflag.FlagSet

	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	Run func(ctx context.Context, args []string) error

	// Output receives help text. Unset commands inherit it from their
	// parent; the root falls back to stderr.
	Output io.Writer

	parent *Command
}

// Example is one entry in the help output's Examples section.
type Example struct {
	Description string
	Command     string
}

// Execute dispatches args down the tree and runs the selected leaf.
// Usage mistakes come back as validation ToolErrors carrying a
// suggestion when one is close.
func (c *Command) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.output())
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return c.dispatch(ctx, args[0], args[1:])
	}

	if c.Run == nil {
		c.PrintHelp(c.output())
		switch {
		case len(c.Subcommands) == 0:
			return Internal("%q has neither subcommands nor an action", c.fullName())
		case len(args) == 0:
			return Validation("subcommand required")
		default:
			return Validation("subcommand required (got flag %q)", args[0])
		}
	}

	if c.Flags != nil {
		remaining, err := c.parseFlags(args)
		if err != nil {
			return err
		}
		args = remaining
	}
	return c.Run(ctx, args)
}

func (c *Command) dispatch(ctx context.Context, name string, args []string) error {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			sub.parent = c
			return sub.Execute(ctx, args)
		}
	}
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		return Validation("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
			name, suggestion, c.fullName())
	}
	return Validation("unknown command %q\n\nRun '%s --help' for usage.", name, c.fullName())
}

// parseFlags parses args against a fresh flag set and returns the
// positional remainder.
func (c *Command) parseFlags(args []string) ([]string, error) {
	flagSet := c.Flags()
	flagSet.SetOutput(io.Discard)
	err := flagSet.Parse(args)
	if err == nil {
		return flagSet.Args(), nil
	}

	message := err.Error()
	if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
		if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
			return nil, Validation("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
				message, suggestion, c.fullName())
		}
	}
	return nil, Validation("%s\n\nRun '%s --help' for usage.", message, c.fullName())
}

// PrintHelp writes the description, usage, commands, flags and
// examples of c to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	if text := c.Description; text != "" {
		fmt.Fprintf(w, "%s\n\n", text)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	usage := c.Usage
	switch {
	case usage != "":
	case len(c.Subcommands) > 0:
		usage = name + " <command> [flags]"
	default:
		usage = name + " [flags]"
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", usage)

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if c.Flags != nil {
		var defaults strings.Builder
		flagSet := c.Flags()
		flagSet.SetOutput(&defaults)
		flagSet.PrintDefaults()
		if defaults.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", defaults.String())
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description == "" {
				fmt.Fprintf(w, "  %s\n", example.Command)
				continue
			}
			fmt.Fprintf(w, "  # %s\n  %s\n\n", example.Description, example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

func (c *Command) output() io.Writer {
	for command := c; command != nil; command = command.parent {
		if command.Output != nil {
			return command.Output
		}
	}
	return os.Stderr
}

// fullName is the space-separated path from the root, e.g.
// "orghelper project create".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	}
	return false
}
