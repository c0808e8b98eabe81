// Package urfave implements the cli builder with the urfave/cli library.
//
// The commands of an application are listed in the order of their names so
// that the help output does not depend on the order of the declarations.
package urfave

import (
	"fmt"
	"io"
	"sort"

	ucli "github.com/urfave/cli/v2"
	"go.dedis.ch/hedera/cli"
)

// Builder is the builder of an urfave application.
//
// - implements cli.Builder
type Builder struct {
	name     string
	usage    string
	writer   io.Writer
	action   cli.Action
	flags    []cli.Flag
	commands map[string]*cmdBuilder
}

// NewBuilder returns the builder of an application. The action runs when no
// command is given and can be nil. The flags are global to the commands.
func NewBuilder(name string, action cli.Action, flags ...cli.Flag) cli.Builder {
	return &Builder{
		name:     name,
		action:   action,
		flags:    flags,
		commands: make(map[string]*cmdBuilder),
	}
}

// SetUsage sets the one-line description of the application.
func (b *Builder) SetUsage(usage string) {
	b.usage = usage
}

// SetWriter sets the output of the help messages. The standard output is used
// otherwise.
func (b *Builder) SetWriter(w io.Writer) {
	b.writer = w
}

// SetCommand implements cli.Builder.
func (b *Builder) SetCommand(name string) cli.CommandBuilder {
	cmd := newCmdBuilder()
	b.commands[name] = cmd

	return cmd
}

// Build implements cli.Builder.
func (b *Builder) Build() cli.Application {
	app := &ucli.App{
		Name:     b.name,
		Usage:    b.usage,
		Action:   makeAction(b.action),
		Flags:    buildFlags(b.flags),
		Commands: buildCommands(b.commands),
	}

	if b.writer != nil {
		app.Writer = b.writer
	}

	app.Setup()

	return app
}

// cmdBuilder is the builder of a command and of its subcommands.
//
// - implements cli.CommandBuilder
type cmdBuilder struct {
	description string
	action      cli.Action
	flags       []ucli.Flag
	subcommands map[string]*cmdBuilder
}

func newCmdBuilder() *cmdBuilder {
	return &cmdBuilder{
		subcommands: make(map[string]*cmdBuilder),
	}
}

// SetDescription implements cli.CommandBuilder.
func (b *cmdBuilder) SetDescription(value string) {
	b.description = value
}

// SetFlags implements cli.CommandBuilder.
func (b *cmdBuilder) SetFlags(flags ...cli.Flag) {
	b.flags = buildFlags(flags)
}

// SetAction implements cli.CommandBuilder.
func (b *cmdBuilder) SetAction(action cli.Action) {
	b.action = action
}

// SetSubCommand implements cli.CommandBuilder.
func (b *cmdBuilder) SetSubCommand(name string) cli.CommandBuilder {
	cmd := newCmdBuilder()
	b.subcommands[name] = cmd

	return cmd
}

// buildFlags returns the urfave flags of the definitions. It panics on an
// unknown definition as it is a programming error.
func buildFlags(flags []cli.Flag) []ucli.Flag {
	res := make([]ucli.Flag, len(flags))

	for i, f := range flags {
		switch e := f.(type) {
		case cli.StringFlag:
			res[i] = &ucli.StringFlag{
				Name:     e.Name,
				Usage:    e.Usage,
				Required: e.Required,
				Value:    e.Value,
				EnvVars:  e.EnvVars,
			}
		case cli.StringSliceFlag:
			res[i] = &ucli.StringSliceFlag{
				Name:     e.Name,
				Usage:    e.Usage,
				Required: e.Required,
				Value:    ucli.NewStringSlice(e.Value...),
				EnvVars:  e.EnvVars,
			}
		case cli.DurationFlag:
			res[i] = &ucli.DurationFlag{
				Name:     e.Name,
				Usage:    e.Usage,
				Required: e.Required,
				Value:    e.Value,
				EnvVars:  e.EnvVars,
			}
		case cli.IntFlag:
			res[i] = &ucli.IntFlag{
				Name:     e.Name,
				Usage:    e.Usage,
				Required: e.Required,
				Value:    e.Value,
				EnvVars:  e.EnvVars,
			}
		case cli.BoolFlag:
			res[i] = &ucli.BoolFlag{
				Name:     e.Name,
				Usage:    e.Usage,
				Required: e.Required,
				Value:    e.Value,
				EnvVars:  e.EnvVars,
			}
		default:
			panic(fmt.Sprintf("flag type '%T' not supported", f))
		}
	}

	return res
}

// buildCommands returns the urfave commands of the builders sorted by name.
func buildCommands(cmds map[string]*cmdBuilder) []*ucli.Command {
	commands := make([]*ucli.Command, 0, len(cmds))

	for name, cmd := range cmds {
		commands = append(commands, &ucli.Command{
			Name:        name,
			Usage:       cmd.description,
			Action:      makeAction(cmd.action),
			Flags:       cmd.flags,
			Subcommands: buildCommands(cmd.subcommands),
		})
	}

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name < commands[j].Name
	})

	return commands
}

// makeAction returns the urfave action of the action, or nil.
func makeAction(action cli.Action) ucli.ActionFunc {
	if action == nil {
		return nil
	}

	return func(ctx *ucli.Context) error {
		return action(ctx)
	}
}
