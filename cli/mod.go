// Package cli defines the builder of the command line tool of the client. The
// commands are declared independently of the library that parses the
// arguments, which is provided by an implementation like cli/urfave.
//
//	builder := urfave.NewBuilder("hedera", nil)
//
//	cmd := builder.SetCommand("checksum")
//	cmd.SetDescription("print an address with its checksum")
//	cmd.SetFlags(cli.StringFlag{Name: "address", Required: true})
//	cmd.SetAction(func(flags cli.Flags) error {
//		fmt.Println(flags.String("address"))
//		return nil
//	})
//
//	err := builder.Build().Run(os.Args)
package cli

import "time"

// Builder declares the commands of an application.
type Builder interface {
	// SetCommand declares a command and returns its builder.
	SetCommand(name string) CommandBuilder

	// Build returns the application of the declared commands.
	Build() Application
}

// Application runs the command of the arguments.
type Application interface {
	Run(arguments []string) error
}

// CommandBuilder declares the description, the flags, the action and the
// subcommands of a command.
type CommandBuilder interface {
	SetDescription(value string)

	SetFlags(...Flag)

	SetAction(Action)

	// SetSubCommand declares a subcommand and returns its builder.
	SetSubCommand(name string) CommandBuilder
}

// Action is the function run by a command.
type Action func(Flags) error

// Flag is the declaration of a flag. The implementations are in this package.
type Flag interface {
	Flag()
}

// Flags gives the values of the flags to an action.
type Flags interface {
	String(name string) string

	StringSlice(name string) []string

	Duration(name string) time.Duration

	Int(name string) int

	Bool(name string) bool
}
