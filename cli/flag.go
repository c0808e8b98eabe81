package cli

import "time"

// The flags share the same fields: the name and the usage shown in the help,
// whether the command fails when the flag is absent, the default value, and
// the environment variables read when the flag is not on the command line.

// StringFlag is a flag holding a string.
//
// - implements cli.Flag
type StringFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    string
	EnvVars  []string
}

// Flag implements cli.Flag.
func (StringFlag) Flag() {}

// StringSliceFlag is a flag that can be repeated to hold a list of strings.
//
// - implements cli.Flag
type StringSliceFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    []string
	EnvVars  []string
}

// Flag implements cli.Flag.
func (StringSliceFlag) Flag() {}

// DurationFlag is a flag holding a duration like "1h30m".
//
// - implements cli.Flag
type DurationFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    time.Duration
	EnvVars  []string
}

// Flag implements cli.Flag.
func (DurationFlag) Flag() {}

// IntFlag is a flag holding an integer.
//
// - implements cli.Flag
type IntFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    int
	EnvVars  []string
}

// Flag implements cli.Flag.
func (IntFlag) Flag() {}

// BoolFlag is a flag set to true by its presence.
//
// - implements cli.Flag
type BoolFlag struct {
	Name     string
	Usage    string
	Required bool
	Value    bool
	EnvVars  []string
}

// Flag implements cli.Flag.
func (BoolFlag) Flag() {}
