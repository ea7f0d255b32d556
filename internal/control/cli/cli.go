// Package cli provides the command-line interface for archmaster.
package cli

// CommandLineOpts are the options and subcommands of the archmaster binary.
type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	TuiCommand     TuiCommand     `command:"tui" subcommands-optional:"true" description:"Run the interactive remap editor (default)"`
	ServeCommand   ServeCommand   `command:"serve" subcommands-optional:"true" description:"Answer device queries headlessly until interrupted"`
	PortsCommand   PortsCommand   `command:"ports" subcommands-optional:"true" description:"List the available serial ports"`
	ShowCommand    ShowCommand    `command:"show" subcommands-optional:"true" description:"Print the remaps of all grid keys"`
	GetCommand     GetCommand     `command:"get" subcommands-optional:"true" description:"Print the remap of a single key"`
	SetCommand     SetCommand     `command:"set" subcommands-optional:"true" description:"Set (or clear) the remap of a single key and save"`
	VersionCommand VersionCommand `command:"version" subcommands-optional:"true" description:"Show the program version"`
}

// Opts holds the parsed command line.
var Opts CommandLineOpts
