package cli

import "fmt"

const version = "0.3.0"

// VersionCommand prints the program version.
type VersionCommand struct{}

// Execute prints the version.
func (command *VersionCommand) Execute(args []string) error {
	fmt.Println("archmaster version", version)
	return nil
}
