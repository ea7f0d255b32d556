package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ja-he/archmaster/internal/link"
)

// PortsCommand lists the serial ports a connection could be opened on.
type PortsCommand struct{}

// Execute runs the ports command.
func (command *PortsCommand) Execute(args []string) error {
	return listPorts(os.Stdout, link.SerialDriver{})
}

func listPorts(w io.Writer, driver link.Driver) error {
	ports, err := driver.Ports()
	if err != nil {
		return fmt.Errorf("could not list ports (%w)", err)
	}
	if len(ports) == 0 {
		return link.ErrNoPorts
	}
	for _, port := range ports {
		if _, err := fmt.Fprintln(w, port); err != nil {
			return err
		}
	}
	return nil
}
