package link

import (
	"go.bug.st/serial"
)

// SerialDriver is the Driver for the host's actual serial ports.
type SerialDriver struct{}

// Ports lists the names of the serial ports present on the host.
func (SerialDriver) Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Open opens the named port at the given baud rate, 8N1.
func (SerialDriver) Open(name string, baud int) (Port, error) {
	return serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
}
