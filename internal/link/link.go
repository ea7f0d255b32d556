// Package link implements the device link: a serial connection over which the
// device asks for remap targets line by line and gets them answered.
package link

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaudRate is the baud rate the device firmware talks at.
const DefaultBaudRate = 9600

// maxLineLength bounds inbound lines; longer lines are dropped.
const maxLineLength = 1024

var (
	// ErrNoPorts is returned by Connect if no serial port is available.
	ErrNoPorts = errors.New("no ports found")
	// ErrAlreadyConnected is returned by Connect if the link is connected or
	// another Connect is still opening a port.
	ErrAlreadyConnected = errors.New("already connected")
)

// State is the connection state of a Link.
type State int

const (
	// Disconnected is the initial state and the state after Disconnect.
	Disconnected State = iota
	// Connected is the state after a successful Connect.
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connected:
		return "Connected"
	}
	return "[unknown state]"
}

// Port is an opened serial port.
type Port = io.ReadWriteCloser

// Driver enumerates and opens serial ports.
type Driver interface {
	Ports() ([]string, error)
	Open(name string, baud int) (Port, error)
}

// EventType describes what happened on a link.
type EventType int

const (
	_ EventType = iota
	// EventConnected is emitted after a successful Connect.
	EventConnected
	// EventDisconnected is emitted after an explicit Disconnect.
	EventDisconnected
	// EventReceiveEnded is emitted when reading from the port fails or hits
	// EOF while the link is still connected (e.g. the cable was pulled and the
	// OS noticed). The link stays Connected until disconnected explicitly.
	EventReceiveEnded
	// EventAnswered is emitted after a query was answered.
	EventAnswered
)

// Event is a notification about something happening on a link.
type Event struct {
	Type     EventType
	PortName string
	Query    string
	Answer   string
	Err      error
}

// Link is the serial connection to the device.
// Its zero value is not usable, construct it via New.
type Link struct {
	driver   Driver
	resolver Resolver

	// PortName, if set, is opened instead of the first enumerated port.
	PortName string
	Baud     int

	// OnEvent, if set, is called for all link events.
	// It may be called from the link's receive goroutine and must neither
	// block nor call back into the link.
	OnEvent func(Event)

	mtx        sync.Mutex
	state      State
	connecting bool
	port     Port
	portName string
	since    time.Time
	cancel   context.CancelFunc
	done     chan struct{}

	// held while handling a line and while closing the port, so that no
	// handler ever runs against a closed port
	ioMtx sync.Mutex

	log zerolog.Logger
}

// New constructs a disconnected Link which answers queries via the given
// resolver.
func New(driver Driver, resolver Resolver) *Link {
	return &Link{
		driver:   driver,
		resolver: resolver,
		Baud:     DefaultBaudRate,
		state:    Disconnected,
		log:      log.With().Str("component", "link").Logger(),
	}
}

// State returns the current connection state.
func (l *Link) State() State {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.state
}

// ConnectedPort returns the name of the connected port and since when it is
// connected. Returns an empty name if disconnected.
func (l *Link) ConnectedPort() (name string, since time.Time) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if l.state != Connected {
		return "", time.Time{}
	}
	return l.portName, l.since
}

// Connect opens the configured port (or the first available one) and starts
// answering queries on it until Disconnect is called or the given context is
// done.
//
// If no port is available, ErrNoPorts is returned. If opening the port fails,
// the error is returned. In both cases the link stays Disconnected and no
// other port is tried.
func (l *Link) Connect(ctx context.Context) error {
	name, err := l.connect(ctx)
	if err != nil {
		return err
	}
	l.emit(Event{Type: EventConnected, PortName: name})
	return nil
}

// connect opens the port without holding mtx, so that State and
// ConnectedPort stay responsive while a slow open is in progress.
func (l *Link) connect(ctx context.Context) (string, error) {
	l.mtx.Lock()
	if l.state == Connected || l.connecting {
		l.mtx.Unlock()
		return "", ErrAlreadyConnected
	}
	l.connecting = true
	l.mtx.Unlock()

	name, baud, port, err := l.open()

	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.connecting = false
	if err != nil {
		return "", err
	}
	if l.state == Connected || ctx.Err() != nil {
		_ = port.Close()
		if ctx.Err() != nil {
			return "", fmt.Errorf("connection to '%s' abandoned (%w)", name, ctx.Err())
		}
		return "", ErrAlreadyConnected
	}

	loopCtx, cancel := context.WithCancel(ctx)
	l.state = Connected
	l.port = port
	l.portName = name
	l.since = time.Now()
	l.cancel = cancel
	l.done = make(chan struct{})

	l.log.Info().Str("port", name).Int("baud", baud).Msg("connected")
	go l.receive(loopCtx, port, name, l.done)

	return name, nil
}

// open picks the port to use and opens it.
func (l *Link) open() (name string, baud int, port Port, err error) {
	name = l.PortName
	if name == "" {
		ports, err := l.driver.Ports()
		if err != nil {
			return "", 0, nil, fmt.Errorf("could not enumerate ports (%w)", err)
		}
		if len(ports) == 0 {
			return "", 0, nil, ErrNoPorts
		}
		name = ports[0]
	}

	baud = l.Baud
	if baud <= 0 {
		baud = DefaultBaudRate
	}

	port, err = l.driver.Open(name, baud)
	if err != nil {
		return "", 0, nil, fmt.Errorf("connection to '%s' failed (%w)", name, err)
	}
	return name, baud, port, nil
}

// Disconnect stops answering queries and closes the port.
// Calling it on a disconnected link does nothing.
func (l *Link) Disconnect() error {
	l.mtx.Lock()
	if l.state == Disconnected {
		l.mtx.Unlock()
		return nil
	}
	port, name, cancel, done := l.port, l.portName, l.cancel, l.done
	l.state = Disconnected
	l.port = nil
	l.portName = ""
	l.cancel = nil
	l.done = nil
	l.mtx.Unlock()

	cancel()
	l.ioMtx.Lock()
	err := port.Close()
	l.ioMtx.Unlock()
	<-done

	l.log.Info().Str("port", name).Msg("disconnected")
	l.emit(Event{Type: EventDisconnected, PortName: name, Err: err})

	if err != nil {
		return fmt.Errorf("error closing '%s' (%w)", name, err)
	}
	return nil
}

// Toggle disconnects a connected link and connects a disconnected one.
func (l *Link) Toggle(ctx context.Context) error {
	if l.State() == Connected {
		return l.Disconnect()
	}
	return l.Connect(ctx)
}

// Serve connects and answers queries until the context is done, then
// disconnects.
func (l *Link) Serve(ctx context.Context) error {
	if err := l.Connect(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return l.Disconnect()
}

func (l *Link) receive(ctx context.Context, port Port, name string, done chan struct{}) {
	defer close(done)

	reader := bufio.NewReaderSize(port, maxLineLength)
	for {
		line, err := readLine(reader)
		if err != nil {
			if ctx.Err() == nil {
				l.log.Warn().Err(err).Str("port", name).Msg("receive loop ended while connected")
				l.emit(Event{Type: EventReceiveEnded, PortName: name, Err: err})
			}
			return
		}
		if line == nil {
			continue
		}

		l.ioMtx.Lock()
		if ctx.Err() != nil {
			l.ioMtx.Unlock()
			return
		}
		answered := l.handleLine(port, name, string(line))
		l.ioMtx.Unlock()

		if answered != nil {
			l.emit(*answered)
		}
	}
}

// handleLine answers a single line; failures only ever drop the line.
// Returns the event to emit if the line was answered.
func (l *Link) handleLine(w io.Writer, name string, line string) *Event {
	answer, err := Answer(l.resolver, line)
	if err != nil {
		l.log.Debug().Err(err).Str("line", line).Msg("dropping line")
		return nil
	}
	if _, err := io.WriteString(w, answer+"\n"); err != nil {
		l.log.Warn().Err(err).Str("port", name).Msg("could not write answer")
		return nil
	}
	l.log.Trace().Str("query", line).Str("answer", answer).Msg("answered")
	return &Event{Type: EventAnswered, PortName: name, Query: line, Answer: answer}
}

func (l *Link) emit(e Event) {
	if l.OnEvent != nil {
		l.OnEvent(e)
	}
}

// readLine reads a single newline-terminated line.
// Lines longer than the reader's buffer are consumed and reported as a nil
// line (i.e. dropped).
func readLine(r *bufio.Reader) ([]byte, error) {
	line, isPrefix, err := r.ReadLine()
	if err != nil {
		return nil, err
	}
	if !isPrefix {
		result := make([]byte, len(line))
		copy(result, line)
		return result, nil
	}
	for isPrefix {
		_, isPrefix, err = r.ReadLine()
		if err != nil {
			return nil, err
		}
	}
	return nil, nil
}
