package control

import (
	"strings"
	"time"

	"github.com/ja-he/archmaster/internal/model"
)

// EnvData represents the environment data.
type EnvData struct {
	BaseDirPath string
}

// StatusKind classifies a status message for display.
type StatusKind int

const (
	// StatusNeutral is a plain informational status.
	StatusNeutral StatusKind = iota
	// StatusGood is a status reporting success, e.g. a save or a connection.
	StatusGood
	// StatusBad is a status reporting a failure.
	StatusBad
)

// Status is the message shown in the status line.
type Status struct {
	Text string
	Kind StatusKind

	// Generation is increased with every change of the status, so that a
	// delayed reset can tell whether the status it meant to reset is still
	// shown.
	Generation uint64
}

// ConnectionInfo is what the UI knows about the device link.
type ConnectionInfo struct {
	Connected bool
	PortName  string
	Since     time.Time
	// LoopEnded is set if the receive loop ended while still connected, i.e.
	// the device was most likely unplugged.
	LoopEnded bool
}

// ControlData is the state of the terminal UI.
// It is only ever modified by the controller's event loop.
type ControlData struct {
	EnvData EnvData

	ActiveMode model.Mode
	Cursor     int

	Editing    bool
	EditBuffer string

	Status     Status
	Connection ConnectionInfo
	Notice     string

	ShowLog  bool
	ShowHelp bool
}

// NewControlData returns the initial UI state, showing the first mode with
// the cursor on the first key.
func NewControlData(envData EnvData) *ControlData {
	d := &ControlData{
		EnvData:    envData,
		ActiveMode: model.Mode1,
	}
	d.SetStatus(d.ConnectionStatusText(), StatusNeutral)
	return d
}

// SelectedKey returns the grid key under the cursor.
func (d *ControlData) SelectedKey() model.PhysicalKey {
	return model.GridKeys[d.Cursor]
}

// MoveCursor moves the cursor in the grid by the given number of columns and
// rows, stopping at the grid's edges.
func (d *ControlData) MoveCursor(dx, dy int) {
	rows := len(model.GridKeys) / model.GridWidth
	col := d.Cursor%model.GridWidth + dx
	row := d.Cursor/model.GridWidth + dy
	col = clamp(col, 0, model.GridWidth-1)
	row = clamp(row, 0, rows-1)
	d.Cursor = row*model.GridWidth + col
}

// ToggleMode switches to the other mode.
func (d *ControlData) ToggleMode() {
	modes := model.Modes()
	for i, m := range modes {
		if m == d.ActiveMode {
			d.ActiveMode = modes[(i+1)%len(modes)]
			return
		}
	}
	d.ActiveMode = modes[0]
}

// SetStatus sets the status message and returns its generation.
func (d *ControlData) SetStatus(text string, kind StatusKind) uint64 {
	d.Status = Status{
		Text:       text,
		Kind:       kind,
		Generation: d.Status.Generation + 1,
	}
	return d.Status.Generation
}

// ResetStatus sets the status back to the connection text, if the status is
// still the one of the given generation.
// Returns whether the status was reset.
func (d *ControlData) ResetStatus(generation uint64) bool {
	if d.Status.Generation != generation {
		return false
	}
	kind := StatusNeutral
	if d.Connection.Connected {
		kind = StatusGood
	}
	d.SetStatus(d.ConnectionStatusText(), kind)
	return true
}

// ConnectionStatusText returns "Connected to <port>" or "Not connected".
func (d *ControlData) ConnectionStatusText() string {
	if d.Connection.Connected {
		return "Connected to " + d.Connection.PortName
	}
	return "Not connected"
}

// StartEdit opens the editor for the selected key, prefilled with its
// current remap.
func (d *ControlData) StartEdit(current string) {
	d.Editing = true
	d.EditBuffer = current
}

// EndEdit closes the editor and returns its contents.
func (d *ControlData) EndEdit() string {
	d.Editing = false
	s := d.EditBuffer
	d.EditBuffer = ""
	return s
}

// AppendRune adds a rune to the editor contents.
func (d *ControlData) AppendRune(r rune) {
	d.EditBuffer += string(r)
}

// Backspace removes the last rune from the editor contents.
func (d *ControlData) Backspace() {
	r := []rune(d.EditBuffer)
	if len(r) > 0 {
		d.EditBuffer = string(r[:len(r)-1])
	}
}

// EditBufferBlank returns whether the editor contents are empty or only
// whitespace.
func (d *ControlData) EditBufferBlank() bool {
	return strings.TrimSpace(d.EditBuffer) == ""
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
