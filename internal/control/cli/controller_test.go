package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ja-he/archmaster/internal/config"
	"github.com/ja-he/archmaster/internal/control"
	"github.com/ja-he/archmaster/internal/input"
	"github.com/ja-he/archmaster/internal/link"
	"github.com/ja-he/archmaster/internal/model"
	"github.com/ja-he/archmaster/internal/potatolog"
	"github.com/ja-he/archmaster/internal/storage"
	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/tui"
)

type controllerFixture struct {
	c      *Controller
	screen tcell.SimulationScreen
	driver *fakeDriver
	store  *storage.FileStore

	finalized bool
}

func newControllerFixture(t *testing.T, driver *fakeDriver, remapPath string) *controllerFixture {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	handler, err := tui.NewScreenHandler(screen)
	if err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)

	stylesheet, err := styling.NewStylesheetFromConfig(config.Default(config.Dark).Stylesheet)
	if err != nil {
		t.Fatal(err)
	}

	if remapPath == "" {
		remapPath = filepath.Join(t.TempDir(), "config.json")
	}
	store, err := storage.OpenFileStore(remapPath)
	if err != nil {
		t.Fatal(err)
	}

	deviceLink := link.New(driver, store.Remaps())
	c, err := NewController(control.EnvData{}, *stylesheet, store, deviceLink, handler, potatolog.NewMemoryLogReaderWriter(10))
	if err != nil {
		t.Fatal(err)
	}
	c.statusResetDelay = 10 * time.Millisecond

	f := &controllerFixture{c: c, screen: screen, driver: driver, store: store}
	t.Cleanup(func() {
		_ = deviceLink.Disconnect()
		if !f.finalized {
			handler.Fini()
		}
	})
	return f
}

// press handles the keys in order and reports whether the last one made the
// controller exit.
func (f *controllerFixture) press(keys ...input.Key) (exit bool) {
	for _, k := range keys {
		exit = f.c.handleEvent(controllerEvent{typ: controllerEventKey, key: k})
	}
	return exit
}

func (f *controllerFixture) typeText(s string) {
	for _, r := range s {
		f.press(runeKey(r))
	}
}

// nextEvent waits for the next controller event, e.g. one posted by a timer
// or the link.
func (f *controllerFixture) nextEvent(t *testing.T) controllerEvent {
	t.Helper()
	select {
	case ev := <-f.c.controllerEvents:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no controller event")
	}
	return controllerEvent{}
}

// awaitLinkEvent handles controller events until a link event of the given
// type was handled.
func (f *controllerFixture) awaitLinkEvent(t *testing.T, typ link.EventType) {
	t.Helper()
	for {
		ev := f.nextEvent(t)
		f.c.handleEvent(ev)
		if ev.typ == controllerEventLink && ev.link.Type == typ {
			return
		}
	}
}

func (f *controllerFixture) screenText() string {
	cells, w, h := f.screen.GetContents()
	var b strings.Builder
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			cell := cells[row*w+col]
			if len(cell.Runes) > 0 && cell.Runes[0] != 0 {
				b.WriteRune(cell.Runes[0])
			} else {
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func runeKey(r rune) input.Key { return input.Key{Key: tcell.KeyRune, Ch: r} }

var (
	keyEnter     = input.Key{Key: tcell.KeyEnter}
	keyEsc       = input.Key{Key: tcell.KeyESC}
	keyBackspace = input.Key{Key: tcell.KeyBackspace2}
	keyTab       = input.Key{Key: tcell.KeyTab}
)

func TestControllerEditing(t *testing.T) {

	t.Run("commit sets remap of selected key", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.press(runeKey('l'), runeKey('i'))
		if !f.c.data.Editing {
			t.Fatal("editor not opened")
		}
		if f.c.data.EditBuffer != "B" {
			t.Errorf("editor not prefilled with current remap, got '%s'", f.c.data.EditBuffer)
		}
		f.press(keyBackspace)
		f.typeText("Alt+F4")
		f.press(keyEnter)

		if f.c.data.Editing {
			t.Error("editor still open after commit")
		}
		if got := f.store.Remaps().GetRemap(model.Mode1, "B"); got != "Alt+F4" {
			t.Errorf("expected 'Alt+F4', got '%s'", got)
		}
		if f.store.Remaps().IsMapped(model.Mode2, "B") {
			t.Error("other mode changed")
		}
	})

	t.Run("blank commit is declined", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.press(runeKey('i'), keyBackspace, runeKey(' '), keyEnter)
		if !f.c.data.Editing {
			t.Error("editor closed on blank commit")
		}
		if f.c.data.Status.Kind != control.StatusBad || f.c.data.Status.Text != "Remap cannot be empty" {
			t.Errorf("unexpected status %+v", f.c.data.Status)
		}
		f.press(keyEsc)
		if f.c.data.Editing {
			t.Error("editor not closed by esc")
		}
		if f.store.Remaps().IsMapped(model.Mode1, "A") {
			t.Error("declined edit was stored")
		}
	})

	t.Run("modifier autofill overwrites field", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.press(runeKey('i'))
		f.typeText("xyz")

		f.press(input.Key{Key: tcell.KeyCtrlA, Mod: tcell.ModCtrl})
		if f.c.data.EditBuffer != "Ctrl+" {
			t.Errorf("expected 'Ctrl+', got '%s'", f.c.data.EditBuffer)
		}
		f.press(input.Key{Key: tcell.KeyRune, Ch: 'x', Mod: tcell.ModAlt})
		if f.c.data.EditBuffer != "Alt+" {
			t.Errorf("expected 'Alt+', got '%s'", f.c.data.EditBuffer)
		}
		f.press(input.Key{Key: tcell.KeyUp, Mod: tcell.ModShift})
		if f.c.data.EditBuffer != "Shift+" {
			t.Errorf("expected 'Shift+', got '%s'", f.c.data.EditBuffer)
		}
		f.typeText("Z")
		f.press(keyEnter)
		if got := f.store.Remaps().GetRemap(model.Mode1, "A"); got != "Shift+Z" {
			t.Errorf("expected 'Shift+Z', got '%s'", got)
		}
	})

	t.Run("clear resets to identity", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.store.Remaps().SetRemap(model.Mode1, "E", "Ctrl+C")
		f.press(runeKey('j'), runeKey('l'), runeKey('x'))
		if f.store.Remaps().IsMapped(model.Mode1, "E") {
			t.Error("remap of E not cleared")
		}
	})

	t.Run("mode switching", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.press(runeKey('m'))
		if f.c.data.ActiveMode != model.Mode2 {
			t.Fatal("mode not switched")
		}
		f.press(runeKey('i'), keyBackspace)
		f.typeText("Q")
		f.press(keyEnter)
		if f.store.Remaps().GetRemap(model.Mode2, "A") != "Q" || f.store.Remaps().IsMapped(model.Mode1, "A") {
			t.Error("edit not applied to mode 2 only")
		}
		f.press(keyTab)
		if f.c.data.ActiveMode != model.Mode1 {
			t.Error("tab did not switch back")
		}
	})
}

func TestControllerSave(t *testing.T) {

	t.Run("save writes file and resets status", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.store.Remaps().SetRemap(model.Mode1, "B", "Alt+F4")
		f.press(runeKey('w'))

		if f.c.data.Status.Text != "Config saved!" || f.c.data.Status.Kind != control.StatusGood {
			t.Errorf("unexpected status %+v", f.c.data.Status)
		}
		loaded, err := storage.Load(f.store.Path)
		if err != nil {
			t.Fatal(err)
		}
		if loaded.GetRemap(model.Mode1, "B") != "Alt+F4" {
			t.Error("saved file lacks remap")
		}

		ev := f.nextEvent(t)
		if ev.typ != controllerEventStatusReset {
			t.Fatalf("expected status reset event, got %v", ev.typ)
		}
		f.c.handleEvent(ev)
		if f.c.data.Status.Text != "Not connected" {
			t.Errorf("status not reset, got '%s'", f.c.data.Status.Text)
		}
	})

	t.Run("newer status survives reset", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.press(runeKey('w'), runeKey('x'))
		f.c.handleEvent(f.nextEvent(t))
		if !strings.Contains(f.c.data.Status.Text, "unsaved") {
			t.Errorf("newer status was reset, got '%s'", f.c.data.Status.Text)
		}
	})

	t.Run("failing save shows notice", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, filepath.Join(t.TempDir(), "missing", "config.json"))
		f.press(runeKey('w'))
		if !strings.HasPrefix(f.c.data.Notice, "Save failed: ") {
			t.Errorf("unexpected notice '%s'", f.c.data.Notice)
		}
		if f.c.data.Status.Kind != control.StatusBad {
			t.Error("status not bad")
		}

		f.press(runeKey('j'))
		if f.c.data.Notice != "" {
			t.Error("notice not dismissed")
		}
		if f.c.data.Cursor != 0 {
			t.Error("dismissing key reached the grid")
		}
	})
}

func TestControllerConnection(t *testing.T) {

	t.Run("no ports", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.press(runeKey('c'))
		if f.c.data.Notice != "No COM ports found!" {
			t.Errorf("unexpected notice '%s'", f.c.data.Notice)
		}
		if f.c.deviceLink.State() != link.Disconnected {
			t.Error("link not disconnected")
		}
	})

	t.Run("open failure", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{ports: []string{"/dev/ttyFAKE"}, openErr: errors.New("busy")}, "")
		f.press(runeKey('c'))
		if !strings.HasPrefix(f.c.data.Notice, "Connection failed: ") || !strings.Contains(f.c.data.Notice, "busy") {
			t.Errorf("unexpected notice '%s'", f.c.data.Notice)
		}
	})

	t.Run("connect, answer, disconnect", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{ports: []string{"/dev/ttyFAKE", "/dev/ttyOTHER"}}, "")
		f.store.Remaps().SetRemap(model.Mode1, "B", "Alt+F4")

		f.press(runeKey('c'))
		f.awaitLinkEvent(t, link.EventConnected)
		if !f.c.data.Connection.Connected || f.c.data.Connection.PortName != "/dev/ttyFAKE" {
			t.Errorf("unexpected connection info %+v", f.c.data.Connection)
		}
		if f.c.data.Status.Text != "Connected to /dev/ttyFAKE" {
			t.Errorf("unexpected status '%s'", f.c.data.Status.Text)
		}

		port := f.driver.lastOpened()
		go func() { _, _ = port.feed.Write([]byte("KEY:1:B\r\n")) }()
		select {
		case answer := <-port.answers:
			if answer != "Alt+F4" {
				t.Errorf("expected 'Alt+F4', got '%s'", answer)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("no answer")
		}

		f.press(runeKey('c'))
		f.awaitLinkEvent(t, link.EventDisconnected)
		if f.c.data.Connection.Connected {
			t.Error("still shown as connected")
		}
		if f.c.data.Status.Text != "Disconnected" {
			t.Errorf("unexpected status '%s'", f.c.data.Status.Text)
		}
	})

	t.Run("unplugged device", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{ports: []string{"/dev/ttyFAKE"}}, "")
		f.press(runeKey('c'))
		f.awaitLinkEvent(t, link.EventConnected)

		f.driver.lastOpened().feed.Close()
		f.awaitLinkEvent(t, link.EventReceiveEnded)
		if !f.c.data.Connection.LoopEnded {
			t.Error("loop end not recorded")
		}
		if f.c.data.Status.Kind != control.StatusBad {
			t.Errorf("unexpected status %+v", f.c.data.Status)
		}
	})
}

func TestControllerPanes(t *testing.T) {

	t.Run("help captures input", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.press(runeKey('?'))
		if !f.c.data.ShowHelp {
			t.Fatal("help not shown")
		}
		f.c.rootPane.Draw()
		text := f.screenText()
		for _, expected := range []string{"save remaps to file", "move down"} {
			if !strings.Contains(text, expected) {
				t.Errorf("expected '%s' in help:\n%s", expected, text)
			}
		}

		f.press(runeKey('j'))
		if f.c.data.Cursor != 0 {
			t.Error("key reached grid through help")
		}
		f.press(keyEsc)
		if f.c.data.ShowHelp {
			t.Error("help not closed")
		}
	})

	t.Run("log toggle", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.press(runeKey('E'))
		if !f.c.data.ShowLog {
			t.Error("log not shown")
		}
		f.press(runeKey('E'))
		if f.c.data.ShowLog {
			t.Error("log not hidden")
		}
	})

	t.Run("draw", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.store.Remaps().SetRemap(model.Mode1, "I", "Ctrl+Shift+Esc")
		f.c.rootPane.Draw()
		text := f.screenText()
		for _, expected := range []string{"ARCHMASTER", "Mode 1", "Ctrl+Shift+Esc", "Not connected"} {
			if !strings.Contains(text, expected) {
				t.Errorf("expected '%s' on screen:\n%s", expected, text)
			}
		}
	})

	t.Run("quit", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		if f.press(runeKey('m')) {
			t.Error("exit after 'm'")
		}
		if !f.press(runeKey('q')) {
			t.Error("no exit after quit")
		}
	})

	t.Run("quit with a full event queue", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		for len(f.c.controllerEvents) < cap(f.c.controllerEvents) {
			f.c.controllerEvents <- controllerEvent{typ: controllerEventRender}
		}

		exited := make(chan bool, 1)
		go func() { exited <- f.press(runeKey('q')) }()
		select {
		case exit := <-exited:
			if !exit {
				t.Error("no exit after quit")
			}
		case <-time.After(time.Second):
			t.Fatal("quitting blocked on the full event queue")
		}
	})

	t.Run("answered queries are not queued", func(t *testing.T) {
		f := newControllerFixture(t, &fakeDriver{}, "")
		f.c.deviceLink.OnEvent(link.Event{Type: link.EventAnswered, PortName: "COM1", Query: "KEY:1:A", Answer: "A"})
		f.c.deviceLink.OnEvent(link.Event{Type: link.EventReceiveEnded, PortName: "COM1"})
		if ev := f.nextEvent(t); ev.typ != controllerEventLink || ev.link.Type != link.EventReceiveEnded {
			t.Errorf("expected the receive-ended event first, got %#v", ev)
		}
	})
}

func TestControllerRun(t *testing.T) {
	f := newControllerFixture(t, &fakeDriver{}, "")

	done := make(chan struct{})
	go func() {
		f.c.Run()
		close(done)
	}()

	f.screen.InjectKey(tcell.KeyRune, 'm', tcell.ModNone)
	f.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case <-done:
		f.finalized = true
	case <-time.After(5 * time.Second):
		t.Fatal("controller did not exit on 'q'")
	}
}
