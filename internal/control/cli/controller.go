package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/archmaster/internal/control"
	"github.com/ja-he/archmaster/internal/control/action"
	"github.com/ja-he/archmaster/internal/input"
	"github.com/ja-he/archmaster/internal/input/processors"
	"github.com/ja-he/archmaster/internal/link"
	"github.com/ja-he/archmaster/internal/model"
	"github.com/ja-he/archmaster/internal/potatolog"
	"github.com/ja-he/archmaster/internal/storage"
	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/tui"
	"github.com/ja-he/archmaster/internal/ui"
	"github.com/ja-he/archmaster/internal/ui/panes"
)

// defaultStatusResetDelay is how long a save confirmation stays in the status
// line before it goes back to showing the connection.
const defaultStatusResetDelay = 2 * time.Second

// Controller is the struct for the TUI controller.
//
// All UI state is owned by the goroutine running the controller's event loop;
// everything else (key polling, timers, the device link) only ever posts
// controller events.
type Controller struct {
	data     *control.ControlData
	rootPane *panes.RootPane

	store      *storage.FileStore
	deviceLink *link.Link

	ctx              context.Context
	controllerEvents chan controllerEvent
	loopDone         chan struct{}
	statusResetDelay time.Duration
	exitRequested    bool

	screenEvents      tui.EventPollable
	initializedScreen tui.InitializedScreen
	syncer            tui.ScreenSynchronizer
}

// NewController creates a new Controller, rendering to the given screen
// handler, editing the given store and driving the given link.
func NewController(
	envData control.EnvData,
	stylesheet styling.Stylesheet,
	store *storage.FileStore,
	deviceLink *link.Link,
	renderer *tui.ScreenHandler,
	logReader potatolog.LogReader,
) (*Controller, error) {
	controller := Controller{
		data:             control.NewControlData(envData),
		store:            store,
		deviceLink:       deviceLink,
		ctx:              context.Background(),
		controllerEvents: make(chan controllerEvent, 32),
		loopDone:         make(chan struct{}),
		statusResetDelay: defaultStatusResetDelay,
	}
	remaps := store.Remaps()

	screenDimensions := renderer.Dimensions
	headerDimensions := func() (x, y, w, h int) {
		_, _, screenWidth, _ := screenDimensions()
		return 0, 0, screenWidth, 2
	}
	statusDimensions := func() (x, y, w, h int) {
		_, _, screenWidth, screenHeight := screenDimensions()
		return 0, screenHeight - 1, screenWidth, 1
	}
	gridDimensions := func() (x, y, w, h int) {
		_, _, screenWidth, screenHeight := screenDimensions()
		return 0, 2, screenWidth, screenHeight - 3
	}
	editorDimensions := centeredIn(screenDimensions, 50, 5)
	noticeDimensions := centeredIn(screenDimensions, 50, 7)
	helpDimensions := centeredIn(screenDimensions, 60, 20)

	gridInputTree, err := input.ConstructInputTree(
		map[input.Keyspec]action.Action{
			"h":       action.New("move left", func() { controller.data.MoveCursor(-1, 0) }),
			"<left>":  action.New("move left", func() { controller.data.MoveCursor(-1, 0) }),
			"l":       action.New("move right", func() { controller.data.MoveCursor(1, 0) }),
			"<right>": action.New("move right", func() { controller.data.MoveCursor(1, 0) }),
			"k":       action.New("move up", func() { controller.data.MoveCursor(0, -1) }),
			"<up>":    action.New("move up", func() { controller.data.MoveCursor(0, -1) }),
			"j":       action.New("move down", func() { controller.data.MoveCursor(0, 1) }),
			"<down>":  action.New("move down", func() { controller.data.MoveCursor(0, 1) }),
			"i":       action.New("edit remap of selected key", controller.startEdit),
			"<cr>":    action.New("edit remap of selected key", controller.startEdit),
			"x":       action.New("reset selected key to itself", controller.clearSelected),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to construct input tree for grid pane (%w)", err)
	}

	editorInputProcessor, err := processors.NewTextInputProcessor(
		map[input.Keyspec]action.Action{
			"<cr>":   action.New("set remap", controller.commitEdit),
			"<esc>":  action.New("cancel", controller.cancelEdit),
			"<bs>":   action.New("backspace", controller.data.Backspace),
			"<c-bs>": action.New("backspace", controller.data.Backspace),
		},
		controller.data.AppendRune,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to construct input processor for editor pane (%w)", err)
	}
	editorInputProcessor.SetModifierCallback(func(prefix string) {
		controller.data.EditBuffer = prefix
	})

	cursorWrangler := ui.NewCursorWrangler(renderer)

	var helpContentRegister func()
	rootPaneInputTree, err := input.ConstructInputTree(
		map[input.Keyspec]action.Action{
			"q": action.New("exit program (unsaved remaps are lost)", func() {
				controller.exitRequested = true
			}),
			"?": action.New("show help", func() {
				helpContentRegister()
				controller.data.ShowHelp = true
			}),
			"E": action.New("toggle log", func() {
				controller.data.ShowLog = !controller.data.ShowLog
			}),
			"w": action.New("save remaps to file", controller.save),
			"c": action.NewSimple(func() string {
				if controller.deviceLink.State() == link.Connected {
					return "disconnect device"
				}
				return "connect device"
			}, controller.toggleConnection),
			"m":     action.New("switch mode", controller.data.ToggleMode),
			"<tab>": action.New("switch mode", controller.data.ToggleMode),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to construct input tree for root pane (%w)", err)
	}

	helpPaneInputTree, err := input.ConstructInputTree(
		map[input.Keyspec]action.Action{
			"?":     action.New("close help", func() { controller.data.ShowHelp = false }),
			"q":     action.New("close help", func() { controller.data.ShowHelp = false }),
			"<esc>": action.New("close help", func() { controller.data.ShowHelp = false }),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to construct input tree for help pane (%w)", err)
	}
	helpPane := panes.NewHelpPane(
		ui.NewConstrainedRenderer(renderer, helpDimensions),
		helpDimensions,
		stylesheet,
		func() bool { return controller.data.ShowHelp },
		input.CapturingOverlayWrap(helpPaneInputTree),
	)

	activeMode := func() model.Mode { return controller.data.ActiveMode }

	rootPane := panes.NewRootPane(
		renderer,
		cursorWrangler,
		screenDimensions,
		panes.NewHeaderPane(
			ui.NewConstrainedRenderer(renderer, headerDimensions),
			headerDimensions,
			stylesheet,
			activeMode,
		),
		panes.NewGridPane(
			ui.NewConstrainedRenderer(renderer, gridDimensions),
			gridDimensions,
			stylesheet,
			remaps,
			activeMode,
			func() int { return controller.data.Cursor },
			gridInputTree,
		),
		panes.NewStatusPane(
			ui.NewConstrainedRenderer(renderer, statusDimensions),
			statusDimensions,
			stylesheet,
			func() control.Status { return controller.data.Status },
			func() control.ConnectionInfo { return controller.data.Connection },
			time.Now,
		),
		panes.NewEditorPane(
			ui.NewConstrainedRenderer(renderer, editorDimensions),
			cursorWrangler,
			editorDimensions,
			stylesheet,
			func() bool { return controller.data.Editing },
			controller.data.SelectedKey,
			activeMode,
			func() string { return controller.data.EditBuffer },
			editorInputProcessor,
		),
		panes.NewLogPane(
			ui.NewConstrainedRenderer(renderer, screenDimensions),
			screenDimensions,
			stylesheet,
			func() bool { return controller.data.ShowLog },
			func() string { return "LOG" },
			logReader,
		),
		helpPane,
		panes.NewNoticePane(
			ui.NewConstrainedRenderer(renderer, noticeDimensions),
			noticeDimensions,
			stylesheet,
			func() bool { return controller.data.Notice != "" },
			func() string { return controller.data.Notice },
			processors.NewCatchAllInputProcessor(
				action.New("dismiss", func() { controller.data.Notice = "" }),
			),
		),
		rootPaneInputTree,
	)
	helpContentRegister = func() {
		helpPane.Content = rootPane.GetHelp()
	}
	controller.rootPane = rootPane

	deviceLink.OnEvent = func(e link.Event) {
		if e.Type == link.EventAnswered {
			return
		}
		// the link must not be blocked by a busy event loop
		go controller.post(controllerEvent{typ: controllerEventLink, link: e})
	}

	controller.screenEvents = renderer.GetEventPollable()
	controller.initializedScreen = renderer
	controller.syncer = renderer

	return &controller, nil
}

// centeredIn returns dimensions of at most the given size, centered within
// the given outer dimensions and leaving a margin of two cells to the sides.
func centeredIn(outer func() (x, y, w, h int), maxWidth, maxHeight int) func() (x, y, w, h int) {
	return func() (x, y, w, h int) {
		outerX, outerY, outerW, outerH := outer()
		w = min(maxWidth, outerW-4)
		h = min(maxHeight, outerH-2)
		return outerX + (outerW-w)/2, outerY + (outerH-h)/2, w, h
	}
}

func (c *Controller) startEdit() {
	c.data.StartEdit(c.store.Remaps().GetRemap(c.data.ActiveMode, c.data.SelectedKey()))
}

func (c *Controller) cancelEdit() {
	c.data.EndEdit()
}

// commitEdit stores the editor's contents as the selected key's remap.
// Blank input is declined and leaves the editor open.
func (c *Controller) commitEdit() {
	if c.data.EditBufferBlank() {
		c.data.SetStatus("Remap cannot be empty", control.StatusBad)
		return
	}
	key := c.data.SelectedKey()
	value := c.data.EndEdit()
	c.store.Remaps().SetRemap(c.data.ActiveMode, key, value)
	log.Debug().Str("mode", string(c.data.ActiveMode)).Str("key", string(key)).Str("value", value).Msg("set remap")
	c.data.SetStatus(fmt.Sprintf("%s -> %s (unsaved)", key, value), control.StatusNeutral)
}

func (c *Controller) clearSelected() {
	key := c.data.SelectedKey()
	c.store.Remaps().ClearRemap(c.data.ActiveMode, key)
	c.data.SetStatus(fmt.Sprintf("%s -> %s (unsaved)", key, key), control.StatusNeutral)
}

func (c *Controller) save() {
	err := c.store.Save()
	if err != nil {
		log.Error().Err(err).Msg("could not save remaps")
		c.data.Notice = fmt.Sprintf("Save failed: %s", err.Error())
		c.data.SetStatus("Save failed", control.StatusBad)
		return
	}
	generation := c.data.SetStatus("Config saved!", control.StatusGood)
	c.scheduleStatusReset(generation)
}

// scheduleStatusReset has the status go back to the connection text after
// the reset delay, unless it changed in the meantime.
func (c *Controller) scheduleStatusReset(generation uint64) {
	time.AfterFunc(c.statusResetDelay, func() {
		c.post(controllerEvent{typ: controllerEventStatusReset, statusGeneration: generation})
	})
}

func (c *Controller) toggleConnection() {
	err := c.deviceLink.Toggle(c.ctx)
	switch {
	case err == nil:
	case errors.Is(err, link.ErrNoPorts):
		log.Warn().Msg("no ports to connect to")
		c.data.Notice = "No COM ports found!"
	default:
		log.Error().Err(err).Msg("connection failed")
		c.data.Notice = fmt.Sprintf("Connection failed: %s", err.Error())
	}
}

func (c *Controller) handleLinkEvent(e link.Event) {
	switch e.Type {
	case link.EventConnected:
		name, since := c.deviceLink.ConnectedPort()
		if name == "" {
			// already disconnected again, a disconnect event is on its way
			return
		}
		c.data.Connection = control.ConnectionInfo{Connected: true, PortName: name, Since: since}
		c.data.SetStatus(c.data.ConnectionStatusText(), control.StatusGood)

	case link.EventDisconnected:
		if c.deviceLink.State() == link.Connected {
			// reconnected in the meantime
			return
		}
		c.data.Connection = control.ConnectionInfo{}
		c.data.SetStatus("Disconnected", control.StatusNeutral)

	case link.EventReceiveEnded:
		if !c.data.Connection.Connected || c.data.Connection.PortName != e.PortName {
			return
		}
		c.data.Connection.LoopEnded = true
		c.data.SetStatus(fmt.Sprintf("Lost %s, press c to reconnect", e.PortName), control.StatusBad)
	}
}

// post queues an event for the event loop. It gives up once the loop has
// ended. Never call it from the loop itself.
func (c *Controller) post(ev controllerEvent) {
	select {
	case c.controllerEvents <- ev:
	case <-c.loopDone:
	}
}

// handleEvent applies a single controller event to the UI state.
// Returns true if the controller should exit.
func (c *Controller) handleEvent(ev controllerEvent) (exit bool) {
	switch ev.typ {
	case controllerEventRender:
		// drawing follows every event anyway

	case controllerEventKey:
		inputApplied := c.rootPane.ProcessInput(ev.key)
		if !inputApplied {
			log.Debug().Str("key", ev.key.ToDebugString()).Msg("could not apply key input")
		}

	case controllerEventResize:
		c.syncer.NeedsSync()

	case controllerEventStatusReset:
		c.data.ResetStatus(ev.statusGeneration)

	case controllerEventLink:
		c.handleLinkEvent(ev.link)

	default:
		log.Error().Interface("event", ev.typ).Msgf("unhandled controller event")
	}
	return c.exitRequested
}

// Run runs the TUI until the user exits it.
// The device link is disconnected on exit.
func (c *Controller) Run() {
	log.Info().Msg("archmaster TUI started")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.ctx = ctx

	var wg sync.WaitGroup

	// Run the main loop, which applies events and renders when there are no
	// further events queued.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer c.initializedScreen.Fini()
		defer close(c.loopDone)
		for ev := range c.controllerEvents {
			if c.handleEvent(ev) {
				return
			}
			if len(c.controllerEvents) == 0 {
				c.rootPane.Draw()
			}
		}
	}()

	// Rerender every second so that the connection age stays current.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case c.controllerEvents <- controllerEvent{typ: controllerEventRender}:
				default:
				}
			}
		}
	}()

	// Run the event polling loop, which forwards terminal events to the main
	// loop.
	// It ends when the screen is finalized.
	go func() {
		for {
			ev := c.screenEvents.PollEvent()
			switch e := ev.(type) {
			case nil:
				return
			case *tcell.EventKey:
				c.post(controllerEvent{typ: controllerEventKey, key: input.KeyFromTcellEvent(e)})
			case *tcell.EventResize:
				c.post(controllerEvent{typ: controllerEventResize})
			}
		}
	}()

	c.post(controllerEvent{typ: controllerEventRender})

	wg.Wait()

	if err := c.deviceLink.Disconnect(); err != nil {
		log.Error().Err(err).Msg("could not disconnect cleanly")
	}
	log.Info().Msg("archmaster TUI exited")
}

type controllerEventType int

const (
	controllerEventRender controllerEventType = iota
	controllerEventKey
	controllerEventResize
	controllerEventStatusReset
	controllerEventLink
)

type controllerEvent struct {
	typ controllerEventType

	key              input.Key
	link             link.Event
	statusGeneration uint64
}
