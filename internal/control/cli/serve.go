package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ja-he/archmaster/internal/link"
)

// reloadDebounce is how long the remap file has to be quiet before a change
// is reloaded; editors tend to write files in several steps.
const reloadDebounce = 200 * time.Millisecond

// ServeCommand runs the device link without a UI until interrupted.
type ServeCommand struct {
	RemapFileOption
	SerialOption

	Watch bool `short:"w" long:"watch" description:"Reload the remap file whenever it changes"`
}

// Execute runs the serve command.
func (command *ServeCommand) Execute(args []string) error {
	store, configData, err := openStore(themeFromString(""), command.RemapFileOption)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open remap store")
	}

	serial := serialSettings(command.SerialOption, configData)
	deviceLink := link.New(link.SerialDriver{}, store.Remaps())
	deviceLink.PortName = serial.Port
	deviceLink.Baud = serial.Baud

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reload func() error
	if command.Watch {
		reload = store.Reload
	}
	return serve(ctx, deviceLink, store.Path, reload)
}

// serve answers queries on the link until the context is done or the device
// is lost, which is an error.
// If reload is non-nil, it is called whenever the file at path changes.
func serve(ctx context.Context, deviceLink *link.Link, path string, reload func() error) error {
	lost := make(chan link.Event, 1)
	deviceLink.OnEvent = func(e link.Event) {
		switch e.Type {
		case link.EventAnswered:
			log.Info().Str("query", e.Query).Str("answer", e.Answer).Msg("answered query")
		case link.EventReceiveEnded:
			select {
			case lost <- e:
			default:
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return deviceLink.Serve(ctx)
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case e := <-lost:
			return fmt.Errorf("lost device on '%s' (%w)", e.PortName, e.Err)
		}
	})
	if reload != nil {
		g.Go(func() error {
			return watchFile(ctx, path, reload, reloadDebounce)
		})
	}

	err := g.Wait()
	log.Info().Msg("stopped serving")
	return err
}

// watchFile calls reload after the file at path was written or created
// (which includes being renamed onto) and then left alone for the debounce
// duration.
// It returns nil once the context is done.
//
// The file's directory is watched rather than the file, so that replacing
// the file (as many editors do on save) does not end the watch.
func watchFile(ctx context.Context, path string, reload func() error, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher (%w)", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("could not resolve '%s' (%w)", path, err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("could not watch '%s' (%w)", filepath.Dir(absPath), err)
	}
	log.Info().Str("file", absPath).Msg("watching remap file")

	// debounced is nil while no reload is pending
	var debounceTimer *time.Timer
	var debounced <-chan time.Time
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-debounced:
			debounced = nil
			if err := reload(); err != nil {
				log.Warn().Err(err).Msg("could not reload remap file, keeping previous remaps")
			}

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(debounce)
			debounced = debounceTimer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}
