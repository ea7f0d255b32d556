package cli

import (
	"io"
	"strings"
	"sync"

	"github.com/ja-he/archmaster/internal/link"
)

type fakePort struct {
	name string

	in   *io.PipeReader
	feed *io.PipeWriter

	answers chan string
}

func (p *fakePort) Read(b []byte) (int, error) { return p.in.Read(b) }

func (p *fakePort) Write(b []byte) (int, error) {
	select {
	case p.answers <- strings.TrimRight(string(b), "\r\n"):
	default:
	}
	return len(b), nil
}

func (p *fakePort) Close() error {
	return p.in.Close()
}

type fakeDriver struct {
	ports   []string
	openErr error

	mtx    sync.Mutex
	opened []*fakePort
}

func (d *fakeDriver) Ports() ([]string, error) { return d.ports, nil }

func (d *fakeDriver) Open(name string, baud int) (link.Port, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}
	r, w := io.Pipe()
	p := &fakePort{name: name, in: r, feed: w, answers: make(chan string, 16)}
	d.mtx.Lock()
	d.opened = append(d.opened, p)
	d.mtx.Unlock()
	return p, nil
}

func (d *fakeDriver) lastOpened() *fakePort {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	if len(d.opened) == 0 {
		return nil
	}
	return d.opened[len(d.opened)-1]
}
