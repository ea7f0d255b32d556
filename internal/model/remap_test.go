package model_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/ja-he/archmaster/internal/model"
)

func TestGetRemap(t *testing.T) {

	t.Run("identity fallback", func(t *testing.T) {
		r := model.NewRemaps()
		for _, mode := range model.Modes() {
			for _, key := range model.GridKeys {
				if got := r.GetRemap(mode, key); got != string(key) {
					t.Errorf("unmapped key '%s' in %s resolved to '%s'", key, mode, got)
				}
			}
		}
		// not restricted to the grid
		if got := r.GetRemap(model.Mode1, "Z"); got != "Z" {
			t.Errorf("unmapped off-grid key resolved to '%s'", got)
		}
	})

	t.Run("unknown mode falls back to identity", func(t *testing.T) {
		r := model.NewRemaps()
		if got := r.GetRemap("Mode3", "A"); got != "A" {
			t.Errorf("got '%s' for unknown mode", got)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		r := model.NewRemaps()
		r.SetRemap(model.Mode1, "B", "Alt+F4")
		if got := r.GetRemap(model.Mode1, "B"); got != "Alt+F4" {
			t.Errorf("got '%s' instead of 'Alt+F4'", got)
		}
		r.SetRemap(model.Mode1, "B", "Ctrl+")
		if got := r.GetRemap(model.Mode1, "B"); got != "Ctrl+" {
			t.Errorf("overwrite failed, got '%s'", got)
		}
	})

	t.Run("empty value is settable", func(t *testing.T) {
		r := model.NewRemaps()
		r.SetRemap(model.Mode2, "C", "")
		if got := r.GetRemap(model.Mode2, "C"); got != "" {
			t.Errorf("got '%s' instead of empty value", got)
		}
		if !r.IsMapped(model.Mode2, "C") {
			t.Error("empty value not considered a mapping")
		}
	})

	t.Run("mode isolation", func(t *testing.T) {
		r := model.NewRemaps()
		r.SetRemap(model.Mode1, "A", "X")
		if got := r.GetRemap(model.Mode2, "A"); got != "A" {
			t.Errorf("Mode1 mapping leaked into Mode2 (got '%s')", got)
		}
		r.SetRemap(model.Mode2, "A", "Y")
		if got := r.GetRemap(model.Mode1, "A"); got != "X" {
			t.Errorf("Mode2 mapping overwrote Mode1 (got '%s')", got)
		}
	})

	t.Run("clear", func(t *testing.T) {
		r := model.NewRemaps()
		r.SetRemap(model.Mode1, "D", "Shift+")
		r.ClearRemap(model.Mode1, "D")
		if got := r.GetRemap(model.Mode1, "D"); got != "D" {
			t.Errorf("cleared key resolved to '%s'", got)
		}
		// no-op on unknown mode
		r.ClearRemap("Mode9", "D")
	})
}

func TestLookup(t *testing.T) {
	r := model.NewRemaps()
	r.SetRemap(model.Mode1, "B", "Alt+F4")

	got, err := r.Lookup(model.Mode1, "B")
	if err != nil || got != "Alt+F4" {
		t.Errorf("unexpected result ('%s', %v)", got, err)
	}
	got, err = r.Lookup(model.Mode1, "Z")
	if err != nil || got != "Z" {
		t.Errorf("unexpected result for unmapped key ('%s', %v)", got, err)
	}
	_, err = r.Lookup("Mode3", "A")
	if !errors.Is(err, model.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestModes(t *testing.T) {

	t.Run("ModeFromDigit", func(t *testing.T) {
		m, err := model.ModeFromDigit("2")
		if err != nil || m != model.Mode2 {
			t.Errorf("unexpected ('%s', %v)", m, err)
		}
		if _, err := model.ModeFromDigit(""); err == nil {
			t.Error("expected error for empty digit")
		}
	})

	t.Run("Digit", func(t *testing.T) {
		if model.Mode1.Digit() != "1" {
			t.Error("wrong digit:", model.Mode1.Digit())
		}
	})

	t.Run("both modes always present", func(t *testing.T) {
		r := model.NewRemapsFrom(map[model.Mode]model.KeyMapping{model.Mode1: {"A": "B"}})
		names := r.ModeNames()
		if len(names) != 2 || names[0] != model.Mode1 || names[1] != model.Mode2 {
			t.Error("unexpected modes:", names)
		}
		r = model.NewRemapsFrom(nil)
		if len(r.ModeNames()) != 2 {
			t.Error("unexpected modes:", r.ModeNames())
		}
	})

	t.Run("Replace heals missing modes", func(t *testing.T) {
		r := model.NewRemaps()
		r.Replace(map[model.Mode]model.KeyMapping{model.Mode2: {"E": "F"}})
		if len(r.Mapping(model.Mode1)) != 0 {
			t.Error("Mode1 not empty after replace")
		}
		if r.GetRemap(model.Mode2, "E") != "F" {
			t.Error("replace lost Mode2 mapping")
		}
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	r := model.NewRemaps()
	r.SetRemap(model.Mode1, "A", "X")

	snap := r.Snapshot()
	snap[model.Mode1]["A"] = "changed"
	mapping := r.Mapping(model.Mode1)
	mapping["A"] = "changed too"

	if r.GetRemap(model.Mode1, "A") != "X" {
		t.Error("store was modified through a copy")
	}
}

func TestEqual(t *testing.T) {
	a := model.NewRemaps()
	b := model.NewRemaps()
	if !a.Equal(b) {
		t.Error("empty stores not equal")
	}
	a.SetRemap(model.Mode1, "A", "X")
	if a.Equal(b) {
		t.Error("differing stores equal")
	}
	b.SetRemap(model.Mode1, "A", "X")
	if !a.Equal(b) {
		t.Error("same stores not equal")
	}
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	r := model.NewRemaps()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_, _ = r.Lookup(model.Mode1, "A")
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		r.SetRemap(model.Mode1, "A", "Ctrl+")
	}
	wg.Wait()
	if r.GetRemap(model.Mode1, "A") != "Ctrl+" {
		t.Error("lost write")
	}
}
