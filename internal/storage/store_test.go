package storage_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ja-he/archmaster/internal/model"
	"github.com/ja-he/archmaster/internal/storage"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal("could not prepare file:", err)
	}
	return path
}

func TestLoad(t *testing.T) {

	t.Run("no file yields both modes empty", func(t *testing.T) {
		r, err := storage.Load(filepath.Join(t.TempDir(), "config.json"))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if !r.Equal(model.NewRemaps()) {
			t.Error("expected empty default store, got", r.Snapshot())
		}
	})

	t.Run("full file", func(t *testing.T) {
		path := writeFile(t, `{"Mode1": {"A": "Ctrl+", "B": "Alt+F4"}, "Mode2": {"A": "Shift+"}}`)
		r, err := storage.Load(path)
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if r.GetRemap(model.Mode1, "B") != "Alt+F4" || r.GetRemap(model.Mode2, "A") != "Shift+" {
			t.Error("unexpected contents:", r.Snapshot())
		}
	})

	t.Run("only Mode1 heals Mode2", func(t *testing.T) {
		path := writeFile(t, `{"Mode1": {"A": "X"}}`)
		r, err := storage.Load(path)
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		mapping := r.Snapshot()
		m2, ok := mapping[model.Mode2]
		if !ok || len(m2) != 0 {
			t.Error("Mode2 missing or not empty:", mapping)
		}
		if r.GetRemap(model.Mode1, "A") != "X" {
			t.Error("Mode1 lost")
		}
	})

	t.Run("neither mode heals both", func(t *testing.T) {
		for _, content := range []string{`{}`, `null`, `{"Mode1": null}`, ``, " \n\t"} {
			r, err := storage.Load(writeFile(t, content))
			if err != nil {
				t.Fatalf("unexpected error for '%s': %s", content, err)
			}
			if !r.Equal(model.NewRemaps()) {
				t.Errorf("'%s' did not yield two empty modes: %v", content, r.Snapshot())
			}
		}
	})

	t.Run("extra modes are kept", func(t *testing.T) {
		r, err := storage.Load(writeFile(t, `{"Mode3": {"A": "B"}}`))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if len(r.ModeNames()) != 3 || r.GetRemap("Mode3", "A") != "B" {
			t.Error("extra mode lost:", r.Snapshot())
		}
	})

	t.Run("corrupt file fails", func(t *testing.T) {
		for _, content := range []string{`{"Mode1": `, `[]`, `{"Mode1": {"A": 1}}`} {
			_, err := storage.Load(writeFile(t, content))
			if err == nil {
				t.Errorf("expected error for '%s'", content)
			}
		}
	})

	t.Run("trailing garbage fails", func(t *testing.T) {
		for _, content := range []string{
			`{"Mode1": {"A": "x"}} }garbage{`,
			`{"Mode1": {"A": "x"}} {"Mode2": {}}`,
			`null null`,
		} {
			_, err := storage.Load(writeFile(t, content))
			if err == nil {
				t.Errorf("expected error for '%s'", content)
			}
		}
	})

	t.Run("trailing whitespace is fine", func(t *testing.T) {
		r, err := storage.Load(writeFile(t, "{\"Mode1\": {\"A\": \"x\"}}\n\n  "))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if r.GetRemap(model.Mode1, "A") != "x" {
			t.Error("unexpected contents:", r.Snapshot())
		}
	})
}

func TestRoundTrip(t *testing.T) {
	cases := map[string]*model.Remaps{
		"two empty": model.NewRemaps(),
		"populated": func() *model.Remaps {
			r := model.NewRemaps()
			r.SetRemap(model.Mode1, "A", "Ctrl+")
			r.SetRemap(model.Mode1, "I", "")
			r.SetRemap(model.Mode2, "Q", "Alt+C")
			return r
		}(),
	}

	for name, store := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := storage.Save(path, store); err != nil {
				t.Fatal("save failed:", err)
			}
			loaded, err := storage.Load(path)
			if err != nil {
				t.Fatal("load failed:", err)
			}
			if !loaded.Equal(store) {
				t.Errorf("round trip changed store: %v != %v", loaded.Snapshot(), store.Snapshot())
			}
		})
	}
}

func TestEncodeFormat(t *testing.T) {
	r := model.NewRemaps()
	r.SetRemap(model.Mode1, "B", "Alt+F4")
	r.SetRemap(model.Mode1, "A", "Ctrl+")

	var buf bytes.Buffer
	if err := storage.Encode(&buf, r); err != nil {
		t.Fatal(err)
	}
	expected := `{
  "Mode1": {
    "A": "Ctrl+",
    "B": "Alt+F4"
  },
  "Mode2": {}
}
`
	if buf.String() != expected {
		t.Errorf("unexpected encoding:\n%s", buf.String())
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := writeFile(t, strings.Repeat("x", 4096))
	if err := storage.Save(path, model.NewRemaps()); err != nil {
		t.Fatal(err)
	}
	if _, err := storage.Load(path); err != nil {
		t.Error("file not fully overwritten:", err)
	}
}

func TestSaveError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "config.json")
	if err := storage.Save(path, model.NewRemaps()); err == nil {
		t.Error("expected error saving into a missing directory")
	}
}

func TestFileStore(t *testing.T) {
	path := writeFile(t, `{"Mode1": {"A": "X"}}`)
	s, err := storage.OpenFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	remaps := s.Remaps()

	remaps.SetRemap(model.Mode2, "B", "Y")
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(`{"Mode2": {"C": "Z"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if remaps.GetRemap(model.Mode2, "C") != "Z" || remaps.GetRemap(model.Mode1, "A") != "A" {
		t.Error("reload did not replace contents:", remaps.Snapshot())
	}

	if err := os.WriteFile(path, []byte(`{broken`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err == nil {
		t.Error("expected reload of corrupt file to fail")
	}
	if remaps.GetRemap(model.Mode2, "C") != "Z" {
		t.Error("failed reload modified the model")
	}
}
