// Package storage persists the remap model as a JSON file of the form
//
//	{
//	  "Mode1": { "A": "Ctrl+", ... },
//	  "Mode2": { ... }
//	}
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/archmaster/internal/model"
)

// DefaultPath is where the remap file lives unless configured otherwise,
// relative to the working directory.
const DefaultPath = "config.json"

// Decode reads a remap document from the given reader.
// Modes missing from the document are added as empty mappings; an empty or
// `null` document yields two empty modes. Anything but whitespace after the
// document is an error.
func Decode(r io.Reader) (*model.Remaps, error) {
	raw := map[model.Mode]map[model.PhysicalKey]string{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewRemaps(), nil
		}
		return nil, fmt.Errorf("could not decode remap document (%w)", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after remap document at offset %d", dec.InputOffset())
	}
	return model.NewRemapsFrom(raw), nil
}

// Encode writes the full remap document for the given store in a stable,
// indented format.
func Encode(w io.Writer, remaps *model.Remaps) error {
	snapshot := remaps.Snapshot()
	for _, m := range model.Modes() {
		if snapshot[m] == nil {
			snapshot[m] = model.KeyMapping{}
		}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode remaps (%w)", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

// Load reads the remap file at the given path.
// If there is no such file, it returns a store with two empty modes.
// A file that cannot be parsed is an error; the caller decides what to do
// about it.
func Load(path string) (*model.Remaps, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info().Str("file", path).Msg("no remap file yet, starting with empty mappings")
			return model.NewRemaps(), nil
		}
		return nil, fmt.Errorf("could not read remap file '%s' (%w)", path, err)
	}

	remaps, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("remap file '%s' is invalid (%w)", path, err)
	}
	return remaps, nil
}

// Save overwrites the file at the given path with the full remap document.
//
// NOTE: the file is written in place; a failure mid-write can leave it
// truncated.
func Save(path string, remaps *model.Remaps) error {
	var buf bytes.Buffer
	if err := Encode(&buf, remaps); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("could not open file '%s' (%w)", path, err)
	}
	_, writeErr := f.Write(buf.Bytes())
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("could not write file '%s' (%w)", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("could not close file '%s' (%w)", path, closeErr)
	}
	return nil
}

// FileStore ties a remap model to the file it is loaded from and saved to.
type FileStore struct {
	Path string

	// serializes saves and reloads against each other
	fileMtx sync.Mutex

	remaps *model.Remaps
}

// OpenFileStore loads the remap file at the given path into a new FileStore.
func OpenFileStore(path string) (*FileStore, error) {
	remaps, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{Path: path, remaps: remaps}, nil
}

// Remaps returns the store's model.
// The model is the same for the lifetime of the FileStore, reloads replace
// its contents.
func (s *FileStore) Remaps() *model.Remaps {
	return s.remaps
}

// Save writes the model to the store's file.
func (s *FileStore) Save() error {
	s.fileMtx.Lock()
	defer s.fileMtx.Unlock()

	err := Save(s.Path, s.remaps)
	if err != nil {
		return err
	}
	log.Info().Str("file", s.Path).Msg("saved remaps")
	return nil
}

// Reload re-reads the store's file and replaces the model's contents with it.
// If the file cannot be read or parsed, the model is left untouched.
func (s *FileStore) Reload() error {
	s.fileMtx.Lock()
	defer s.fileMtx.Unlock()

	fresh, err := Load(s.Path)
	if err != nil {
		return err
	}
	s.remaps.Replace(fresh.Snapshot())
	log.Info().Str("file", s.Path).Msg("reloaded remaps")
	return nil
}
