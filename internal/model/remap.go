// Package model holds the remap model, i.e. which physical key of the device
// is to be reported as which target string in which mode.
package model

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Mode is the name of a configuration profile, e.g. "Mode1".
type Mode string

const (
	// Mode1 is the first of the two modes the device can be switched between.
	Mode1 Mode = "Mode1"
	// Mode2 is the second of the two modes the device can be switched between.
	Mode2 Mode = "Mode2"
)

// Modes returns the modes that always exist, in order.
func Modes() []Mode {
	return []Mode{Mode1, Mode2}
}

// ModeFromDigit forms the mode name for a mode digit as the device sends it
// (e.g. "1" -> "Mode1").
// It does not check whether the mode exists.
func ModeFromDigit(digit string) (Mode, error) {
	if digit == "" {
		return "", fmt.Errorf("empty mode digit")
	}
	return Mode("Mode" + digit), nil
}

// Digit returns the mode's number as the device would send it.
func (m Mode) Digit() string {
	if len(m) > len("Mode") && m[:len("Mode")] == "Mode" {
		return string(m[len("Mode"):])
	}
	return string(m)
}

// PhysicalKey identifies a key as it is read from the hardware device.
type PhysicalKey string

// GridKeys are the nine keys of the device's 3x3 grid, row by row.
//
// NOTE: the store and the device protocol do not restrict keys to this set,
// only the editing UI does.
var GridKeys = [9]PhysicalKey{
	"A", "B", "C",
	"D", "E", "F",
	"G", "H", "I",
}

// GridWidth is the number of keys per row of the grid.
const GridWidth = 3

// KeyMapping maps physical keys to their remap targets.
type KeyMapping = map[PhysicalKey]string

// ErrUnknownMode is returned for lookups in modes the store does not have.
var ErrUnknownMode = errors.New("unknown mode")

// Remaps is the in-memory store of all key mappings by mode.
//
// It is read by the device link from its receive goroutine and written by the
// UI, hence all access goes through its mutex; the underlying maps are never
// handed out.
type Remaps struct {
	mtx   sync.RWMutex
	modes map[Mode]KeyMapping
}

// NewRemaps returns a store with both modes present and empty.
func NewRemaps() *Remaps {
	r := &Remaps{modes: make(map[Mode]KeyMapping)}
	r.ensureModes()
	return r
}

// NewRemapsFrom returns a store containing a copy of the given mappings, with
// missing modes added as empty mappings.
func NewRemapsFrom(modes map[Mode]KeyMapping) *Remaps {
	r := &Remaps{}
	r.modes = copyModes(modes)
	r.ensureModes()
	return r
}

// GetRemap returns the remap target configured for the key in the mode, or
// the key itself if it is not mapped.
func (r *Remaps) GetRemap(mode Mode, key PhysicalKey) string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if target, ok := r.modes[mode][key]; ok {
		return target
	}
	return string(key)
}

// Lookup is like GetRemap but fails for modes that do not exist.
func (r *Remaps) Lookup(mode Mode, key PhysicalKey) (string, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	mapping, ok := r.modes[mode]
	if !ok {
		return "", fmt.Errorf("cannot look up '%s' (%w: '%s')", key, ErrUnknownMode, mode)
	}
	if target, ok := mapping[key]; ok {
		return target, nil
	}
	return string(key), nil
}

// IsMapped returns whether the key has a configured target in the mode.
func (r *Remaps) IsMapped(mode Mode, key PhysicalKey) bool {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	_, ok := r.modes[mode][key]
	return ok
}

// SetRemap sets the remap target for the key in the mode, overwriting any
// previous target. The value is not validated.
func (r *Remaps) SetRemap(mode Mode, key PhysicalKey, value string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	mapping, ok := r.modes[mode]
	if !ok {
		mapping = make(KeyMapping)
		r.modes[mode] = mapping
	}
	mapping[key] = value
}

// ClearRemap removes the target for the key in the mode, so that the key maps
// to itself again.
func (r *Remaps) ClearRemap(mode Mode, key PhysicalKey) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.modes[mode], key)
}

// Mapping returns a copy of the mapping of the given mode.
func (r *Remaps) Mapping(mode Mode) KeyMapping {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return copyMapping(r.modes[mode])
}

// ModeNames returns the names of all modes in the store, sorted.
func (r *Remaps) ModeNames() []Mode {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	result := make([]Mode, 0, len(r.modes))
	for m := range r.modes {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Snapshot returns a deep copy of all mappings.
func (r *Remaps) Snapshot() map[Mode]KeyMapping {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return copyModes(r.modes)
}

// Replace swaps the store's contents for a copy of the given mappings (e.g.
// after re-reading them from disk), adding missing modes.
func (r *Remaps) Replace(modes map[Mode]KeyMapping) {
	fresh := copyModes(modes)

	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.modes = fresh
	r.ensureModes()
}

// Equal returns whether both stores hold the same mappings.
func (r *Remaps) Equal(other *Remaps) bool {
	a, b := r.Snapshot(), other.Snapshot()
	if len(a) != len(b) {
		return false
	}
	for mode, mapping := range a {
		otherMapping, ok := b[mode]
		if !ok || len(mapping) != len(otherMapping) {
			return false
		}
		for k, v := range mapping {
			if ov, ok := otherMapping[k]; !ok || ov != v {
				return false
			}
		}
	}
	return true
}

// must be called with the write lock held (or before the store is shared)
func (r *Remaps) ensureModes() {
	if r.modes == nil {
		r.modes = make(map[Mode]KeyMapping)
	}
	for _, m := range Modes() {
		if r.modes[m] == nil {
			r.modes[m] = make(KeyMapping)
		}
	}
}

func copyModes(modes map[Mode]KeyMapping) map[Mode]KeyMapping {
	result := make(map[Mode]KeyMapping, len(modes))
	for m, mapping := range modes {
		result[m] = copyMapping(mapping)
	}
	return result
}

func copyMapping(mapping KeyMapping) KeyMapping {
	result := make(KeyMapping, len(mapping))
	for k, v := range mapping {
		result[k] = v
	}
	return result
}
