package link

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ja-he/archmaster/internal/model"
)

// QueryPrefix starts every line the device sends that asks for a remap.
const QueryPrefix = "KEY:"

var (
	// ErrNotAQuery is returned for lines that do not start with QueryPrefix.
	// Such lines are ignored.
	ErrNotAQuery = errors.New("not a key query")
	// ErrMalformedQuery is returned for lines that start with QueryPrefix but
	// lack fields.
	ErrMalformedQuery = errors.New("malformed key query")
)

// Query is a device's request for the remap target of a physical key.
type Query struct {
	Mode model.Mode
	Key  model.PhysicalKey
}

// String returns the query in its wire format (without line ending).
func (q Query) String() string {
	return QueryPrefix + q.Mode.Digit() + ":" + string(q.Key)
}

// ParseQuery parses a line of the form `KEY:<mode-digit>:<physical-key>`.
// Surrounding whitespace (e.g. a trailing '\r') is ignored, as are fields
// after the key.
func ParseQuery(line string) (Query, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, QueryPrefix) {
		return Query{}, ErrNotAQuery
	}

	fields := strings.Split(line, ":")
	if len(fields) < 3 {
		return Query{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformedQuery, len(fields))
	}

	mode, err := model.ModeFromDigit(fields[1])
	if err != nil {
		return Query{}, fmt.Errorf("%w: %s", ErrMalformedQuery, err.Error())
	}

	return Query{Mode: mode, Key: model.PhysicalKey(fields[2])}, nil
}

// Resolver resolves a physical key in a mode to its remap target.
// Implemented by *model.Remaps.
type Resolver interface {
	Lookup(mode model.Mode, key model.PhysicalKey) (string, error)
}

// Answer computes the response line (without line ending) for an inbound
// line.
// Any error means that the line is to be dropped without a response.
func Answer(resolver Resolver, line string) (string, error) {
	query, err := ParseQuery(line)
	if err != nil {
		return "", err
	}
	target, err := resolver.Lookup(query.Mode, query.Key)
	if err != nil {
		return "", err
	}
	return target, nil
}
