package styling

import (
	"fmt"

	"github.com/ja-he/archmaster/internal/config"
)

// Stylesheet represents all styles used by the application for rendering.
type Stylesheet struct {
	Normal DrawStyling
	Header DrawStyling

	ModeActive   DrawStyling
	ModeInactive DrawStyling

	GridKey         DrawStyling
	GridKeyMapped   DrawStyling
	GridKeySelected DrawStyling

	Editor DrawStyling

	Status     DrawStyling
	StatusGood DrawStyling
	StatusBad  DrawStyling

	Notice DrawStyling
	Help   DrawStyling

	LogDefault  DrawStyling
	LogTitleBox DrawStyling

	LogEntryTypeError DrawStyling
	LogEntryTypeWarn  DrawStyling
	LogEntryTypeInfo  DrawStyling
	LogEntryTypeDebug DrawStyling
	LogEntryTypeTrace DrawStyling

	LogEntryLocation DrawStyling
	LogEntryTime     DrawStyling
}

// StyleFromConfig converts a config styling to a DrawStyling.
func StyleFromConfig(cfg config.Styling) (DrawStyling, error) {
	style, err := StyleFromHex(cfg.Fg, cfg.Bg)
	if err != nil {
		return nil, err
	}
	if cfg.Style != nil {
		style.bold = cfg.Style.Bold
		style.italic = cfg.Style.Italic
		style.underlined = cfg.Style.Underlined
	}
	return style, nil
}

// NewStylesheetFromConfig constructs a new stylesheet from a given config
// stylesheet.
// Any invalid color in the config makes this fail, naming the entry.
func NewStylesheetFromConfig(cfg config.Stylesheet) (*Stylesheet, error) {
	stylesheet := Stylesheet{}

	entries := []struct {
		name   string
		target *DrawStyling
		source config.Styling
	}{
		{"normal", &stylesheet.Normal, cfg.Normal},
		{"header", &stylesheet.Header, cfg.Header},
		{"mode-active", &stylesheet.ModeActive, cfg.ModeActive},
		{"mode-inactive", &stylesheet.ModeInactive, cfg.ModeInactive},
		{"grid-key", &stylesheet.GridKey, cfg.GridKey},
		{"grid-key-mapped", &stylesheet.GridKeyMapped, cfg.GridKeyMapped},
		{"grid-key-selected", &stylesheet.GridKeySelected, cfg.GridKeySelected},
		{"editor", &stylesheet.Editor, cfg.Editor},
		{"status", &stylesheet.Status, cfg.Status},
		{"status-good", &stylesheet.StatusGood, cfg.StatusGood},
		{"status-bad", &stylesheet.StatusBad, cfg.StatusBad},
		{"notice", &stylesheet.Notice, cfg.Notice},
		{"help", &stylesheet.Help, cfg.Help},
		{"log-default", &stylesheet.LogDefault, cfg.LogDefault},
		{"log-title-box", &stylesheet.LogTitleBox, cfg.LogTitleBox},
		{"log-entry-type-error", &stylesheet.LogEntryTypeError, cfg.LogEntryTypeError},
		{"log-entry-type-warn", &stylesheet.LogEntryTypeWarn, cfg.LogEntryTypeWarn},
		{"log-entry-type-info", &stylesheet.LogEntryTypeInfo, cfg.LogEntryTypeInfo},
		{"log-entry-type-debug", &stylesheet.LogEntryTypeDebug, cfg.LogEntryTypeDebug},
		{"log-entry-type-trace", &stylesheet.LogEntryTypeTrace, cfg.LogEntryTypeTrace},
		{"log-entry-location", &stylesheet.LogEntryLocation, cfg.LogEntryLocation},
		{"log-entry-time", &stylesheet.LogEntryTime, cfg.LogEntryTime},
	}

	for _, entry := range entries {
		style, err := StyleFromConfig(entry.source)
		if err != nil {
			return nil, fmt.Errorf("invalid stylesheet entry '%s' (%w)", entry.name, err)
		}
		*entry.target = style
	}

	return &stylesheet, nil
}
