package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the configuration data as present in a config file at
// '${ARCHMASTER_HOME}/config.yaml'.
//
// NOTE: this is the application's settings, not the key remaps, which live in
// their own JSON file (see RemapFile).
type Config struct {
	RemapFile  string     `yaml:"remap-file"`
	Serial     Serial     `yaml:"serial"`
	Stylesheet Stylesheet `yaml:"stylesheet"`
}

// Serial holds the settings for the device link.
type Serial struct {
	// Port is the name of the port to open; if empty, the first port found is
	// opened.
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// A Stylesheet is the stylesheet contents defined in a config file.
type Stylesheet struct {
	Normal            Styling `yaml:"normal"`
	Header            Styling `yaml:"header"`
	ModeActive        Styling `yaml:"mode-active"`
	ModeInactive      Styling `yaml:"mode-inactive"`
	GridKey           Styling `yaml:"grid-key"`
	GridKeyMapped     Styling `yaml:"grid-key-mapped"`
	GridKeySelected   Styling `yaml:"grid-key-selected"`
	Editor            Styling `yaml:"editor"`
	Status            Styling `yaml:"status"`
	StatusGood        Styling `yaml:"status-good"`
	StatusBad         Styling `yaml:"status-bad"`
	Notice            Styling `yaml:"notice"`
	Help              Styling `yaml:"help"`
	LogDefault        Styling `yaml:"log-default"`
	LogTitleBox       Styling `yaml:"log-title-box"`
	LogEntryTypeError Styling `yaml:"log-entry-type-error"`
	LogEntryTypeWarn  Styling `yaml:"log-entry-type-warn"`
	LogEntryTypeInfo  Styling `yaml:"log-entry-type-info"`
	LogEntryTypeDebug Styling `yaml:"log-entry-type-debug"`
	LogEntryTypeTrace Styling `yaml:"log-entry-type-trace"`
	LogEntryLocation  Styling `yaml:"log-entry-location"`
	LogEntryTime      Styling `yaml:"log-entry-time"`
}

// A Styling is a styling as defined in a config file.
// It must contain fore- and background colors and can optionally specify font
// style (bold, italic, underlined).
type Styling struct {
	Fg    string     `yaml:"fg"`
	Bg    string     `yaml:"bg"`
	Style *FontStyle `yaml:"style"`
}

// A FontStyle can be any combination of bold, italic, and underlined.
type FontStyle struct {
	Bold       bool `yaml:"bold,omitempty"`
	Italic     bool `yaml:"italic,omitempty"`
	Underlined bool `yaml:"underlined,omitempty"`
}

// ParseConfigAugmentDefaults reads YAML settings and lays them over the
// defaults for the given theme. Anything the YAML leaves out keeps its
// default.
func ParseConfigAugmentDefaults(defaultTheme ColorschemeType, yamlData []byte) (Config, error) {
	result := Default(defaultTheme)

	var parsed Config
	if err := yaml.Unmarshal(yamlData, &parsed); err != nil {
		return result, fmt.Errorf("error unmarshaling yaml (%w)", err)
	}
	if parsed.Serial.Baud < 0 {
		return result, fmt.Errorf("invalid baud rate %d", parsed.Serial.Baud)
	}

	if parsed.RemapFile != "" {
		result.RemapFile = parsed.RemapFile
	}
	if parsed.Serial.Port != "" {
		result.Serial.Port = parsed.Serial.Port
	}
	if parsed.Serial.Baud != 0 {
		result.Serial.Baud = parsed.Serial.Baud
	}

	overrides := parsed.Stylesheet.Entries()
	for i, entry := range result.Stylesheet.Entries() {
		entry.Styling.overwriteIfDefined(*overrides[i].Styling)
	}

	return result, nil
}

// NamedStyling is a stylesheet entry along with its YAML key.
type NamedStyling struct {
	Name    string
	Styling *Styling
}

// Entries lists every styling of the stylesheet, pointing into s.
func (s *Stylesheet) Entries() []NamedStyling {
	return []NamedStyling{
		{"normal", &s.Normal},
		{"header", &s.Header},
		{"mode-active", &s.ModeActive},
		{"mode-inactive", &s.ModeInactive},
		{"grid-key", &s.GridKey},
		{"grid-key-mapped", &s.GridKeyMapped},
		{"grid-key-selected", &s.GridKeySelected},
		{"editor", &s.Editor},
		{"status", &s.Status},
		{"status-good", &s.StatusGood},
		{"status-bad", &s.StatusBad},
		{"notice", &s.Notice},
		{"help", &s.Help},
		{"log-default", &s.LogDefault},
		{"log-title-box", &s.LogTitleBox},
		{"log-entry-type-error", &s.LogEntryTypeError},
		{"log-entry-type-warn", &s.LogEntryTypeWarn},
		{"log-entry-type-info", &s.LogEntryTypeInfo},
		{"log-entry-type-debug", &s.LogEntryTypeDebug},
		{"log-entry-type-trace", &s.LogEntryTypeTrace},
		{"log-entry-location", &s.LogEntryLocation},
		{"log-entry-time", &s.LogEntryTime},
	}
}

// overwriteIfDefined takes the colors of augment if it sets both, and its
// font style if it sets one.
func (s *Styling) overwriteIfDefined(augment Styling) {
	if augment.Fg != "" && augment.Bg != "" {
		s.Fg = augment.Fg
		s.Bg = augment.Bg
	}
	if augment.Style != nil {
		style := *augment.Style
		s.Style = &style
	}
}

// A ColorschemeType can either be light or dark.
type ColorschemeType = int

const (
	_ ColorschemeType = iota
	Dark
	Light
)
