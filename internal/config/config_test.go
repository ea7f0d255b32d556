package config_test

import (
	"testing"

	"github.com/ja-he/archmaster/internal/config"
)

func TestParseConfigAugmentDefaults(t *testing.T) {

	t.Run("empty data yields defaults", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Dark, []byte{})
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if c.RemapFile != "config.json" {
			t.Error("unexpected default remap file:", c.RemapFile)
		}
		if c.Serial.Baud != 9600 || c.Serial.Port != "" {
			t.Error("unexpected default serial settings:", c.Serial)
		}
		if def := config.Default(config.Dark).Stylesheet.Normal; c.Stylesheet.Normal.Fg != def.Fg || c.Stylesheet.Normal.Bg != def.Bg {
			t.Error("stylesheet differs from default")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		data := []byte(`
remap-file: /tmp/pad.json
serial:
  port: /dev/ttyUSB0
  baud: 115200
stylesheet:
  status:
    fg: "#000000"
    bg: "#ffffff"
    style:
      bold: true
`)
		c, err := config.ParseConfigAugmentDefaults(config.Light, data)
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if c.RemapFile != "/tmp/pad.json" {
			t.Error("remap file not overridden:", c.RemapFile)
		}
		if c.Serial.Port != "/dev/ttyUSB0" || c.Serial.Baud != 115200 {
			t.Error("serial not overridden:", c.Serial)
		}
		if c.Stylesheet.Status.Fg != "#000000" || !c.Stylesheet.Status.Style.Bold {
			t.Error("status styling not overridden:", c.Stylesheet.Status)
		}
		if def := config.Default(config.Light).Stylesheet.Help; c.Stylesheet.Help.Fg != def.Fg || c.Stylesheet.Help.Bg != def.Bg {
			t.Error("untouched styling changed")
		}
	})

	t.Run("partial colors are ignored", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Dark, []byte("stylesheet:\n  help:\n    fg: \"#000000\"\n"))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if c.Stylesheet.Help.Fg == "#000000" {
			t.Error("fg applied without bg")
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, data := range []string{"serial: [", "serial:\n  baud: -1\n", "serial:\n  baud: fast\n"} {
			if _, err := config.ParseConfigAugmentDefaults(config.Dark, []byte(data)); err == nil {
				t.Errorf("expected error for %q", data)
			}
		}
	})
}

func TestStylesheetEntries(t *testing.T) {
	s := config.Default(config.Dark).Stylesheet
	seen := map[string]bool{}
	for _, entry := range s.Entries() {
		if seen[entry.Name] {
			t.Errorf("duplicate entry '%s'", entry.Name)
		}
		seen[entry.Name] = true
		if entry.Styling.Fg == "" || entry.Styling.Bg == "" {
			t.Errorf("default for '%s' has no colors", entry.Name)
		}
	}

	s.Entries()[0].Styling.Fg = "#123456"
	if s.Normal.Fg != "#123456" {
		t.Error("entries do not point into the stylesheet")
	}
}
