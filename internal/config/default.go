package config

import (
	"github.com/ja-he/archmaster/internal/link"
	"github.com/ja-he/archmaster/internal/storage"
)

// Default returns the default configuration for the given colorscheme type
// (light or dark).
func Default(colorschemeType ColorschemeType) Config {
	return Config{
		RemapFile: storage.DefaultPath,
		Serial: Serial{
			Port: "",
			Baud: link.DefaultBaudRate,
		},
		Stylesheet: defaultStylesheet(colorschemeType),
	}
}

func defaultStylesheet(colorschemeType ColorschemeType) Stylesheet {
	if colorschemeType == Light {
		return Stylesheet{
			Normal:            Styling{Fg: "#3d8d7a", Bg: "#fbffe4", Style: &FontStyle{}},
			Header:            Styling{Fg: "#fbffe4", Bg: "#3d8d7a", Style: &FontStyle{Bold: true}},
			ModeActive:        Styling{Fg: "#fbffe4", Bg: "#3d8d7a", Style: &FontStyle{Bold: true}},
			ModeInactive:      Styling{Fg: "#3d8d7a", Bg: "#a3d1c6", Style: &FontStyle{}},
			GridKey:           Styling{Fg: "#3d8d7a", Bg: "#f0f5d8", Style: &FontStyle{}},
			GridKeyMapped:     Styling{Fg: "#1f5a4b", Bg: "#b3d8a8", Style: &FontStyle{}},
			GridKeySelected:   Styling{Fg: "#fbffe4", Bg: "#3d8d7a", Style: &FontStyle{Bold: true}},
			Editor:            Styling{Fg: "#1f5a4b", Bg: "#a3d1c6", Style: &FontStyle{}},
			Status:            Styling{Fg: "#3d8d7a", Bg: "#f0f5d8", Style: &FontStyle{Italic: true}},
			StatusGood:        Styling{Fg: "#1f5a4b", Bg: "#b3d8a8", Style: &FontStyle{Italic: true}},
			StatusBad:         Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Italic: true}},
			Notice:            Styling{Fg: "#882222", Bg: "#fff0cc", Style: &FontStyle{Bold: true}},
			Help:              Styling{Fg: "#1f5a4b", Bg: "#f0f5d8", Style: &FontStyle{}},
			LogDefault:        Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
			LogTitleBox:       Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{Bold: true}},
			LogEntryTypeError: Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Bold: true}},
			LogEntryTypeWarn:  Styling{Fg: "#cc8f00", Bg: "#fff0cc", Style: &FontStyle{Bold: true}},
			LogEntryTypeInfo:  Styling{Fg: "#3a751a", Bg: "#c2edab", Style: &FontStyle{Bold: true}},
			LogEntryTypeDebug: Styling{Fg: "#0065a3", Bg: "#ccebff", Style: &FontStyle{Bold: true}},
			LogEntryTypeTrace: Styling{Fg: "#a3008b", Bg: "#ffccf7", Style: &FontStyle{Bold: true}},
			LogEntryLocation:  Styling{Fg: "#cccccc", Bg: "#ffffff", Style: &FontStyle{}},
			LogEntryTime:      Styling{Fg: "#a0a0a0", Bg: "#ffffff", Style: &FontStyle{}},
		}
	}
	return Stylesheet{
		Normal:            Styling{Fg: "#fbffe4", Bg: "#3d8d7a", Style: &FontStyle{}},
		Header:            Styling{Fg: "#3d8d7a", Bg: "#b3d8a8", Style: &FontStyle{Bold: true}},
		ModeActive:        Styling{Fg: "#3d8d7a", Bg: "#a3d1c6", Style: &FontStyle{Bold: true}},
		ModeInactive:      Styling{Fg: "#fbffe4", Bg: "#2f6e5f", Style: &FontStyle{}},
		GridKey:           Styling{Fg: "#3d8d7a", Bg: "#fbffe4", Style: &FontStyle{}},
		GridKeyMapped:     Styling{Fg: "#3d8d7a", Bg: "#b3d8a8", Style: &FontStyle{}},
		GridKeySelected:   Styling{Fg: "#3d8d7a", Bg: "#a3d1c6", Style: &FontStyle{Bold: true}},
		Editor:            Styling{Fg: "#3d8d7a", Bg: "#fbffe4", Style: &FontStyle{}},
		Status:            Styling{Fg: "#fbffe4", Bg: "#3d8d7a", Style: &FontStyle{Italic: true}},
		StatusGood:        Styling{Fg: "#b3d8a8", Bg: "#3d8d7a", Style: &FontStyle{Italic: true}},
		StatusBad:         Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Italic: true}},
		Notice:            Styling{Fg: "#fff0cc", Bg: "#882222", Style: &FontStyle{Bold: true}},
		Help:              Styling{Fg: "#fbffe4", Bg: "#2f6e5f", Style: &FontStyle{}},
		LogDefault:        Styling{Fg: "#ffffff", Bg: "#000000", Style: &FontStyle{}},
		LogTitleBox:       Styling{Fg: "#f0f0f0", Bg: "#000000", Style: &FontStyle{Bold: true}},
		LogEntryTypeError: Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Bold: true}},
		LogEntryTypeWarn:  Styling{Fg: "#fff0cc", Bg: "#cc8f00", Style: &FontStyle{Bold: true}},
		LogEntryTypeInfo:  Styling{Fg: "#c2edab", Bg: "#3a751a", Style: &FontStyle{Bold: true}},
		LogEntryTypeDebug: Styling{Fg: "#ccebff", Bg: "#0065a3", Style: &FontStyle{Bold: true}},
		LogEntryTypeTrace: Styling{Fg: "#ffccf7", Bg: "#a3008b", Style: &FontStyle{Bold: true}},
		LogEntryLocation:  Styling{Fg: "#c0c0c0", Bg: "#000000", Style: &FontStyle{}},
		LogEntryTime:      Styling{Fg: "#808080", Bg: "#000000", Style: &FontStyle{}},
	}
}
