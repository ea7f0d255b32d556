package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/archmaster/internal/config"
	"github.com/ja-he/archmaster/internal/control"
	"github.com/ja-he/archmaster/internal/storage"
)

// RemapFileOption lets a command override the remap file from the settings.
type RemapFileOption struct {
	RemapFile string `short:"f" long:"remap-file" description:"Specify the remap file (default from config.yaml, else 'config.json')" value-name:"<file>"`
}

// SerialOption lets a command override the serial settings.
type SerialOption struct {
	Port string `long:"port" description:"Serial port to open (default: first port found)" value-name:"<port>"`
	Baud int    `long:"baud" description:"Baud rate (default from config.yaml, else 9600)" value-name:"<rate>"`
}

// baseDirPath returns the directory holding config.yaml, which is
// '$ARCHMASTER_HOME' if set and '$HOME/.config/archmaster' otherwise.
func baseDirPath() string {
	archmasterHome := os.Getenv("ARCHMASTER_HOME")
	if archmasterHome == "" {
		return filepath.Join(os.Getenv("HOME"), ".config", "archmaster")
	}
	return strings.TrimRight(archmasterHome, "/")
}

func themeFromString(theme string) config.ColorschemeType {
	switch theme {
	case "light":
		return config.Light
	case "dark":
		return config.Dark
	default:
		return config.Dark
	}
}

// loadSettings reads config.yaml from the base directory.
// A missing settings file is not an error, the defaults are used; an
// unparseable one is.
func loadSettings(theme config.ColorschemeType) (control.EnvData, config.Config, error) {
	envData := control.EnvData{BaseDirPath: baseDirPath()}

	settingsPath := filepath.Join(envData.BaseDirPath, "config.yaml")
	yamlData, err := os.ReadFile(settingsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("file", settingsPath).Msg("no settings file, using defaults")
		} else {
			log.Warn().Err(err).Str("file", settingsPath).Msg("can't read settings file, using defaults")
		}
		yamlData = make([]byte, 0)
	}
	configData, err := config.ParseConfigAugmentDefaults(theme, yamlData)
	if err != nil {
		return envData, configData, fmt.Errorf("can't parse settings file '%s' (%w)", settingsPath, err)
	}

	return envData, configData, nil
}

// remapFilePath resolves the remap file path: the flag wins over the
// settings, and relative paths are taken as is, i.e. relative to the working
// directory.
func remapFilePath(option RemapFileOption, configData config.Config) string {
	if option.RemapFile != "" {
		return option.RemapFile
	}
	if configData.RemapFile != "" {
		return configData.RemapFile
	}
	return storage.DefaultPath
}

func serialSettings(option SerialOption, configData config.Config) config.Serial {
	result := configData.Serial
	if option.Port != "" {
		result.Port = option.Port
	}
	if option.Baud > 0 {
		result.Baud = option.Baud
	}
	return result
}

// openStore loads the settings and opens the remap store they point to.
func openStore(theme config.ColorschemeType, option RemapFileOption) (*storage.FileStore, config.Config, error) {
	_, configData, err := loadSettings(theme)
	if err != nil {
		return nil, configData, err
	}
	store, err := storage.OpenFileStore(remapFilePath(option, configData))
	if err != nil {
		return nil, configData, err
	}
	return store, configData, nil
}
