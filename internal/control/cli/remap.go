package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ja-he/archmaster/internal/model"
	"github.com/ja-he/archmaster/internal/storage"
)

// ShowCommand prints the resolved remap of every grid key of both modes.
type ShowCommand struct {
	RemapFileOption
}

// Execute runs the show command.
func (command *ShowCommand) Execute(args []string) error {
	store, _, err := openStore(themeFromString(""), command.RemapFileOption)
	if err != nil {
		return err
	}
	return showRemaps(os.Stdout, store.Remaps())
}

// GetCommand prints the resolved remap of a single key.
type GetCommand struct {
	RemapFileOption

	Args struct {
		Mode string `positional-arg-name:"<mode-digit>" description:"mode number, e.g. 1"`
		Key  string `positional-arg-name:"<key>" description:"physical key, e.g. B"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the get command.
func (command *GetCommand) Execute(args []string) error {
	store, _, err := openStore(themeFromString(""), command.RemapFileOption)
	if err != nil {
		return err
	}
	target, err := getRemap(store.Remaps(), command.Args.Mode, command.Args.Key)
	if err != nil {
		return err
	}
	fmt.Println(target)
	return nil
}

// SetCommand sets or clears the remap of a single key and saves the file.
type SetCommand struct {
	RemapFileOption

	Clear bool `short:"c" long:"clear" description:"Clear the key's remap instead of setting one"`

	Args struct {
		Mode  string `positional-arg-name:"<mode-digit>" description:"mode number, e.g. 1"`
		Key   string `positional-arg-name:"<key>" description:"physical key, e.g. B"`
		Value string `positional-arg-name:"<value>" description:"target, e.g. 'Alt+F4' (omit with --clear)"`
	} `positional-args:"yes"`
}

// Execute runs the set command.
func (command *SetCommand) Execute(args []string) error {
	store, _, err := openStore(themeFromString(""), command.RemapFileOption)
	if err != nil {
		return err
	}
	return setRemap(store, command.Args.Mode, command.Args.Key, command.Args.Value, command.Clear)
}

func showRemaps(w io.Writer, remaps *model.Remaps) error {
	for _, mode := range model.Modes() {
		if _, err := fmt.Fprintf(w, "%s:\n", mode); err != nil {
			return err
		}
		for _, key := range model.GridKeys {
			marker := " "
			if remaps.IsMapped(mode, key) {
				marker = "*"
			}
			if _, err := fmt.Fprintf(w, "  %s %s -> %s\n", marker, key, remaps.GetRemap(mode, key)); err != nil {
				return err
			}
		}
	}
	return nil
}

func modeAndKey(digit, key string) (model.Mode, model.PhysicalKey, error) {
	mode, err := model.ModeFromDigit(digit)
	if err != nil {
		return "", "", err
	}
	if key == "" {
		return "", "", fmt.Errorf("empty key")
	}
	return mode, model.PhysicalKey(key), nil
}

func getRemap(remaps *model.Remaps, digit, key string) (string, error) {
	mode, physicalKey, err := modeAndKey(digit, key)
	if err != nil {
		return "", err
	}
	return remaps.Lookup(mode, physicalKey)
}

func setRemap(store *storage.FileStore, digit, key, value string, clear bool) error {
	mode, physicalKey, err := modeAndKey(digit, key)
	if err != nil {
		return err
	}
	remaps := store.Remaps()
	if _, err := remaps.Lookup(mode, physicalKey); err != nil {
		return err
	}

	switch {
	case clear:
		remaps.ClearRemap(mode, physicalKey)
	case value == "":
		return fmt.Errorf("no value given for %s/%s (use --clear to remove a remap)", mode, physicalKey)
	default:
		remaps.SetRemap(mode, physicalKey, value)
	}

	return store.Save()
}
