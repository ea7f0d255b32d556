package panes

import (
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/ja-he/archmaster/internal/input"
	"github.com/ja-he/archmaster/internal/styling"
	"github.com/ja-he/archmaster/internal/ui"
)

// A HelpPane is a pane that displays a help popup, listing the key mappings
// and their actions.
type HelpPane struct {
	ui.LeafPane

	Content input.Help
}

// Draw draws the help popup.
func (p *HelpPane) Draw() {
	if !p.IsVisible() {
		return
	}

	x, y, w, h := p.Dimensions()
	p.Renderer.DrawBox(x, y, w, h, p.Stylesheet.Help)

	const border = 1
	const maxKeyWidth = 12
	const pad = 1
	keyOffset := x + border
	descriptionOffset := keyOffset + maxKeyWidth + pad

	content := make([]mappingAndAction, 0, len(p.Content))
	for mapping, action := range p.Content {
		content = append(content, mappingAndAction{mapping: mapping, action: action})
	}
	sort.Slice(content, func(i, j int) bool {
		if content[i].action == content[j].action {
			return content[i].mapping < content[j].mapping
		}
		return content[i].action < content[j].action
	})

	for i, entry := range content {
		row := y + border + i
		if row >= y+h-border {
			break
		}
		keyLen := runewidth.StringWidth(entry.mapping)
		p.Renderer.DrawText(keyOffset+maxKeyWidth-keyLen, row, keyLen, 1, p.Stylesheet.Help.Emphasized().Bolded(), entry.mapping)
		p.Renderer.DrawText(descriptionOffset, row, w-(descriptionOffset-x)-border, 1, p.Stylesheet.Help.Italicized(), entry.action)
	}
}

type mappingAndAction = struct {
	mapping string
	action  string
}

// NewHelpPane constructs and returns a new HelpPane.
func NewHelpPane(
	renderer ui.ConstrainedRenderer,
	dimensions func() (x, y, w, h int),
	stylesheet styling.Stylesheet,
	condition func() bool,
	inputProcessor input.SimpleInputProcessor,
) *HelpPane {
	return &HelpPane{
		LeafPane: ui.LeafPane{
			ID:             ui.GeneratePaneID(),
			InputProcessor: inputProcessor,
			Visible:        condition,
			Renderer:       renderer,
			Dims:           dimensions,
			Stylesheet:     stylesheet,
		},
	}
}
