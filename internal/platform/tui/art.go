package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// artwork is the terminal rendering of one dessert image reference.
type artwork struct {
	lines []string
	color lipgloss.Color
}

// desserts maps image references to their artwork. Unknown references fall
// back to a labelled placeholder so custom tier tables still render.
var desserts = map[string]artwork{
	"cupcake": {color: "213", lines: []string{
		`     ,   `,
		`   _(_)_ `,
		`  (_____)`,
		` (_______)`,
		`  \|||||/ `,
		`   \|||/  `,
	}},
	"donut": {color: "205", lines: []string{
		`   .-"""-.   `,
		`  / .===. \  `,
		` | /     \ | `,
		` | \     / | `,
		`  \ '==='  / `,
		`   '-...-'   `,
	}},
	"eclair": {color: "130", lines: []string{
		`  _______________ `,
		` (~~~~~~~~~~~~~~~)`,
		` (_______________)`,
	}},
	"froyo": {color: "218", lines: []string{
		`     (   `,
		`    (~)  `,
		`   (~~~) `,
		`  (~~~~~)`,
		`  \#####/`,
		`   \###/ `,
		`    \#/  `,
	}},
	"gingerbread": {color: "172", lines: []string{
		`    _   `,
		`  _(o)_ `,
		` (_ : _)`,
		`   / \  `,
		`  (_ _) `,
	}},
	"honeycomb": {color: "220", lines: []string{
		`  __    __    `,
		` /  \__/  \__ `,
		` \__/  \__/  \`,
		` /  \__/  \__/`,
		` \__/  \__/   `,
	}},
	"icecreamsandwich": {color: "255", lines: []string{
		` _____________ `,
		`|#############|`,
		`|             |`,
		`|#############|`,
	}},
	"jellybean": {color: "40", lines: []string{
		`   .--.   .--.  `,
		`  (    ) (    ) `,
		`   '--'   '--'  `,
		`      .--.      `,
		`     (    )     `,
		`      '--'      `,
	}},
	"kitkat": {color: "196", lines: []string{
		` ______________ `,
		`|  |  |  |  |  |`,
		`|  |  |  |  |  |`,
		`|__|__|__|__|__|`,
	}},
	"lollipop": {color: "201", lines: []string{
		`   .---.  `,
		`  / @@@ \ `,
		` | @   @ |`,
		`  \ @@@ / `,
		`   '---'  `,
		`     |    `,
		`     |    `,
	}},
	"marshmallow": {color: "231", lines: []string{
		`  .-----.  `,
		` |       | `,
		` |       | `,
		`  '-----'  `,
	}},
	"nougat": {color: "180", lines: []string{
		` ____________ `,
		`|::.::.::.::.|`,
		`|.::.::.::.::|`,
		`|____________|`,
	}},
	"oreo": {color: "238", lines: []string{
		`  .--------.  `,
		` (##########) `,
		` (__________) `,
		` (##########) `,
		`  '--------'  `,
	}},
}

// renderDessert resolves an image reference to styled artwork.
func renderDessert(imageRef string) string {
	art, ok := desserts[imageRef]
	if !ok {
		return placeholder(imageRef)
	}
	return lipgloss.NewStyle().Foreground(art.color).Render(strings.Join(art.lines, "\n"))
}

// placeholder frames the raw reference for desserts without artwork.
func placeholder(imageRef string) string {
	label := imageRef
	if label == "" {
		label = "?"
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(label)
}
