// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/anitrack-cli/anitrack/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// Get retrieves the visual representation for the receiver Def based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Icon identifies a UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Mark
	Link
	Search
	Star
	Seen
	Lock
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(^_^)",
		squares: "▣",
	},
	Fail: {
		emoji:   "👎",
		nerd:    "\uf00d",
		plain:   "✖",
		kaomoji: "(×_×)",
		squares: "▨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf110",
		plain:   "…",
		kaomoji: "(・_・)",
		squares: "▤",
	},
	Mark: {
		emoji:   "📌",
		nerd:    "\uf00c",
		plain:   "*",
		kaomoji: "(*)",
		squares: "▪",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "\uf0c1",
		plain:   "~",
		kaomoji: "(~_~)",
		squares: "▧",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "\uf002",
		plain:   "?",
		kaomoji: "(o_O)",
		squares: "▥",
	},
	Star: {
		emoji:   "⭐",
		nerd:    "\uf005",
		plain:   "★",
		kaomoji: "(☆)",
		squares: "◆",
	},
	Seen: {
		emoji:   "👀",
		nerd:    "\uf06e",
		plain:   "●",
		kaomoji: "(◉_◉)",
		squares: "■",
	},
	Lock: {
		emoji:   "🔒",
		nerd:    "\uf023",
		plain:   "#",
		kaomoji: "(-_-)",
		squares: "▩",
	},
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	return icons[i].Get()
}
