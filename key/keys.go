// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 19

// Backend Connection - these keys locate the tracking backend and tune the HTTP layer.
const (
	APIURL     = "api.url"
	APIWebURL  = "api.web_url"
	APITimeout = "api.timeout"
	APICache   = "api.cache"
)

// Genre Browsing - these keys define the initial state of the listing view.
const (
	BrowseDefaultGenre = "browse.default_genre"
	BrowseSort         = "browse.sort"
	BrowseCompact      = "browse.compact"
	BrowseMode         = "browse.mode"
)

// History Tracking - these keys configure the persistence of recently visited genres.
const (
	HistorySave = "history.save"
)

// Search Interaction - these keys define the UI/UX parameters for title filtering.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUISynopsisLines      = "tui.synopsis_lines"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
