// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "anitrack"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every backend request.
	UserAgent = App + "/" + Version
)

// Build metadata, injected with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Repository is the GitHub owner/name of the project.
const Repository = "anitrack-cli/anitrack"
