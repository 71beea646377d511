// Package key defines the canonical set of identifiers for the tool's own configuration.
package key

// Storage locations - these keys override where the settings and their backups live.
const (
	PathsData   = "paths.data"
	PathsBackup = "paths.backup"
)

// Settings document handling.
const (
	SettingsLegacyImport = "settings.legacy_import"
)

// Identity material.
const (
	KeypairBits = "keypair.bits"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern colors and symbols in command output.
const (
	CliColored   = "cli.colored"
	IconsVariant = "icons.variant"
)
