package constant

// Persisted file names. Each one exists once in the data directory and once in the backup directory.
const (
	SettingsFile       = "settings.toml"
	LegacySettingsFile = "servers.xml"
	PublicKeyFile      = "publickey.txt"
	PrivateKeyFile     = "privatekey.txt"
)
