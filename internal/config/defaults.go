package config

const (
	defaultConfigPath   = "~/.config/litshelf/config.toml"
	defaultStateDir     = "~/.local/share/litshelf"
	defaultExportFormat = "csv"
	defaultListSort     = "updated"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	envStateDir         = "LITSHELF_STATE_DIR"
	envLogLevel         = "LITSHELF_LOG_LEVEL"
	envLogFormat        = "LITSHELF_LOG_FORMAT"
	envOpenCommand      = "LITSHELF_OPEN_COMMAND"
	envClipboardCommand = "LITSHELF_CLIPBOARD_COMMAND"
)

var defaultExportFields = []string{"id", "attribute", "value"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	fields := make([]string, len(defaultExportFields))
	copy(fields, defaultExportFields)
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Export: Export{
			Format: defaultExportFormat,
			Fields: fields,
		},
		List: List{
			Sort: defaultListSort,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
