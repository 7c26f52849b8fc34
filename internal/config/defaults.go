package config

const (
	defaultBaseURL          = "https://ai-study-backened.onrender.com"
	defaultUserAgent        = "study-cli/dev"
	defaultStateDir         = "~/.local/share/study"
	defaultHistoryMax       = 500
	defaultOutputFormat     = "text"
	defaultOutputColor      = "auto"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultNotesPreviewSize = 200
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:   defaultBaseURL,
			UserAgent: defaultUserAgent,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		History: History{
			Enabled:    true,
			MaxEntries: defaultHistoryMax,
		},
		Output: Output{
			Format:           defaultOutputFormat,
			Color:            defaultOutputColor,
			NotesPreviewSize: defaultNotesPreviewSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
