package config

const (
	defaultOutputDir       = "~/.local/share/scrub/output"
	defaultLogDir          = "~/.local/share/scrub/logs"
	defaultHistoryDir      = "~/.local/share/scrub/history"
	defaultSourceExtension = ".wav"
	defaultJobs            = 4
	defaultDiagnosticLimit = 512
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultHistoryEnabled  = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			HistoryDir: defaultHistoryDir,
		},
		Source: Source{
			Extension: defaultSourceExtension,
		},
		Conversion: Conversion{
			Formats:         nil,
			Jobs:            defaultJobs,
			MirrorOriginals: false,
			DiagnosticLimit: defaultDiagnosticLimit,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
