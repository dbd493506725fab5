package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:       "~/.config/studystream",
			SQLiteFile: "studystream.db",
		},
		Pomodoro: PomodoroConfig{
			WorkMinutes:       25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
		},
		Dashboard: DashboardConfig{
			FocusLimit: 5,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}
