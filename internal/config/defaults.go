package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:       "~/.config/haru",
			SQLiteFile: "haru.db",
		},
		Calendar: CalendarConfig{
			DefaultView: "month",
			Categories:  []string{"work", "personal", "family", "health"},
		},
		Notify: NotifyConfig{
			PollSpec:           "* * * * *",
			DefaultLeadMinutes: 10,
		},
		Holidays: HolidaysConfig{
			File: "",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
