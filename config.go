package main

// AppConfig is loaded from config.yml, with APP_* environment overrides.
type AppConfig struct {
	Server struct {
		Port           string `default:":3000"`
		Cors           []string
		ResetFrequence int // minutes between demo data resets, 0 disables
	}
	DB struct {
		Path string `default:"db.sqlite3"`
	}
	Scheduler struct {
		DefaultTimeZone     string `default:"America/Chicago"`
		CacheTTLSeconds     int    `default:"30"`
		FetchTimeoutSeconds int    `default:"10"`
	}
	Features struct {
		Search  bool
		Reports bool
		Exports bool
	}
	LogLevel string `default:"info"`
}
