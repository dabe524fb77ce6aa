package main

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

type logSettings struct {
	File  string `env:"LAFRANCE_LOGFILE"`
	Debug bool   `env:"LAFRANCE_DEBUG"`
}

// setupLog parses the log-related environment variables and sets the
// default logger up accordingly. It returns a closer for the log file.
func setupLog() (func() error, error) {
	settings, err := env.ParseAs[logSettings]()
	if err != nil {
		return nil, err
	}

	if settings.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if settings.File == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(settings.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f.Close, nil
}
