package infrastructure

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger crée le logger structuré de l'application.
// Un niveau illisible retombe sur "info".
func NewLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "salesboard",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// NewDiscardLogger retourne un logger silencieux (tests, outils)
func NewDiscardLogger() *log.Logger {
	return log.New(io.Discard)
}
