// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Service construction, logging setup and small formatting utilities
package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/harper/vitus/internal/config"
	"github.com/harper/vitus/internal/core"
	"github.com/harper/vitus/internal/storage"
)

// newLogger builds the CLI logger honoring the global flags.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// openService loads config, opens the charm store and returns a loaded
// service with finished cures already archived. The returned closer
// flushes and closes the store.
func openService() (*core.Service, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.OpenCharm(storage.Config{
		Host:     cfg.CharmHost,
		DBName:   cfg.CharmDBName,
		AutoSync: cfg.AutoSync,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}

	log := newLogger()
	svc := core.New(store, core.WithLogger(log))
	svc.Load()
	if archived := svc.AutoArchive(); len(archived) > 0 {
		log.Info().Strs("cures", archived).Msg("archived finished cures")
	}

	closer := func() { _ = store.Close() }
	return svc, closer, nil
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatQuantity renders a quantity without trailing zero noise.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// splitTimes parses a comma- or space-separated list of dose times.
func splitTimes(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
