package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/MichonGoddijn231849/emolens/internal/api"
	"github.com/MichonGoddijn231849/emolens/internal/config"
	"github.com/MichonGoddijn231849/emolens/internal/history"
	"github.com/MichonGoddijn231849/emolens/internal/logging"
	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

func init() {
	// CLI diagnostics go to stderr, not the dashboard's log file.
	logging.InitStderr()
}

// loadConfig reads the shared dashboard configuration or fatals.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	return cfg
}

// openStore opens the shared archive. Unlike the dashboard, the CLI does
// not degrade to memory: an unreadable archive is the thing being
// debugged.
func openStore() history.Store {
	st, err := history.NewSQLStore(config.HistoryPath())
	if err != nil {
		log.Fatalf("failed to open archive %s: %v", config.HistoryPath(), err)
	}
	return st
}

func newClient(cfg *config.Config) *api.Client {
	return api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
}

// fetchEvents loads an artifact from a local path or from the service.
func fetchEvents(client *api.Client, ref string) ([]segment.Event, error) {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		if _, err := os.Stat(ref); err == nil {
			f, err := os.Open(ref)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return segment.ParseArtifact(f)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return client.FetchArtifact(ctx, ref)
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
