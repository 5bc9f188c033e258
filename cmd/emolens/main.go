// Command emolens is the terminal emotion-analysis dashboard.
//
// It talks to the inference service configured in ~/.emolens/config.json,
// keeps a local archive of completed runs, and drives the review and
// correction workflow for each run's emotion labeling.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MichonGoddijn231849/emolens/internal/api"
	"github.com/MichonGoddijn231849/emolens/internal/config"
	"github.com/MichonGoddijn231849/emolens/internal/feedback"
	"github.com/MichonGoddijn231849/emolens/internal/history"
	"github.com/MichonGoddijn231849/emolens/internal/logging"
	"github.com/MichonGoddijn231849/emolens/internal/playback"
	"github.com/MichonGoddijn231849/emolens/internal/segment"
	"github.com/MichonGoddijn231849/emolens/internal/ui"
)

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load configuration: %v", err)
	}
	logging.Info("emolens starting", "api", cfg.API.BaseURL, "plan", cfg.API.Plan)

	if err := os.MkdirAll(config.Dir(), 0755); err != nil {
		fatal("Failed to create data directory: %v", err)
	}

	// Open falls back to an in-memory archive when the database cannot
	// be opened, so a broken disk never blocks the dashboard.
	store := history.Open(config.HistoryPath())
	defer store.Close()

	client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	transport := playback.NewTransport(0)
	interval := time.Duration(cfg.Playback.PollIntervalMs) * time.Millisecond
	poller := playback.NewPoller(transport, interval)

	ctx, cancel := context.WithCancel(context.Background())
	poller.Start(ctx)

	backend := newBackend(client, store, cfg.API.Plan)
	app := ui.NewApp(backend, transport, poller, interval)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		cancel()
		poller.Wait()
		logging.Error("Application error", "error", err)
		fatal("Error: %v", err)
	}

	cancel()
	poller.Wait()
	logging.Info("emolens exiting normally")
}

// newBackend builds the command set the UI dispatches. Each command runs
// one blocking operation and reports back as a message.
func newBackend(client *api.Client, store history.Store, plan string) ui.Backend {
	return ui.Backend{
		LoadHistory: func() tea.Cmd {
			return func() tea.Msg {
				entries, err := store.List()
				return ui.HistoryLoadedMsg{Entries: entries, Err: err}
			}
		},

		LoadArtifact: func(seq int, entry history.Entry) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				events, err := client.FetchArtifact(ctx, entry.ArtifactRef)
				return ui.TimelineLoadedMsg{Seq: seq, ArtifactRef: entry.ArtifactRef, Events: events, Err: err}
			}
		},

		LoadFeedback: func(nonce int, entry history.Entry) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				events, err := client.FetchArtifact(ctx, entry.ArtifactRef)
				return ui.FeedbackLoadedMsg{Nonce: nonce, Events: events, Err: err}
			}
		},

		Submit: func(nonce int, session *feedback.Session) tea.Cmd {
			return func() tea.Msg {
				payload := api.ConfirmationPayload()
				if session.HasCorrections() {
					payload = api.CorrectionPayload(session.Working())
				}
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				err := client.SubmitFeedback(ctx, filepath.Base(session.Entry.ArtifactRef), payload)
				return ui.FeedbackSubmittedMsg{Nonce: nonce, Err: err}
			}
		},

		Analyze: func(sourceRef string) tea.Cmd {
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
				defer cancel()
				result, err := client.Analyze(ctx, api.AnalyzeRequest{Src: sourceRef, Plan: plan})
				if err != nil {
					return ui.AnalysisDoneMsg{SourceRef: sourceRef, Err: err}
				}
				entry := history.Entry{
					ID:          history.NewID(time.Now()),
					CreatedAt:   time.Now().UTC(),
					SourceRef:   sourceRef,
					Plan:        plan,
					ArtifactRef: result.Download.Link,
				}
				if err := store.Append(entry); err != nil {
					logging.Warn("Failed to archive run", "error", err)
				}
				return ui.AnalysisDoneMsg{SourceRef: sourceRef, Result: result}
			}
		},

		MarkSubmitted: func(artifactRef string) tea.Cmd {
			return func() tea.Msg {
				if err := store.MarkFeedbackSubmitted(artifactRef); err != nil {
					logging.Warn("Failed to flag feedback", "error", err)
				}
				entries, err := store.List()
				return ui.HistoryLoadedMsg{Entries: entries, Err: err}
			}
		},

		RemoveEntry: func(id string) tea.Cmd {
			return func() tea.Msg {
				if err := store.Remove(id); err != nil {
					return ui.HistoryLoadedMsg{Err: err}
				}
				entries, err := store.List()
				return ui.HistoryLoadedMsg{Entries: entries, Err: err}
			}
		},

		ClearHistory: func() tea.Cmd {
			return func() tea.Msg {
				if err := store.Clear(); err != nil {
					return ui.HistoryLoadedMsg{Err: err}
				}
				entries, err := store.List()
				return ui.HistoryLoadedMsg{Entries: entries, Err: err}
			}
		},

		Export: func(session *feedback.Session) tea.Cmd {
			return func() tea.Msg {
				path, err := exportCorrections(session)
				return ui.ExportDoneMsg{Path: path, Err: err}
			}
		},
	}
}

// exportCorrections writes the corrected segment list next to the config
// under ~/.emolens/exports/.
func exportCorrections(session *feedback.Session) (string, error) {
	dir := filepath.Join(config.Dir(), "exports")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-corrected.csv", session.Entry.ID)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := segment.WriteArtifact(f, session.Working()); err != nil {
		return "", err
	}
	return path, nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
