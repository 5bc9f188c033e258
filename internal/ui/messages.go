package ui

import (
	"github.com/MichonGoddijn231849/emolens/internal/api"
	"github.com/MichonGoddijn231849/emolens/internal/history"
	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

// Messages for Bubble Tea

// HistoryLoadedMsg is sent when the archive has been read from the store.
type HistoryLoadedMsg struct {
	Entries []history.Entry
	Err     error
}

// TimelineLoadedMsg is sent when an artifact has been fetched and parsed
// for the timeline view. Seq guards against a stale load landing after
// the user opened a different entry.
type TimelineLoadedMsg struct {
	Seq         int
	ArtifactRef string
	Events      []segment.Event
	Err         error
}

// FeedbackLoadedMsg is sent when the feedback session's artifact fetch
// completes. Nonce identifies the session that started the fetch; a
// response arriving after the dialog closed carries a stale nonce and is
// dropped.
type FeedbackLoadedMsg struct {
	Nonce  int
	Events []segment.Event
	Err    error
}

// FeedbackSubmittedMsg is sent when a feedback submission completes.
type FeedbackSubmittedMsg struct {
	Nonce int
	Err   error
}

// AnalysisDoneMsg is sent when a /predict-any run finishes.
type AnalysisDoneMsg struct {
	SourceRef string
	Result    api.AnalyzeResult
	Err       error
}

// CursorTickMsg drives the playback cursor redraw. The poller samples the
// transport on its own schedule; this message only forces a re-render.
type CursorTickMsg struct{}

// ExportDoneMsg is sent when a corrected-artifact export finishes.
type ExportDoneMsg struct {
	Path string
	Err  error
}
