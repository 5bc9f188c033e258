package ui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MichonGoddijn231849/emolens/internal/feedback"
	"github.com/MichonGoddijn231849/emolens/internal/history"
	"github.com/MichonGoddijn231849/emolens/internal/playback"
	"github.com/MichonGoddijn231849/emolens/internal/segment"
)

var (
	errUsageAnalyze   = errors.New("usage: /analyze <url>")
	errUnknownCommand = errors.New("unknown command")
)

// mode selects which screen owns the keyboard.
type mode int

const (
	modeHistory mode = iota
	modeTimeline
	modeFeedback
)

// Backend supplies the side-effecting commands the App dispatches.
// IMPORTANT: App does NOT hold the store or the API client. Every
// external effect runs inside a tea.Cmd built here and reports back
// through a message.
type Backend struct {
	LoadHistory   func() tea.Cmd
	LoadArtifact  func(seq int, entry history.Entry) tea.Cmd
	LoadFeedback  func(nonce int, entry history.Entry) tea.Cmd
	Submit        func(nonce int, session *feedback.Session) tea.Cmd
	Analyze       func(sourceRef string) tea.Cmd
	MarkSubmitted func(artifactRef string) tea.Cmd
	RemoveEntry   func(id string) tea.Cmd
	ClearHistory  func() tea.Cmd
	Export        func(session *feedback.Session) tea.Cmd
}

// App is the root Bubble Tea model: the archive list, the timeline
// screen, and the modal feedback dialog.
type App struct {
	backend Backend

	transport *playback.Transport
	poller    *playback.Poller
	tick      time.Duration

	mode     mode
	histView historyView
	timeView timelineView
	fbView   feedbackView

	// seq and nonce fence async responses: a reply tagged with a stale
	// value belongs to a screen the user already left and is dropped.
	seq     int
	nonce   int
	pending history.Entry // entry the current seq's load is for

	submitInFlight bool
	analyzing      bool

	// command line state ("/analyze <url>", "/clear")
	commandMode bool
	commandBuf  string

	status string
	err    error

	width  int
	height int
	ready  bool
}

// NewApp wires the root model. The cursor tick duration matches the
// poller interval so the marker never lags more than one sample.
func NewApp(backend Backend, transport *playback.Transport, poller *playback.Poller, tick time.Duration) App {
	if tick <= 0 {
		tick = playback.DefaultPollInterval
	}
	return App{
		backend:   backend,
		transport: transport,
		poller:    poller,
		tick:      tick,
		histView:  newHistoryView(),
		timeView:  newTimelineView(transport, poller),
	}
}

func (a App) Init() tea.Cmd {
	if a.backend.LoadHistory != nil {
		return a.backend.LoadHistory()
	}
	return nil
}

func (a App) cursorTick() tea.Cmd {
	return tea.Tick(a.tick, func(time.Time) tea.Msg { return CursorTickMsg{} })
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		content := a.height - 3
		a.histView.SetSize(a.width, content)
		a.timeView.SetSize(a.width, content)
		a.fbView.SetSize(a.width, content)
		return a, nil

	case HistoryLoadedMsg:
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.histView.SetEntries(msg.Entries)
			a.err = nil
		}
		return a, nil

	case TimelineLoadedMsg:
		if msg.Seq != a.seq {
			return a, nil // stale load for a screen the user left
		}
		if msg.Err != nil {
			a.err = msg.Err
			a.mode = modeHistory
			return a, nil
		}
		// The vocabulary is the plan the run was analyzed under, which
		// may differ from the currently configured plan.
		a.timeView.SetArtifact(a.pending, msg.Events, segment.Labels(a.pending.Plan))
		a.mode = modeTimeline
		a.status = ""
		return a, a.cursorTick()

	case FeedbackLoadedMsg:
		if a.mode != modeFeedback || msg.Nonce != a.nonce {
			return a, nil
		}
		session := a.fbView.Session()
		if msg.Err != nil {
			session.LoadFailed()
			a.err = msg.Err
			a.mode = modeHistory
			return a, nil
		}
		if err := session.SegmentsLoaded(msg.Events); err != nil {
			session.LoadFailed()
			a.err = err
			a.mode = modeHistory
		}
		return a, nil

	case FeedbackSubmittedMsg:
		if msg.Nonce != a.nonce {
			return a, nil
		}
		a.submitInFlight = false
		session := a.fbView.Session()
		if msg.Err != nil {
			session.SubmitFailed()
			a.fbView.SetError(msg.Err.Error())
			return a, nil
		}
		session.Submitted()
		cmds := []tea.Cmd{}
		if a.backend.MarkSubmitted != nil {
			cmds = append(cmds, a.backend.MarkSubmitted(session.Entry.ArtifactRef))
		}
		return a, tea.Batch(cmds...)

	case AnalysisDoneMsg:
		a.analyzing = false
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.status = "analysis complete: " + truncate(msg.SourceRef, 48)
		if a.backend.LoadHistory != nil {
			return a, a.backend.LoadHistory()
		}
		return a, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			a.fbView.SetError(msg.Err.Error())
		} else {
			a.fbView.SetExported(msg.Path)
		}
		return a, nil

	case CursorTickMsg:
		if a.mode == modeTimeline {
			return a, a.cursorTick()
		}
		return a, nil
	}

	// Spinner ticks and other component traffic.
	if a.mode == modeFeedback {
		var cmd tea.Cmd
		a.fbView, cmd = a.fbView.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.commandMode {
		return a.handleCommandKey(msg)
	}

	switch a.mode {
	case modeFeedback:
		return a.handleFeedbackKey(msg)
	case modeTimeline:
		return a.handleTimelineKey(msg)
	default:
		return a.handleHistoryKey(msg)
	}
}

func (a App) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.err = nil

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "/":
		a.commandMode = true
		a.commandBuf = "/"
		return a, nil

	case "esc":
		// Abandon any load still in flight for this screen.
		a.seq++
		a.status = ""
		return a, nil

	case "enter":
		entry, ok := a.histView.Selected()
		if !ok {
			return a, nil
		}
		a.seq++
		a.pending = entry
		a.status = "loading " + truncate(entry.SourceRef, 48) + "…"
		return a, a.backend.LoadArtifact(a.seq, entry)

	case "f":
		return a.openFeedback()

	case "d":
		entry, ok := a.histView.Selected()
		if ok && a.backend.RemoveEntry != nil {
			return a, a.backend.RemoveEntry(entry.ID)
		}
		return a, nil

	case "C":
		if a.backend.ClearHistory != nil {
			return a, a.backend.ClearHistory()
		}
		return a, nil

	case "r":
		if a.backend.LoadHistory != nil {
			return a, a.backend.LoadHistory()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.histView, cmd = a.histView.Update(msg)
	return a, cmd
}

func (a App) handleTimelineKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.transport.Pause()
		a.seq++ // fence any in-flight load
		a.mode = modeHistory
		return a, nil

	case "f":
		return a.openFeedback()
	}

	var cmd tea.Cmd
	a.timeView, cmd = a.timeView.Update(msg)
	return a, cmd
}

func (a App) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := a.fbView.Session()

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		// Closing the dialog abandons the session. The nonce bump makes
		// any in-flight load or submission land on deaf ears.
		a.nonce++
		a.submitInFlight = false
		a.mode = modeHistory
		if session.State() == feedback.StateSubmitted && a.backend.LoadHistory != nil {
			return a, a.backend.LoadHistory()
		}
		return a, nil

	case "x":
		if session.State() == feedback.StateSubmitted && session.HasCorrections() && a.backend.Export != nil {
			return a, a.backend.Export(session)
		}
	}

	before := session.State()
	var cmd tea.Cmd
	a.fbView, cmd = a.fbView.Update(msg)

	// A prompt accept or a confirmation moved the machine into
	// submitting; fire the request exactly once.
	if session.State() == feedback.StateSubmitting && before != feedback.StateSubmitting && !a.submitInFlight {
		a.submitInFlight = true
		return a, tea.Batch(cmd, a.backend.Submit(a.nonce, session))
	}
	return a, cmd
}

// openFeedback starts a correction session on the selected entry.
func (a App) openFeedback() (tea.Model, tea.Cmd) {
	entry, ok := a.histView.Selected()
	if !ok {
		return a, nil
	}

	session, err := feedback.NewSession(entry, segment.Labels(entry.Plan))
	if err != nil {
		a.err = err
		return a, nil
	}

	a.nonce++
	a.fbView = newFeedbackView(session, a.nonce)
	a.fbView.SetSize(a.width, a.height-3)
	a.mode = modeFeedback
	return a, tea.Batch(a.fbView.Init(), a.backend.LoadFeedback(a.nonce, entry))
}

func (a App) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		a.commandMode = false
		a.commandBuf = ""
		return a, nil

	case "enter":
		line := a.commandBuf
		a.commandMode = false
		a.commandBuf = ""
		return a.runCommand(line)

	case "backspace":
		if len(a.commandBuf) > 1 {
			a.commandBuf = a.commandBuf[:len(a.commandBuf)-1]
		} else {
			a.commandMode = false
			a.commandBuf = ""
		}
		return a, nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		a.commandBuf += string(msg.Runes)
		if msg.Type == tea.KeySpace {
			a.commandBuf += " "
		}
	}
	return a, nil
}

// runCommand executes a slash command entered on the command line.
func (a App) runCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		return a, nil
	}

	switch fields[0] {
	case "analyze":
		if len(fields) < 2 {
			a.err = errUsageAnalyze
			return a, nil
		}
		if a.backend.Analyze == nil {
			return a, nil
		}
		a.analyzing = true
		a.status = "analyzing " + truncate(fields[1], 48) + "…"
		return a, a.backend.Analyze(fields[1])

	case "clear":
		if a.backend.ClearHistory != nil {
			return a, a.backend.ClearHistory()
		}

	default:
		a.err = errUnknownCommand
	}
	return a, nil
}

func (a App) View() string {
	if !a.ready {
		return "Loading…"
	}

	header := headerStyle.Width(a.width).Render("emolens — emotion timeline dashboard")

	var body string
	switch a.mode {
	case modeFeedback:
		body = lipgloss.Place(a.width, a.height-3, lipgloss.Center, lipgloss.Center, a.fbView.View())
	case modeTimeline:
		body = a.timeView.View()
	default:
		body = a.histView.View()
	}

	var bottom string
	switch {
	case a.commandMode:
		bottom = statusBarStyle.Width(a.width).Render(a.commandBuf + "█")
	case a.err != nil:
		bottom = errorStyle.Width(a.width).Render("Error: " + a.err.Error())
	default:
		bottom = statusBarStyle.Width(a.width).Render(a.statusLine())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, bottom)
}

func (a App) statusLine() string {
	if a.analyzing {
		return a.status
	}
	if a.status != "" {
		return a.status
	}
	switch a.mode {
	case modeTimeline:
		return "space play/pause   ←/→ bucket   enter seek   f feedback   esc back"
	case modeFeedback:
		return "feedback: " + a.fbView.Session().State().String()
	default:
		return "enter open   f feedback   d delete   / command   r refresh   q quit"
	}
}
