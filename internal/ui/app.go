package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wcpan/ddltop/internal/api"
	"github.com/wcpan/ddltop/internal/batch"
	"github.com/wcpan/ddltop/internal/cacheops"
	"github.com/wcpan/ddltop/internal/config"
	"github.com/wcpan/ddltop/internal/logs"
	"github.com/wcpan/ddltop/internal/logstream"
	"github.com/wcpan/ddltop/internal/search"
	"github.com/wcpan/ddltop/internal/selection"
	"github.com/wcpan/ddltop/internal/ui/clipboard"
	"github.com/wcpan/ddltop/internal/ui/layout"
	"github.com/wcpan/ddltop/internal/ui/panels"
	"github.com/wcpan/ddltop/internal/ui/styles"
	"github.com/wcpan/ddltop/internal/ui/text"
)

const (
	panelResults = 0
	panelLog     = 1
	numPanels    = 2
)

// Copier puts text on the clipboard.
type Copier interface {
	Write(text string) (clipboard.Method, error)
}

// App is the root model. The controllers below are shared by pointer
// between copies of the model; every mutation happens inside Update.
type App struct {
	config *config.Config
	ctx    context.Context
	cancel context.CancelFunc

	client     *api.Client
	searcher   *search.Controller
	results    *search.Results
	selection  *selection.Set
	dispatcher *batch.Dispatcher
	cacheOps   *cacheops.Controller
	stream     *logstream.Stream
	logView    *logs.View
	copier     Copier

	width        int
	height       int
	layout       layout.Layout
	focusedPanel int
	resultsPanel panels.Results
	logPanel     panels.LogPanel
	statusBar    panels.StatusBar
	helpOverlay  *panels.HelpOverlay
	confirm      *panels.Confirm
	keys         KeyMap
	ready        bool

	searching int
	inflight  int
}

func NewApp(cfg *config.Config) App {
	ctx, cancel := context.WithCancel(context.Background())

	client := api.NewClient(cfg.Server.BaseURL)
	results := &search.Results{}
	sel := selection.New()
	view := &logs.View{}

	rp := panels.NewResults(results, sel)
	rp.SetFocused(true)
	lp := panels.NewLogPanel(view)
	lp.SetScrollSpeed(cfg.UI.LogScrollSpeed)
	lp.SetTimestamps(cfg.UI.Timestamps())

	return App{
		config:       cfg,
		ctx:          ctx,
		cancel:       cancel,
		client:       client,
		searcher:     search.NewController(client),
		results:      results,
		selection:    sel,
		dispatcher:   batch.NewDispatcher(client, sel),
		cacheOps:     cacheops.NewController(client, cfg.Cache.ScanPaths),
		stream:       logstream.New(client.Address().LogStream(), 0),
		logView:      view,
		copier:       clipboard.New(),
		resultsPanel: rp,
		logPanel:     lp,
		statusBar:    panels.NewStatusBar(cfg.Server.BaseURL),
		keys:         DefaultKeyMap(),
	}
}

// Init starts the live stream and the history fetch together. Neither
// waits for the other; the log view orders whatever arrives.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		runStream(a.ctx, a.stream),
		listenForStream(a.stream.Events()),
		fetchHistory(a.ctx, a.client),
	)
}

// Close cancels every request still in flight.
func (a App) Close() {
	a.cancel()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.update(msg)
	m.syncStatus()
	return m, cmd
}

func (a App) update(msg tea.Msg) (App, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case CloseModalMsg:
		a.helpOverlay = nil
		return a, nil

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case SearchSubmitMsg:
		a.searching++
		seq := a.searcher.Next()
		return a, runSearch(a.ctx, a.searcher, seq, msg.Pattern)

	case SearchResultMsg:
		a.searching--
		if msg.Err != nil {
			log.Printf("warning: search %q: %v", msg.Pattern, msg.Err)
			return a, nil
		}
		a.results.Prepend(msg.Group)
		a.resultsPanel.Refresh()
		return a, nil

	case ConfirmResultMsg:
		a.confirm = nil
		if !msg.Confirmed {
			return a, nil
		}
		return a, a.dispatch(msg.Action)

	case BatchDoneMsg:
		a.inflight -= len(msg.Results)
		failed := batch.Failed(msg.Results)
		for _, r := range failed {
			log.Printf("warning: %s %s: %v", msg.Action, r.ID, r.Err)
		}
		log.Printf("%s batch settled: %d sent, %d failed", msg.Action, len(msg.Results), len(failed))
		return a, nil

	case ScanDoneMsg:
		a.inflight--
		if msg.Err != nil {
			log.Printf("warning: cache scan: %v", msg.Err)
			return a, nil
		}
		log.Printf("cache scan: %s", msg.Body)
		return a, nil

	case SyncDoneMsg:
		a.inflight--
		if msg.Err != nil {
			log.Printf("warning: cache sync: %v", msg.Err)
		}
		return a, nil

	case HistoryLoadedMsg:
		if msg.Err != nil {
			log.Printf("warning: log history: %v", msg.Err)
			return a, nil
		}
		a.logView.AppendHistory(msg.Records)
		a.logPanel.Refresh(0)
		return a, nil

	case StreamEventMsg:
		a.handleStreamEvent(msg.Event)
		return a, listenForStream(a.stream.Events())

	case StreamEndedMsg:
		return a, nil

	case YankMsg:
		return a, a.yank(msg)

	case panels.GTimerExpiredMsg:
		a.resultsPanel, _ = a.resultsPanel.Update(msg)
		a.logPanel, _ = a.logPanel.Update(msg)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// cursor blink and other widget messages
	if a.resultsPanel.Editing() {
		var cmd tea.Cmd
		a.resultsPanel, cmd = a.resultsPanel.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a.quit()
	}
	if a.confirm != nil {
		var cmd tea.Cmd
		*a.confirm, cmd = a.confirm.Update(msg)
		return a, cmd
	}
	if a.helpOverlay != nil {
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}
	if a.resultsPanel.Editing() {
		var cmd tea.Cmd
		a.resultsPanel, cmd = a.resultsPanel.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Help):
		a.helpOverlay = panels.NewHelpOverlay(a.keys.HelpSections())
		return a, nil
	case key.Matches(msg, a.keys.FocusNext):
		a.focusedPanel = (a.focusedPanel + 1) % numPanels
		a.updateFocusState()
		return a, nil
	case key.Matches(msg, a.keys.Search):
		a.focusedPanel = panelResults
		a.updateFocusState()
		return a, a.resultsPanel.StartEditing()
	case key.Matches(msg, a.keys.Acquire):
		return a, a.dispatch(batch.ActionAcquire)
	case key.Matches(msg, a.keys.Trash):
		a.confirm = panels.NewConfirm(batch.ActionTrash, a.selection.Len())
		return a, nil
	case key.Matches(msg, a.keys.Scan):
		a.inflight++
		a.statusBar.SetFlash("scan requested")
		return a, tea.Batch(runScan(a.ctx, a.cacheOps), clearFlashLater())
	case key.Matches(msg, a.keys.Sync):
		a.inflight++
		a.statusBar.SetFlash("sync requested")
		return a, tea.Batch(runSync(a.ctx, a.cacheOps), clearFlashLater())
	}

	return a.routeKey(msg)
}

func (a App) quit() (App, tea.Cmd) {
	a.cancel()
	return a, tea.Quit
}

func (a App) routeKey(msg tea.KeyMsg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focusedPanel {
	case panelResults:
		a.resultsPanel, cmd = a.resultsPanel.Update(msg)
	case panelLog:
		a.logPanel, cmd = a.logPanel.Update(msg)
	}
	return a, cmd
}

// dispatch gathers and clears the selection before any request is made,
// then sends the batch in the background.
func (a *App) dispatch(action batch.Action) tea.Cmd {
	b := a.dispatcher.Begin(action)
	if len(b.IDs) == 0 {
		a.statusBar.SetFlashWithLevel("nothing selected", panels.FlashWarning)
		return clearFlashLater()
	}
	a.inflight += len(b.IDs)
	a.statusBar.SetFlash(fmt.Sprintf("%s: %s", action, text.Count(len(b.IDs), "node")))

	ctx := a.ctx
	run := func() tea.Msg {
		return BatchDoneMsg{Action: action, Results: b.Run(ctx)}
	}
	return tea.Batch(run, clearFlashLater())
}

func (a *App) handleStreamEvent(ev logstream.Event) {
	switch ev.Kind {
	case logstream.EventRecord:
		a.logView.PushLive(ev.Record)
		a.logPanel.Refresh(1)
	case logstream.EventState:
		a.logPanel.SetStreamState(ev.State)
		a.statusBar.SetStreamState(ev.State)
		if ev.Err != nil {
			log.Printf("warning: log stream %s: %v", ev.State, ev.Err)
		} else {
			log.Printf("log stream %s", ev.State)
		}
	}
}

func (a *App) yank(msg YankMsg) tea.Cmd {
	method, err := a.copier.Write(msg.Text)
	if err != nil {
		log.Printf("warning: copy %s: %v", msg.What, err)
		a.statusBar.SetFlashWithLevel("copy failed", panels.FlashError)
		return clearFlashLater()
	}
	a.statusBar.SetFlashWithLevel(fmt.Sprintf("copied %s (%s)", msg.What, method), panels.FlashSuccess)
	return clearFlashLater()
}

func (a *App) syncStatus() {
	a.statusBar.SetSelected(a.selection.Len())
	a.statusBar.SetInflight(a.inflight + a.searching)
	a.resultsPanel.SetPending(a.searching)
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top, a.resultsPanel.View(), a.logPanel.View())
	full := lipgloss.JoinVertical(lipgloss.Left, columns, a.statusBar.View())

	var modal string
	switch {
	case a.confirm != nil:
		modal = a.confirm.View()
	case a.helpOverlay != nil:
		modal = a.helpOverlay.View()
	}
	if modal != "" {
		full = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, modal,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}
	return full
}

func (a *App) propagateSizes() {
	l := a.layout
	a.resultsPanel.SetSize(l.SearchWidth, l.SearchHeight)
	a.logPanel.SetSize(l.LogWidth, l.LogHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a *App) updateFocusState() {
	a.resultsPanel.SetFocused(a.focusedPanel == panelResults)
	a.logPanel.SetFocused(a.focusedPanel == panelLog)
}

func runSearch(ctx context.Context, s *search.Controller, seq int, pattern string) tea.Cmd {
	return func() tea.Msg {
		g, err := s.Query(ctx, seq, pattern)
		return SearchResultMsg{Pattern: pattern, Group: g, Err: err}
	}
}

func runScan(ctx context.Context, c *cacheops.Controller) tea.Cmd {
	return func() tea.Msg {
		body, err := c.ScanNow(ctx)
		return ScanDoneMsg{Body: body, Err: err}
	}
}

func runSync(ctx context.Context, c *cacheops.Controller) tea.Cmd {
	return func() tea.Msg {
		return SyncDoneMsg{Err: c.Sync(ctx)}
	}
}

func fetchHistory(ctx context.Context, c *api.Client) tea.Cmd {
	return func() tea.Msg {
		recs, err := c.FetchLog(ctx)
		return HistoryLoadedMsg{Records: recs, Err: err}
	}
}

// runStream owns the connection for the program's lifetime; its events
// reach the model through listenForStream.
func runStream(ctx context.Context, s *logstream.Stream) tea.Cmd {
	return func() tea.Msg {
		s.Run(ctx)
		return nil
	}
}

func listenForStream(ch <-chan logstream.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return StreamEndedMsg{}
		}
		return StreamEventMsg{Event: ev}
	}
}

// flashDelay is how long a status bar flash stays up.
var flashDelay = panels.FlashDuration()

func clearFlashLater() tea.Cmd {
	return tea.Tick(flashDelay, func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}
