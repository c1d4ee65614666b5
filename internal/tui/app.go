package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/navdemo/internal/client"
	"github.com/muurk/navdemo/internal/logging"
	"github.com/muurk/navdemo/internal/model"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenLogin   Screen = "login"
	ScreenRecords Screen = "records"
	ScreenRecord  Screen = "record"
	ScreenDetail  Screen = "detail"
)

// frame is one pushed screen on the navigation stack
type frame struct {
	screen   Screen
	recordID model.ID
	detailID model.ID
}

// Options tunes the presentation
type Options struct {
	ShowIDs bool
}

// AppModel is the top-level coordinator model. The root screen follows the
// client state (login, loading or record selection); record and detail
// screens are pushed on top of it.
type AppModel struct {
	client    *client.Client
	events    <-chan client.Event
	stopWatch context.CancelFunc
	cancelOp  context.CancelFunc

	// Latest observed client state
	State     client.State
	LastError error
	Canceled  bool

	stack   []frame
	options Options

	// Screen models
	RecordsModel RecordsModel
	RecordModel  RecordModel
	DetailModel  DetailModel

	// UI state
	Width    int
	Height   int
	Spinner  spinner.Model
	Progress progress.Model
	Help     help.Model
	keys     keyMap
	now      func() time.Time
}

// NewAppModel creates the application model and starts watching c.
func NewAppModel(c *client.Client, opts Options) AppModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	ctx, stop := context.WithCancel(context.Background())

	return AppModel{
		client:       c,
		events:       c.Watch(ctx),
		stopWatch:    stop,
		State:        c.State(),
		options:      opts,
		RecordsModel: NewRecordsModel(opts.ShowIDs),
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Spinner:      s,
		Progress:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		Help:         help.New(),
		keys:         defaultKeyMap(),
		now:          time.Now,
	}
}

// Init starts the event bridge and the spinner
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), m.Spinner.Tick)
}

// waitForEvent turns the next client event into a message
func waitForEvent(events <-chan client.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return stateMsg{event: ev}
	}
}

func loginCmd(ctx context.Context, c *client.Client) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{err: c.Login(ctx)}
	}
}

func fetchCmd(ctx context.Context, c *client.Client) tea.Cmd {
	return func() tea.Msg {
		return fetchDoneMsg{err: c.FetchDataSets(ctx)}
	}
}

// CurrentScreen returns the screen on top of the navigation stack
func (m AppModel) CurrentScreen() Screen {
	if n := len(m.stack); n > 0 {
		return m.stack[n-1].screen
	}
	if m.State.LoggedIn && !m.State.Loading() {
		return ScreenRecords
	}
	return ScreenLogin
}

// Depth returns the number of pushed screens
func (m AppModel) Depth() int {
	return len(m.stack)
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		m.State = msg.event.State
		m.syncScreens()
		return m, waitForEvent(m.events)

	case watchClosedMsg:
		logging.Debug("client event stream closed")
		return m, nil

	case loginDoneMsg:
		m.releaseOp()
		m.recordError("login", msg.err)
		m.State = m.client.State()
		m.syncScreens()
		return m, nil

	case fetchDoneMsg:
		m.releaseOp()
		m.recordError("fetch", msg.err)
		m.State = m.client.State()
		m.syncScreens()
		return m, nil

	case openRecordMsg:
		return m.push(frame{screen: ScreenRecord, recordID: msg.recordID})

	case openDetailMsg:
		return m.push(frame{screen: ScreenDetail, recordID: msg.recordID, detailID: msg.detailID})

	case goBackMsg:
		return m.goBack()

	case fetchRequestMsg:
		return m.startFetch()

	case logoutRequestMsg:
		m.client.Logout()
		m.LastError = nil
		m.State = m.client.State()
		m.syncScreens()
		return m, nil

	case addDetailRequestMsg:
		if _, err := m.client.AddDetail(msg.recordID); err != nil {
			logging.Warn("add detail failed", zap.Error(err))
		}
		m.State = m.client.State()
		m.syncScreens()
		return m, nil

	case renameRequestMsg:
		if err := m.client.RenameRecord(msg.recordID, msg.name); err != nil {
			logging.Warn("rename failed", zap.Error(err))
		}
		m.State = m.client.State()
		m.syncScreens()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m.updateCurrentScreen(msg)
}

// handleKey applies global bindings before routing to the current screen.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// The rename editor owns every other key
	if m.CurrentScreen() == ScreenRecord && m.RecordModel.Renaming {
		return m.updateCurrentScreen(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	switch m.CurrentScreen() {
	case ScreenLogin:
		switch {
		case m.State.Loading() && key.Matches(msg, m.keys.Cancel):
			if m.cancelOp != nil {
				logging.Info("cancel requested")
				m.cancelOp()
			}
			return m, nil
		case !m.State.Loading() && key.Matches(msg, m.keys.Login):
			return m.startLogin()
		}
		return m, nil

	case ScreenRecord, ScreenDetail:
		if key.Matches(msg, m.keys.Back) {
			return m.goBack()
		}
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen() {
	case ScreenRecords:
		updated, c := m.RecordsModel.Update(msg)
		m.RecordsModel = updated.(RecordsModel)
		cmd = c

	case ScreenRecord:
		updated, c := m.RecordModel.Update(msg)
		m.RecordModel = updated.(RecordModel)
		cmd = c

	case ScreenDetail:
		updated, c := m.DetailModel.Update(msg)
		m.DetailModel = updated.(DetailModel)
		cmd = c
	}

	return m, cmd
}

func (m AppModel) startLogin() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelOp = cancel
	m.LastError = nil
	m.Canceled = false
	logging.Info("login requested")
	return m, loginCmd(ctx, m.client)
}

func (m AppModel) startFetch() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelOp = cancel
	m.LastError = nil
	m.Canceled = false
	logging.Info("fetch requested")
	return m, fetchCmd(ctx, m.client)
}

// recordError keeps the outcome of an operation for display. The state is
// left as the client reports it.
func (m *AppModel) recordError(op string, err error) {
	switch {
	case err == nil:
		m.LastError = nil
	case client.IsCanceled(err):
		m.Canceled = true
		logging.Info(op+" canceled", zap.Error(err))
	default:
		m.LastError = err
		logging.Error(op+" failed", zap.Error(err))
	}
}

// releaseOp cancels the context of the running operation, if any.
func (m *AppModel) releaseOp() {
	if m.cancelOp != nil {
		m.cancelOp()
		m.cancelOp = nil
	}
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.releaseOp()
	m.stopWatch()
	return m, tea.Quit
}

// push opens a record or detail screen
func (m AppModel) push(f frame) (tea.Model, tea.Cmd) {
	record, ok := m.State.Record(f.recordID)
	if !ok {
		return m, nil
	}

	switch f.screen {
	case ScreenRecord:
		m.RecordModel = NewRecordModel(record, m.options.ShowIDs)
	case ScreenDetail:
		d, ok := record.Detail(f.detailID)
		if !ok {
			return m, nil
		}
		m.DetailModel = NewDetailModel(record.ID(), d, m.options.ShowIDs)
	}

	m.stack = append(m.stack, f)
	m.resize()
	logging.LogNavigation("push", string(f.screen), len(m.stack))
	return m, nil
}

// goBack pops the top screen
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	if len(m.stack) == 0 {
		return m, nil
	}
	m.stack = m.stack[:len(m.stack)-1]
	logging.LogNavigation("pop", string(m.CurrentScreen()), len(m.stack))
	return m, nil
}

// syncScreens refreshes every screen from m.State and pops screens whose
// record or detail no longer exists.
func (m *AppModel) syncScreens() {
	m.RecordsModel.SetRecords(m.State.Records)

	keep := 0
	for _, f := range m.stack {
		if !m.State.LoggedIn {
			break
		}
		record, ok := m.State.Record(f.recordID)
		if !ok {
			break
		}
		if f.screen == ScreenDetail {
			d, ok := record.Detail(f.detailID)
			if !ok {
				break
			}
			m.DetailModel.SetDetail(d)
		} else {
			m.RecordModel.SetRecord(record)
		}
		keep++
	}

	if keep < len(m.stack) {
		m.stack = m.stack[:keep]
		logging.LogNavigation("pop-stale", string(m.CurrentScreen()), keep)
	}
}

// resize propagates the terminal size to the root and every pushed screen
func (m *AppModel) resize() {
	w := CalculateBoxWidth(m.Width) - 6
	h := max(m.Height-chromeHeight, 3)
	m.RecordsModel.SetSize(w, h)
	for _, f := range m.stack {
		switch f.screen {
		case ScreenRecord:
			m.RecordModel.SetSize(w, h)
		case ScreenDetail:
			m.DetailModel.SetSize(w, h)
		}
	}
	m.Progress.Width = min(max(w-10, 20), 60)
	m.Help.Width = w
}

// View renders the current screen inside the application container
func (m AppModel) View() string {
	var content string
	var keys help.KeyMap

	switch m.CurrentScreen() {
	case ScreenRecords:
		content = m.RecordsModel.View()
		keys = m.keys.recordsHelp()
	case ScreenRecord:
		content = m.RecordModel.View()
		keys = m.keys.recordHelp()
		if m.RecordModel.Renaming {
			keys = m.keys.renameHelp()
		}
	case ScreenDetail:
		content = m.DetailModel.View()
		keys = m.keys.detailHelp()
	default:
		if m.State.Loading() {
			content = m.renderLoading()
			keys = m.keys.loadingHelp()
		} else {
			content = m.renderLogin()
			keys = m.keys.loginHelp()
		}
	}

	return RenderApplicationContainer(content, m.Help.View(keys), m.Width, m.Height)
}

// renderLogin renders the logged-out root screen
func (m AppModel) renderLogin() string {
	var b strings.Builder
	b.WriteString(RenderTitle("Welcome"))
	b.WriteString("\n")
	b.WriteString(ButtonStyle.Render("Login"))
	b.WriteString("\n\n")

	switch {
	case m.LastError != nil:
		b.WriteString(RenderError(fmt.Sprintf("Error during login: %v", m.LastError)))
	case m.Canceled:
		b.WriteString(WarningStyle.Render("Canceled. Press enter to try again."))
	default:
		b.WriteString(RenderSubtitle("Press enter to sign in."))
	}
	return b.String()
}

// renderLoading renders the spinner and a progress bar for the current delay
func (m AppModel) renderLoading() string {
	label := "Signing in..."
	if m.State.LoggedIn {
		label = "Fetching data sets..."
	}

	var b strings.Builder
	b.WriteString(RenderTitle("Loading"))
	b.WriteString("\n")
	b.WriteString(m.Spinner.View() + " " + label)
	b.WriteString("\n\n")
	b.WriteString(m.Progress.ViewAs(m.progressPercent()))
	b.WriteString("\n\n")
	b.WriteString(RenderSubtitle(fmt.Sprintf("Operations in flight: %d", m.State.FetchCount)))
	return b.String()
}

// progressPercent estimates how much of the current delay has elapsed
func (m AppModel) progressPercent() float64 {
	latency := m.client.Latency()
	if m.State.StartedAt.IsZero() || latency <= 0 {
		return 0
	}
	p := float64(m.now().Sub(m.State.StartedAt)) / float64(latency)
	return min(max(p, 0), 1)
}
