package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vvsong/internal/models"
	"github.com/desertthunder/vvsong/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FileListView ViewState = iota
	ConfirmView
	InjectView
	OverwriteView
	ResultView
)

// Injector runs an injection batch. [tasks.MergeEngine] implements it.
type Injector interface {
	Run(ctx context.Context, batch *tasks.Batch, progress chan<- tasks.ProgressUpdate) (*models.BatchReport, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	cancel       context.CancelFunc
	view         ViewState
	batch        *tasks.Batch
	engine       Injector
	width        int
	height       int
	fileList     list.Model
	bar          progress.Model
	progressChan chan tasks.ProgressUpdate
	requests     chan overwriteRequest
	finished     chan struct{}
	progress     tasks.ProgressUpdate
	pending      *overwriteRequest
	sticky       *bool
	report       *models.BatchReport
	runErr       error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model for batch. newEngine receives the decider
// that routes duplicate questions to the overwrite view.
func NewModel(ctx context.Context, batch *tasks.Batch, newEngine func(tasks.Decider) Injector) *Model {
	ctx, cancel := context.WithCancel(ctx)
	m := &Model{
		ctx:      ctx,
		cancel:   cancel,
		view:     FileListView,
		batch:    batch,
		requests: make(chan overwriteRequest),
		bar:      progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
		keys:     newKeyMap(),
	}
	m.engine = newEngine(m.decider())
	m.fileList = list.New(fileItems(batch.Files), list.NewDefaultDelegate(), 0, 0)
	m.fileList.Title = "Presentations to inject"
	return m
}

// Init implements [tea.Model]; the file list needs no loading.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetSize(msg.Width-4, msg.Height-8)
		m.bar.Width = min(msg.Width-4, 80)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FileListView:
			return m.handleFileListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case InjectView:
			return m.handleInjectKeys(msg)
		case OverwriteView:
			return m.handleOverwriteKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgProgressUpdate:
			m.progress = msg.data.(tasks.ProgressUpdate)
			return m, m.waitForEvent()
		case MsgOverwriteRequest:
			req := msg.data.(overwriteRequest)
			if m.sticky != nil {
				req.reply <- *m.sticky
				return m, m.waitForEvent()
			}
			m.pending = &req
			m.view = OverwriteView
			return m, nil
		case MsgInjectComplete:
			m.view = ResultView
			return m, nil
		}
	}

	if m.view == FileListView {
		var cmd tea.Cmd
		m.fileList, cmd = m.fileList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FileListView:
		return m.renderFileList()
	case ConfirmView:
		return m.renderConfirm()
	case InjectView:
		return m.renderInject()
	case OverwriteView:
		return m.renderOverwrite()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

// Wait blocks until a started batch has finished and returns its report.
// It returns nil, nil when no batch was started.
func (m *Model) Wait() (*models.BatchReport, error) {
	if m.finished == nil {
		return nil, nil
	}
	<-m.finished
	return m.report, m.runErr
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m *Model) handleFileListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.fileList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.fileList, cmd = m.fileList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()
	case key.Matches(msg, m.keys.enter):
		m.view = ConfirmView
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if len(m.fileList.Items()) > 0 {
			m.fileList.RemoveItem(m.fileList.Index())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()
	case "n", "esc":
		m.view = FileListView
		return m, nil
	case "y":
		m.view = InjectView
		return m, m.startInjection()
	}
	return m, nil
}

func (m *Model) handleInjectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m.quit()
	}
	return m, nil
}

func (m *Model) handleOverwriteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m.answer(true)
	case key.Matches(msg, m.keys.no):
		return m.answer(false)
	case key.Matches(msg, m.keys.all):
		yes := true
		m.sticky = &yes
		return m.answer(true)
	case key.Matches(msg, m.keys.skip):
		no := false
		m.sticky = &no
		return m.answer(false)
	case key.Matches(msg, m.keys.quit):
		m.answer(false)
		return m.quit()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter", "esc":
		return m.quit()
	}
	return m, nil
}

// answer replies to the pending overwrite question and resumes listening.
func (m *Model) answer(ok bool) (tea.Model, tea.Cmd) {
	if m.pending != nil {
		m.pending.reply <- ok
		m.pending = nil
	}
	m.view = InjectView
	return m, m.waitForEvent()
}

// decider routes the batch's questions into the event loop and waits for the answer.
func (m *Model) decider() tasks.Decider {
	requests := m.requests
	return tasks.DecisionFunc(func(ctx context.Context, name string) bool {
		reply := make(chan bool, 1)
		select {
		case requests <- overwriteRequest{name: name, reply: reply}:
		case <-ctx.Done():
			return false
		}
		select {
		case ok := <-reply:
			return ok
		case <-ctx.Done():
			return false
		}
	})
}

func (m *Model) startInjection() tea.Cmd {
	files := make([]string, 0, len(m.fileList.Items()))
	for _, item := range m.fileList.Items() {
		if f, ok := item.(fileItem); ok {
			files = append(files, f.path)
		}
	}
	m.batch.Files = files
	m.progress = tasks.ProgressUpdate{Total: len(files)}

	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.finished = make(chan struct{})
	progressChan, finished := m.progressChan, m.finished

	go func() {
		report, err := m.engine.Run(m.ctx, m.batch, progressChan)
		m.report = report
		m.runErr = err
		close(finished)
		close(progressChan)
	}()

	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	progressChan, requests := m.progressChan, m.requests
	return func() tea.Msg {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return injectCompleteMsg()
			}
			return progressUpdateMsg(update)
		case req := <-requests:
			return overwriteRequestMsg(req)
		}
	}
}

func (m *Model) renderFileList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.remove, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.fileList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	n := len(m.fileList.Items())
	title := styles.title.Render(fmt.Sprintf("Inject %d file(s) into the database?", n))
	info := styles.help.Render(fmt.Sprintf("\nDatabase: %s\nFont: %s\nCategory: %s\n",
		m.batch.StorePath, m.batch.Settings.DefaultFont, m.batch.Settings.DefaultCategory))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderInject() string {
	title := styles.title.Render("Injecting Songs")

	percent := 0.0
	if m.progress.Total > 0 {
		percent = float64(m.progress.Step) / float64(m.progress.Total)
	}
	counter := fmt.Sprintf("%d/%d files", m.progress.Step, m.progress.Total)

	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s", title, m.bar.ViewAs(percent), counter, m.progress.Message)
}

func (m *Model) renderOverwrite() string {
	title := styles.warn.Render("Duplicate Song")
	name := ""
	if m.pending != nil {
		name = m.pending.name
	}
	question := fmt.Sprintf("\n\nA song named '%s' already exists. Overwrite it?\n", name)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.all, m.keys.skip}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, question, helpView)
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})

	if m.runErr != nil {
		return styles.err.Render(fmt.Sprintf("Injection failed: %v", m.runErr)) + "\n\n" + helpView
	}
	if m.report == nil {
		return styles.err.Render("No result available") + "\n\n" + helpView
	}

	var b strings.Builder
	b.WriteString(styles.ok.Render("✓ Injection Complete!"))
	b.WriteString("\n")

	if succeeded := m.report.Succeeded(); len(succeeded) > 0 {
		b.WriteString("\nAdded/Updated Songs:\n")
		for _, o := range succeeded {
			b.WriteString("  • " + styles.Outcome(o.Status).Render(o.Label()) + "\n")
		}
	}

	if failed := m.report.Failed(); len(failed) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.warn.Render("Failed Files:"))
		b.WriteString("\n")
		for _, o := range failed {
			b.WriteString("  • " + styles.Outcome(o.Status).Render(o.Label()) + "\n")
		}
	}

	return fmt.Sprintf("%s\n%s", b.String(), helpView)
}
