package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kem-a/AppManager/internal/update"
)

// BatchUI is a live view over a running batch: one row per app, a spinner
// while its task is in flight, and a status glyph once it settles. It is the
// reference consumer of the engine's event stream.
type BatchUI struct {
	events <-chan update.Event
	done   <-chan struct{}

	spin spinner.Model
	rows map[string]*batchRow
	apps []string // insertion order

	// render cache: skip rebuilding the view when nothing changed
	lastHash uint64
	cached   string
}

type batchRow struct {
	app     string
	state   update.EventKind
	reason  update.SkipReason
	version string
	message string
}

type eventMsg update.Event
type batchDoneMsg struct{}

var (
	styleApp     = lipgloss.NewStyle().Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleSkip    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleFail    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWorking = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// NewBatchUI builds the model. events carries the engine's lifecycle stream;
// done is closed when the batch returns.
func NewBatchUI(events <-chan update.Event, done <-chan struct{}) *BatchUI {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &BatchUI{
		events: events,
		done:   done,
		spin:   s,
		rows:   make(map[string]*batchRow),
	}
}

// RunBatchUI drives the model until the batch completes.
func RunBatchUI(events <-chan update.Event, done <-chan struct{}) error {
	_, err := tea.NewProgram(NewBatchUI(events, done)).Run()
	return err
}

func (m *BatchUI) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.waitEvent())
}

func (m *BatchUI) waitEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case e, ok := <-m.events:
			if !ok {
				return batchDoneMsg{}
			}
			return eventMsg(e)
		case <-m.done:
			return batchDoneMsg{}
		}
	}
}

func (m *BatchUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case eventMsg:
		m.apply(update.Event(msg))
		return m, m.waitEvent()
	case batchDoneMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BatchUI) apply(e update.Event) {
	row, ok := m.rows[e.App]
	if !ok {
		row = &batchRow{app: e.App}
		m.rows[e.App] = row
		m.apps = append(m.apps, e.App)
	}
	row.state = e.Kind
	row.reason = e.Reason
	if e.Version != "" {
		row.version = e.Version
	}
	if e.Message != "" {
		row.message = e.Message
	}
}

func (m *BatchUI) View() string {
	var b strings.Builder

	apps := make([]string, len(m.apps))
	copy(apps, m.apps)
	sort.Strings(apps)

	for _, app := range apps {
		row := m.rows[app]
		b.WriteString(m.renderRow(row))
		b.WriteByte('\n')
	}

	content := b.String()
	h := xxhash.Sum64String(content + m.spin.View())
	if h == m.lastHash && m.cached != "" {
		return m.cached
	}
	m.lastHash = h
	m.cached = content
	return content
}

func (m *BatchUI) renderRow(row *batchRow) string {
	name := styleApp.Render(fmt.Sprintf("%-24s", row.app))
	switch row.state {
	case update.EventChecking:
		return fmt.Sprintf("%s %s %s", m.spin.View(), name, styleWorking.Render("checking..."))
	case update.EventDownloading:
		detail := "downloading..."
		if row.version != "" {
			detail = "downloading " + row.version + "..."
		}
		return fmt.Sprintf("%s %s %s", m.spin.View(), name, styleWorking.Render(detail))
	case update.EventSucceeded:
		detail := "done"
		if row.version != "" {
			detail = row.version
		}
		return fmt.Sprintf("%s %s %s", styleOK.Render("✓"), name, detail)
	case update.EventSkipped:
		return fmt.Sprintf("%s %s %s", styleSkip.Render("○"), name, styleSkip.Render(string(row.reason)))
	case update.EventFailed:
		return fmt.Sprintf("%s %s %s", styleFail.Render("✗"), name, styleFail.Render(row.message))
	}
	return name
}
