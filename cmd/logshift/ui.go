// # cmd/logshift/ui.go
package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"logshift/internal/app"
	"logshift/internal/lint"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	diagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list        list.Model
	diagnostics int
	fileCount   int
	lastUpdate  time.Time
}

type updateMsg struct {
	reportsByFile map[string][]lint.Report
	fileCount     int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.fileCount = msg.fileCount
		m.lastUpdate = time.Now()
		m.diagnostics = 0

		paths := make([]string, 0, len(msg.reportsByFile))
		for path := range msg.reportsByFile {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		items := []list.Item{}
		for _, path := range paths {
			for _, report := range msg.reportsByFile[path] {
				m.diagnostics++
				items = append(items, item{
					title: fmt.Sprintf("console.%s → moduleLogger.%s", report.Method, report.Method),
					desc:  fmt.Sprintf("%s:%d:%d", path, report.Location.Line, report.Location.Column),
				})
			}
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files",
		m.lastUpdate.Format("15:04:05"), m.fileCount))

	var summary string
	if m.diagnostics == 0 {
		summary = successStyle.Render("✅ No console calls")
	} else {
		summary = diagStyle.Render(fmt.Sprintf("⚠️  %d console call(s)", m.diagnostics))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Console Call Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Detected Console Calls"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}

func runUI(a *app.App) error {
	program := tea.NewProgram(initialModel(), tea.WithAltScreen())

	a.SetUpdateHandler(func(update app.Update) {
		program.Send(updateMsg{
			reportsByFile: update.ReportsByFile,
			fileCount:     update.FilesScanned,
		})
	})

	go func() {
		// Seed the list with the initial scan results.
		update := a.CurrentUpdate()
		program.Send(updateMsg{
			reportsByFile: update.ReportsByFile,
			fileCount:     update.FilesScanned,
		})
	}()

	_, err := program.Run()
	return err
}
