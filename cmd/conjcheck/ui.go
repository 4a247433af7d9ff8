// # cmd/conjcheck/ui.go
package main

import (
	"conjcheck/internal/scan"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	consistencyStyle = lipgloss.NewStyle().
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
	isGroup     bool
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list          list.Model
	languageCount int
	recordCount   int
	validCount    int
	errorCount    int
	lastUpdate    time.Time
}

type updateMsg struct {
	result *scan.Result
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
		m.languageCount = len(msg.result.Groups)
		m.recordCount = msg.result.Counters.TotalRecords
		m.validCount = msg.result.Counters.ValidRecords
		m.errorCount = msg.result.Counters.ErrorTotal()
		m.lastUpdate = time.Now()
		m.list.SetItems(collectItems(msg.result))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last run: %v | %d languages | %d records",
		m.lastUpdate.Format("15:04:05"), m.languageCount, m.recordCount))

	var summary string
	if m.errorCount == 0 {
		summary = successStyle.Render("✅ Corpus Valid")
	} else {
		summary = fmt.Sprintf("⚠️  %s | %s",
			violationStyle.Render(fmt.Sprintf("%d Errors", m.errorCount)),
			consistencyStyle.Render(fmt.Sprintf("%d/%d Valid", m.validCount, m.recordCount)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Conjugation Corpus Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func collectItems(result *scan.Result) []list.Item {
	items := []list.Item{}

	for _, s := range result.Structural {
		items = append(items, item{
			title:   "Structural Error",
			desc:    s,
			isGroup: false,
		})
	}

	for _, group := range result.Groups {
		for _, s := range group.Structural {
			items = append(items, item{
				title:   fmt.Sprintf("Structural Error (%s)", group.Language),
				desc:    s,
				isGroup: true,
			})
		}
		for _, v := range group.GroupVerdicts {
			if v.Passed {
				continue
			}
			for _, d := range v.Diagnostics {
				items = append(items, item{
					title:   fmt.Sprintf("%s (%s)", v.Rule, group.Language),
					desc:    d,
					isGroup: true,
				})
			}
		}
		for _, rec := range group.Records {
			for _, v := range rec.Verdicts {
				if v.Passed {
					continue
				}
				for _, d := range v.Diagnostics {
					items = append(items, item{
						title:   fmt.Sprintf("%s (%s/%s)", v.Rule, group.Language, rec.Name),
						desc:    d,
						isGroup: false,
					})
				}
			}
		}
	}

	return items
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Validation Problems"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}
