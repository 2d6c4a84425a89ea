package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Per-module verdicts shown in the browser.
const (
	statusOK         = "ok"
	statusViolation  = "violation"
	statusMissing    = "missing"
	statusCycle      = "cycle"
	statusUnverified = "—"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// moduleItem is one browsable row: a module with its place in the canonical
// order and, when an order file was checked, its verification verdict.
type moduleItem struct {
	ID          string
	CanonicalAt int // index in the canonical order, -1 for cycle members
	RecordedAt  int // index in the recorded order, -1 when absent
	Prereqs     []string
	Status      string
}

// ModuleListModel is the bubbletea model for the module browser.
type ModuleListModel struct {
	Items    []moduleItem
	Verified bool // whether a recorded order was checked
	Cursor   int
	Height   int
	Offset   int
}

// NewModuleListModel creates a module browser over the given rows.
func NewModuleListModel(items []moduleItem, verified bool) ModuleListModel {
	return ModuleListModel{
		Items:    items,
		Verified: verified,
		Height:   15,
	}
}

func (m ModuleListModel) Init() tea.Cmd {
	return nil
}

func (m ModuleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "g":
			m.Cursor = 0
			m.Offset = 0
		case "G":
			m.Cursor = len(m.Items) - 1
			if m.Cursor >= m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ModuleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Modules in build order"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G jump  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		item := m.Items[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		prereqs := "—"
		if len(item.Prereqs) > 0 {
			prereqs = strings.Join(item.Prereqs, ", ")
		}

		row := []string{cursor, position(item.CanonicalAt), item.ID, prereqs}
		if m.Verified {
			row = append(row, position(item.RecordedAt), item.Status)
		}
		rows = append(rows, row)
	}

	headers := []string{"", "#", "Module", "Prerequisites"}
	if m.Verified {
		headers = append(headers, "Recorded", "Status")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			item := m.Items[actualIdx]

			base := lipgloss.NewStyle().Padding(0, 1)
			switch item.Status {
			case statusViolation, statusMissing, statusCycle:
				base = base.Foreground(colorRed)
			case statusOK:
				if col == len(headers)-1 {
					base = base.Foreground(colorGreen)
				} else {
					base = base.Foreground(colorWhite)
				}
			default:
				base = base.Foreground(colorGray)
			}
			if actualIdx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}
