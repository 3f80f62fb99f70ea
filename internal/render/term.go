package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"top-movers-server/internal/market"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

type TermTable struct {
	Title string
	Rows  [][]string
}

// TermSurface collects output for a terminal; String renders it.
type TermSurface struct {
	tables []TermTable
	err    string
	status string
}

func NewTermSurface() *TermSurface {
	return &TermSurface{}
}

func (s *TermSurface) Reset() {
	s.tables = nil
	s.err = ""
}

func (s *TermSurface) AppendTable(title string, rows []market.Quote) {
	t := TermTable{Title: title, Rows: make([][]string, 0, len(rows))}
	for _, q := range rows {
		t.Rows = append(t.Rows, Cells(q))
	}
	s.tables = append(s.tables, t)
}

func (s *TermSurface) ShowError(message string) {
	s.Reset()
	s.err = message
}

func (s *TermSurface) SetStatus(text string) {
	s.status = text
}

func (s *TermSurface) Tables() []TermTable {
	return s.tables
}

func (s *TermSurface) Err() string {
	return s.err
}

func (s *TermSurface) Status() string {
	return s.status
}

func (s *TermSurface) String() string {
	var b strings.Builder
	if s.err != "" {
		b.WriteString(errorStyle.Render(s.err))
		b.WriteString("\n")
	}
	for _, t := range s.tables {
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n")
		tbl := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(Columns...).
			Rows(t.Rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		b.WriteString(tbl.String())
		b.WriteString("\n")
	}
	if s.status != "" {
		b.WriteString(statusStyle.Render(s.status))
		b.WriteString("\n")
	}
	return b.String()
}
