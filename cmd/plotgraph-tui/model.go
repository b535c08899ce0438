package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	gql "github.com/graphql-go/graphql"

	"github.com/dd0wney/plotgraph/pkg/analysis"
	"github.com/dd0wney/plotgraph/pkg/graphql"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	plotBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	summaryView view = iota
	unitsView
	verticesView
	plotView
	queryView
	viewCount
)

var tabNames = [viewCount]string{"Summary", "Units", "Vertices", "Plot", "Query"}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run query"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Up, k.Down},
		{k.Quit},
	}
}

type model struct {
	report      *analysis.Report
	schema      gql.Schema
	currentView view
	queryInput  textinput.Model
	unitTable   table.Model
	vertexTable table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	result      string
	message     string
	messageErr  bool
}

func newTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func initialModel(report *analysis.Report) (model, error) {
	schema, err := graphql.NewSchema(report)
	if err != nil {
		return model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "{ vertices(polyvalent: true) { label units } }"
	ti.CharLimit = 500
	ti.Width = 80

	unitRows := make([]table.Row, 0, len(report.Tellability.UnitCounts))
	for _, c := range report.Tellability.UnitCounts {
		unitRows = append(unitRows, table.Row{c.Unit, strconv.Itoa(c.Count)})
	}

	vertexRows := make([]table.Row, 0, report.Graph.VertexCount())
	for _, v := range report.Graph.Vertices() {
		character := ""
		if root := report.Graph.CharacterOf(v.ID()); root != nil {
			character = root.Label()
		}
		vertexRows = append(vertexRows, table.Row{
			strconv.FormatUint(uint64(v.ID()), 10),
			character,
			v.Type().String(),
			v.String(),
			strings.Join(v.Emotions(), ", "),
			strings.Join(v.Units(), ", "),
		})
	}

	return model{
		report:      report,
		schema:      schema,
		currentView: summaryView,
		queryInput:  ti,
		unitTable: newTable([]table.Column{
			{Title: "Unit", Width: 34},
			{Title: "Count", Width: 6},
		}, unitRows),
		vertexTable: newTable([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Character", Width: 12},
			{Title: "Type", Width: 10},
			{Title: "Label", Width: 40},
			{Title: "Emotions", Width: 16},
			{Title: "Units", Width: 40},
		}, vertexRows),
		help: help.New(),
		keys: keys,
	}, nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.setView((m.currentView + 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.setView((m.currentView + viewCount - 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			if m.currentView == queryView && m.queryInput.Focused() {
				m.executeQuery()
				return m, nil
			}
		}
	}

	// Update focused component
	switch m.currentView {
	case queryView:
		m.queryInput, cmd = m.queryInput.Update(msg)
	case unitsView:
		m.unitTable, cmd = m.unitTable.Update(msg)
	case verticesView:
		m.vertexTable, cmd = m.vertexTable.Update(msg)
	}

	return m, cmd
}

func (m *model) setView(v view) {
	m.currentView = v
	if v == queryView {
		m.queryInput.Focus()
	} else {
		m.queryInput.Blur()
	}
}

func (m *model) executeQuery() {
	queryStr := strings.TrimSpace(m.queryInput.Value())
	if queryStr == "" {
		m.message = "Query cannot be empty"
		m.messageErr = true
		return
	}

	result := graphql.ExecuteWithDepthLimit(m.schema, queryStr, graphql.DefaultMaxDepth, nil)
	if result.HasErrors() {
		m.message = result.Errors[0].Message
		m.messageErr = true
		m.result = ""
		return
	}

	data, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		m.message = fmt.Sprintf("Failed to render result: %v", err)
		m.messageErr = true
		return
	}
	m.result = string(data)
	m.message = "Query executed"
	m.messageErr = false
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("plotgraph · " + m.report.Name))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case summaryView:
		s.WriteString(m.renderSummary())
	case unitsView:
		s.WriteString(contentStyle.Render(headerStyle.Render("Functional Units") + "\n\n" + m.unitTable.View()))
	case verticesView:
		s.WriteString(contentStyle.Render(headerStyle.Render("Vertices") + "\n\n" + m.vertexTable.View()))
	case plotView:
		s.WriteString(m.renderPlot())
	case queryView:
		s.WriteString(m.renderQuery())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	rendered := make([]string, 0, len(tabNames))
	for i, tab := range tabNames {
		if view(i) == m.currentView {
			rendered = append(rendered, activeTabStyle.Render(tab))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m model) renderSummary() string {
	tell := m.report.Tellability

	score := fmt.Sprintf(`Tellability
━━━━━━━━━━━━━━━
Score:       %.4f

Functional units:      %d
Polyvalent vertices:   %d / %d
Productive conflicts:  %d
Suspense:              %d
Plot length:           %d`,
		m.report.Score,
		tell.FunctionalUnits,
		tell.PolyvalentVertices, tell.AllVertices,
		tell.ProductiveConflicts,
		tell.Suspense,
		tell.PlotLength,
	)

	conn := m.report.Connectivity
	structure := fmt.Sprintf(`Unit Graph
━━━━━━━━━━━━━━━
Instances:   %d
Overlaps:    %d
Components:  %d
Largest:     %d

Plot Graph
━━━━━━━━━━━━━━━
Characters:  %d
Vertices:    %d
Edges:       %d`,
		conn.Instances,
		conn.Overlaps,
		conn.Components,
		conn.LargestComponent,
		len(m.report.Graph.Roots()),
		m.report.Graph.VertexCount(),
		m.report.Graph.EdgeCount(),
	)

	return contentStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top, statsBoxStyle.Render(score), statsBoxStyle.Render(structure)),
	)
}

// renderPlot draws each character's spine with the overlay edges leaving
// every event
func (m model) renderPlot() string {
	g := m.report.Graph
	if len(g.Roots()) == 0 {
		return contentStyle.Render(helpStyle.Render("No characters in this plot"))
	}

	columns := make([]string, 0, len(g.Roots()))
	for _, root := range g.Roots() {
		var s strings.Builder
		s.WriteString("◉ " + root.Label() + "\n")
		for _, v := range g.Spine(root.ID()) {
			fmt.Fprintf(&s, "│\n├ %s [%s]\n", v, v.Type())
			for _, e := range g.OutEdges(v.ID()) {
				if e.Type.IsSpine() {
					continue
				}
				if to := g.Vertex(e.To); to != nil {
					fmt.Fprintf(&s, "│   └─[%s]→ %s\n", e.Type, to.Label())
				}
			}
		}
		columns = append(columns, plotBoxStyle.Render(s.String()))
	}

	return contentStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
}

func (m model) renderQuery() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("GraphQL Console"))
	s.WriteString("\n\n")
	s.WriteString(m.queryInput.View())

	if m.result != "" {
		s.WriteString("\n\n")
		s.WriteString(truncateLines(m.result, max(m.height-16, 5)))
	} else {
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("Examples:\n"))
		s.WriteString(helpStyle.Render("  { units(detected: true) { unit count } }\n"))
		s.WriteString(helpStyle.Render("  { characters { name spine { label emotions } } }\n"))
	}

	return contentStyle.Render(s.String())
}

func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + fmt.Sprintf("\n... %d more lines", len(lines)-n)
}
