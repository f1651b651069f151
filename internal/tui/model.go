package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sargonas/stellar-forge/internal/astro"
	"github.com/sargonas/stellar-forge/internal/universe"
)

// Model is the root BubbleTea model for the catalog browser: a system
// list on the left, and the selected system's stars and planets on the
// right. There is exactly one screen — no screen-routing enum is
// needed the way the teacher's multi-screen Model requires one.
type Model struct {
	catalog *universe.Catalog
	systems []*astro.StellarSystem

	cursor int
	width  int
	height int
}

// New builds a Model over cat. Systems are listed in catalog order.
func New(cat *universe.Catalog) Model {
	return Model{
		catalog: cat,
		systems: cat.Systems,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.ClearScreen
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.systems)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			if len(m.systems) > 0 {
				m.cursor = len(m.systems) - 1
			}
		}
	}

	return m, nil
}

func (m Model) View() string {
	var header strings.Builder
	header.WriteString(TitleStyle.Render("Stellar Catalog Browser"))
	header.WriteString("\n")
	header.WriteString(MutedStyle.Render(fmt.Sprintf(
		"%d systems, %d abandoned during generation", len(m.systems), m.catalog.SystemsAbandoned)))
	header.WriteString("\n\n")

	listWidth := 32
	if m.width > 0 {
		listWidth = m.width/3 + 8
	}

	list := borderStyle.Width(listWidth).Render(m.renderSystemList())

	var detail string
	if len(m.systems) > 0 {
		detail = borderStyle.Render(m.renderDetail(m.systems[m.cursor]))
	} else {
		detail = borderStyle.Render(MutedStyle.Render("no systems in this catalog"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)

	footer := MutedStyle.Render("↑/k up · ↓/j down · g/G top/bottom · q/esc quit")

	return header.String() + body + "\n\n" + footer
}

func (m Model) renderSystemList() string {
	if len(m.systems) == 0 {
		return MutedStyle.Render("(empty)")
	}

	var sb strings.Builder
	for i, sys := range m.systems {
		line := fmt.Sprintf("%-20s %2d★ %2d●", truncate(sys.Name, 20), sys.StarCount(), sys.PlanetCount())
		if i == m.cursor {
			sb.WriteString(SelectedStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderDetail(sys *astro.StellarSystem) string {
	var sb strings.Builder
	sb.WriteString(HighlightStyle.Render(sys.Name))
	sb.WriteString("\n")
	sb.WriteString(MutedStyle.Render(fmt.Sprintf("seed %d, position (%.1f, %.1f, %.1f) pc",
		sys.Seed, sys.BaryCenter.Position.X, sys.BaryCenter.Position.Y, sys.BaryCenter.Position.Z)))
	sb.WriteString("\n\n")

	sb.WriteString(TitleStyle.Render("Stars"))
	sb.WriteString("\n")
	for i := range sys.Stars {
		s := &sys.Stars[i]
		sb.WriteString(fmt.Sprintf("  %-16s %-6s %6.2f M☉  %6.0f K  %s\n",
			s.Name, s.SpectralClass, s.MassSol, s.EffectiveTempK, s.Phase.String()))
	}

	if len(sys.Planets) > 0 {
		sb.WriteString("\n")
		sb.WriteString(TitleStyle.Render("Planets"))
		sb.WriteString("\n")
		for i := range sys.Planets {
			p := &sys.Planets[i]
			line := fmt.Sprintf("  %-16s %-18s %7.2f M⊕  %6.0f K",
				p.Name, p.Type.String(), p.MassEarth, p.SurfaceTempK)
			if p.HasLife() {
				line += "  " + LifeStyle.Render(p.Civilization.Phase.String())
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
