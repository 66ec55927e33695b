package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"cat-breed-search/internal/domain/breeds"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	sortActiveStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("86"))
	sortIdleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	nameStyle   = lipgloss.NewStyle().Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	imageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	noImgStyle  = lipgloss.NewStyle().Faint(true)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Cat breeds"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(sortLine(m.snap.Sort))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	s := m.snap
	switch {
	case s.Loading:
		return m.spinner.View() + " " + statusStyle.Render("Loading...")
	case s.Error != "":
		return errorStyle.Render("Error: " + s.Error)
	case s.Pending:
		return statusStyle.Render("Waiting for you to stop typing...")
	case utf8.RuneCountInString(s.Query) < m.minLen && len(s.Results) == 0:
		return statusStyle.Render(fmt.Sprintf("Type at least %d characters", m.minLen))
	case len(s.Results) == 0:
		return statusStyle.Render("No breeds found")
	default:
		return statusStyle.Render(fmt.Sprintf("%d breeds", len(s.Results)))
	}
}

func sortLine(st breeds.SortState) string {
	parts := make([]string, 0, len(breeds.SortKeys))
	for _, k := range breeds.SortKeys {
		label := k.Label()
		if st.Key == k {
			arrow := "▲"
			if st.Direction == breeds.Desc {
				arrow = "▼"
			}
			parts = append(parts, sortActiveStyle.Render(label+" "+arrow))
			continue
		}
		parts = append(parts, sortIdleStyle.Render(label))
	}
	return "Sort: " + strings.Join(parts, "  ")
}

func renderResults(items []breeds.EnrichedBreed, width int) string {
	if len(items) == 0 {
		return ""
	}
	wrap := lipgloss.NewStyle()
	if width > 4 {
		wrap = wrap.Width(width - 2)
	}

	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(nameStyle.Render(it.Name))
		b.WriteString("\n")

		details := make([]string, 0, 3)
		if it.Origin != "" {
			details = append(details, it.Origin)
		}
		if w := weightLabel(it.Weight); w != "" {
			details = append(details, "Weight: "+w)
		}
		if it.LifeSpan != "" {
			details = append(details, "Life span: "+it.LifeSpan+" years")
		}
		if len(details) > 0 {
			b.WriteString(detailStyle.Render(strings.Join(details, " · ")))
			b.WriteString("\n")
		}
		if it.Temperament != "" {
			b.WriteString(wrap.Render(detailStyle.Render(it.Temperament)))
			b.WriteString("\n")
		}
		if it.Description != "" {
			b.WriteString(wrap.Render(it.Description))
			b.WriteString("\n")
		}
		if it.WikipediaURL != "" {
			b.WriteString(detailStyle.Render(it.WikipediaURL))
			b.WriteString("\n")
		}
		if it.Image != nil && it.Image.URL != "" {
			b.WriteString(imageStyle.Render(it.Image.URL))
		} else {
			b.WriteString(noImgStyle.Render("(no image)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// weightLabel: "3 - 7 kg (7 - 14 lb)"; cualquiera de los dos puede faltar.
func weightLabel(w *breeds.Weight) string {
	if w == nil {
		return ""
	}
	switch {
	case w.Metric != "" && w.Imperial != "":
		return w.Metric + " kg (" + w.Imperial + " lb)"
	case w.Metric != "":
		return w.Metric + " kg"
	case w.Imperial != "":
		return w.Imperial + " lb"
	default:
		return ""
	}
}
