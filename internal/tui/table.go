package tui

import (
	"cat-breed-search/internal/domain/breeds"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderTable imprime resultados para la salida no interactiva (catsearch search).
func RenderTable(items []breeds.EnrichedBreed) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "ORIGIN", "WEIGHT (KG)", "LIFE SPAN", "IMAGE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, it := range items {
		weight := ""
		if it.Weight != nil {
			weight = it.Weight.Metric
		}
		img := "-"
		if it.Image != nil && it.Image.URL != "" {
			img = it.Image.URL
		}
		t.Row(it.Name, it.Origin, weight, it.LifeSpan, img)
	}
	return t.String()
}
