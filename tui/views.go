package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"movielist-cli/model"
)

type catalogItem struct {
	item   model.CatalogItem
	recent bool
}

func (c catalogItem) Title() string {
	title := c.item.Title
	if title == "" {
		title = fmt.Sprintf("#%d", c.item.ID)
	}
	if c.recent {
		title += " ·"
	}
	return title
}

func (c catalogItem) Description() string {
	parts := []string{typeName(c.item.Type)}
	if c.item.Rating != nil {
		parts = append(parts, fmt.Sprintf("★ %.1f", *c.item.Rating))
	}
	if c.item.PosterURL == nil || *c.item.PosterURL == "" {
		parts = append(parts, "no poster")
	}
	return strings.Join(parts, " • ")
}

func (c catalogItem) FilterValue() string {
	return c.item.Title
}

type entryItem struct {
	entry model.WatchlistEntry
}

func (e entryItem) Title() string {
	if e.entry.Title == "" {
		return fmt.Sprintf("#%d", e.entry.MovieID)
	}
	return e.entry.Title
}

func (e entryItem) Description() string {
	return e.entry.DisplayYear() + " • " + e.entry.DisplayGenre()
}

func (e entryItem) FilterValue() string {
	return e.entry.Title
}

func typeName(t model.ItemType) string {
	switch t {
	case model.TypeMovie:
		return "Movie"
	case model.TypeShow:
		return "TV Show"
	default:
		return string(t)
	}
}

func (m appModel) catalogView() string {
	search := m.search.View()
	if len(m.catalog.Items()) > 0 && len(m.catalog.Displayed()) == 0 {
		return search + "\n\n" + hint("No titles match the current filters.")
	}
	if m.catalog.Columns() > 1 {
		return search + "\n\n" + m.gridView()
	}
	return search + "\n\n" + m.itemList.View()
}

// gridView lays the displayed items out in rows of catalog.Columns cells and
// pages so the selected cell stays visible.
func (m appModel) gridView() string {
	displayed := m.catalog.Displayed()
	cols := m.catalog.Columns()
	width := m.width
	if width <= 0 {
		width = 80
	}
	cellWidth := max(16, (width-2*cols)/cols-2)

	rowsPerPage := 4
	if m.height > 0 {
		rowsPerPage = max(1, (m.height-12)/4)
	}
	cursor := m.itemList.Index()
	cursorRow := cursor / cols
	startRow := (cursorRow / rowsPerPage) * rowsPerPage
	totalRows := (len(displayed) + cols - 1) / cols

	cell := lipgloss.NewStyle().
		Width(cellWidth).
		Padding(0, 1).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	selected := cell.BorderForeground(lipgloss.Color("63")).Bold(true)

	rows := make([]string, 0, rowsPerPage)
	for row := startRow; row < totalRows && row < startRow+rowsPerPage; row++ {
		cells := make([]string, 0, cols)
		for col := 0; col < cols; col++ {
			index := row*cols + col
			if index >= len(displayed) {
				break
			}
			entry := catalogItem{item: displayed[index], recent: m.recent[displayed[index].ID]}
			content := fmt.Sprintf("[%s] %s\n%s", displayed[index].Initial(), entry.Title(), hint(entry.Description()))
			style := cell
			if index == cursor {
				style = selected
			}
			cells = append(cells, style.Render(content))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	pages := (totalRows + rowsPerPage - 1) / rowsPerPage
	footer := hint(fmt.Sprintf("%d titles • page %d/%d", len(displayed), startRow/rowsPerPage+1, max(1, pages)))
	return strings.Join(rows, "\n") + "\n" + footer
}

func (m appModel) renderDetail() string {
	d := m.detail
	width := m.width
	if width <= 0 {
		width = 80
	}
	textWidth := min(width-6, 84)

	chip := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 1)

	poster := hint("Poster: " + d.Item().Initial())
	if d.PosterURL != nil && *d.PosterURL != "" {
		poster = hint("Poster: " + *d.PosterURL)
	}

	meta := []string{fmt.Sprintf("★ %.1f", d.Rating)}
	if year := d.ReleaseDate.Year(); year != "" {
		meta = append(meta, year)
	}
	meta = append(meta, typeName(d.Type))

	genres := make([]string, 0, len(d.Genre))
	for _, g := range d.Genre {
		genres = append(genres, chip.Render(g))
	}

	description := d.Description
	if description == "" {
		description = "No overview available."
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(d.Title),
		strings.Join(meta, " • "),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(genres, " ")),
		"",
		poster,
		"",
		lipgloss.NewStyle().Bold(true).Render("Overview"),
		lipgloss.NewStyle().Width(textWidth).Render(description),
	}
	if d.ReleaseDate.IsZero() {
		lines = append(lines, "", hint("Release date unknown"))
	} else {
		lines = append(lines, "", hint("Released "+d.ReleaseDate.Format("January 2, 2006")))
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63"))
	return panel.Render(strings.Join(lines, "\n"))
}

func (m appModel) bucketTabs() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("63")).
		Padding(0, 2)
	inactive := lipgloss.NewStyle().Faint(true).Padding(0, 2)

	tabs := make([]string, 0, len(model.Statuses))
	for _, status := range model.Statuses {
		label := fmt.Sprintf("%s (%d)", status, len(m.myList.Bucket(status)))
		if status == m.bucket {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m appModel) myListView() string {
	tabs := m.bucketTabs()
	if len(m.myList.Bucket(m.bucket)) == 0 {
		empty := lipgloss.NewStyle().Bold(true).Render("No movies found")
		return tabs + "\n\n" + empty + "\n" + hint(fmt.Sprintf("Your %s list is empty. Start adding some movies!", strings.ToLower(string(m.bucket))))
	}
	return tabs + "\n\n" + m.bucketList.View()
}
