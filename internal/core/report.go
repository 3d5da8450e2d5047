package core

import "sort"

// ChartRow is one bar of the weekly distribution chart: a resolved category
// name, its item count, and the display color.
type ChartRow struct {
	Name  string
	Count int
	Color string
}

// WeeklyReport is the derived view of one week's work: the window itself,
// the items inside it (newest first) and the per-category chart rows.
type WeeklyReport struct {
	Window Window
	Items  []WorkItem
	Chart  []ChartRow
}

// FilterWindow returns the items whose timestamp falls inside the window,
// inclusive on both ends, preserving input order.
func FilterWindow(items []WorkItem, w Window) []WorkItem {
	var out []WorkItem
	for _, it := range items {
		if w.Contains(it.Timestamp) {
			out = append(out, it)
		}
	}
	return out
}

// GroupCounts tallies items per CategoryID within the window. Each item
// contributes exactly one count to its bucket; no deduplication. An empty
// input yields an empty map.
func GroupCounts(items []WorkItem, w Window) map[string]int {
	counts := make(map[string]int)
	for _, it := range items {
		if w.Contains(it.Timestamp) {
			counts[it.CategoryID]++
		}
	}
	return counts
}

// BuildChartRows resolves grouped counts against the category set. Counts
// whose category no longer exists collapse into a single "Unknown" row with
// a neutral color. Rows are sorted by name so output is deterministic.
func BuildChartRows(counts map[string]int, categories []Category) []ChartRow {
	byName := make(map[string]*ChartRow)
	for catID, n := range counts {
		name := UnknownCategoryName
		color := UnknownCategoryColor
		if c, ok := CategoryByID(categories, catID); ok {
			name = c.Name
			color = c.Color
		}
		if row, ok := byName[name]; ok {
			row.Count += n
			continue
		}
		byName[name] = &ChartRow{Name: name, Count: n, Color: color}
	}

	rows := make([]ChartRow, 0, len(byName))
	for _, row := range byName {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
