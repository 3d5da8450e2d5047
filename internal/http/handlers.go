package http

import (
	"net/http"
	"time"

	"worklog/internal/core"
	"worklog/internal/log"
)

// itemView is a work item enriched with its resolved category for display.
type itemView struct {
	core.WorkItem
	CategoryName  string
	CategoryColor string
	TimeLabel     string
}

// chartView is one chart bar with a precomputed width percentage.
type chartView struct {
	core.ChartRow
	Percent int
}

func buildItemViews(items []core.WorkItem, categories []core.Category) []itemView {
	views := make([]itemView, len(items))
	for i, it := range items {
		name := core.UnknownCategoryName
		color := core.UnknownCategoryColor
		if c, ok := core.CategoryByID(categories, it.CategoryID); ok {
			name = c.Name
			color = c.Color
		}
		views[i] = itemView{
			WorkItem:      it,
			CategoryName:  name,
			CategoryColor: color,
			TimeLabel:     core.FormatDateTime(it.Timestamp),
		}
	}
	return views
}

func buildChartViews(rows []core.ChartRow) []chartView {
	max := 0
	for _, row := range rows {
		if row.Count > max {
			max = row.Count
		}
	}
	views := make([]chartView, len(rows))
	for i, row := range rows {
		percent := 0
		if max > 0 {
			percent = row.Count * 100 / max
		}
		views[i] = chartView{ChartRow: row, Percent: percent}
	}
	return views
}

// render executes a view template, reporting template problems as a 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded",
			log.FieldPath, r.URL.Path,
			log.FieldOperation, log.OpRender)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Template render failed",
			log.FieldPath, r.URL.Path,
			log.FieldError, err,
			log.FieldOperation, log.OpRender)
	}
}

// handleDaily renders the daily entry log: today's items plus the entry form.
func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	now := time.Now()
	categories := s.worklog.Categories()

	s.render(w, r, "daily.html", struct {
		Active     string
		DateLabel  string
		Categories []core.Category
		Items      []itemView
	}{
		Active:     "daily",
		DateLabel:  core.FormatDate(now.UnixMilli()),
		Categories: categories,
		Items:      buildItemViews(s.worklog.DailyItems(now), categories),
	})
}

// handleCategoriesView renders category management.
func (s *Server) handleCategoriesView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	s.render(w, r, "categories.html", struct {
		Active     string
		Categories []core.Category
	}{
		Active:     "categories",
		Categories: s.worklog.Categories(),
	})
}

// handleWeeklyView renders the weekly report: window label, distribution
// chart and the week's items, with the summary panel when configured.
func (s *Server) handleWeeklyView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	offset := parseWeekOffset(r)
	report := s.worklog.WeeklyReport(offset, time.Now())
	categories := s.worklog.Categories()

	s.render(w, r, "weekly.html", struct {
		Active         string
		RangeLabel     string
		Offset         int
		PrevOffset     int
		NextOffset     int
		Items          []itemView
		Chart          []chartView
		HasItems       bool
		SummaryEnabled bool
	}{
		Active:         "weekly",
		RangeLabel:     core.FormatDate(report.Window.Start) + " - " + core.FormatDate(report.Window.End),
		Offset:         offset,
		PrevOffset:     offset - 1,
		NextOffset:     offset + 1,
		Items:          buildItemViews(report.Items, categories),
		Chart:          buildChartViews(report.Chart),
		HasItems:       len(report.Items) > 0,
		SummaryEnabled: s.summaries != nil && s.summaries.Enabled(),
	})
}
