package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"worklog/internal/log"
	"worklog/internal/summary"
)

// handleWeeklySummary generates (or re-serves) the narrative summary for
// the requested week and returns it as an HTML fragment. Failures come
// back as user-facing fallback messages, never raw errors.
func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	if s.summaries == nil || !s.summaries.Enabled() {
		NewHTMXResponse().
			BodyHTML(`<div class="summary-disabled">AI summaries are not configured. Set GEMINI_API_KEY to enable them.</div>`).
			Write(w)
		return
	}

	offset := parseWeekOffset(r)
	report := s.worklog.WeeklyReport(offset, time.Now())
	if len(report.Items) == 0 {
		NewHTMXResponse().
			BodyHTML(`<div class="summary-empty">Nothing logged this week yet.</div>`).
			Write(w)
		return
	}

	text, err := s.summaries.WeeklySummary(r.Context(), report.Window, report.Items, s.worklog.Categories())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Weekly summary failed",
			log.FieldError, err,
			log.FieldWeekOffset, offset,
			log.FieldWindowStart, report.Window.Start,
			log.FieldWindowEnd, report.Window.End,
			log.FieldOperation, log.OpSummarize)

		msg := "Failed to generate summary. Please try again."
		if errors.Is(err, summary.ErrNotConfigured) {
			msg = "AI summaries are not configured."
		}
		// 200 with a fallback fragment: the failure is scoped to this
		// panel, not to the page.
		NewHTMXResponse().
			BodyHTML(`<div class="summary-error">` + template.HTMLEscapeString(msg) + `</div>`).
			Write(w)
		return
	}

	var b strings.Builder
	b.WriteString(`<div class="summary-text">`)
	for i, para := range strings.Split(text, "\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(template.HTMLEscapeString(para))
	}
	b.WriteString(`</div>`)

	NewHTMXResponse().
		Trigger("summary:generated", struct{}{}).
		BodyHTML(b.String()).
		Write(w)
}
