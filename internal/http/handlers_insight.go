package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"ohda/internal/insight"
)

// handleInsight produces the AI spending summary panel. Results are cached
// per store revision, so any mutation yields a fresh analysis while repeated
// requests against an unchanged ledger reuse the last one.
func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	key := fmt.Sprintf("rev:%d", s.reader.Revision())

	text, cached := s.insightCache.Get(key)
	if !cached {
		text = s.auditor.Audit(r.Context(), s.reader.Snapshot())
		if text != insight.Fallback {
			s.insightCache.Set(key, text)
		}
	}

	slog.InfoContext(r.Context(), "Insight served",
		"cached", cached,
		"fallback", text == insight.Fallback,
		"operation", "insight")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "insight_panel", struct {
		Text string
	}{Text: text}); err != nil {
		slog.ErrorContext(r.Context(), "Insight template failed", "error", err)
		_, _ = w.Write([]byte(`<div class="error">Error rendering insight</div>`))
	}
}
