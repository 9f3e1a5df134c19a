package api

import (
	"net/http"
	"strconv"

	"github.com/nerrad567/smarthome-sync/internal/journal"
)

// handleListEvents returns recent journal entries, newest first.
//
// Query parameters:
//   - limit: number of entries (default 50, max 200)
//   - eventType: only entries of this type
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		writeUnavailable(w, "event journal is not enabled")
		return
	}

	filter := journal.Filter{EventType: r.URL.Query().Get("eventType")}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeBadRequest(w, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	entries, err := s.journal.Recent(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to read event journal", "error", err)
		writeInternalError(w, "failed to read event journal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": entries,
		"count":  len(entries),
	})
}
