package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/order-fulfillment/internal/core/port"
)

type EventsHandler struct {
	eventLog port.EventLogService
}

func RegisterEvents(mux *http.ServeMux, eventLog port.EventLogService) {
	h := EventsHandler{eventLog}
	mux.HandleFunc("GET /events", h.GetEvents)
}

// GetEvents returns the not-yet-expired events for one product code.
func (h EventsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	const op = "EventsHandler.GetEvents"
	log := slog.With("op", op)

	code := r.URL.Query().Get("code")
	if code == "" {
		writeBadRequest(w)
		return
	}

	recs, err := h.eventLog.ProductEvents(r.Context(), code)
	if err != nil {
		http.Error(w, "failed to list events", http.StatusInternalServerError)
		log.Error("failed to list events", "code", code, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProductEvents(recs))
}
