package handlers

import (
	"net/http"
)

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "База данных недоступна", http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, MessageResponse{Message: "polyglotCMS API"}, http.StatusOK)
}
