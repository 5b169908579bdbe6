package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	locale := mux.Vars(r)["locale"]

	messages, ok := h.I18n.Messages(locale)
	if !ok {
		WriteError(w, "Локаль не поддерживается", http.StatusNotFound)
		return
	}

	WriteSuccess(w, messages, http.StatusOK)
}
