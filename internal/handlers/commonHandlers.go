package handlers

import (
	"net/http"

	"bookmarker/internal/database"
	"bookmarker/internal/utils"
)

type CommonHandler struct {
	db database.Service
}

func NewCommonHandler(db database.Service) *CommonHandler {
	return &CommonHandler{db: db}
}

func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health := h.db.Health()

	status := http.StatusOK
	if _, down := health["error"]; down {
		status = http.StatusServiceUnavailable
	}
	utils.RespondWithJSON(w, status, health)
}
