package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"bookmarker/internal/models"
	"bookmarker/internal/services"
	"bookmarker/internal/utils"
)

type AgentHandler struct {
	service services.BookmarkService
}

func NewAgentHandler(service services.BookmarkService) *AgentHandler {
	return &AgentHandler{service: service}
}

// SummarizeURL runs the summary pipeline for a URL without storing a bookmark.
func (a *AgentHandler) SummarizeURL(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Invalid request payload for SummarizeURL")
		utils.SendJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	summary, err := a.service.SummarizeURL(r.Context(), req.URL)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("url", req.URL).Msg("Error generating summary for URL")
		utils.SendJSONError(w, err.Error(), statusForError(err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.SummarizeURLResponse{Summary: summary})
}
