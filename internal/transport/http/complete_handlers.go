package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pairpad/pairpad-server/internal/complete"
)

// CompleteHandlers provides the autocomplete stub endpoint.
type CompleteHandlers struct {
	log *zerolog.Logger
}

// NewCompleteHandlers creates a new autocomplete handlers instance.
func NewCompleteHandlers(logger *zerolog.Logger) *CompleteHandlers {
	return &CompleteHandlers{log: logger}
}

// AutocompleteRequest represents the autocomplete request body.
type AutocompleteRequest struct {
	Code           string `json:"code"`
	CursorPosition int    `json:"cursorPosition"`
	Language       string `json:"language"`
}

// AutocompleteResponse represents the autocomplete response body.
type AutocompleteResponse struct {
	Suggestion string `json:"suggestion"`
}

// Autocomplete returns a rule-based completion suggestion.
// POST /api/autocomplete
func (h *CompleteHandlers) Autocomplete(c *gin.Context) {
	var req AutocompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid autocomplete request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	suggestion := complete.Suggest(req.Code, req.CursorPosition, req.Language)
	c.JSON(http.StatusOK, AutocompleteResponse{Suggestion: suggestion})
}
