package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stackboard/stackboard/internal/services"
	"github.com/stackboard/stackboard/pkg/errors"
	"github.com/stackboard/stackboard/pkg/response"
)

// SearchHandler exposes the workspace-scoped cross-entity search endpoint.
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler constructs a search handler.
func NewSearchHandler(search *services.SearchService) (*SearchHandler, error) {
	if search == nil {
		return nil, errors.New("MISSING_DEPENDENCY", "search service must be provided", http.StatusInternalServerError)
	}
	return &SearchHandler{search: search}, nil
}

// Search matches projects, tasks, and labels in the workspace against ?q=.
func (h *SearchHandler) Search(c *gin.Context) {
	results, err := h.search.Search(requestContext(c), c.Param("workspaceId"), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, results)
}
