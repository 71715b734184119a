package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stackboard/stackboard/internal/models"
	"github.com/stackboard/stackboard/internal/store"
)

const searchLimit = 20

// SearchResults groups matches by entity kind.
type SearchResults struct {
	Projects []models.Project `json:"projects"`
	Tasks    []models.Task    `json:"tasks"`
	Labels   []models.Label   `json:"labels"`
}

// SearchService runs cross-entity substring search scoped to a workspace.
type SearchService struct {
	store *store.Store
}

// NewSearchService constructs a SearchService.
func NewSearchService(st *store.Store) (*SearchService, error) {
	if st == nil {
		return nil, errors.New("search service: store is required")
	}
	return &SearchService{store: st}, nil
}

// Search matches projects, tasks, and labels in the workspace against the
// query. Matching is case-insensitive substring; an empty query yields empty
// results.
func (s *SearchService) Search(ctx context.Context, workspaceID, query string) (*SearchResults, error) {
	ctx = ensureContext(ctx)

	results := &SearchResults{
		Projects: []models.Project{},
		Tasks:    []models.Task{},
		Labels:   []models.Label{},
	}

	query = strings.TrimSpace(query)
	if workspaceID == "" {
		return nil, errors.New("search service: workspace id is required")
	}
	if query == "" {
		return results, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"

	db := s.store.DB().WithContext(ctx)

	err := db.
		Where("workspace_id = ?", workspaceID).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Limit(searchLimit).
		Find(&results.Projects).Error
	if err != nil {
		return nil, fmt.Errorf("search service: search projects: %w", err)
	}

	err = db.
		Joins("JOIN project ON project.id = task.project_id").
		Where("project.workspace_id = ?", workspaceID).
		Where("LOWER(task.title) LIKE ? OR LOWER(task.description) LIKE ?", pattern, pattern).
		Limit(searchLimit).
		Find(&results.Tasks).Error
	if err != nil {
		return nil, fmt.Errorf("search service: search tasks: %w", err)
	}

	err = db.
		Joins("JOIN task ON task.id = label.task_id").
		Joins("JOIN project ON project.id = task.project_id").
		Where("project.workspace_id = ?", workspaceID).
		Where("LOWER(label.name) LIKE ?", pattern).
		Limit(searchLimit).
		Find(&results.Labels).Error
	if err != nil {
		return nil, fmt.Errorf("search service: search labels: %w", err)
	}

	return results, nil
}
