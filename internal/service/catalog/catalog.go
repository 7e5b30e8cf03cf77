// Package catalog serves master data listings and the movement intake
// surface.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vebops/store/internal/domain/models"
	"github.com/vebops/store/internal/repository/mongodb"
	"github.com/vebops/store/internal/service/access"
	"github.com/vebops/store/internal/service/query"
)

// Service implements catalog queries and intake operations.
type Service struct {
	repo   mongodb.Repository
	logger *zap.Logger
}

// NewService wires a catalog service instance.
func NewService(repo mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// MaterialQuery carries the filter and paging input of a material listing.
type MaterialQuery struct {
	Search     string
	Categories []string
	Units      []string
	LineTypes  []string
	Page       int
	Size       int
}

// Materials lists the material catalog. Filter dimensions combine with AND;
// the option lists in extra reflect the pre-text-filter catalog.
func (s *Service) Materials(ctx context.Context, q MaterialQuery) (models.Page[models.Material], error) {
	var empty models.Page[models.Material]

	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return empty, fmt.Errorf("load materials: %w", err)
	}

	categoryValues := make([]string, 0, len(materials))
	unitValues := make([]string, 0, len(materials))
	lineTypeValues := make([]string, 0, len(materials))
	for _, m := range materials {
		categoryValues = append(categoryValues, m.Category)
		unitValues = append(unitValues, m.Unit)
		lineTypeValues = append(lineTypeValues, m.LineType)
	}

	filtered := []models.Material{}
	for _, m := range materials {
		if !query.MatchesAny(m.Category, q.Categories) {
			continue
		}
		if !query.MatchesAny(m.Unit, q.Units) {
			continue
		}
		if !query.MatchesAny(m.LineType, q.LineTypes) {
			continue
		}
		if !query.MatchesSearch(q.Search, m.Code, m.Name, m.PartNumber) {
			continue
		}
		filtered = append(filtered, m)
	}

	page := query.Paginate(filtered, q.Page, q.Size)
	page = page.WithExtra("categories", query.Options(categoryValues))
	page = page.WithExtra("units", query.Options(unitValues))
	page = page.WithExtra("lineTypes", query.Options(lineTypeValues))
	return page, nil
}

// Projects lists the projects visible to the user.
func (s *Service) Projects(ctx context.Context, user *models.UserAccount, page, size int) (models.Page[models.Project], error) {
	var empty models.Page[models.Project]

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return empty, fmt.Errorf("load projects: %w", err)
	}

	visible := access.VisibleProjects(user, projects)
	allowed := []models.Project{}
	for _, p := range projects {
		if visible.Contains(p.ID) {
			allowed = append(allowed, p)
		}
	}

	return query.Paginate(allowed, page, size), nil
}

// UserQuery carries the filter and paging input of a user listing.
type UserQuery struct {
	Search      string
	Roles       []string
	AccessTypes []string
	Page        int
	Size        int
}

// Users lists user accounts for administration.
func (s *Service) Users(ctx context.Context, q UserQuery) (models.Page[models.UserAccount], error) {
	var empty models.Page[models.UserAccount]

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return empty, fmt.Errorf("load users: %w", err)
	}

	roleValues := make([]string, 0, len(users))
	for _, u := range users {
		roleValues = append(roleValues, string(u.Role))
	}

	filtered := []models.UserAccount{}
	for _, u := range users {
		if !query.MatchesAny(string(u.Role), q.Roles) {
			continue
		}
		if !query.MatchesAny(string(u.AccessType), q.AccessTypes) {
			continue
		}
		if !query.MatchesSearch(q.Search, u.Email, u.Name) {
			continue
		}
		filtered = append(filtered, u)
	}

	page := query.Paginate(filtered, q.Page, q.Size)
	page = page.WithExtra("roles", query.Options(roleValues))
	return page, nil
}
