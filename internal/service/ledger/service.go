package ledger

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/domain/models"
	"github.com/vebops/store/internal/repository/mongodb"
	"github.com/vebops/store/internal/service/access"
	"github.com/vebops/store/internal/service/query"
)

// SummaryParams carries the filter and paging input of a stock summary
// request. Page and Size are raw caller input; sanitization happens in the
// pagination engine.
type SummaryParams struct {
	Search     string
	Categories []string
	Units      []string
	ProjectIDs []primitive.ObjectID
	Page       int
	Size       int
}

// Service serves the computed stock summary view. Each request reads its own
// snapshot of the movement store and aggregates in memory; nothing is shared
// across requests.
type Service struct {
	repo       mongodb.Repository
	aggregator *Aggregator
	logger     *zap.Logger
}

// NewService wires a ledger service instance.
func NewService(repo mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		aggregator: NewAggregator(logger),
		logger:     logger,
	}
}

// Aggregate builds the full ledger for the visible project set from a fresh
// snapshot of the movement store.
func (s *Service) Aggregate(ctx context.Context, visible access.ProjectSet, refs Refs) (Result, error) {
	allocations, err := s.repo.ListAllocations(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load allocations: %w", err)
	}
	inwards, err := s.repo.ListInwards(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load inwards: %w", err)
	}
	outwards, err := s.repo.ListOutwards(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load outwards: %w", err)
	}
	transfers, err := s.repo.ListTransfers(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load transfers: %w", err)
	}

	return s.aggregator.BuildLedger(refs, allocations, inwards, outwards, transfers, visible), nil
}

// StockSummary answers "how much was required, ordered, received, issued and
// what remains" for the projects the user may see, filtered and paginated.
func (s *Service) StockSummary(ctx context.Context, user *models.UserAccount, params SummaryParams) (models.Page[models.StockRowDTO], error) {
	var empty models.Page[models.StockRowDTO]

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return empty, fmt.Errorf("load projects: %w", err)
	}
	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return empty, fmt.Errorf("load materials: %w", err)
	}

	refs := NewRefs(projects, materials)
	visible := access.VisibleProjects(user, projects).Restrict(params.ProjectIDs)

	result, err := s.Aggregate(ctx, visible, refs)
	if err != nil {
		return empty, err
	}

	// The dropdown option lists come from the post-access, pre-text-filter
	// rows so they stay consistent with what is actually queryable.
	categoryValues := make([]string, 0, len(result.Rows))
	unitValues := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		material := refs.Materials[row.MaterialID]
		categoryValues = append(categoryValues, material.Category)
		unitValues = append(unitValues, material.Unit)
	}

	filtered := make([]models.StockRowDTO, 0, len(result.Rows))
	for _, row := range result.Rows {
		material := refs.Materials[row.MaterialID]
		if !query.MatchesAny(material.Category, params.Categories) {
			continue
		}
		if !query.MatchesAny(material.Unit, params.Units) {
			continue
		}
		if !query.MatchesSearch(params.Search, material.Code, material.Name, material.PartNumber) {
			continue
		}
		filtered = append(filtered, assembleStockRow(row, refs))
	}

	page := query.Paginate(filtered, params.Page, params.Size)
	page = page.WithExtra("categories", query.Options(categoryValues))
	page = page.WithExtra("units", query.Options(unitValues))
	return page, nil
}

func assembleStockRow(row models.LedgerRow, refs Refs) models.StockRowDTO {
	project := refs.Projects[row.ProjectID]
	material := refs.Materials[row.MaterialID]
	return models.StockRowDTO{
		ProjectID:      row.ProjectID.Hex(),
		ProjectCode:    project.Code,
		ProjectName:    project.Name,
		MaterialID:     row.MaterialID.Hex(),
		MaterialCode:   material.Code,
		MaterialName:   material.Name,
		Unit:           material.Unit,
		Category:       material.Category,
		RequiredQty:    models.NewQuantity(row.RequiredQty),
		OrderedQty:     models.NewQuantity(row.OrderedQty),
		ReceivedQty:    models.NewQuantity(row.ReceivedQty),
		IssuedQty:      models.NewQuantity(row.IssuedQty),
		TransferredIn:  models.NewQuantity(row.TransferredIn),
		TransferredOut: models.NewQuantity(row.TransferredOut),
		BalanceQty:     models.NewQuantity(row.DisplayBalance()),
	}
}
