// Package history serves the paginated movement history views. Records come
// back from the store newest first; this layer applies access scoping and
// assembles transport records.
package history

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/domain/models"
	"github.com/vebops/store/internal/repository/mongodb"
	"github.com/vebops/store/internal/service/access"
	"github.com/vebops/store/internal/service/query"
)

const dateLayout = "2006-01-02"

// Params carries the shared paging and project filter input of a history
// request.
type Params struct {
	ProjectIDs []primitive.ObjectID
	Page       int
	Size       int
}

// Service answers access-scoped history queries.
type Service struct {
	repo   mongodb.Repository
	logger *zap.Logger
}

// NewService wires a history service instance.
func NewService(repo mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Inwards returns the goods-receipt history visible to the user, entry date
// descending.
func (s *Service) Inwards(ctx context.Context, user *models.UserAccount, params Params) (models.Page[models.InwardRecordDTO], error) {
	var empty models.Page[models.InwardRecordDTO]

	visible, refs, err := s.scope(ctx, user, params.ProjectIDs)
	if err != nil {
		return empty, err
	}

	records, err := s.repo.ListInwards(ctx)
	if err != nil {
		return empty, fmt.Errorf("load inwards: %w", err)
	}

	allowed := []models.InwardRecordDTO{}
	for _, record := range records {
		if !visible.Contains(record.ProjectID) {
			continue
		}
		allowed = append(allowed, assembleInward(record, refs))
	}

	return query.Paginate(allowed, params.Page, params.Size), nil
}

// Outwards returns the goods-issue history visible to the user, register
// date descending.
func (s *Service) Outwards(ctx context.Context, user *models.UserAccount, params Params) (models.Page[models.OutwardRecordDTO], error) {
	var empty models.Page[models.OutwardRecordDTO]

	visible, refs, err := s.scope(ctx, user, params.ProjectIDs)
	if err != nil {
		return empty, err
	}

	records, err := s.repo.ListOutwards(ctx)
	if err != nil {
		return empty, fmt.Errorf("load outwards: %w", err)
	}

	allowed := []models.OutwardRecordDTO{}
	for _, record := range records {
		if !visible.Contains(record.ProjectID) {
			continue
		}
		allowed = append(allowed, assembleOutward(record, refs))
	}

	return query.Paginate(allowed, params.Page, params.Size), nil
}

// Transfers returns the transfer history visible to the user, transfer date
// descending. A transfer is visible when either side of it is.
func (s *Service) Transfers(ctx context.Context, user *models.UserAccount, params Params) (models.Page[models.TransferRecordDTO], error) {
	var empty models.Page[models.TransferRecordDTO]

	visible, refs, err := s.scope(ctx, user, params.ProjectIDs)
	if err != nil {
		return empty, err
	}

	records, err := s.repo.ListTransfers(ctx)
	if err != nil {
		return empty, fmt.Errorf("load transfers: %w", err)
	}

	allowed := []models.TransferRecordDTO{}
	for _, record := range records {
		if !visible.Contains(record.FromProjectID) && !visible.Contains(record.ToProjectID) {
			continue
		}
		allowed = append(allowed, assembleTransfer(record, refs))
	}

	return query.Paginate(allowed, params.Page, params.Size), nil
}

type refData struct {
	projects  map[primitive.ObjectID]models.Project
	materials map[primitive.ObjectID]models.Material
}

func (s *Service) scope(ctx context.Context, user *models.UserAccount, filter []primitive.ObjectID) (access.ProjectSet, refData, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return nil, refData{}, fmt.Errorf("load projects: %w", err)
	}
	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return nil, refData{}, fmt.Errorf("load materials: %w", err)
	}

	refs := refData{
		projects:  make(map[primitive.ObjectID]models.Project, len(projects)),
		materials: make(map[primitive.ObjectID]models.Material, len(materials)),
	}
	for _, p := range projects {
		refs.projects[p.ID] = p
	}
	for _, m := range materials {
		refs.materials[m.ID] = m
	}

	visible := access.VisibleProjects(user, projects).Restrict(filter)
	return visible, refs, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func assembleInward(record models.InwardRecord, refs refData) models.InwardRecordDTO {
	lines := make([]models.InwardLineDTO, 0, len(record.Lines))
	for _, line := range record.Lines {
		material := refs.materials[line.MaterialID]
		lines = append(lines, models.InwardLineDTO{
			MaterialID:   line.MaterialID.Hex(),
			MaterialCode: material.Code,
			MaterialName: material.Name,
			Unit:         material.Unit,
			OrderedQty:   line.OrderedQty,
			ReceivedQty:  line.ReceivedQty,
		})
	}

	project := refs.projects[record.ProjectID]
	return models.InwardRecordDTO{
		ID:           record.ID.Hex(),
		ProjectID:    record.ProjectID.Hex(),
		ProjectName:  project.Name,
		Code:         record.Code,
		EntryDate:    formatDate(record.EntryDate),
		DeliveryDate: formatDate(record.DeliveryDate),
		InvoiceNo:    record.InvoiceNo,
		SupplierName: record.SupplierName,
		LineCount:    len(lines),
		Lines:        lines,
	}
}

func assembleOutward(record models.OutwardRecord, refs refData) models.OutwardRecordDTO {
	lines := make([]models.OutwardLineDTO, 0, len(record.Lines))
	for _, line := range record.Lines {
		material := refs.materials[line.MaterialID]
		lines = append(lines, models.OutwardLineDTO{
			MaterialID:   line.MaterialID.Hex(),
			MaterialCode: material.Code,
			MaterialName: material.Name,
			Unit:         material.Unit,
			IssueQty:     line.IssueQty,
		})
	}

	closeDate := ""
	if record.CloseDate != nil {
		closeDate = formatDate(*record.CloseDate)
	}

	project := refs.projects[record.ProjectID]
	return models.OutwardRecordDTO{
		ID:           record.ID.Hex(),
		ProjectID:    record.ProjectID.Hex(),
		ProjectName:  project.Name,
		Code:         record.Code,
		RegisterDate: formatDate(record.RegisterDate),
		IssueTo:      record.IssueTo,
		Status:       string(record.Status),
		CloseDate:    closeDate,
		LineCount:    len(lines),
		Lines:        lines,
	}
}

func assembleTransfer(record models.TransferRecord, refs refData) models.TransferRecordDTO {
	lines := make([]models.TransferLineDTO, 0, len(record.Lines))
	for _, line := range record.Lines {
		material := refs.materials[line.MaterialID]
		lines = append(lines, models.TransferLineDTO{
			MaterialID:   line.MaterialID.Hex(),
			MaterialCode: material.Code,
			MaterialName: material.Name,
			Unit:         material.Unit,
			TransferQty:  line.TransferQty,
		})
	}

	from := refs.projects[record.FromProjectID]
	to := refs.projects[record.ToProjectID]
	return models.TransferRecordDTO{
		ID:              record.ID.Hex(),
		Code:            record.Code,
		FromProjectID:   record.FromProjectID.Hex(),
		FromProjectName: from.Name,
		FromSite:        record.FromSite,
		ToProjectID:     record.ToProjectID.Hex(),
		ToProjectName:   to.Name,
		ToSite:          record.ToSite,
		TransferDate:    formatDate(record.TransferDate),
		Remarks:         record.Remarks,
		Lines:           lines,
	}
}
