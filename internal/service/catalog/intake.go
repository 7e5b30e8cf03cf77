package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/domain/models"
)

// ErrValidation indicates the submitted payload could not be normalized into
// a valid record.
var ErrValidation = errors.New("invalid input")

// ErrDuplicateCode indicates a material code that already exists.
var ErrDuplicateCode = errors.New("material code already exists")

const dateLayout = "2006-01-02"

// Intake payloads arrive loosely typed from the transport layer. All
// normalization of optional fields happens here, in one explicit step, so
// the aggregator only ever sees fully populated records.

// InwardLineInput is one submitted goods-receipt line.
type InwardLineInput struct {
	MaterialID  string `json:"materialId"`
	OrderedQty  string `json:"orderedQty"`
	ReceivedQty string `json:"receivedQty"`
}

// InwardInput is a submitted goods-receipt entry.
type InwardInput struct {
	ProjectID    string            `json:"projectId"`
	Code         string            `json:"code"`
	EntryDate    string            `json:"entryDate"`
	DeliveryDate string            `json:"deliveryDate"`
	InvoiceNo    string            `json:"invoiceNo"`
	SupplierName string            `json:"supplierName"`
	Lines        []InwardLineInput `json:"lines"`
}

// OutwardLineInput is one submitted goods-issue line.
type OutwardLineInput struct {
	MaterialID string `json:"materialId"`
	IssueQty   string `json:"issueQty"`
}

// OutwardInput is a submitted goods-issue register.
type OutwardInput struct {
	ProjectID    string             `json:"projectId"`
	Code         string             `json:"code"`
	RegisterDate string             `json:"registerDate"`
	IssueTo      string             `json:"issueTo"`
	Lines        []OutwardLineInput `json:"lines"`
}

// TransferLineInput is one submitted transfer line.
type TransferLineInput struct {
	MaterialID  string `json:"materialId"`
	TransferQty string `json:"transferQty"`
}

// TransferInput is a submitted site-to-site transfer.
type TransferInput struct {
	FromProjectID string              `json:"fromProjectId"`
	FromSite      string              `json:"fromSite"`
	ToProjectID   string              `json:"toProjectId"`
	ToSite        string              `json:"toSite"`
	Code          string              `json:"code"`
	TransferDate  string              `json:"transferDate"`
	Remarks       string              `json:"remarks"`
	Lines         []TransferLineInput `json:"lines"`
}

// AllocationInput is a submitted BOM line.
type AllocationInput struct {
	ProjectID   string `json:"projectId"`
	MaterialID  string `json:"materialId"`
	RequiredQty string `json:"requiredQty"`
}

// ProjectInput is a submitted project.
type ProjectInput struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// MaterialInput is a submitted material.
type MaterialInput struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	PartNumber string `json:"partNumber"`
	Unit       string `json:"unit"`
	Category   string `json:"category"`
	LineType   string `json:"lineType"`
}

// RecordInward normalizes and appends a goods-receipt record.
func (s *Service) RecordInward(ctx context.Context, input InwardInput) (models.InwardRecord, error) {
	var empty models.InwardRecord

	refs, err := s.loadRefs(ctx)
	if err != nil {
		return empty, err
	}

	projectID, err := refs.resolveProject(input.ProjectID)
	if err != nil {
		return empty, err
	}
	entryDate, err := parseDate("entryDate", input.EntryDate, time.Now().UTC())
	if err != nil {
		return empty, err
	}
	deliveryDate, err := parseDate("deliveryDate", input.DeliveryDate, entryDate)
	if err != nil {
		return empty, err
	}
	if len(input.Lines) == 0 {
		return empty, fmt.Errorf("%w: at least one line is required", ErrValidation)
	}

	lines := make([]models.InwardLine, 0, len(input.Lines))
	for i, line := range input.Lines {
		materialID, err := refs.resolveMaterial(line.MaterialID)
		if err != nil {
			return empty, fmt.Errorf("line %d: %w", i+1, err)
		}
		ordered, err := parseQuantity("orderedQty", line.OrderedQty)
		if err != nil {
			return empty, fmt.Errorf("line %d: %w", i+1, err)
		}
		received, err := parseQuantity("receivedQty", line.ReceivedQty)
		if err != nil {
			return empty, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, models.InwardLine{
			MaterialID:  materialID,
			OrderedQty:  ordered,
			ReceivedQty: received,
		})
	}

	record := models.InwardRecord{
		Code:         defaultCode(input.Code, "IN", entryDate),
		ProjectID:    projectID,
		EntryDate:    entryDate,
		DeliveryDate: deliveryDate,
		InvoiceNo:    strings.TrimSpace(input.InvoiceNo),
		SupplierName: strings.TrimSpace(input.SupplierName),
		Lines:        lines,
	}

	saved, err := s.repo.InsertInward(ctx, record)
	if err != nil {
		return empty, err
	}
	s.logger.Info("inward recorded",
		zap.String("id", saved.ID.Hex()),
		zap.String("project_id", saved.ProjectID.Hex()),
		zap.Int("lines", len(saved.Lines)))
	return saved, nil
}

// RecordOutward normalizes and appends a goods-issue register. Registers
// start open; closing is a separate operation.
func (s *Service) RecordOutward(ctx context.Context, input OutwardInput) (models.OutwardRecord, error) {
	var empty models.OutwardRecord

	refs, err := s.loadRefs(ctx)
	if err != nil {
		return empty, err
	}

	projectID, err := refs.resolveProject(input.ProjectID)
	if err != nil {
		return empty, err
	}
	registerDate, err := parseDate("registerDate", input.RegisterDate, time.Now().UTC())
	if err != nil {
		return empty, err
	}
	if strings.TrimSpace(input.IssueTo) == "" {
		return empty, fmt.Errorf("%w: issueTo is required", ErrValidation)
	}
	if len(input.Lines) == 0 {
		return empty, fmt.Errorf("%w: at least one line is required", ErrValidation)
	}

	lines := make([]models.OutwardLine, 0, len(input.Lines))
	for i, line := range input.Lines {
		materialID, err := refs.resolveMaterial(line.MaterialID)
		if err != nil {
			return empty, fmt.Errorf("line %d: %w", i+1, err)
		}
		issue, err := parseQuantity("issueQty", line.IssueQty)
		if err != nil {
			return empty, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, models.OutwardLine{MaterialID: materialID, IssueQty: issue})
	}

	record := models.OutwardRecord{
		Code:         defaultCode(input.Code, "OUT", registerDate),
		ProjectID:    projectID,
		RegisterDate: registerDate,
		IssueTo:      strings.TrimSpace(input.IssueTo),
		Status:       models.OutwardOpen,
		Lines:        lines,
	}

	saved, err := s.repo.InsertOutward(ctx, record)
	if err != nil {
		return empty, err
	}
	s.logger.Info("outward recorded",
		zap.String("id", saved.ID.Hex()),
		zap.String("project_id", saved.ProjectID.Hex()),
		zap.Int("lines", len(saved.Lines)))
	return saved, nil
}

// CloseOutward closes an open register.
func (s *Service) CloseOutward(ctx context.Context, id string) (*models.OutwardRecord, error) {
	id = strings.TrimSpace(id)
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: outward id %q is not a valid id", ErrValidation, id)
	}

	record, err := s.repo.CloseOutward(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("outward closed", zap.String("id", record.ID.Hex()))
	return record, nil
}

// RecordTransfer normalizes and appends a transfer. Source and destination
// must differ; the single record later feeds both projects' ledgers.
func (s *Service) RecordTransfer(ctx context.Context, input TransferInput) (models.TransferRecord, error) {
	var empty models.TransferRecord

	refs, err := s.loadRefs(ctx)
	if err != nil {
		return empty, err
	}

	fromID, err := refs.resolveProject(input.FromProjectID)
	if err != nil {
		return empty, err
	}
	toID, err := refs.resolveProject(input.ToProjectID)
	if err != nil {
		return empty, err
	}
	if fromID == toID {
		return empty, fmt.Errorf("%w: source and destination project must differ", ErrValidation)
	}
	transferDate, err := parseDate("transferDate", input.TransferDate, time.Now().UTC())
	if err != nil {
		return empty, err
	}
	if len(input.Lines) == 0 {
		return empty, fmt.Errorf("%w: at least one line is required", ErrValidation)
	}

	lines := make([]models.TransferLine, 0, len(input.Lines))
	for i, line := range input.Lines {
		materialID, err := refs.resolveMaterial(line.MaterialID)
		if err != nil {
			return empty, fmt.Errorf("line %d: %w", i+1, err)
		}
		qty, err := parseQuantity("transferQty", line.TransferQty)
		if err != nil {
			return empty, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines = append(lines, models.TransferLine{MaterialID: materialID, TransferQty: qty})
	}

	record := models.TransferRecord{
		Code:          defaultCode(input.Code, "TRF", transferDate),
		FromProjectID: fromID,
		FromSite:      strings.TrimSpace(input.FromSite),
		ToProjectID:   toID,
		ToSite:        strings.TrimSpace(input.ToSite),
		TransferDate:  transferDate,
		Remarks:       strings.TrimSpace(input.Remarks),
		Lines:         lines,
	}

	saved, err := s.repo.InsertTransfer(ctx, record)
	if err != nil {
		return empty, err
	}
	s.logger.Info("transfer recorded",
		zap.String("id", saved.ID.Hex()),
		zap.String("from_project_id", saved.FromProjectID.Hex()),
		zap.String("to_project_id", saved.ToProjectID.Hex()),
		zap.Int("lines", len(saved.Lines)))
	return saved, nil
}

// UpsertAllocation writes a BOM line. The (project, material) pair is the
// natural key: a repeat submission replaces the required quantity.
func (s *Service) UpsertAllocation(ctx context.Context, input AllocationInput) (models.Allocation, error) {
	var empty models.Allocation

	refs, err := s.loadRefs(ctx)
	if err != nil {
		return empty, err
	}

	projectID, err := refs.resolveProject(input.ProjectID)
	if err != nil {
		return empty, err
	}
	materialID, err := refs.resolveMaterial(input.MaterialID)
	if err != nil {
		return empty, err
	}
	required, err := parseQuantity("requiredQty", input.RequiredQty)
	if err != nil {
		return empty, err
	}

	allocation := models.Allocation{
		ProjectID:   projectID,
		MaterialID:  materialID,
		RequiredQty: required,
	}
	if err := s.repo.UpsertAllocation(ctx, allocation); err != nil {
		return empty, err
	}
	s.logger.Info("allocation upserted",
		zap.String("project_id", projectID.Hex()),
		zap.String("material_id", materialID.Hex()),
		zap.String("required_qty", required.String()))
	return allocation, nil
}

// CreateProject adds a project.
func (s *Service) CreateProject(ctx context.Context, input ProjectInput) (models.Project, error) {
	var empty models.Project

	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return empty, fmt.Errorf("%w: code and name are required", ErrValidation)
	}

	return s.repo.InsertProject(ctx, models.Project{Code: code, Name: name})
}

// CreateMaterial adds a catalog entry. Codes are unique.
func (s *Service) CreateMaterial(ctx context.Context, input MaterialInput) (models.Material, error) {
	var empty models.Material

	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	unit := strings.TrimSpace(input.Unit)
	if code == "" || name == "" || unit == "" {
		return empty, fmt.Errorf("%w: code, name and unit are required", ErrValidation)
	}

	existing, err := s.repo.FindMaterialByCode(ctx, code)
	if err != nil {
		return empty, err
	}
	if existing != nil {
		return empty, ErrDuplicateCode
	}

	return s.repo.InsertMaterial(ctx, models.Material{
		Code:       code,
		Name:       name,
		PartNumber: strings.TrimSpace(input.PartNumber),
		Unit:       unit,
		Category:   strings.TrimSpace(input.Category),
		LineType:   strings.TrimSpace(input.LineType),
	})
}

type intakeRefs struct {
	projects  map[primitive.ObjectID]struct{}
	materials map[primitive.ObjectID]struct{}
}

func (s *Service) loadRefs(ctx context.Context) (intakeRefs, error) {
	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return intakeRefs{}, fmt.Errorf("load projects: %w", err)
	}
	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return intakeRefs{}, fmt.Errorf("load materials: %w", err)
	}

	refs := intakeRefs{
		projects:  make(map[primitive.ObjectID]struct{}, len(projects)),
		materials: make(map[primitive.ObjectID]struct{}, len(materials)),
	}
	for _, p := range projects {
		refs.projects[p.ID] = struct{}{}
	}
	for _, m := range materials {
		refs.materials[m.ID] = struct{}{}
	}
	return refs, nil
}

func (r intakeRefs) resolveProject(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: projectId %q is not a valid id", ErrValidation, raw)
	}
	if _, ok := r.projects[id]; !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: unknown project %s", ErrValidation, id.Hex())
	}
	return id, nil
}

func (r intakeRefs) resolveMaterial(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: materialId %q is not a valid id", ErrValidation, raw)
	}
	if _, ok := r.materials[id]; !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: unknown material %s", ErrValidation, id.Hex())
	}
	return id, nil
}

func parseQuantity(field, raw string) (models.Quantity, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.Quantity{}, nil
	}
	qty, err := models.QuantityFromString(trimmed)
	if err != nil {
		return models.Quantity{}, fmt.Errorf("%w: %s %q is not a number", ErrValidation, field, raw)
	}
	if qty.IsNegative() {
		return models.Quantity{}, fmt.Errorf("%w: %s must not be negative", ErrValidation, field)
	}
	return qty, nil
}

func parseDate(field, raw string, fallback time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback.Truncate(24 * time.Hour), nil
	}
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q must use %s", ErrValidation, field, raw, dateLayout)
	}
	return parsed, nil
}

func defaultCode(raw, prefix string, date time.Time) string {
	code := strings.TrimSpace(raw)
	if code != "" {
		return code
	}
	return fmt.Sprintf("%s-%s-%d", prefix, date.Format("20060102"), time.Now().UnixMilli()%100000)
}
