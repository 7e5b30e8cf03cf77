package catalog

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vebops/store/internal/domain/models"
	"github.com/vebops/store/internal/repository/mongodb"
)

type fakeRepo struct {
	mongodb.Repository
	projects    []models.Project
	materials   []models.Material
	allocations []models.Allocation
	inwards     []models.InwardRecord
	outwards    []models.OutwardRecord
	transfers   []models.TransferRecord
	users       []models.UserAccount
}

func (f *fakeRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	return f.projects, nil
}

func (f *fakeRepo) ListMaterials(ctx context.Context) ([]models.Material, error) {
	return f.materials, nil
}

func (f *fakeRepo) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	return f.users, nil
}

func (f *fakeRepo) FindMaterialByCode(ctx context.Context, code string) (*models.Material, error) {
	for i := range f.materials {
		if f.materials[i].Code == code {
			return &f.materials[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) InsertMaterial(ctx context.Context, material models.Material) (models.Material, error) {
	material.ID = primitive.NewObjectID()
	f.materials = append(f.materials, material)
	return material, nil
}

func (f *fakeRepo) InsertProject(ctx context.Context, project models.Project) (models.Project, error) {
	project.ID = primitive.NewObjectID()
	f.projects = append(f.projects, project)
	return project, nil
}

func (f *fakeRepo) UpsertAllocation(ctx context.Context, allocation models.Allocation) error {
	for i := range f.allocations {
		if f.allocations[i].ProjectID == allocation.ProjectID && f.allocations[i].MaterialID == allocation.MaterialID {
			f.allocations[i].RequiredQty = allocation.RequiredQty
			return nil
		}
	}
	f.allocations = append(f.allocations, allocation)
	return nil
}

func (f *fakeRepo) InsertInward(ctx context.Context, record models.InwardRecord) (models.InwardRecord, error) {
	record.ID = primitive.NewObjectID()
	f.inwards = append(f.inwards, record)
	return record, nil
}

func (f *fakeRepo) InsertOutward(ctx context.Context, record models.OutwardRecord) (models.OutwardRecord, error) {
	record.ID = primitive.NewObjectID()
	f.outwards = append(f.outwards, record)
	return record, nil
}

func (f *fakeRepo) InsertTransfer(ctx context.Context, record models.TransferRecord) (models.TransferRecord, error) {
	record.ID = primitive.NewObjectID()
	f.transfers = append(f.transfers, record)
	return record, nil
}

func (f *fakeRepo) CloseOutward(ctx context.Context, id string) (*models.OutwardRecord, error) {
	for i := range f.outwards {
		if f.outwards[i].ID.Hex() == id && f.outwards[i].Status == models.OutwardOpen {
			f.outwards[i].Status = models.OutwardClosed
			return &f.outwards[i], nil
		}
	}
	return nil, mongodb.ErrOutwardNotOpen
}

type intakeFixture struct {
	projectA models.Project
	projectB models.Project
	cement   models.Material
	repo     *fakeRepo
	svc      *Service
}

func newIntakeFixture() intakeFixture {
	f := intakeFixture{
		projectA: models.Project{ID: primitive.NewObjectID(), Code: "PRJ-A", Name: "Site A"},
		projectB: models.Project{ID: primitive.NewObjectID(), Code: "PRJ-B", Name: "Site B"},
		cement:   models.Material{ID: primitive.NewObjectID(), Code: "CEM-001", Name: "OPC Cement", Unit: "bag"},
	}
	f.repo = &fakeRepo{
		projects:  []models.Project{f.projectA, f.projectB},
		materials: []models.Material{f.cement},
	}
	f.svc = NewService(f.repo, nil)
	return f
}

func TestRecordInward(t *testing.T) {
	f := newIntakeFixture()

	record, err := f.svc.RecordInward(context.Background(), InwardInput{
		ProjectID:    f.projectA.ID.Hex(),
		EntryDate:    "2026-05-02",
		SupplierName: " ACME Traders ",
		Lines: []InwardLineInput{
			{MaterialID: f.cement.ID.Hex(), OrderedQty: "100", ReceivedQty: "80"},
		},
	})
	if err != nil {
		t.Fatalf("RecordInward: %v", err)
	}

	if record.ID.IsZero() {
		t.Fatalf("saved record must carry an id")
	}
	if record.Code == "" {
		t.Fatalf("omitted code must be generated")
	}
	if record.SupplierName != "ACME Traders" {
		t.Fatalf("supplier not trimmed: %q", record.SupplierName)
	}
	if record.EntryDate.Format("2006-01-02") != "2026-05-02" {
		t.Fatalf("entry date = %s", record.EntryDate)
	}
	// Delivery date defaults to the entry date when omitted.
	if !record.DeliveryDate.Equal(record.EntryDate) {
		t.Fatalf("delivery date should default to entry date, got %s", record.DeliveryDate)
	}
	if len(record.Lines) != 1 || record.Lines[0].ReceivedQty.String() != "80" {
		t.Fatalf("lines not normalized: %+v", record.Lines)
	}
}

func TestRecordInwardValidation(t *testing.T) {
	f := newIntakeFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		input InwardInput
	}{
		{"unknown project", InwardInput{
			ProjectID: primitive.NewObjectID().Hex(),
			Lines:     []InwardLineInput{{MaterialID: f.cement.ID.Hex()}},
		}},
		{"malformed project id", InwardInput{
			ProjectID: "not-an-id",
			Lines:     []InwardLineInput{{MaterialID: f.cement.ID.Hex()}},
		}},
		{"no lines", InwardInput{ProjectID: f.projectA.ID.Hex()}},
		{"unknown material", InwardInput{
			ProjectID: f.projectA.ID.Hex(),
			Lines:     []InwardLineInput{{MaterialID: primitive.NewObjectID().Hex()}},
		}},
		{"negative quantity", InwardInput{
			ProjectID: f.projectA.ID.Hex(),
			Lines:     []InwardLineInput{{MaterialID: f.cement.ID.Hex(), ReceivedQty: "-5"}},
		}},
		{"malformed quantity", InwardInput{
			ProjectID: f.projectA.ID.Hex(),
			Lines:     []InwardLineInput{{MaterialID: f.cement.ID.Hex(), ReceivedQty: "eighty"}},
		}},
		{"malformed date", InwardInput{
			ProjectID: f.projectA.ID.Hex(),
			EntryDate: "02/05/2026",
			Lines:     []InwardLineInput{{MaterialID: f.cement.ID.Hex()}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.RecordInward(ctx, tc.input); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}

	if len(f.repo.inwards) != 0 {
		t.Fatalf("rejected input must not be persisted, found %d records", len(f.repo.inwards))
	}
}

func TestRecordOutward(t *testing.T) {
	f := newIntakeFixture()

	record, err := f.svc.RecordOutward(context.Background(), OutwardInput{
		ProjectID: f.projectA.ID.Hex(),
		IssueTo:   "Block C crew",
		Lines:     []OutwardLineInput{{MaterialID: f.cement.ID.Hex(), IssueQty: "30"}},
	})
	if err != nil {
		t.Fatalf("RecordOutward: %v", err)
	}

	if record.Status != models.OutwardOpen {
		t.Fatalf("new register must start open, got %s", record.Status)
	}
	if record.CloseDate != nil {
		t.Fatalf("new register must have no close date")
	}
}

func TestRecordOutwardRequiresIssueTo(t *testing.T) {
	f := newIntakeFixture()

	_, err := f.svc.RecordOutward(context.Background(), OutwardInput{
		ProjectID: f.projectA.ID.Hex(),
		IssueTo:   "   ",
		Lines:     []OutwardLineInput{{MaterialID: f.cement.ID.Hex(), IssueQty: "1"}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCloseOutward(t *testing.T) {
	f := newIntakeFixture()
	ctx := context.Background()

	record, err := f.svc.RecordOutward(ctx, OutwardInput{
		ProjectID: f.projectA.ID.Hex(),
		IssueTo:   "Block C crew",
		Lines:     []OutwardLineInput{{MaterialID: f.cement.ID.Hex(), IssueQty: "1"}},
	})
	if err != nil {
		t.Fatalf("RecordOutward: %v", err)
	}

	closed, err := f.svc.CloseOutward(ctx, record.ID.Hex())
	if err != nil {
		t.Fatalf("CloseOutward: %v", err)
	}
	if closed.Status != models.OutwardClosed {
		t.Fatalf("status = %s, want CLOSED", closed.Status)
	}

	// Closing twice fails: the register is no longer open.
	if _, err := f.svc.CloseOutward(ctx, record.ID.Hex()); !errors.Is(err, mongodb.ErrOutwardNotOpen) {
		t.Fatalf("expected ErrOutwardNotOpen, got %v", err)
	}

	if _, err := f.svc.CloseOutward(ctx, "not-an-id"); !errors.Is(err, ErrValidation) {
		t.Fatalf("malformed id: expected ErrValidation, got %v", err)
	}
}

func TestRecordTransferRejectsSameProject(t *testing.T) {
	f := newIntakeFixture()

	_, err := f.svc.RecordTransfer(context.Background(), TransferInput{
		FromProjectID: f.projectA.ID.Hex(),
		ToProjectID:   f.projectA.ID.Hex(),
		Lines:         []TransferLineInput{{MaterialID: f.cement.ID.Hex(), TransferQty: "5"}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRecordTransfer(t *testing.T) {
	f := newIntakeFixture()

	record, err := f.svc.RecordTransfer(context.Background(), TransferInput{
		FromProjectID: f.projectA.ID.Hex(),
		FromSite:      "Yard 1",
		ToProjectID:   f.projectB.ID.Hex(),
		ToSite:        "Yard 2",
		TransferDate:  "2026-06-10",
		Lines:         []TransferLineInput{{MaterialID: f.cement.ID.Hex(), TransferQty: "12.5"}},
	})
	if err != nil {
		t.Fatalf("RecordTransfer: %v", err)
	}

	if record.FromProjectID != f.projectA.ID || record.ToProjectID != f.projectB.ID {
		t.Fatalf("projects not resolved: %+v", record)
	}
	if record.Lines[0].TransferQty.String() != "12.5" {
		t.Fatalf("transfer quantity = %s, want 12.5", record.Lines[0].TransferQty)
	}
}

func TestUpsertAllocationReplaces(t *testing.T) {
	f := newIntakeFixture()
	ctx := context.Background()

	input := AllocationInput{
		ProjectID:   f.projectA.ID.Hex(),
		MaterialID:  f.cement.ID.Hex(),
		RequiredQty: "100",
	}
	if _, err := f.svc.UpsertAllocation(ctx, input); err != nil {
		t.Fatalf("UpsertAllocation: %v", err)
	}

	input.RequiredQty = "150"
	if _, err := f.svc.UpsertAllocation(ctx, input); err != nil {
		t.Fatalf("UpsertAllocation repeat: %v", err)
	}

	if len(f.repo.allocations) != 1 {
		t.Fatalf("repeat submission must replace, got %d allocations", len(f.repo.allocations))
	}
	if f.repo.allocations[0].RequiredQty.String() != "150" {
		t.Fatalf("required = %s, want 150", f.repo.allocations[0].RequiredQty)
	}
}

func TestCreateMaterialRejectsDuplicateCode(t *testing.T) {
	f := newIntakeFixture()

	_, err := f.svc.CreateMaterial(context.Background(), MaterialInput{
		Code: "CEM-001", Name: "Another cement", Unit: "bag",
	})
	if !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestCreateProjectRequiresCodeAndName(t *testing.T) {
	f := newIntakeFixture()

	_, err := f.svc.CreateProject(context.Background(), ProjectInput{Code: " ", Name: "Site"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	project, err := f.svc.CreateProject(context.Background(), ProjectInput{Code: "PRJ-C", Name: " Site C "})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if project.Name != "Site C" {
		t.Fatalf("name not trimmed: %q", project.Name)
	}
}
