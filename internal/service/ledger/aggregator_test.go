package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vebops/store/internal/domain/models"
	"github.com/vebops/store/internal/service/access"
)

func qty(value string) models.Quantity {
	q, err := models.QuantityFromString(value)
	if err != nil {
		panic(err)
	}
	return q
}

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

type ledgerFixture struct {
	projectA models.Project
	projectB models.Project
	cement   models.Material
	refs     Refs
	allSet   access.ProjectSet
}

func newLedgerFixture() ledgerFixture {
	f := ledgerFixture{
		projectA: models.Project{ID: primitive.NewObjectID(), Code: "PRJ-A", Name: "Site A"},
		projectB: models.Project{ID: primitive.NewObjectID(), Code: "PRJ-B", Name: "Site B"},
		cement:   models.Material{ID: primitive.NewObjectID(), Code: "CEM-001", Name: "OPC Cement", Unit: "bag"},
	}
	f.refs = NewRefs([]models.Project{f.projectA, f.projectB}, []models.Material{f.cement})
	f.allSet = access.ProjectSet{f.projectA.ID: {}, f.projectB.ID: {}}
	return f
}

func findRow(t *testing.T, rows []models.LedgerRow, project, material primitive.ObjectID) models.LedgerRow {
	t.Helper()
	for _, r := range rows {
		if r.ProjectID == project && r.MaterialID == material {
			return r
		}
	}
	t.Fatalf("no row for project %s material %s", project.Hex(), material.Hex())
	return models.LedgerRow{}
}

func TestBuildLedgerBalances(t *testing.T) {
	f := newLedgerFixture()
	agg := NewAggregator(nil)

	allocations := []models.Allocation{
		{ProjectID: f.projectA.ID, MaterialID: f.cement.ID, RequiredQty: qty("100")},
	}
	inwards := []models.InwardRecord{
		{ProjectID: f.projectA.ID, Lines: []models.InwardLine{
			{MaterialID: f.cement.ID, OrderedQty: qty("100"), ReceivedQty: qty("80")},
		}},
	}
	outwards := []models.OutwardRecord{
		{ProjectID: f.projectA.ID, Lines: []models.OutwardLine{
			{MaterialID: f.cement.ID, IssueQty: qty("30")},
		}},
	}
	transfers := []models.TransferRecord{
		{FromProjectID: f.projectA.ID, ToProjectID: f.projectB.ID, Lines: []models.TransferLine{
			{MaterialID: f.cement.ID, TransferQty: qty("10")},
		}},
	}

	result := agg.BuildLedger(f.refs, allocations, inwards, outwards, transfers, f.allSet)
	if result.Skipped != 0 {
		t.Fatalf("expected no skipped lines, got %d", result.Skipped)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}

	rowA := findRow(t, result.Rows, f.projectA.ID, f.cement.ID)
	if !rowA.RequiredQty.Equal(dec("100")) {
		t.Errorf("required = %s, want 100", rowA.RequiredQty)
	}
	if !rowA.OrderedQty.Equal(dec("100")) || !rowA.ReceivedQty.Equal(dec("80")) {
		t.Errorf("ordered/received = %s/%s, want 100/80", rowA.OrderedQty, rowA.ReceivedQty)
	}
	if !rowA.BalanceQty.Equal(dec("40")) {
		t.Errorf("source balance = %s, want 40 (80 received - 30 issued - 10 out)", rowA.BalanceQty)
	}

	rowB := findRow(t, result.Rows, f.projectB.ID, f.cement.ID)
	if !rowB.TransferredIn.Equal(dec("10")) || !rowB.BalanceQty.Equal(dec("10")) {
		t.Errorf("destination in/balance = %s/%s, want 10/10", rowB.TransferredIn, rowB.BalanceQty)
	}
}

func TestBuildLedgerTransferConservation(t *testing.T) {
	f := newLedgerFixture()
	agg := NewAggregator(nil)

	inwards := []models.InwardRecord{
		{ProjectID: f.projectA.ID, Lines: []models.InwardLine{
			{MaterialID: f.cement.ID, OrderedQty: qty("50"), ReceivedQty: qty("50")},
		}},
	}
	transfers := []models.TransferRecord{
		{FromProjectID: f.projectA.ID, ToProjectID: f.projectB.ID, Lines: []models.TransferLine{
			{MaterialID: f.cement.ID, TransferQty: qty("12.5")},
		}},
	}

	result := agg.BuildLedger(f.refs, nil, inwards, nil, transfers, f.allSet)

	total := decimal.Zero
	for _, r := range result.Rows {
		total = total.Add(r.BalanceQty)
	}
	// A transfer moves quantity, it never creates or destroys it.
	if !total.Equal(dec("50")) {
		t.Fatalf("total balance across projects = %s, want 50", total)
	}
}

func TestBuildLedgerAccessScoping(t *testing.T) {
	f := newLedgerFixture()
	agg := NewAggregator(nil)

	inwards := []models.InwardRecord{
		{ProjectID: f.projectA.ID, Lines: []models.InwardLine{
			{MaterialID: f.cement.ID, OrderedQty: qty("50"), ReceivedQty: qty("50")},
		}},
		{ProjectID: f.projectB.ID, Lines: []models.InwardLine{
			{MaterialID: f.cement.ID, OrderedQty: qty("20"), ReceivedQty: qty("20")},
		}},
	}
	transfers := []models.TransferRecord{
		{FromProjectID: f.projectA.ID, ToProjectID: f.projectB.ID, Lines: []models.TransferLine{
			{MaterialID: f.cement.ID, TransferQty: qty("5")},
		}},
	}

	onlyB := access.ProjectSet{f.projectB.ID: {}}
	result := agg.BuildLedger(f.refs, nil, inwards, nil, transfers, onlyB)

	if len(result.Rows) != 1 {
		t.Fatalf("expected only the visible project's row, got %d rows", len(result.Rows))
	}
	row := result.Rows[0]
	if row.ProjectID != f.projectB.ID {
		t.Fatalf("row belongs to invisible project %s", row.ProjectID.Hex())
	}
	// The inbound half of the transfer still applies to the visible side.
	if !row.TransferredIn.Equal(dec("5")) || !row.BalanceQty.Equal(dec("25")) {
		t.Fatalf("in/balance = %s/%s, want 5/25", row.TransferredIn, row.BalanceQty)
	}
}

func TestBuildLedgerSkipsUnresolvedReferences(t *testing.T) {
	f := newLedgerFixture()
	agg := NewAggregator(nil)

	ghostMaterial := primitive.NewObjectID()
	ghostProject := primitive.NewObjectID()

	inwards := []models.InwardRecord{
		{ProjectID: f.projectA.ID, Lines: []models.InwardLine{
			{MaterialID: f.cement.ID, OrderedQty: qty("10"), ReceivedQty: qty("10")},
			{MaterialID: ghostMaterial, OrderedQty: qty("99"), ReceivedQty: qty("99")},
		}},
	}
	allocations := []models.Allocation{
		{ProjectID: ghostProject, MaterialID: f.cement.ID, RequiredQty: qty("7")},
	}

	visible := access.ProjectSet{f.projectA.ID: {}, ghostProject: {}}
	result := agg.BuildLedger(f.refs, allocations, inwards, nil, nil, visible)

	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", result.Skipped)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("corrupt lines must not blank the report: got %d rows", len(result.Rows))
	}
	row := result.Rows[0]
	if !row.ReceivedQty.Equal(dec("10")) {
		t.Fatalf("surviving row received = %s, want 10", row.ReceivedQty)
	}
}

func TestBuildLedgerSeedsFromAllocations(t *testing.T) {
	f := newLedgerFixture()
	agg := NewAggregator(nil)

	allocations := []models.Allocation{
		{ProjectID: f.projectA.ID, MaterialID: f.cement.ID, RequiredQty: qty("200")},
	}

	result := agg.BuildLedger(f.refs, allocations, nil, nil, nil, f.allSet)
	if len(result.Rows) != 1 {
		t.Fatalf("allocated pair must appear without movements, got %d rows", len(result.Rows))
	}
	row := result.Rows[0]
	if !row.RequiredQty.Equal(dec("200")) || !row.BalanceQty.Equal(decimal.Zero) {
		t.Fatalf("required/balance = %s/%s, want 200/0", row.RequiredQty, row.BalanceQty)
	}
}

func TestBuildLedgerRowOrdering(t *testing.T) {
	f := newLedgerFixture()
	agg := NewAggregator(nil)

	inwards := []models.InwardRecord{
		{ProjectID: f.projectB.ID, Lines: []models.InwardLine{
			{MaterialID: f.cement.ID, OrderedQty: qty("1"), ReceivedQty: qty("1")},
		}},
		{ProjectID: f.projectA.ID, Lines: []models.InwardLine{
			{MaterialID: f.cement.ID, OrderedQty: qty("1"), ReceivedQty: qty("1")},
		}},
	}

	result := agg.BuildLedger(f.refs, nil, inwards, nil, nil, f.allSet)
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].ProjectID != f.projectA.ID {
		t.Fatalf("rows must sort by project code: got %s first", result.Rows[0].ProjectID.Hex())
	}
}

func TestDisplayBalanceFloorsNegative(t *testing.T) {
	row := models.LedgerRow{BalanceQty: dec("-15")}
	if !row.DisplayBalance().Equal(decimal.Zero) {
		t.Fatalf("negative balance must display as zero, got %s", row.DisplayBalance())
	}

	row.BalanceQty = dec("3")
	if !row.DisplayBalance().Equal(dec("3")) {
		t.Fatalf("positive balance must display unchanged, got %s", row.DisplayBalance())
	}
}
