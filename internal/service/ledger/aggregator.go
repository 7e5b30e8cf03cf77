// Package ledger reconstructs per-(project, material) quantity balances from
// the append-only movement records.
package ledger

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/domain/models"
	"github.com/vebops/store/internal/metrics"
	"github.com/vebops/store/internal/service/access"
)

type rowKey struct {
	project  primitive.ObjectID
	material primitive.ObjectID
}

// Refs is the reference data movement lines are validated against.
type Refs struct {
	Projects  map[primitive.ObjectID]models.Project
	Materials map[primitive.ObjectID]models.Material
}

// NewRefs indexes reference data by id.
func NewRefs(projects []models.Project, materials []models.Material) Refs {
	refs := Refs{
		Projects:  make(map[primitive.ObjectID]models.Project, len(projects)),
		Materials: make(map[primitive.ObjectID]models.Material, len(materials)),
	}
	for _, p := range projects {
		refs.Projects[p.ID] = p
	}
	for _, m := range materials {
		refs.Materials[m.ID] = m
	}
	return refs
}

// Result is the outcome of one aggregation pass. Rows are sorted by project
// code then material code; Skipped counts lines dropped for unresolved
// references.
type Result struct {
	Rows    []models.LedgerRow
	Skipped int
}

// Aggregator folds movement records into ledger rows. It holds no state
// between calls, so concurrent requests can each run their own pass over an
// independently read snapshot without coordination.
type Aggregator struct {
	logger *zap.Logger
}

// NewAggregator wires an aggregator instance.
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{logger: logger}
}

// BuildLedger computes one ledger row per (project, material) pair touched
// by an allocation or movement within the visible project set. A line whose
// project or material cannot be resolved is logged and skipped; one corrupt
// row must not blank the whole report.
func (a *Aggregator) BuildLedger(
	refs Refs,
	allocations []models.Allocation,
	inwards []models.InwardRecord,
	outwards []models.OutwardRecord,
	transfers []models.TransferRecord,
	visible access.ProjectSet,
) Result {
	rows := map[rowKey]*models.LedgerRow{}
	skipped := 0

	row := func(project, material primitive.ObjectID) *models.LedgerRow {
		key := rowKey{project: project, material: material}
		if existing, ok := rows[key]; ok {
			return existing
		}
		created := &models.LedgerRow{ProjectID: project, MaterialID: material}
		rows[key] = created
		return created
	}

	resolve := func(kind string, project, material primitive.ObjectID) bool {
		if _, ok := refs.Projects[project]; !ok {
			a.logger.Warn("movement line references unknown project",
				zap.String("kind", kind),
				zap.String("project_id", project.Hex()),
				zap.String("material_id", material.Hex()))
			metrics.SkippedLines.WithLabelValues("unknown_project").Inc()
			skipped++
			return false
		}
		if _, ok := refs.Materials[material]; !ok {
			a.logger.Warn("movement line references unknown material",
				zap.String("kind", kind),
				zap.String("project_id", project.Hex()),
				zap.String("material_id", material.Hex()))
			metrics.SkippedLines.WithLabelValues("unknown_material").Inc()
			skipped++
			return false
		}
		return true
	}

	// Seed from the BOM: allocated pairs appear even with no movements yet.
	for _, allocation := range allocations {
		if !visible.Contains(allocation.ProjectID) {
			continue
		}
		if !resolve("allocation", allocation.ProjectID, allocation.MaterialID) {
			continue
		}
		row(allocation.ProjectID, allocation.MaterialID).RequiredQty = allocation.RequiredQty.Decimal
	}

	// Materials can be received without a prior BOM entry, so rows are
	// created on demand from here on.
	for _, record := range inwards {
		if !visible.Contains(record.ProjectID) {
			continue
		}
		for _, line := range record.Lines {
			if !resolve("inward", record.ProjectID, line.MaterialID) {
				continue
			}
			r := row(record.ProjectID, line.MaterialID)
			r.OrderedQty = r.OrderedQty.Add(line.OrderedQty.Decimal)
			r.ReceivedQty = r.ReceivedQty.Add(line.ReceivedQty.Decimal)
		}
	}

	for _, record := range outwards {
		if !visible.Contains(record.ProjectID) {
			continue
		}
		for _, line := range record.Lines {
			if !resolve("outward", record.ProjectID, line.MaterialID) {
				continue
			}
			r := row(record.ProjectID, line.MaterialID)
			r.IssuedQty = r.IssuedQty.Add(line.IssueQty.Decimal)
		}
	}

	// A transfer between two visible projects updates both rows from the
	// single record.
	for _, record := range transfers {
		for _, line := range record.Lines {
			if visible.Contains(record.FromProjectID) {
				if resolve("transfer", record.FromProjectID, line.MaterialID) {
					r := row(record.FromProjectID, line.MaterialID)
					r.TransferredOut = r.TransferredOut.Add(line.TransferQty.Decimal)
				}
			}
			if visible.Contains(record.ToProjectID) {
				if resolve("transfer", record.ToProjectID, line.MaterialID) {
					r := row(record.ToProjectID, line.MaterialID)
					r.TransferredIn = r.TransferredIn.Add(line.TransferQty.Decimal)
				}
			}
		}
	}

	result := Result{Rows: make([]models.LedgerRow, 0, len(rows)), Skipped: skipped}
	for _, r := range rows {
		r.BalanceQty = r.ReceivedQty.Sub(r.IssuedQty).Sub(r.TransferredOut).Add(r.TransferredIn)
		result.Rows = append(result.Rows, *r)
	}

	sort.SliceStable(result.Rows, func(i, j int) bool {
		left, right := result.Rows[i], result.Rows[j]
		leftProject := refs.Projects[left.ProjectID].Code
		rightProject := refs.Projects[right.ProjectID].Code
		if leftProject != rightProject {
			return leftProject < rightProject
		}
		return refs.Materials[left.MaterialID].Code < refs.Materials[right.MaterialID].Code
	})

	return result
}
