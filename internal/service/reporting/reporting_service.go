// Package reporting builds the end-of-day balance snapshot that goes to the
// report store, the archive sheet and the notification webhook.
package reporting

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/vebops/store/internal/domain/models"
	"github.com/vebops/store/internal/repository/mongodb"
	"github.com/vebops/store/internal/repository/sheets"
	"github.com/vebops/store/internal/service/access"
	"github.com/vebops/store/internal/service/ledger"
	"github.com/vebops/store/pkg/clients/webhook"
)

// Service assembles and distributes daily balance reports. Archive and
// notifier are optional collaborators; a nil value disables that channel.
type Service struct {
	repo      mongodb.Repository
	ledgerSvc *ledger.Service
	archive   sheets.Archive
	notifier  *webhook.Notifier
	logger    *zap.Logger
}

// NewService wires a reporting service instance.
func NewService(repo mongodb.Repository, ledgerSvc *ledger.Service, archive sheets.Archive, notifier *webhook.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		ledgerSvc: ledgerSvc,
		archive:   archive,
		notifier:  notifier,
		logger:    logger,
	}
}

// GenerateDailyReport aggregates the full ledger across every project and
// condenses it into per-project summaries.
func (s *Service) GenerateDailyReport(ctx context.Context, now time.Time) (models.DailyBalanceReport, error) {
	var empty models.DailyBalanceReport

	projects, err := s.repo.ListProjects(ctx)
	if err != nil {
		return empty, fmt.Errorf("load projects: %w", err)
	}
	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return empty, fmt.Errorf("load materials: %w", err)
	}

	refs := ledger.NewRefs(projects, materials)
	all := access.ProjectSet{}
	for _, p := range projects {
		all[p.ID] = struct{}{}
	}

	result, err := s.ledgerSvc.Aggregate(ctx, all, refs)
	if err != nil {
		return empty, err
	}

	summaries := map[primitive.ObjectID]*models.ProjectBalanceSummary{}
	for _, row := range result.Rows {
		summary, ok := summaries[row.ProjectID]
		if !ok {
			project := refs.Projects[row.ProjectID]
			summary = &models.ProjectBalanceSummary{
				ProjectID:   row.ProjectID.Hex(),
				ProjectCode: project.Code,
			}
			summaries[row.ProjectID] = summary
		}
		summary.MaterialCount++
		summary.TotalReceived = models.NewQuantity(summary.TotalReceived.Add(row.ReceivedQty))
		summary.TotalIssued = models.NewQuantity(summary.TotalIssued.Add(row.IssuedQty))
		summary.TotalTransferred = models.NewQuantity(summary.TotalTransferred.Add(row.TransferredOut))
		if row.BalanceQty.IsNegative() {
			summary.NegativeRows++
		}
	}

	report := models.DailyBalanceReport{
		Date:         now.Truncate(24 * time.Hour),
		ProjectCount: len(summaries),
		RowCount:     len(result.Rows),
		SkippedLines: result.Skipped,
		CreatedAt:    now,
	}
	// Rows arrive sorted by project code, so walking them again keeps the
	// summaries in the same order.
	seen := map[primitive.ObjectID]struct{}{}
	for _, row := range result.Rows {
		if _, ok := seen[row.ProjectID]; ok {
			continue
		}
		seen[row.ProjectID] = struct{}{}
		report.Projects = append(report.Projects, *summaries[row.ProjectID])
	}

	return report, nil
}

// RunDaily builds the report, persists it and pushes it to the optional
// channels. Distribution failures are logged but never fail the run; the
// stored report is the source of truth.
func (s *Service) RunDaily(ctx context.Context) error {
	report, err := s.GenerateDailyReport(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("generate daily report: %w", err)
	}

	if err := s.repo.SaveDailyReport(ctx, report); err != nil {
		return fmt.Errorf("save daily report: %w", err)
	}

	if s.archive != nil {
		if err := s.archive.AppendReport(ctx, report); err != nil {
			s.logger.Error("failed to append report to archive sheet", zap.Error(err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendReport(ctx, report); err != nil {
			s.logger.Error("failed to notify report webhook", zap.Error(err))
		}
	}

	s.logger.Info("daily balance report stored",
		zap.Int("projects", report.ProjectCount),
		zap.Int("rows", report.RowCount),
		zap.Int("skipped_lines", report.SkippedLines))
	return nil
}
