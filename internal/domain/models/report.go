package models

import "time"

// ProjectBalanceSummary is one project's aggregate position inside a daily
// report.
type ProjectBalanceSummary struct {
	ProjectID        string   `bson:"project_id" json:"project_id"`
	ProjectCode      string   `bson:"project_code" json:"project_code"`
	MaterialCount    int      `bson:"material_count" json:"material_count"`
	TotalReceived    Quantity `bson:"total_received" json:"total_received"`
	TotalIssued      Quantity `bson:"total_issued" json:"total_issued"`
	TotalTransferred Quantity `bson:"total_transferred" json:"total_transferred"`
	NegativeRows     int      `bson:"negative_rows" json:"negative_rows"`
}

// DailyBalanceReport represents the aggregated end-of-day ledger snapshot
// stored in MongoDB and mirrored to the archive sheet.
type DailyBalanceReport struct {
	Date         time.Time               `bson:"date" json:"date"`
	ProjectCount int                     `bson:"project_count" json:"project_count"`
	RowCount     int                     `bson:"row_count" json:"row_count"`
	Projects     []ProjectBalanceSummary `bson:"projects" json:"projects"`
	SkippedLines int                     `bson:"skipped_lines" json:"skipped_lines"`
	CreatedAt    time.Time               `bson:"created_at" json:"created_at"`
}
