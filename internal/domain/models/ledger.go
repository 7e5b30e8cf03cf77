package models

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerRow is the derived per-(project, material) quantity summary. It is
// recomputed on demand from the movement set and never persisted, so it can
// not go stale.
type LedgerRow struct {
	ProjectID      primitive.ObjectID
	MaterialID     primitive.ObjectID
	RequiredQty    decimal.Decimal
	OrderedQty     decimal.Decimal
	ReceivedQty    decimal.Decimal
	IssuedQty      decimal.Decimal
	TransferredIn  decimal.Decimal
	TransferredOut decimal.Decimal
	// BalanceQty keeps its sign for auditability even when issues outrun
	// receipts.
	BalanceQty decimal.Decimal
}

// DisplayBalance floors the signed balance at zero for presentation.
func (r *LedgerRow) DisplayBalance() decimal.Decimal {
	if r.BalanceQty.IsNegative() {
		return decimal.Zero
	}
	return r.BalanceQty
}
