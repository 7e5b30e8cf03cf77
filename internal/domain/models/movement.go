package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OutwardStatus tracks whether an issue slip is still open.
type OutwardStatus string

const (
	OutwardOpen   OutwardStatus = "OPEN"
	OutwardClosed OutwardStatus = "CLOSED"
)

// InwardLine is one received material on a goods-receipt entry.
type InwardLine struct {
	MaterialID  primitive.ObjectID `bson:"material_id" json:"material_id"`
	OrderedQty  Quantity           `bson:"ordered_qty" json:"ordered_qty"`
	ReceivedQty Quantity           `bson:"received_qty" json:"received_qty"`
}

// InwardRecord is an immutable goods-receipt fact. Corrections are posted as
// compensating movements, never edits.
type InwardRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code         string             `bson:"code" json:"code"`
	ProjectID    primitive.ObjectID `bson:"project_id" json:"project_id"`
	EntryDate    time.Time          `bson:"entry_date" json:"entry_date"`
	DeliveryDate time.Time          `bson:"delivery_date" json:"delivery_date"`
	InvoiceNo    string             `bson:"invoice_no" json:"invoice_no"`
	SupplierName string             `bson:"supplier_name" json:"supplier_name"`
	Lines        []InwardLine       `bson:"lines" json:"lines"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// OutwardLine is one issued material on an outward register.
type OutwardLine struct {
	MaterialID primitive.ObjectID `bson:"material_id" json:"material_id"`
	IssueQty   Quantity           `bson:"issue_qty" json:"issue_qty"`
}

// OutwardRecord is a goods-issue fact. Only the open/closed status and close
// date may change after posting; lines are immutable.
type OutwardRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code         string             `bson:"code" json:"code"`
	ProjectID    primitive.ObjectID `bson:"project_id" json:"project_id"`
	RegisterDate time.Time          `bson:"register_date" json:"register_date"`
	IssueTo      string             `bson:"issue_to" json:"issue_to"`
	Status       OutwardStatus      `bson:"status" json:"status"`
	CloseDate    *time.Time         `bson:"close_date,omitempty" json:"close_date,omitempty"`
	Lines        []OutwardLine      `bson:"lines" json:"lines"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// TransferLine is one material moved between sites.
type TransferLine struct {
	MaterialID  primitive.ObjectID `bson:"material_id" json:"material_id"`
	TransferQty Quantity           `bson:"transfer_qty" json:"transfer_qty"`
}

// TransferRecord moves quantity from one project/site to another. A single
// record affects two ledgers: out at the source, in at the destination.
type TransferRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code          string             `bson:"code" json:"code"`
	FromProjectID primitive.ObjectID `bson:"from_project_id" json:"from_project_id"`
	FromSite      string             `bson:"from_site" json:"from_site"`
	ToProjectID   primitive.ObjectID `bson:"to_project_id" json:"to_project_id"`
	ToSite        string             `bson:"to_site" json:"to_site"`
	TransferDate  time.Time          `bson:"transfer_date" json:"transfer_date"`
	Remarks       string             `bson:"remarks" json:"remarks"`
	Lines         []TransferLine     `bson:"lines" json:"lines"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
