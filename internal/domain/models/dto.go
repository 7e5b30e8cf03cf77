package models

// Transport shapes for the retrieval surface. Identifiers are hex strings,
// dates are ISO `2006-01-02`, quantities serialize as decimal strings.

// InwardLineDTO is one line of an inward history item.
type InwardLineDTO struct {
	MaterialID   string   `json:"materialId"`
	MaterialCode string   `json:"materialCode"`
	MaterialName string   `json:"materialName"`
	Unit         string   `json:"unit"`
	OrderedQty   Quantity `json:"orderedQty"`
	ReceivedQty  Quantity `json:"receivedQty"`
}

// InwardRecordDTO is a goods-receipt history item.
type InwardRecordDTO struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"projectId"`
	ProjectName  string          `json:"projectName"`
	Code         string          `json:"code"`
	EntryDate    string          `json:"entryDate"`
	DeliveryDate string          `json:"deliveryDate"`
	InvoiceNo    string          `json:"invoiceNo"`
	SupplierName string          `json:"supplierName"`
	LineCount    int             `json:"lineCount"`
	Lines        []InwardLineDTO `json:"lines"`
}

// OutwardLineDTO is one line of an outward history item.
type OutwardLineDTO struct {
	MaterialID   string   `json:"materialId"`
	MaterialCode string   `json:"materialCode"`
	MaterialName string   `json:"materialName"`
	Unit         string   `json:"unit"`
	IssueQty     Quantity `json:"issueQty"`
}

// OutwardRecordDTO is a goods-issue history item.
type OutwardRecordDTO struct {
	ID           string           `json:"id"`
	ProjectID    string           `json:"projectId"`
	ProjectName  string           `json:"projectName"`
	Code         string           `json:"code"`
	RegisterDate string           `json:"registerDate"`
	IssueTo      string           `json:"issueTo"`
	Status       string           `json:"status"`
	CloseDate    string           `json:"closeDate,omitempty"`
	LineCount    int              `json:"lineCount"`
	Lines        []OutwardLineDTO `json:"lines"`
}

// TransferLineDTO is one line of a transfer history item.
type TransferLineDTO struct {
	MaterialID   string   `json:"materialId"`
	MaterialCode string   `json:"materialCode"`
	MaterialName string   `json:"materialName"`
	Unit         string   `json:"unit"`
	TransferQty  Quantity `json:"transferQty"`
}

// TransferRecordDTO is a site-to-site transfer history item.
type TransferRecordDTO struct {
	ID              string            `json:"id"`
	Code            string            `json:"code"`
	FromProjectID   string            `json:"fromProjectId"`
	FromProjectName string            `json:"fromProjectName"`
	FromSite        string            `json:"fromSite"`
	ToProjectID     string            `json:"toProjectId"`
	ToProjectName   string            `json:"toProjectName"`
	ToSite          string            `json:"toSite"`
	TransferDate    string            `json:"transferDate"`
	Remarks         string            `json:"remarks"`
	Lines           []TransferLineDTO `json:"lines"`
}

// StockRowDTO is a rendered ledger row for the stock summary view.
type StockRowDTO struct {
	ProjectID      string   `json:"projectId"`
	ProjectCode    string   `json:"projectCode"`
	ProjectName    string   `json:"projectName"`
	MaterialID     string   `json:"materialId"`
	MaterialCode   string   `json:"materialCode"`
	MaterialName   string   `json:"materialName"`
	Unit           string   `json:"unit"`
	Category       string   `json:"category"`
	RequiredQty    Quantity `json:"requiredQty"`
	OrderedQty     Quantity `json:"orderedQty"`
	ReceivedQty    Quantity `json:"receivedQty"`
	IssuedQty      Quantity `json:"issuedQty"`
	TransferredIn  Quantity `json:"transferredIn"`
	TransferredOut Quantity `json:"transferredOut"`
	BalanceQty     Quantity `json:"balanceQty"`
}
