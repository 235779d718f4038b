package extraction

import "context"

// SummaryField is one labeled value detected on an expense document, e.g.
// {Type: "VENDOR_NAME", Value: "Acme"}.
type SummaryField struct {
	Type  string
	Value string
}

// ExpenseDocument groups the summary fields detected on one document.
type ExpenseDocument struct {
	SummaryFields []SummaryField
}

// ExpenseAnalyzer analyzes a stored object in place as an expense/receipt
// document. The object is referenced by bucket and key; no bytes flow
// through the caller.
type ExpenseAnalyzer interface {
	AnalyzeExpense(ctx context.Context, bucket, key string) ([]ExpenseDocument, error)
}
