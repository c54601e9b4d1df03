package domain

// BulkItemResult is the per-item outcome of a best-effort bulk operation.
// One item failing is recorded here and never aborts the remaining items.
type BulkItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkResult summarizes a best-effort bulk operation. Count is the number of
// items that succeeded; Results carries one entry per input id, in input order.
type BulkResult struct {
	Count   int              `json:"count"`
	Results []BulkItemResult `json:"results"`
}
