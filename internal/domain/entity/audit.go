package entity

// QualityAudit summarizes the data-quality diagnostics for one dataset
// snapshot. Referential gaps and invalid quantities never abort a run; they
// are collected here so excluded rows stay visible to the caller.
type QualityAudit struct {
	TotalSales           int      `json:"total_sales"`
	QualifyingSales      int      `json:"qualifying_sales"`
	InvalidQuantitySales []Sale   `json:"invalid_quantity_sales,omitempty"`
	UnmatchedProducts    int      `json:"unmatched_products"`
	UnmatchedCustomers   int      `json:"unmatched_customers"`
	UnmatchedStores      int      `json:"unmatched_stores"`
	CurrencyCodes        []string `json:"currency_codes"`
	MissingConversions   []string `json:"missing_conversions,omitempty"`
}

// HasFindings reports whether the audit found anything worth flagging.
func (a QualityAudit) HasFindings() bool {
	return len(a.InvalidQuantitySales) > 0 ||
		a.UnmatchedProducts > 0 ||
		a.UnmatchedCustomers > 0 ||
		a.UnmatchedStores > 0 ||
		len(a.MissingConversions) > 0
}
