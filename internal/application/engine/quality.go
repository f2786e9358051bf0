package engine

import (
	"github.com/voltmart/sales-insights-go/internal/domain/entity"
)

// Quality returns the data-quality audit computed when the engine was built:
// row counts, invalid-quantity rows, per-dimension referential gaps, and
// currency coverage. It is a diagnostic companion to the reports, never an
// input to them.
func (e *Engine) Quality() entity.QualityAudit {
	return e.audit
}

// InvalidQuantitySales lists the fact rows whose quantity is missing or
// negative, ordered by order number then line item. These rows feed no
// aggregate.
func (e *Engine) InvalidQuantitySales() []entity.Sale {
	return e.audit.InvalidQuantitySales
}

// DistinctCurrencyCodes lists the currency codes present on the fact rows,
// sorted ascending. Empty codes are ignored.
func (e *Engine) DistinctCurrencyCodes() []string {
	return e.audit.CurrencyCodes
}
