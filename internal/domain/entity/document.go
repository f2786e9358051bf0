package entity

// ReportDocument is one evaluated report ready for display or export. Rows
// hold presentation-formatted cells (monetary values rounded to two
// decimals); Records keeps the typed rows the engine computed, carried into
// machine-readable exports at full precision.
type ReportDocument struct {
	Name    string      `json:"name"`
	Title   string      `json:"title"`
	Columns []string    `json:"columns"`
	Rows    [][]string  `json:"rows"`
	Records interface{} `json:"records,omitempty"`
}
