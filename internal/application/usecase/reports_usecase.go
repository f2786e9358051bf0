package usecase

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/voltmart/sales-insights-go/internal/application/engine"
	"github.com/voltmart/sales-insights-go/internal/domain/entity"
	"github.com/voltmart/sales-insights-go/internal/domain/repository"
	"github.com/voltmart/sales-insights-go/internal/shared/types"
)

// ReportsUseCase orchestrates one report run: load the dataset snapshot,
// build the engine, evaluate the requested reports, render and export.
type ReportsUseCase struct {
	dbRepo     repository.SalesRepository
	csvRepo    repository.SalesRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewReportsUseCase creates a new reports use case.
func NewReportsUseCase(
	dbRepo repository.SalesRepository,
	csvRepo repository.SalesRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ReportsUseCase {
	return &ReportsUseCase{
		dbRepo:     dbRepo,
		csvRepo:    csvRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// Run executes a full run for the parsed CLI arguments.
func (uc *ReportsUseCase) Run(ctx context.Context, args *types.CLIArgs) error {
	if args.ConfigFile != "" {
		config, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return err
		}
		applyConfig(args, config)
	}
	applyEnvFallbacks(args)

	if args.ListReports {
		uc.listReports()
		return nil
	}

	// Unknown report names fail before anything is loaded.
	selected, err := resolveReports(args.Reports)
	if err != nil {
		return err
	}

	repo, source, err := uc.pickDataSource(args)
	if err != nil {
		return err
	}

	status := uc.console.Status(fmt.Sprintf("Loading %s...", repo.Describe(source)))
	dataset, err := repo.LoadDataset(ctx, source)
	if err != nil {
		status.Stop()
		return err
	}
	status.Update("Building report engine...")
	eng := engine.New(dataset)
	status.Stop()

	uc.logQualityFindings(eng)

	if args.Audit {
		docs := uc.runQualityAudit(eng)
		uc.exportDocuments(docs, args)
		return nil
	}

	if args.Trend {
		uc.runTrendAnalysis(eng)
		return nil
	}

	docs := uc.runReports(selected, eng)
	uc.exportDocuments(docs, args)
	return nil
}

// applyConfig fills in the arguments the user did not set on the command
// line from the loaded config file.
func applyConfig(args *types.CLIArgs, config *types.Config) {
	if args.DBPath == "" {
		args.DBPath = config.DBPath
	}
	if args.CSVDir == "" {
		args.CSVDir = config.CSVDir
	}
	if len(args.Reports) == 0 {
		args.Reports = config.Reports
	}
	if args.ReportName == "" {
		args.ReportName = config.ReportName
	}
	if len(args.ReportType) == 0 {
		args.ReportType = config.ReportType
	}
	if args.Dir == "" {
		args.Dir = config.Dir
	}
	if !args.Audit {
		args.Audit = config.Audit
	}
	if !args.Trend {
		args.Trend = config.Trend
	}
}

// applyEnvFallbacks fills the source and output paths from the environment
// when neither flag nor config file set them.
func applyEnvFallbacks(args *types.CLIArgs) {
	if args.DBPath == "" {
		args.DBPath = os.Getenv("SALES_INSIGHTS_DB")
	}
	if args.CSVDir == "" {
		args.CSVDir = os.Getenv("SALES_INSIGHTS_CSV_DIR")
	}
	if args.Dir == "" {
		args.Dir = os.Getenv("SALES_INSIGHTS_DIR")
	}
}

// pickDataSource chooses between the SQLite and CSV repositories. An
// explicit database path wins when both are given.
func (uc *ReportsUseCase) pickDataSource(args *types.CLIArgs) (repository.SalesRepository, string, error) {
	switch {
	case args.DBPath != "" && args.CSVDir != "":
		uc.console.LogWarning("Both --db and --csv-dir given; using the database at %s", args.DBPath)
		return uc.dbRepo, args.DBPath, nil
	case args.DBPath != "":
		return uc.dbRepo, args.DBPath, nil
	case args.CSVDir != "":
		return uc.csvRepo, args.CSVDir, nil
	default:
		return nil, "", types.ErrNoDataSource
	}
}

// resolveReports expands the requested report names, defaulting to every
// registered report when none are named.
func resolveReports(names []string) ([]reportDefinition, error) {
	if len(names) == 0 {
		return reportRegistry, nil
	}

	byName := make(map[string]reportDefinition, len(reportRegistry))
	for _, def := range reportRegistry {
		byName[def.Name] = def
	}

	selected := make([]reportDefinition, 0, len(names))
	for _, name := range names {
		def, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrUnknownReport, name)
		}
		selected = append(selected, def)
	}
	return selected, nil
}

// logQualityFindings warns about excluded rows so inner-join exclusion and
// invalid quantities are never silent.
func (uc *ReportsUseCase) logQualityFindings(eng *engine.Engine) {
	audit := eng.Quality()

	if n := len(audit.InvalidQuantitySales); n > 0 {
		uc.console.LogWarning("%d sales rows have a missing or negative quantity and are excluded from every report", n)
	}
	if audit.UnmatchedProducts > 0 || audit.UnmatchedCustomers > 0 || audit.UnmatchedStores > 0 {
		uc.console.LogWarning("Referential gaps excluded sales rows: %d unmatched product, %d unmatched customer, %d unmatched store keys",
			audit.UnmatchedProducts, audit.UnmatchedCustomers, audit.UnmatchedStores)
	}
	if len(audit.MissingConversions) > 0 {
		uc.console.LogWarning("Currency codes without a conversion rate: %s", strings.Join(audit.MissingConversions, ", "))
	}
}

// runReports evaluates the selected reports behind a progress bar, then
// renders each as a boxed table.
func (uc *ReportsUseCase) runReports(selected []reportDefinition, eng *engine.Engine) []entity.ReportDocument {
	progress := uc.console.ProgressWithTotal(len(selected))

	docs := make([]entity.ReportDocument, 0, len(selected))
	for _, def := range selected {
		columns, rows, records := def.Build(eng)
		docs = append(docs, entity.ReportDocument{
			Name:    def.Name,
			Title:   def.Title,
			Columns: columns,
			Rows:    rows,
			Records: records,
		})
		progress.Increment()
	}
	progress.Stop()

	for _, doc := range docs {
		uc.renderDocument(doc)
	}
	return docs
}

// renderDocument prints one report document as a titled boxed table.
func (uc *ReportsUseCase) renderDocument(doc entity.ReportDocument) {
	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprint(doc.Title))

	table := uc.console.CreateTable()
	for _, column := range doc.Columns {
		table.AddColumn(column)
	}
	for _, row := range doc.Rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		table.AddRow(cells...)
	}
	uc.console.Print(table.Render())

	if len(doc.Rows) == 0 {
		uc.console.LogInfo("No rows for %s", doc.Title)
	}
}

// runTrendAnalysis renders the monthly revenue bar chart.
func (uc *ReportsUseCase) runTrendAnalysis(eng *engine.Engine) {
	uc.console.LogInfo("Analysing monthly revenue trend...")

	trend := eng.MonthlyRevenueTrend()
	if len(trend) == 0 {
		uc.console.LogWarning("No qualifying sales to chart")
		return
	}

	monthly := make([]types.MonthlyRevenue, len(trend))
	for i, row := range trend {
		monthly[i] = types.MonthlyRevenue{
			Month:   row.Month.Format("2006-01"),
			Revenue: row.TotalRevenueUSD,
		}
	}
	uc.console.DisplayTrendBars(monthly)
}

// runQualityAudit renders the data-quality diagnostics and returns them as
// exportable documents.
func (uc *ReportsUseCase) runQualityAudit(eng *engine.Engine) []entity.ReportDocument {
	uc.console.LogInfo("Preparing the data-quality audit...")
	audit := eng.Quality()

	summary := entity.ReportDocument{
		Name:    "quality_audit",
		Title:   "Data Quality Audit",
		Columns: []string{"Check", "Result"},
		Rows: [][]string{
			{"Sales rows", strconv.Itoa(audit.TotalSales)},
			{"Qualifying rows", strconv.Itoa(audit.QualifyingSales)},
			{"Invalid quantity rows", strconv.Itoa(len(audit.InvalidQuantitySales))},
			{"Rows with unmatched product key", strconv.Itoa(audit.UnmatchedProducts)},
			{"Rows with unmatched customer key", strconv.Itoa(audit.UnmatchedCustomers)},
			{"Rows with unmatched store key", strconv.Itoa(audit.UnmatchedStores)},
			{"Currency codes in sales", joinOrNone(audit.CurrencyCodes)},
			{"Codes missing a conversion rate", joinOrNone(audit.MissingConversions)},
		},
		Records: audit,
	}
	docs := []entity.ReportDocument{summary}

	if len(audit.InvalidQuantitySales) > 0 {
		invalid := entity.ReportDocument{
			Name:    "invalid_quantity_sales",
			Title:   "Sales Rows with Invalid Quantity",
			Columns: []string{"Order", "Line", "Order Date", "Customer Key", "Product Key", "Store Key", "Quantity"},
			Records: audit.InvalidQuantitySales,
		}
		for _, sale := range audit.InvalidQuantitySales {
			quantity := "NULL"
			if sale.Quantity != nil {
				quantity = strconv.Itoa(*sale.Quantity)
			}
			invalid.Rows = append(invalid.Rows, []string{
				strconv.FormatInt(sale.OrderNumber, 10),
				strconv.Itoa(sale.LineItem),
				sale.OrderDate.Format("2006-01-02"),
				strconv.Itoa(sale.CustomerKey),
				strconv.Itoa(sale.ProductKey),
				strconv.Itoa(sale.StoreKey),
				quantity,
			})
		}
		docs = append(docs, invalid)
	}

	for _, doc := range docs {
		uc.renderDocument(doc)
	}
	if !audit.HasFindings() {
		uc.console.LogSuccess("No data-quality findings")
	}
	return docs
}

// listReports prints the registry so users can discover report names.
func (uc *ReportsUseCase) listReports() {
	table := uc.console.CreateTable()
	table.AddColumn("Name")
	table.AddColumn("Title")
	for _, def := range reportRegistry {
		table.AddRow(def.Name, def.Title)
	}
	uc.console.Print(table.Render())
}

// exportDocuments writes the generated documents in every requested format.
// Formats fail independently so one bad export does not abort the others.
func (uc *ReportsUseCase) exportDocuments(docs []entity.ReportDocument, args *types.CLIArgs) {
	if args.ReportName == "" || len(docs) == 0 {
		return
	}

	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"csv"}
	}

	for _, reportType := range reportTypes {
		switch reportType {
		case "csv":
			for _, doc := range docs {
				csvPath, err := uc.exportRepo.ExportToCSV(doc, args.ReportName, args.Dir)
				if err != nil {
					uc.console.LogError("Failed to export %s to CSV: %s", doc.Name, err)
				} else {
					uc.console.LogSuccess("Successfully exported %s to CSV: %s", doc.Name, csvPath)
				}
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(docs, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(docs, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' (expected csv, json, or pdf)", reportType)
		}
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	return strings.Join(values, ", ")
}
