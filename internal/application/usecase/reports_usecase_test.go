package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/voltmart/sales-insights-go/internal/domain/entity"
	"github.com/voltmart/sales-insights-go/internal/shared/types"
)

type stubStatus struct{}

func (stubStatus) Update(string) {}
func (stubStatus) Stop()         {}

type stubProgress struct{}

func (stubProgress) Increment() {}
func (stubProgress) Stop()      {}

type stubTable struct {
	columns []string
	rows    [][]interface{}
}

func (t *stubTable) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

func (t *stubTable) AddRow(cells ...interface{}) {
	t.rows = append(t.rows, cells)
}

func (t *stubTable) Render() string {
	return fmt.Sprintf("table(%d rows)", len(t.rows))
}

type stubConsole struct {
	infos     []string
	warnings  []string
	failures  []string
	successes []string
	tables    []*stubTable
	trend     []types.MonthlyRevenue
}

func (c *stubConsole) Print(a ...interface{})                 {}
func (c *stubConsole) Printf(format string, a ...interface{}) {}
func (c *stubConsole) Println(a ...interface{})               {}

func (c *stubConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}

func (c *stubConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *stubConsole) LogError(format string, a ...interface{}) {
	c.failures = append(c.failures, fmt.Sprintf(format, a...))
}

func (c *stubConsole) LogSuccess(format string, a ...interface{}) {
	c.successes = append(c.successes, fmt.Sprintf(format, a...))
}

func (c *stubConsole) Status(message string) types.StatusHandle {
	return stubStatus{}
}

func (c *stubConsole) Progress(items []string) types.ProgressHandle {
	return stubProgress{}
}

func (c *stubConsole) CreateTable() types.TableInterface {
	table := &stubTable{}
	c.tables = append(c.tables, table)
	return table
}

func (c *stubConsole) DisplayTrendBars(monthlyRevenue []types.MonthlyRevenue) {
	c.trend = monthlyRevenue
}

func (c *stubConsole) ProgressWithTotal(total int) types.ProgressHandle {
	return stubProgress{}
}

type stubSalesRepo struct {
	dataset    *entity.Dataset
	err        error
	calls      int
	lastSource string
}

func (s *stubSalesRepo) LoadDataset(ctx context.Context, source string) (*entity.Dataset, error) {
	s.calls++
	s.lastSource = source
	if s.err != nil {
		return nil, s.err
	}
	return s.dataset, nil
}

func (s *stubSalesRepo) Describe(source string) string {
	return "stub source " + source
}

type stubExportRepo struct {
	csvDocs    []entity.ReportDocument
	jsonCalls  [][]entity.ReportDocument
	pdfCalls   [][]entity.ReportDocument
	err        error
}

func (s *stubExportRepo) ExportToCSV(doc entity.ReportDocument, filename string, outputDir string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.csvDocs = append(s.csvDocs, doc)
	return "/exports/" + filename + "_" + doc.Name + ".csv", nil
}

func (s *stubExportRepo) ExportToJSON(docs []entity.ReportDocument, filename string, outputDir string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.jsonCalls = append(s.jsonCalls, docs)
	return "/exports/" + filename + ".json", nil
}

func (s *stubExportRepo) ExportToPDF(docs []entity.ReportDocument, filename string, outputDir string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.pdfCalls = append(s.pdfCalls, docs)
	return "/exports/" + filename + ".pdf", nil
}

type stubConfigRepo struct {
	config *types.Config
	err    error
}

func (s *stubConfigRepo) LoadConfigFile(filePath string) (*types.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.config, nil
}

func fixtureDataset() *entity.Dataset {
	laptops, buds := 2, 3
	return &entity.Dataset{
		Sales: []entity.Sale{
			{OrderNumber: 1001, LineItem: 1, OrderDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), CustomerKey: 1, ProductKey: 10, StoreKey: 100, CurrencyCode: "USD", Quantity: &laptops},
			{OrderNumber: 1002, LineItem: 1, OrderDate: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), CustomerKey: 1, ProductKey: 11, StoreKey: 100, CurrencyCode: "USD", Quantity: &buds},
		},
		Products: []entity.Product{
			{ProductKey: 10, ProductName: "Volt Laptop 15", Category: "Computers", UnitPriceUSD: 1000, UnitCostUSD: 700},
			{ProductKey: 11, ProductName: "Volt Buds", Category: "Audio", UnitPriceUSD: 100, UnitCostUSD: 40},
		},
		Customers:  []entity.Customer{{CustomerKey: 1, FirstName: "Ada", LastName: "Marsh"}},
		Stores:     []entity.Store{{StoreKey: 100, Country: "United States", State: "California"}},
		Currencies: []entity.CurrencyRate{{CurrencyCode: "USD", ConversionToUSD: 1}},
	}
}

func newTestUseCase(dataset *entity.Dataset) (*ReportsUseCase, *stubSalesRepo, *stubSalesRepo, *stubExportRepo, *stubConsole) {
	dbRepo := &stubSalesRepo{dataset: dataset}
	csvRepo := &stubSalesRepo{dataset: dataset}
	exportRepo := &stubExportRepo{}
	console := &stubConsole{}
	uc := NewReportsUseCase(dbRepo, csvRepo, exportRepo, &stubConfigRepo{config: &types.Config{}}, console)
	return uc, dbRepo, csvRepo, exportRepo, console
}

// clearSourceEnv shields tests that rely on unset flags from fallbacks
// leaking in from the developer's environment.
func clearSourceEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SALES_INSIGHTS_DB", "")
	t.Setenv("SALES_INSIGHTS_CSV_DIR", "")
	t.Setenv("SALES_INSIGHTS_DIR", "")
}

func TestRunGeneratesAndExports(t *testing.T) {
	uc, dbRepo, _, exportRepo, console := newTestUseCase(fixtureDataset())

	args := &types.CLIArgs{
		DBPath:     "sales.db",
		Reports:    []string{"revenue_by_category"},
		ReportName: "q3_review",
		ReportType: []string{"csv", "json"},
	}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if dbRepo.calls != 1 || dbRepo.lastSource != "sales.db" {
		t.Fatalf("expected one load from sales.db, got %d calls (last %q)", dbRepo.calls, dbRepo.lastSource)
	}
	if len(exportRepo.csvDocs) != 1 {
		t.Fatalf("expected 1 CSV export, got %d", len(exportRepo.csvDocs))
	}
	doc := exportRepo.csvDocs[0]
	if doc.Name != "revenue_by_category" {
		t.Errorf("exported doc name = %q", doc.Name)
	}
	want := [][]string{{"Computers", "$2000.00"}, {"Audio", "$300.00"}}
	if len(doc.Rows) != len(want) {
		t.Fatalf("rows = %v", doc.Rows)
	}
	for i := range want {
		if doc.Rows[i][0] != want[i][0] || doc.Rows[i][1] != want[i][1] {
			t.Errorf("row %d = %v, want %v", i, doc.Rows[i], want[i])
		}
	}
	if len(exportRepo.jsonCalls) != 1 || len(exportRepo.jsonCalls[0]) != 1 {
		t.Fatalf("expected one JSON export of one document, got %v", exportRepo.jsonCalls)
	}
	if len(console.successes) != 2 {
		t.Errorf("expected 2 export success logs, got %v", console.successes)
	}
}

func TestRunSkipsExportWithoutReportName(t *testing.T) {
	uc, _, _, exportRepo, _ := newTestUseCase(fixtureDataset())

	args := &types.CLIArgs{DBPath: "sales.db"}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(exportRepo.csvDocs) != 0 || len(exportRepo.jsonCalls) != 0 || len(exportRepo.pdfCalls) != 0 {
		t.Errorf("expected no exports without --report-name")
	}
}

func TestRunEvaluatesAllReportsByDefault(t *testing.T) {
	uc, _, _, exportRepo, _ := newTestUseCase(fixtureDataset())

	args := &types.CLIArgs{DBPath: "sales.db", ReportName: "full", ReportType: []string{"json"}}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(exportRepo.jsonCalls) != 1 {
		t.Fatalf("expected one JSON export, got %d", len(exportRepo.jsonCalls))
	}
	if got := len(exportRepo.jsonCalls[0]); got != len(reportRegistry) {
		t.Errorf("exported %d documents, want %d", got, len(reportRegistry))
	}
}

func TestRunUnknownReportFailsBeforeLoad(t *testing.T) {
	uc, dbRepo, _, _, _ := newTestUseCase(fixtureDataset())

	args := &types.CLIArgs{DBPath: "sales.db", Reports: []string{"store_gossip"}}
	err := uc.Run(context.Background(), args)
	if !errors.Is(err, types.ErrUnknownReport) {
		t.Fatalf("expected ErrUnknownReport, got %v", err)
	}
	if dbRepo.calls != 0 {
		t.Errorf("dataset was loaded despite an unknown report name")
	}
}

func TestRunRequiresDataSource(t *testing.T) {
	clearSourceEnv(t)
	uc, _, _, _, _ := newTestUseCase(fixtureDataset())

	err := uc.Run(context.Background(), &types.CLIArgs{})
	if !errors.Is(err, types.ErrNoDataSource) {
		t.Fatalf("expected ErrNoDataSource, got %v", err)
	}
}

func TestRunPrefersDatabaseWhenBothSourcesGiven(t *testing.T) {
	uc, dbRepo, csvRepo, _, console := newTestUseCase(fixtureDataset())

	args := &types.CLIArgs{DBPath: "sales.db", CSVDir: "warehouse"}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if dbRepo.calls != 1 || csvRepo.calls != 0 {
		t.Errorf("expected the database repository to win, got db=%d csv=%d", dbRepo.calls, csvRepo.calls)
	}
	if len(console.warnings) == 0 {
		t.Errorf("expected a warning about both sources being given")
	}
}

func TestRunTrendMode(t *testing.T) {
	clearSourceEnv(t)
	uc, _, csvRepo, exportRepo, console := newTestUseCase(fixtureDataset())

	args := &types.CLIArgs{CSVDir: "warehouse", Trend: true}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if csvRepo.calls != 1 || csvRepo.lastSource != "warehouse" {
		t.Fatalf("expected one load from the CSV directory")
	}
	want := []types.MonthlyRevenue{
		{Month: "2024-03", Revenue: 2000},
		{Month: "2024-04", Revenue: 300},
	}
	if len(console.trend) != len(want) {
		t.Fatalf("trend series = %v", console.trend)
	}
	for i := range want {
		if console.trend[i] != want[i] {
			t.Errorf("trend[%d] = %v, want %v", i, console.trend[i], want[i])
		}
	}
	if len(exportRepo.csvDocs) != 0 {
		t.Errorf("trend mode must not export")
	}
}

func TestRunAuditMode(t *testing.T) {
	dataset := fixtureDataset()
	dataset.Sales = append(dataset.Sales, entity.Sale{
		OrderNumber: 1003, LineItem: 1,
		OrderDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		CustomerKey: 1, ProductKey: 10, StoreKey: 100,
		CurrencyCode: "USD", Quantity: nil,
	})
	uc, _, _, exportRepo, console := newTestUseCase(dataset)

	args := &types.CLIArgs{DBPath: "sales.db", Audit: true, ReportName: "audit", ReportType: []string{"csv"}}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(exportRepo.csvDocs) != 2 {
		t.Fatalf("expected the audit summary and the invalid-quantity detail, got %d docs", len(exportRepo.csvDocs))
	}
	if exportRepo.csvDocs[0].Name != "quality_audit" || exportRepo.csvDocs[1].Name != "invalid_quantity_sales" {
		t.Errorf("exported docs = %q, %q", exportRepo.csvDocs[0].Name, exportRepo.csvDocs[1].Name)
	}
	if len(exportRepo.csvDocs[1].Rows) != 1 {
		t.Errorf("invalid-quantity detail rows = %v", exportRepo.csvDocs[1].Rows)
	}
	if len(console.warnings) == 0 {
		t.Errorf("expected a warning about excluded rows")
	}
}

func TestRunListReports(t *testing.T) {
	uc, dbRepo, csvRepo, _, console := newTestUseCase(fixtureDataset())

	args := &types.CLIArgs{ListReports: true}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if dbRepo.calls != 0 || csvRepo.calls != 0 {
		t.Errorf("--list-reports must not load any data")
	}
	if len(console.tables) != 1 {
		t.Fatalf("expected one table, got %d", len(console.tables))
	}
	if got := len(console.tables[0].rows); got != len(reportRegistry) {
		t.Errorf("listed %d reports, want %d", got, len(reportRegistry))
	}
}

func TestRunMergesConfigFile(t *testing.T) {
	clearSourceEnv(t)
	dbRepo := &stubSalesRepo{dataset: fixtureDataset()}
	csvRepo := &stubSalesRepo{dataset: fixtureDataset()}
	exportRepo := &stubExportRepo{}
	console := &stubConsole{}
	configRepo := &stubConfigRepo{config: &types.Config{
		CSVDir:  "warehouse",
		Reports: []string{"category_margin"},
	}}
	uc := NewReportsUseCase(dbRepo, csvRepo, exportRepo, configRepo, console)

	args := &types.CLIArgs{ConfigFile: "insights.toml"}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if csvRepo.calls != 1 || csvRepo.lastSource != "warehouse" {
		t.Errorf("expected the config file to supply the CSV directory, got %q", csvRepo.lastSource)
	}
}

func TestRunFlagsWinOverConfigFile(t *testing.T) {
	clearSourceEnv(t)
	dbRepo := &stubSalesRepo{dataset: fixtureDataset()}
	csvRepo := &stubSalesRepo{dataset: fixtureDataset()}
	configRepo := &stubConfigRepo{config: &types.Config{CSVDir: "warehouse"}}
	uc := NewReportsUseCase(dbRepo, csvRepo, &stubExportRepo{}, configRepo, &stubConsole{})

	args := &types.CLIArgs{ConfigFile: "insights.toml", CSVDir: "override"}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if csvRepo.lastSource != "override" {
		t.Errorf("flag value lost to the config file: %q", csvRepo.lastSource)
	}
}

func TestRunReportsExportFailures(t *testing.T) {
	uc, _, _, exportRepo, console := newTestUseCase(fixtureDataset())
	exportRepo.err = errors.New("disk full")

	args := &types.CLIArgs{DBPath: "sales.db", Reports: []string{"revenue_by_category"}, ReportName: "q3", ReportType: []string{"pdf"}}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("export failures must not abort the run: %v", err)
	}
	if len(console.failures) != 1 {
		t.Fatalf("expected one export error log, got %v", console.failures)
	}
}

func TestRunWarnsAboutUnknownExportFormat(t *testing.T) {
	uc, _, _, exportRepo, console := newTestUseCase(fixtureDataset())

	args := &types.CLIArgs{DBPath: "sales.db", Reports: []string{"revenue_by_category"}, ReportName: "q3", ReportType: []string{"xlsx"}}
	if err := uc.Run(context.Background(), args); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(exportRepo.csvDocs)+len(exportRepo.jsonCalls)+len(exportRepo.pdfCalls) != 0 {
		t.Errorf("unknown format must not export anything")
	}
	if len(console.warnings) == 0 {
		t.Errorf("expected a warning about the unknown format")
	}
}

func TestResolveReportsDefaultsToAll(t *testing.T) {
	selected, err := resolveReports(nil)
	if err != nil {
		t.Fatalf("resolveReports: %v", err)
	}
	if len(selected) != len(reportRegistry) {
		t.Fatalf("selected %d reports, want %d", len(selected), len(reportRegistry))
	}
	if selected[0].Name != "revenue_per_customer" || selected[len(selected)-1].Name != "category_margin" {
		t.Errorf("registry order changed: first %q last %q", selected[0].Name, selected[len(selected)-1].Name)
	}
}

func TestResolveReportsNormalizesNames(t *testing.T) {
	selected, err := resolveReports([]string{" Revenue_BY_Category ", "category_margin"})
	if err != nil {
		t.Fatalf("resolveReports: %v", err)
	}
	if len(selected) != 2 || selected[0].Name != "revenue_by_category" || selected[1].Name != "category_margin" {
		t.Errorf("selected = %v", selected)
	}
}

func TestResolveReportsUnknownName(t *testing.T) {
	_, err := resolveReports([]string{"revenue_by_vibes"})
	if !errors.Is(err, types.ErrUnknownReport) {
		t.Fatalf("expected ErrUnknownReport, got %v", err)
	}
}

func TestApplyConfigFillsOnlyUnsetArgs(t *testing.T) {
	args := &types.CLIArgs{DBPath: "flag.db", ReportType: []string{"pdf"}}
	config := &types.Config{
		DBPath:     "config.db",
		CSVDir:     "warehouse",
		ReportName: "q3",
		ReportType: []string{"csv"},
		Audit:      true,
	}
	applyConfig(args, config)

	if args.DBPath != "flag.db" {
		t.Errorf("flag value overwritten: %q", args.DBPath)
	}
	if args.CSVDir != "warehouse" || args.ReportName != "q3" {
		t.Errorf("config values not applied: %+v", args)
	}
	if len(args.ReportType) != 1 || args.ReportType[0] != "pdf" {
		t.Errorf("report types overwritten: %v", args.ReportType)
	}
	if !args.Audit {
		t.Errorf("audit flag from config not applied")
	}
}

func TestApplyEnvFallbacks(t *testing.T) {
	t.Setenv("SALES_INSIGHTS_DB", "env.db")
	t.Setenv("SALES_INSIGHTS_CSV_DIR", "env-dir")
	t.Setenv("SALES_INSIGHTS_DIR", "env-out")

	args := &types.CLIArgs{}
	applyEnvFallbacks(args)
	if args.DBPath != "env.db" || args.CSVDir != "env-dir" || args.Dir != "env-out" {
		t.Errorf("env fallbacks not applied: %+v", args)
	}

	args = &types.CLIArgs{DBPath: "flag.db"}
	applyEnvFallbacks(args)
	if args.DBPath != "flag.db" {
		t.Errorf("flag value lost to the environment: %q", args.DBPath)
	}
}

func TestCellFormatting(t *testing.T) {
	if got := money(1234.567); got != "$1234.57" {
		t.Errorf("money = %q", got)
	}
	if got := optMoney(nil); got != "N/A" {
		t.Errorf("optMoney(nil) = %q", got)
	}
	up, down := 5.5, -5.5
	if got := signedMoney(&up); got != "+$5.50" {
		t.Errorf("signedMoney(+) = %q", got)
	}
	if got := signedMoney(&down); got != "-$5.50" {
		t.Errorf("signedMoney(-) = %q", got)
	}
	if got := signedMoney(nil); got != "N/A" {
		t.Errorf("signedMoney(nil) = %q", got)
	}
	share := 33.333
	if got := pct(&share); got != "33.33%" {
		t.Errorf("pct = %q", got)
	}
	if got := signedPct(&share); got != "+33.33%" {
		t.Errorf("signedPct = %q", got)
	}
	if got := pct(nil); got != "N/A" {
		t.Errorf("pct(nil) = %q", got)
	}
}
