package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	DBPath      string
	CSVDir      string
	Reports     []string
	ReportName  string
	ReportType  []string
	Dir         string
	Audit       bool
	Trend       bool
	ListReports bool
}
