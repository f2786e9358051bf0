package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/voltmart/sales-insights-go/internal/application/usecase"
	"github.com/voltmart/sales-insights-go/internal/shared/types"
	"github.com/voltmart/sales-insights-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd        *cobra.Command
	reportsUseCase *usecase.ReportsUseCase
	version        string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "sales-insights",
		Short:   "Analytical reports over the VoltMart sales star schema",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Sales Insights version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite sales database")
	rootCmd.PersistentFlags().String("csv-dir", "", "Directory holding the star schema as CSV files")
	rootCmd.PersistentFlags().StringSliceP("reports", "r", nil, "Report names to evaluate (comma-separated, default: all)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Base name for exported report files (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Export formats: csv, json, pdf (default: csv)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save exported files (default: current directory)")
	rootCmd.PersistentFlags().BoolP("audit", "a", false, "Run the data-quality audit instead of the reports")
	rootCmd.PersistentFlags().BoolP("trend", "t", false, "Display the monthly revenue trend as bars")
	rootCmd.PersistentFlags().Bool("list-reports", false, "List the available report names and exit")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line flags into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	configFile, _ := app.rootCmd.Flags().GetString("config-file")
	dbPath, _ := app.rootCmd.Flags().GetString("db")
	csvDir, _ := app.rootCmd.Flags().GetString("csv-dir")
	reports, _ := app.rootCmd.Flags().GetStringSlice("reports")
	reportName, _ := app.rootCmd.Flags().GetString("report-name")
	reportType, _ := app.rootCmd.Flags().GetStringSlice("report-type")
	dir, _ := app.rootCmd.Flags().GetString("dir")
	audit, _ := app.rootCmd.Flags().GetBool("audit")
	trend, _ := app.rootCmd.Flags().GetBool("trend")
	listReports, _ := app.rootCmd.Flags().GetBool("list-reports")

	// A relative output directory is resolved once, up front, so exports do
	// not move if the working directory changes later.
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile:  configFile,
		DBPath:      dbPath,
		CSVDir:      csvDir,
		Reports:     reports,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		Audit:       audit,
		Trend:       trend,
		ListReports: listReports,
	}, nil
}

// runCommand is the entry point for the root command.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	return app.reportsUseCase.Run(ctx, cliArgs)
}

// SetReportsUseCase sets the reports use case for the CLI app.
func (app *CLIApp) SetReportsUseCase(useCase *usecase.ReportsUseCase) {
	app.reportsUseCase = useCase
}
