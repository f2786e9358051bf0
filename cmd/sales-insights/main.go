package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/voltmart/sales-insights-go/internal/adapter/driven/config"
	"github.com/voltmart/sales-insights-go/internal/adapter/driven/csvdir"
	"github.com/voltmart/sales-insights-go/internal/adapter/driven/export"
	"github.com/voltmart/sales-insights-go/internal/adapter/driven/sqlite"
	"github.com/voltmart/sales-insights-go/internal/adapter/driving/cli"
	"github.com/voltmart/sales-insights-go/internal/application/usecase"
	"github.com/voltmart/sales-insights-go/pkg/console"
	"github.com/voltmart/sales-insights-go/pkg/version"
)

func main() {
	// Load a local .env when present; the process environment stays
	// authoritative for anything already set.
	_ = godotenv.Load()

	app := cli.NewCLIApp(version.Version)

	dbRepo := sqlite.NewSalesRepository()
	csvRepo := csvdir.NewSalesRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	reportsUseCase := usecase.NewReportsUseCase(
		dbRepo,
		csvRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetReportsUseCase(reportsUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
