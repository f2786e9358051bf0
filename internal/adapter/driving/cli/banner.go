package cli

import (
	"fmt"

	"github.com/voltmart/sales-insights-go/pkg/console"
	"github.com/voltmart/sales-insights-go/pkg/version"
)

// displayWelcomeBanner prints the startup banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
   ____        _             ___           _       _     _
  / ___|  __ _| | ___  ___  |_ _|_ __  ___(_) __ _| |__ | |_ ___
  \___ \ / _' | |/ _ \/ __|  | || '_ \/ __| |/ _' | '_ \| __/ __|
   ___) | (_| | |  __/\__ \  | || | | \__ \ | (_| | | | | |_\__ \
  |____/ \__,_|_|\___||___/ |___|_| |_|___/_|\__, |_| |_|\__|___/
                                             |___/
`
	fmt.Println(console.BrightMagenta(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(console.BrightCyan(fmt.Sprintf("VoltMart Sales Insights CLI (v%s)", formattedVersion)))
}
