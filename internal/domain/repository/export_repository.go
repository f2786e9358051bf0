package repository

import (
	"github.com/voltmart/sales-insights-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportToCSV(doc entity.ReportDocument, filename string, outputDir string) (string, error)
	ExportToJSON(docs []entity.ReportDocument, filename string, outputDir string) (string, error)
	ExportToPDF(docs []entity.ReportDocument, filename string, outputDir string) (string, error)
}
