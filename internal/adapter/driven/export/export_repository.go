package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/voltmart/sales-insights-go/internal/domain/entity"
	"github.com/voltmart/sales-insights-go/internal/domain/repository"
	"github.com/voltmart/sales-insights-go/internal/shared/types"
)

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new implementation of the ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToCSV writes one report document as a CSV file: the column header
// followed by the presentation-formatted rows.
func (r *ExportRepositoryImpl) ExportToCSV(doc entity.ReportDocument, filename, outputDir string) (string, error) {
	if len(doc.Columns) == 0 {
		return "", types.ErrNoReportData
	}

	outputFilename, err := generateFilename(fmt.Sprintf("%s_%s", filename, doc.Name), outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(doc.Columns); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range doc.Rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	return filepath.Abs(outputFilename)
}

// jsonBundle is the envelope written by ExportToJSON. Reports carry their
// typed records, so the JSON form keeps the engine's full-precision values.
type jsonBundle struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Reports     []entity.ReportDocument `json:"reports"`
}

// ExportToJSON writes all generated report documents into one indented JSON
// file.
func (r *ExportRepositoryImpl) ExportToJSON(docs []entity.ReportDocument, filename, outputDir string) (string, error) {
	if len(docs) == 0 {
		return "", types.ErrNoReportData
	}

	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(jsonBundle{GeneratedAt: time.Now().UTC(), Reports: docs}); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToPDF writes all generated report documents into one landscape PDF,
// one titled table per report.
func (r *ExportRepositoryImpl) ExportToPDF(docs []entity.ReportDocument, filename, outputDir string) (string, error) {
	if len(docs) == 0 {
		return "", types.ErrNoReportData
	}

	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	stripeColor := [3]int{245, 245, 245}
	bodyTextColor := [3]int{50, 50, 50}

	// A4 landscape is 297mm wide; keep 10mm margins.
	const usableWidth = 277.0
	const rowHeight = 7.0

	for docNum, doc := range docs {
		pdf.AddPage()

		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", doc.Title)), "", 1, "L", true, 0, "")
		pdf.Ln(6)

		colWidth := usableWidth / float64(len(doc.Columns))

		writeColumnHeader := func() {
			pdf.SetFont("Arial", "B", 9)
			pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
			pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
			for _, column := range doc.Columns {
				pdf.CellFormat(colWidth, rowHeight, tr(column), "1", 0, "L", true, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont("Arial", "", 9)
			pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		}
		writeColumnHeader()

		for i, row := range doc.Rows {
			// A4 landscape is 210mm tall; break before the footer zone.
			if pdf.GetY() > 190 {
				pdf.AddPage()
				writeColumnHeader()
			}
			pdf.SetFillColor(stripeColor[0], stripeColor[1], stripeColor[2])
			for _, cell := range row {
				pdf.CellFormat(colWidth, rowHeight, tr(cell), "1", 0, "L", i%2 == 1, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Sales Insights | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Report %d of %d", docNum+1, len(docs))), "", 0, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename creates a unique timestamped filename and ensures the
// output directory exists.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
