// Package handlers wires the quote calculation engine and the report
// renderers to the HTTP boundary.
package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"translationquote/services"
)

// ExportRequest is the expected JSON body for both export operations. The
// client submits its task list together with the summary it already
// computed, so the exported figures match the ones on screen.
type ExportRequest struct {
	Tasks   []services.Task              `json:"tasks"`
	Summary *services.CalculationSummary `json:"summary"`
}

// Fixed download filenames, one per export format.
const (
	pdfFilename      = "translation-estimate.pdf"
	workbookFilename = "translation-estimate.xlsx"
)

// bindExportRequest decodes and validates an export request body. A non-nil
// error message means the request must be rejected as a client error.
func bindExportRequest(e *core.RequestEvent) (*ExportRequest, string) {
	var req ExportRequest
	if err := e.BindBody(&req); err != nil {
		return nil, "Invalid request body"
	}
	if req.Summary == nil {
		return nil, "summary is required"
	}
	if req.Summary.Tasks == nil {
		return nil, "summary.tasks must be an array"
	}
	if err := services.ValidateTasks(req.Tasks); err != nil {
		return nil, err.Error()
	}
	return &req, ""
}

// HandleExportPDF handles POST /api/export/pdf: it renders the submitted
// summary into a PDF quote and returns it as a download attachment.
func HandleExportPDF(e *core.RequestEvent) error {
	req, msg := bindExportRequest(e)
	if msg != "" {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	pdfBytes, err := services.GenerateQuotePDF(*req.Summary)
	if err != nil {
		log.Printf("export_pdf: failed to generate: %v", err)
		return e.JSON(http.StatusInternalServerError,
			map[string]string{"error": "Failed to generate PDF file"})
	}

	e.Response.Header().Set("Content-Type", "application/pdf")
	e.Response.Header().Set("Content-Disposition", `attachment; filename="`+pdfFilename+`"`)
	e.Response.Write(pdfBytes)
	return nil
}

// HandleExportExcel handles POST /api/export/excel: it renders the
// submitted summary into an XLSX workbook and returns it as a download
// attachment.
func HandleExportExcel(e *core.RequestEvent) error {
	req, msg := bindExportRequest(e)
	if msg != "" {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}

	xlsxBytes, err := services.GenerateQuoteWorkbook(*req.Summary)
	if err != nil {
		log.Printf("export_excel: failed to generate: %v", err)
		return e.JSON(http.StatusInternalServerError,
			map[string]string{"error": "Failed to generate Excel file"})
	}

	e.Response.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	e.Response.Header().Set("Content-Disposition", `attachment; filename="`+workbookFilename+`"`)
	e.Response.Write(xlsxBytes)
	return nil
}
