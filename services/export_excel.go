package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetNameMaxLen is the sheet name limit imposed by the XLSX format.
const sheetNameMaxLen = 31

// workbookStyles holds the style IDs shared by all sheets of one workbook.
type workbookStyles struct {
	title      int
	header     int
	subheading int
	totals     int
}

// GenerateQuoteWorkbook renders a calculation summary into a multi-sheet
// XLSX workbook: one sheet per task in input order, plus a totals sheet
// when there is more than one task.
func GenerateQuoteWorkbook(summary CalculationSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool)

	for i, calc := range summary.Tasks {
		name := uniqueSheetName(calc.Name, taken)

		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("set sheet name: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet %q: %w", name, err)
			}
		}

		if err := writeTaskSheet(f, name, calc, styles); err != nil {
			return nil, err
		}
	}

	if len(summary.Tasks) > 1 {
		name := uniqueSheetName("Summary", taken)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %q: %w", name, err)
		}
		if err := writeSummarySheet(f, name, summary, styles); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	if s.subheading, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	}); err != nil {
		return s, fmt.Errorf("create subheading style: %w", err)
	}

	if s.totals, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	}); err != nil {
		return s, fmt.Errorf("create totals style: %w", err)
	}

	return s, nil
}

// writeTaskSheet fills one sheet with a task's input parameters followed by
// its derived calculations. Numeric cells carry raw values; only the
// deadline cell is textual.
func writeTaskSheet(f *excelize.File, sheet string, calc TaskCalculation, styles workbookStyles) error {
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 18); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}

	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeCell(calc.Name))
	f.SetCellStyle(sheet, "A1", "B1", styles.title)

	f.SetCellValue(sheet, "A3", "Parameter")
	f.SetCellValue(sheet, "B3", "Value")
	f.SetCellStyle(sheet, "A3", "B3", styles.header)

	params := []struct {
		label string
		value any
	}{
		{"New words", calc.NewWords},
		{"Repeats", calc.Repeats},
		{"Cross-file repeats", calc.CrossFileRepeats},
		{"Total words", calc.TotalWords},
		{"Cost per word", calc.CostPerWord},
		{"Repeat discount (%)", calc.RepeatDiscount},
		{"Cost per repeat", calc.CostPerRepeat},
		{"Words per day", calc.WordsPerDay},
	}

	rowNum := 4
	for _, p := range params {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), p.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), p.value)
		rowNum++
	}

	rowNum++ // blank separator
	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), "Calculations")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), styles.subheading)
	rowNum++

	calcs := []struct {
		label string
		value float64
	}{
		{"New words cost", calc.NewWordsCost},
		{"Repeats cost", calc.RepeatCost},
		{"Total cost", calc.TotalCost},
	}
	for _, c := range calcs {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), c.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), c.value)
		rowNum++
	}

	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), "Deadline")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), FormatDeadline(calc))

	return nil
}

// writeSummarySheet fills the totals sheet: one row per task plus a final
// TOTAL row with summed words and cost and a blank deadline cell.
func writeSummarySheet(f *excelize.File, sheet string, summary CalculationSummary, styles workbookStyles) error {
	widths := map[string]float64{"A": 30, "B": 14, "C": 16, "D": 28}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set col width: %w", err)
		}
	}

	if err := f.MergeCell(sheet, "A1", "D1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", "Summary")
	f.SetCellStyle(sheet, "A1", "D1", styles.title)

	headers := []string{"Task", "Total words", "Total cost", "Deadline"}
	for i, h := range headers {
		f.SetCellValue(sheet, fmt.Sprintf("%c3", 'A'+i), h)
	}
	f.SetCellStyle(sheet, "A3", "D3", styles.header)

	rowNum := 4
	for _, calc := range summary.Tasks {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), sanitizeCell(calc.Name))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), calc.TotalWords)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), calc.TotalCost)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), FormatDeadline(calc))
		rowNum++
	}

	rowNum++ // blank separator
	f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), "TOTAL")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), summary.TotalWords)
	f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), summary.GrandTotal)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("D%d", rowNum), styles.totals)

	return nil
}

var sheetNameReplacer = strings.NewReplacer(
	":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// sanitizeSheetName makes a task name legal as an XLSX sheet name: illegal
// characters become underscores and the result is capped at 31 characters.
// The cap counts runes, not bytes, so multi-byte names are never cut
// mid-character.
func sanitizeSheetName(name string) string {
	name = sheetNameReplacer.Replace(name)
	if runes := []rune(name); len(runes) > sheetNameMaxLen {
		name = string(runes[:sheetNameMaxLen])
	}
	name = strings.TrimSpace(name)
	// The format also forbids a single quote as the first or last character.
	if strings.HasPrefix(name, "'") {
		name = "_" + name[1:]
	}
	if strings.HasSuffix(name, "'") {
		name = name[:len(name)-1] + "_"
	}
	if name == "" {
		name = "Task"
	}
	return name
}

// uniqueSheetName sanitizes a name and resolves collisions between
// truncated names with a " (n)" suffix, keeping the result within the
// 31-character limit. The chosen name is recorded in taken.
func uniqueSheetName(name string, taken map[string]bool) string {
	base := sanitizeSheetName(name)
	candidate := base
	for n := 2; taken[candidate]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		trimmed := base
		if runes := []rune(trimmed); len(runes)+len(suffix) > sheetNameMaxLen {
			trimmed = string(runes[:sheetNameMaxLen-len(suffix)])
		}
		candidate = trimmed + suffix
	}
	taken[candidate] = true
	return candidate
}

// sanitizeCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Spreadsheet apps interpret cells starting
// with =, +, -, @, \t or \r as formulas.
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
