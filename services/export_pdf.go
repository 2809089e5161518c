package services

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const pdfTitle = "Translation Cost Estimate"

// Vertical layout constants, in page units. pageBodyHeight is deliberately
// below the real usable height of an A4 page so a forced break never lands
// content past the bottom margin.
const (
	pageBodyHeight         = 260.0
	taskBreakThreshold     = 200.0
	summaryBreakThreshold  = 170.0
	taskHeadingHeight      = 8.0
	taskTableRowHeight     = 6.0
	taskTableSpacerHeight  = 4.0
	summaryTitleHeight     = 10.0
	summaryHeaderHeight    = 7.0
	summaryTableRowHeight  = 6.0
	summaryTotalsRowHeight = 7.0
)

// pageCursor tracks the running vertical position on the current page.
// It is passed into every drawing step and returned updated, so the
// pagination decisions stay explicit instead of hiding inside the builder.
type pageCursor struct {
	y float64
}

func (c pageCursor) advance(h float64) pageCursor {
	c.y += h
	return c
}

func (c pageCursor) past(threshold float64) bool {
	return c.y > threshold
}

// breakPage fills the rest of the current page with an empty row so the
// next drawn row starts on a fresh page, and resets the cursor.
func breakPage(m core.Maroto, c pageCursor) pageCursor {
	if remaining := pageBodyHeight - c.y; remaining > 0 {
		m.AddRows(row.New(remaining))
	}
	return pageCursor{}
}

// GenerateQuotePDF renders a calculation summary into a paginated PDF
// quote document using maroto/v2. It returns the raw PDF bytes.
func GenerateQuotePDF(summary CalculationSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	cur := addQuoteHeader(m, time.Now())

	for i, calc := range summary.Tasks {
		cur = addTaskTable(m, calc, cur)

		// Break after a near-bottom table so the next task's heading is
		// not orphaned, but never force a page after the final task.
		if i < len(summary.Tasks)-1 && cur.past(taskBreakThreshold) {
			cur = breakPage(m, cur)
		}
	}

	if len(summary.Tasks) > 1 {
		if cur.past(summaryBreakThreshold) {
			cur = breakPage(m, cur)
		}
		addSummaryTable(m, summary, cur)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuoteHeader draws the centered document title with the current date
// beneath it and returns the cursor below the header block.
func addQuoteHeader(m core.Maroto, now time.Time) pageCursor {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(pdfTitle, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(6).Add(
			col.New(12).Add(
				text.New(now.Format("02 Jan 2006"), props.Text{
					Size:  9,
					Align: align.Center,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
		row.New(4),
	)

	return pageCursor{}.advance(12 + 6 + 4)
}

// addTaskTable draws one task's name and its eleven-row breakdown table,
// returning the advanced cursor.
func addTaskTable(m core.Maroto, calc TaskCalculation, cur pageCursor) pageCursor {
	m.AddRows(
		row.New(taskHeadingHeight).Add(
			col.New(12).Add(
				text.New(calc.Name, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
	cur = cur.advance(taskHeadingHeight)

	discount := fmt.Sprintf("%s (%s per word)",
		FormatPercent(calc.RepeatDiscount), FormatCurrency(calc.CostPerRepeat))

	lines := []struct {
		label string
		value string
		bold  bool
	}{
		{"New words", FormatCount(calc.NewWords), false},
		{"Repeats", FormatCount(calc.Repeats), false},
		{"Cross-file repeats", FormatCount(calc.CrossFileRepeats), false},
		{"Total words", FormatCount(calc.TotalWords), false},
		{"Cost per word", FormatCurrency(calc.CostPerWord), false},
		{"Repeat discount", discount, false},
		{"Words per day", FormatCount(calc.WordsPerDay), false},
		{"New words cost", FormatCurrency(calc.NewWordsCost), false},
		{"Repeats cost", FormatCurrency(calc.RepeatCost), false},
		{"Total cost", FormatCurrency(calc.TotalCost), true},
		{"Deadline", FormatDeadline(calc), false},
	}

	stripe := &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}

	for i, line := range lines {
		style := fontstyle.Normal
		if line.bold {
			style = fontstyle.Bold
		}

		labelCol := col.New(7).Add(text.New(line.label, props.Text{
			Size:  9,
			Style: style,
			Align: align.Left,
		}))
		valueCol := col.New(5).Add(text.New(line.value, props.Text{
			Size:  9,
			Style: style,
			Align: align.Right,
		}))

		if i%2 == 1 {
			labelCol = labelCol.WithStyle(stripe)
			valueCol = valueCol.WithStyle(stripe)
		}

		m.AddRows(row.New(taskTableRowHeight).Add(labelCol, valueCol))
		cur = cur.advance(taskTableRowHeight)
	}

	m.AddRows(row.New(taskTableSpacerHeight))
	return cur.advance(taskTableSpacerHeight)
}

// addSummaryTable draws the totals section: a four-column table with one
// row per task and a final bold TOTAL row.
func addSummaryTable(m core.Maroto, summary CalculationSummary, cur pageCursor) pageCursor {
	m.AddRows(
		row.New(summaryTitleHeight).Add(
			col.New(12).Add(
				text.New("Summary", props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)
	cur = cur.advance(summaryTitleHeight)

	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerCell := &props.Cell{BackgroundColor: headerBg}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	m.AddRows(
		row.New(summaryHeaderHeight).Add(
			col.New(5).Add(text.New("Task", headerTextLeft)).WithStyle(headerCell),
			col.New(2).Add(text.New("Words", headerText)).WithStyle(headerCell),
			col.New(3).Add(text.New("Cost", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("Deadline", headerText)).WithStyle(headerCell),
		),
	)
	cur = cur.advance(summaryHeaderHeight)

	baseText := props.Text{Size: 8, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	for _, calc := range summary.Tasks {
		m.AddRows(
			row.New(summaryTableRowHeight).Add(
				col.New(5).Add(text.New(calc.Name, leftText)),
				col.New(2).Add(text.New(FormatCount(calc.TotalWords), rightText)),
				col.New(3).Add(text.New(FormatCurrency(calc.TotalCost), rightText)),
				col.New(2).Add(text.New(FormatDeadline(calc), baseText)),
			),
		)
		cur = cur.advance(summaryTableRowHeight)
	}

	totalsBg := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	totalsText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	totalsTextLeft := totalsText
	totalsTextLeft.Align = align.Left

	m.AddRows(
		row.New(summaryTotalsRowHeight).Add(
			col.New(5).Add(text.New("TOTAL", totalsTextLeft)).WithStyle(totalsBg),
			col.New(2).Add(text.New(FormatCount(summary.TotalWords), totalsText)).WithStyle(totalsBg),
			col.New(3).Add(text.New(FormatCurrency(summary.GrandTotal), totalsText)).WithStyle(totalsBg),
			col.New(2).WithStyle(totalsBg),
		),
	)

	return cur.advance(summaryTotalsRowHeight)
}
