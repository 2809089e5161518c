package services

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// IndividualQuoteLabel is the deadline text for tasks above the
// individual-quote threshold.
const IndividualQuoteLabel = "Requires individual calculation"

var printer = message.NewPrinter(language.English)

// FormatCount formats a word or day count as an integer with thousands
// separators, e.g. 12345 -> "12,345".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatCurrency formats a monetary amount with exactly two decimal places
// and thousands separators, e.g. 1234.5 -> "1,234.50". No rounding beyond
// display formatting is applied to the underlying value.
func FormatCurrency(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatPercent formats a percentage with the minimal number of digits,
// e.g. 30 -> "30%", 12.5 -> "12.5%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// FormatDeadline renders the deadline cell for a task calculation: a day
// count for estimable tasks, the individual-quote label otherwise.
func FormatDeadline(c TaskCalculation) string {
	if c.RequiresIndividualQuote || c.EstimatedDays == nil {
		return IndividualQuoteLabel
	}
	days := *c.EstimatedDays
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%s days", FormatCount(days))
}
