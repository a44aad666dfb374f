// Package observability provides logging and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/huppifluppi/survey-tool-cli/internal/survey"
	"github.com/huppifluppi/survey-tool-cli/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60

	successMarker = "✅"
	failureMarker = "❌"
)

var (
	okBanner      = color.New(color.FgGreen, color.Bold)
	failBanner    = color.New(color.FgYellow, color.Bold)
	successHeader = color.New(color.FgGreen, color.Bold, color.Underline)
	failureHeader = color.New(color.FgRed, color.Bold, color.Underline)
	errorLabel    = color.New(color.FgRed)
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintCheckResult prints the pass/fail banner, then the successes when
// verbose and the failures whenever the result is not OK.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintCheckResult(result *types.CheckResult, verbose bool) {
	if result == nil {
		return
	}

	if result.AllOK {
		okBanner.Fprintln(p.out, "### All OK ###")
		if verbose {
			p.printList(successMarker, result.Successes)
		}
	} else {
		failBanner.Fprintln(p.out, fmt.Sprintf("### %d errors ###", len(result.Errors)))
		if verbose {
			successHeader.Fprintln(p.out, "Successful:")
			p.printList(successMarker, result.Successes)
			failureHeader.Fprintln(p.out, "Failed:")
		}
		p.printList(failureMarker, result.Errors)
	}

	if result.Output != nil && *result.Output != "" {
		fmt.Fprintln(p.out, *result.Output)
	}
}

// PrintError prints a fatal error.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintError(err error) {
	fmt.Fprintf(p.out, "%s %v\n", errorLabel.Sprint("Error:"), err)
}

// PrintJSON writes v as indented JSON.
func (p *Printer) PrintJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if _, err := fmt.Fprintln(p.out, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// PrintSurveySummary outputs the pages and items of a survey.
func (p *Printer) PrintSurveySummary(sum survey.Summary) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:     %s\n", sum.Title))
	sb.WriteString(fmt.Sprintf("Type:      %s\n", sum.Type))
	sb.WriteString(fmt.Sprintf("Pages:     %d\n", len(sum.Pages)))
	sb.WriteString(fmt.Sprintf("Questions: %d\n", sum.Questions))

	for i, page := range sum.Pages {
		sb.WriteString("\n")
		title := page.Title
		if title == "" {
			title = "(untitled)"
		}
		sb.WriteString(fmt.Sprintf("Page %d: %s\n", i+1, title))
		for j, item := range page.Items {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s", j+1, item.Type, item.Title))
			if item.Required {
				sb.WriteString(" *")
			}
			sb.WriteString("\n")
		}
	}

	p.printBox("SURVEY CONTENTS", strings.TrimSuffix(sb.String(), "\n"))
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printList(marker string, items []string) {
	for _, item := range items {
		fmt.Fprintf(p.out, " %s %s\n", marker, item)
	}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}
