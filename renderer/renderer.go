package renderer

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// SummaryRenderOptions holds configuration for rendering a wallet summary.
type SummaryRenderOptions struct {
	SkipBreakdown    bool // Do not render the per-category sections.
	SkipTransactions bool // Do not render the transactions section.
}

// RenderWalletSummary renders the WalletSummary struct to a markdown string.
func RenderWalletSummary(s *WalletSummary, opts SummaryRenderOptions) string {
	// Phase 1: Declare template dependencies.
	// We define which partials are needed and how they are aliased in the main template.
	partials := map[string]string{
		"summary_title":  "summary_title.md",
		"summary_totals": "summary_totals.md",
	}

	// Skip sections if requested. An empty file name results in an empty template.
	if opts.SkipBreakdown {
		partials["summary_breakdown"] = ""
	} else {
		partials["summary_breakdown"] = "summary_breakdown.md"
	}
	if opts.SkipTransactions {
		partials["summary_transactions"] = "summary_transactions_skipped.md"
	} else {
		partials["summary_transactions"] = "summary_transactions.md"
	}

	// Phase 2: Execute rendering with the generic utility.
	return renderTemplate("summary", "summary.md", partials, s)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
