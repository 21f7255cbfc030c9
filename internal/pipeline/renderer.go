package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/avolkov/claimlens/internal/model"
)

// Renderer renders fact-check reports to JSON, Markdown, and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as pretty-printed JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// RenderMarkdown writes a human-readable Markdown report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Fact-Check Report: %s\n\n", report.Document.Filename))
	b.WriteString(fmt.Sprintf("- **Checked:** %s\n", report.CheckedAt.Format("2006-01-02 15:04 UTC")))
	b.WriteString(fmt.Sprintf("- **Pages:** %d\n", report.Document.Pages))
	b.WriteString(fmt.Sprintf("- **Claims:** %d\n", report.Summary.Total))
	b.WriteString(fmt.Sprintf("- **Accuracy Index:** %d/100 (%s confidence)\n", report.Summary.AccuracyIndex, report.Summary.Confidence))
	if report.Document.Truncated {
		b.WriteString("- **Note:** document was truncated before analysis\n")
	}
	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Status | Count |\n|---|---|\n")
	b.WriteString(fmt.Sprintf("| ✅ Verified | %d |\n", report.Summary.Verified))
	b.WriteString(fmt.Sprintf("| ⚠️ Inaccurate | %d |\n", report.Summary.Inaccurate))
	b.WriteString(fmt.Sprintf("| ❌ False | %d |\n", report.Summary.False))
	if report.Summary.Unknown > 0 {
		b.WriteString(fmt.Sprintf("| ❓ Unknown | %d |\n", report.Summary.Unknown))
	}
	if report.Summary.Errors > 0 {
		b.WriteString(fmt.Sprintf("| ⚠️ Errors | %d |\n", report.Summary.Errors))
	}

	if len(report.Summary.Signals) > 0 {
		b.WriteString("\n## Signals\n\n")
		for _, signal := range report.Summary.Signals {
			b.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", signal.Type, signal.Severity, signal.Description))
		}
	}

	b.WriteString("\n## Claims\n\n")
	for i, v := range report.Verifications {
		b.WriteString(fmt.Sprintf("### %s Claim %d: %s\n\n", statusEmoji(v.Status), i+1, v.Status))
		b.WriteString(fmt.Sprintf("**Claim:** %s\n\n", v.Claim.Text))
		b.WriteString(fmt.Sprintf("**Type:** %s · **Confidence:** %s\n\n", v.Claim.Type, v.Confidence))
		if v.Explanation != "" {
			b.WriteString(fmt.Sprintf("**Explanation:** %s\n\n", v.Explanation))
		}
		if v.CorrectInfo != "" {
			b.WriteString(fmt.Sprintf("**Correct Information:** %s\n\n", v.CorrectInfo))
		}
		if len(v.Sources) > 0 {
			b.WriteString("**Sources:**\n")
			for _, src := range v.Sources {
				marker := ""
				for _, check := range v.SourceChecks {
					if check.URL == src && check.IsDead {
						marker = " (dead link)"
					}
				}
				b.WriteString(fmt.Sprintf("- <%s>%s\n", src, marker))
			}
			b.WriteString("\n")
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString("Generated by claimlens. Verdicts describe agreement with retrieved web evidence, not ground truth.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// RenderSummary prints a one-screen summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n")
	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("  Fact-Check Summary: %s\n", report.Document.Filename)
	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("\n")
	fmt.Printf("  Claims checked:  %d\n", report.Summary.Total)
	fmt.Printf("  ✅ Verified:     %d\n", report.Summary.Verified)
	fmt.Printf("  ⚠️  Inaccurate:   %d\n", report.Summary.Inaccurate)
	fmt.Printf("  ❌ False:        %d\n", report.Summary.False)
	if report.Summary.Errors > 0 {
		fmt.Printf("  ⚠️  Errors:       %d\n", report.Summary.Errors)
	}
	fmt.Printf("\n")
	fmt.Printf("  Accuracy index:  %d/100 (%s confidence)\n", report.Summary.AccuracyIndex, report.Summary.Confidence)

	for _, signal := range report.Summary.Signals {
		if signal.Severity != model.SeverityInfo {
			fmt.Printf("  ⚡ %s\n", signal.Description)
		}
	}
	fmt.Printf("\n")
}

func statusEmoji(status model.VerificationStatus) string {
	switch status {
	case model.StatusVerified:
		return "✅"
	case model.StatusInaccurate:
		return "⚠️"
	case model.StatusFalse:
		return "❌"
	case model.StatusError:
		return "⚠️"
	default:
		return "❓"
	}
}
