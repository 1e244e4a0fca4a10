package report

import (
	"fmt"
	"io"
	"time"

	"quiz-arena/internal/domain"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 7.0
)

// RenderTestReport writes an A4 PDF with the test summary, the category
// distribution, and the ranked top attempts.
func RenderTestReport(w io.Writer, r *domain.TestReport, generatedAt time.Time) error {
	if r == nil || r.Test == nil {
		return fmt.Errorf("test report is empty")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.Test.Title, true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.MultiCell(0, 10, tr(fmt.Sprintf("Test report: %s", r.Test.Title)), "", "L", false)
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("Subject: %s   Difficulty: %s   Total points: %d",
		r.Test.Subject, r.Test.Difficulty, r.Test.TotalPoints)), "", "L", false)
	pdf.MultiCell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.UTC().Format(time.RFC3339)), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 12)
	pdf.Cell(0, lineHeight, "Summary")
	pdf.Ln(lineHeight)
	pdf.SetFont(fontFamily, "", 11)
	s := r.Summary
	summary := fmt.Sprintf("Attempts: %d\nAverage: %.2f%%\nHighest: %d%%\nLowest: %d%%\nAverage time: %.2f s",
		s.TotalAttempts, s.AvgPercentage, s.HighestPercentage, s.LowestPercentage, s.AvgTimeSpent)
	pdf.MultiCell(0, lineHeight, summary, "", "L", false)
	pdf.Ln(3)

	pdf.SetFont(fontFamily, "B", 12)
	pdf.Cell(0, lineHeight, "Category distribution")
	pdf.Ln(lineHeight)
	pdf.SetFont(fontFamily, "", 11)
	for _, c := range domain.Categories {
		pdf.CellFormat(50, lineHeight, string(c), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, lineHeight, fmt.Sprintf("%d", r.CategoryDistribution[c]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 12)
	pdf.Cell(0, lineHeight, "Top attempts")
	pdf.Ln(lineHeight)

	widths := []float64{12, 60, 22, 26, 22, 48}
	headers := []string{"#", "User", "Score", "Percent", "Time", "Submitted"}
	pdf.SetFont(fontFamily, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], lineHeight, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 10)
	if len(r.TopAttempts) == 0 {
		pdf.CellFormat(0, lineHeight, "No completed attempts yet", "1", 1, "C", false, 0, "")
	}
	for i, a := range r.TopAttempts {
		row := []string{
			fmt.Sprintf("%d", i+1),
			tr(a.UserID),
			fmt.Sprintf("%d/%d", a.Score, a.TotalPoints),
			fmt.Sprintf("%d%%", a.Percentage),
			fmt.Sprintf("%ds", a.TimeSpent),
			a.SubmittedAt.UTC().Format("2006-01-02 15:04"),
		}
		for j, v := range row {
			align := "L"
			if j > 1 {
				align = "R"
			}
			pdf.CellFormat(widths[j], lineHeight, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render test report: %w", err)
	}
	return nil
}
