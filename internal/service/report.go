package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finbot/internal/domain"

	"github.com/go-analyze/charts"
	"github.com/signintech/gopdf"
	"go.uber.org/zap"
)

// ErrNoData means there is nothing to render; callers show a "no data"
// notice instead of an empty chart or report.
var ErrNoData = errors.New("no expenses for the requested window")

// ErrNoFont means no usable TTF font was found for PDF rendering
var ErrNoFont = errors.New("no report font available")

// fontCandidates are tried when REPORT_FONT is not set. DejaVu covers
// Cyrillic, which the report texts need.
var fontCandidates = []string{
	"fonts/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/Library/Fonts/DejaVuSans.ttf",
}

// ReportService renders chart images and PDF reports
type ReportService struct {
	fontPath string
	logger   *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(fontPath string, logger *zap.Logger) *ReportService {
	return &ReportService{
		fontPath: fontPath,
		logger:   logger,
	}
}

// RenderChart produces a PNG pie chart of expenses grouped by category.
// Slice order and legend follow descending category totals.
func (s *ReportService) RenderChart(expenses []domain.Expense, title string) ([]byte, error) {
	if len(expenses) == 0 {
		return nil, ErrNoData
	}

	grouped := GroupByCategory(expenses)
	total := TotalOf(expenses)

	values := make([]float64, 0, len(grouped))
	labels := make([]string, 0, len(grouped))
	for _, ct := range grouped {
		values = append(values, ct.Total.InexactFloat64())
		labels = append(labels, fmt.Sprintf("%s — %s ₽", ct.Category, ct.Total.StringFixed(2)))
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text:    title,
			Subtext: fmt.Sprintf("Всего: %s ₽", total.StringFixed(2)),
		}),
		charts.LegendLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}

// GeneratePDF writes a PDF report to a temporary file and returns its
// path. The caller is responsible for removing the file after sending.
func (s *ReportService) GeneratePDF(user string, expenses []domain.Expense, start, end time.Time) (string, error) {
	if len(expenses) == 0 {
		return "", ErrNoData
	}

	fontPath, err := s.resolveFont()
	if err != nil {
		return "", err
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFont("report", fontPath); err != nil {
		return "", fmt.Errorf("failed to load report font: %w", err)
	}

	pdf.AddPage()

	// Header band
	pdf.SetFillColor(0, 127, 255)
	pdf.RectFromUpperLeftWithStyle(0, 0, gopdf.PageSizeA4.W, 70, "F")
	pdf.SetTextColor(255, 255, 255)
	if err := pdf.SetFont("report", "", 22); err != nil {
		return "", err
	}
	pdf.SetX(40)
	pdf.SetY(25)
	pdf.Cell(nil, "ФИНАНСОВЫЙ ОТЧЕТ")

	// Meta block
	pdf.SetTextColor(40, 40, 40)
	if err := pdf.SetFont("report", "", 11); err != nil {
		return "", err
	}
	y := 95.0
	meta := []string{
		fmt.Sprintf("Дата формирования: %s", time.Now().Format("02.01.2006 15:04")),
		fmt.Sprintf("Пользователь: %s", user),
		fmt.Sprintf("Период: с %s по %s", domain.FormatDate(start), domain.FormatDate(end)),
	}
	for _, line := range meta {
		pdf.SetX(40)
		pdf.SetY(y)
		pdf.Cell(nil, line)
		y += 18
	}

	total := TotalOf(expenses)

	// Summary: operation count, grand total, per-category totals
	y += 12
	if err := pdf.SetFont("report", "", 14); err != nil {
		return "", err
	}
	pdf.SetX(40)
	pdf.SetY(y)
	pdf.Cell(nil, "Сводная информация")
	y += 24

	if err := pdf.SetFont("report", "", 11); err != nil {
		return "", err
	}
	summary := [][2]string{
		{"Количество операций:", fmt.Sprintf("%d", len(expenses))},
		{"Общая сумма расходов:", total.StringFixed(2) + " ₽"},
	}
	for _, ct := range GroupByCategory(expenses) {
		summary = append(summary, [2]string{"  " + ct.Category + ":", ct.Total.StringFixed(2) + " ₽"})
	}
	for _, row := range summary {
		pdf.SetX(40)
		pdf.SetY(y)
		pdf.Cell(nil, row[0])
		pdf.SetX(380)
		pdf.Cell(nil, row[1])
		y += 16
	}

	// Operations table, newest first as stored
	y += 16
	if err := pdf.SetFont("report", "", 14); err != nil {
		return "", err
	}
	pdf.SetX(40)
	pdf.SetY(y)
	pdf.Cell(nil, "Детализация операций")
	y += 24

	if err := pdf.SetFont("report", "", 10); err != nil {
		return "", err
	}
	pdf.SetX(40)
	pdf.SetY(y)
	pdf.Cell(nil, "Дата")
	pdf.SetX(220)
	pdf.Cell(nil, "Категория")
	pdf.SetX(440)
	pdf.Cell(nil, "Сумма, ₽")
	y += 6
	pdf.SetLineWidth(0.5)
	pdf.Line(40, y+4, 520, y+4)
	y += 14

	for _, e := range expenses {
		if y > 780 {
			pdf.AddPage()
			y = 60
		}
		pdf.SetX(40)
		pdf.SetY(y)
		pdf.Cell(nil, e.Date.Format("02.01.2006 15:04"))
		pdf.SetX(220)
		pdf.Cell(nil, e.Category)
		pdf.SetX(440)
		pdf.Cell(nil, e.Amount.StringFixed(2))
		y += 15
	}

	y += 4
	pdf.Line(40, y, 520, y)
	y += 10
	if err := pdf.SetFont("report", "", 11); err != nil {
		return "", err
	}
	pdf.SetX(40)
	pdf.SetY(y)
	pdf.Cell(nil, "ИТОГО:")
	pdf.SetX(440)
	pdf.Cell(nil, total.StringFixed(2))

	path := filepath.Join(os.TempDir(), fmt.Sprintf("report_%d.pdf", time.Now().UnixNano()))
	if err := pdf.WritePdf(path); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	s.logger.Info("PDF report generated",
		zap.String("path", path),
		zap.Int("expenses", len(expenses)),
	)

	return path, nil
}

func (s *ReportService) resolveFont() (string, error) {
	candidates := fontCandidates
	if s.fontPath != "" {
		candidates = append([]string{s.fontPath}, candidates...)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrNoFont
}
