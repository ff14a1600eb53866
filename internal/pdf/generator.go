package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/supply-contracts/internal/model"
)

const defaultFontName = "DejaVuSansCondensed"

// Generator renders the statistics report with an embedded UTF-8 font.
// A font file from config replaces it for both regular and bold text.
type Generator struct {
	fontName    string
	regularFont []byte
	boldFont    []byte
	compress    bool
	now         func() time.Time
}

func NewGenerator(fontPath string) (*Generator, error) {
	g := &Generator{
		fontName:    defaultFontName,
		regularFont: dejaVuSans,
		boldFont:    dejaVuSansBold,
		compress:    true,
		now:         time.Now,
	}
	if strings.TrimSpace(fontPath) == "" {
		if len(g.regularFont) == 0 || len(g.boldFont) == 0 {
			return nil, fmt.Errorf("font data is empty")
		}
		return g, nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	g.fontName = "Custom"
	g.regularFont = data
	g.boldFont = data
	return g, nil
}

func (g *Generator) Generate(snapshot model.Snapshot, stats model.Statistics) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetCreationDate(g.now())
	pdf.SetCompression(g.compress)
	pdf.AddUTF8FontFromBytes(g.fontName, "", g.regularFont)
	pdf.AddUTF8FontFromBytes(g.fontName, "B", g.boldFont)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Звіт про контракти на поставку", "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, "Сформовано "+g.now().Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Статистика", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	lines := []string{
		fmt.Sprintf("Кількість контрактів: %d", stats.ContractCount),
		fmt.Sprintf("Кількість замовників: %d", stats.CustomerCount),
		fmt.Sprintf("Кількість інженерів: %d", stats.EngineerCount),
		fmt.Sprintf("Середня кількість продукції: %s", formatAmount(stats.AverageProductQuantity, 2)),
		"Найдорожчий контракт: " + describeContract(stats.MaxCostContract),
		"Найдовший термін поставки: " + describeContract(stats.MaxDeliveryTermContract),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
	pdf.Ln(4)

	if len(snapshot.Contracts) > 0 {
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Контракти", "", 1, "L", false, 0, "")

		colWidths := []float64{15, 65, 25, 45, 30}
		drawTableRow(pdf, g.fontName, []string{"ID", "Тип продукту", "Кількість", "Термін поставки", "Вартість"}, colWidths, true)
		for _, c := range snapshot.Contracts {
			row := []string{
				fmt.Sprintf("%d", c.ContractID),
				c.ProductType,
				fmt.Sprintf("%d", c.Quantity),
				c.DeliveryTerm,
				formatAmount(c.Cost, 2),
			}
			drawTableRow(pdf, g.fontName, row, colWidths, false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == 2 || i == 4 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func describeContract(c *model.SupplyContract) string {
	if c == nil {
		return "—"
	}
	return fmt.Sprintf("№%d %s, %s, %s", c.ContractID, c.ProductType, c.DeliveryTerm, formatAmount(c.Cost, 2))
}

func formatAmount(value float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(format, value)
}
