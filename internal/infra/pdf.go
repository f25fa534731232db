package infra

// PDF generation with go-pdf/fpdf. Two document kinds:
//   - sale tickets sized for 74mm thermal receipt paper
//   - cash-cut reports for reprint / archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"tenaypos/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateSaleTicketPDF writes a thermal-receipt-style ticket for a completed
// sale and returns the absolute path of the file.
func GenerateSaleTicketPDF(sale *model.Sale, cfg *model.StoreConfig, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("ticket_%s.pdf", sale.Folio)
	filePath := filepath.Join(storagePath, fileName)

	// 74mm x 105mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, cfg.StoreName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	if cfg.Address != nil {
		pdf.CellFormat(contentW, 4, *cfg.Address, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, "Nota de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, "Folio "+sale.Folio, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, "Atendió: "+sale.Cashier, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Artículo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := item.Name
		if item.VariantText != nil {
			name = fmt.Sprintf("%s (%s)", name, *item.VariantText)
		}
		if len(name) > 26 {
			name = name[:26]
		}
		pdf.CellFormat(col1, 4, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	if sale.Discount.IsPositive() {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(col1+col2, 4, "Descuento", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "-$"+sale.Discount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+sale.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, p := range sale.Payments {
		pdf.CellFormat(col1+col2, 4, p.Method, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 4, "$"+p.Amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, cfg.TicketFooter, "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateCashCutPDF writes an A4 report for an archived cash cut.
func GenerateCashCutPDF(cut *model.CashCut, cfg *model.StoreConfig, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("corte_%s.pdf", cut.Folio)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, cfg.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Corte de Caja "+cut.Folio, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Periodo: %s  a  %s",
		cut.RangeStart.Format("02/01/2006 15:04"), cut.RangeEnd.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Realizado por: "+cut.Username, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(contentW*0.6, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, value, "", 1, "R", false, 0, "")
	}

	row("Fondo inicial", "$"+cut.OpeningAmount.StringFixed(2), false)
	row("Ventas del periodo", "$"+cut.TotalSales.StringFixed(2), false)
	row(fmt.Sprintf("Tickets (%d completados, %d cancelados)", cut.SalesCount, cut.CancelledSalesCount), "", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Totales por método de pago", "B", 1, "L", false, 0, "")
	methods := make([]string, 0, len(cut.TotalsByMethod))
	for method := range cut.TotalsByMethod {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	for _, method := range methods {
		row(method, "$"+cut.TotalsByMethod[method].StringFixed(2), false)
	}
	pdf.Ln(2)

	row("Efectivo esperado", "$"+cut.ExpectedCash.StringFixed(2), true)
	row("Efectivo contado", "$"+cut.ClosingAmount.StringFixed(2), true)
	row("Diferencia", "$"+cut.Difference.StringFixed(2), true)
	pdf.Ln(2)

	row("Utilidad del periodo", "$"+cut.Profit.StringFixed(2), false)

	if cut.Notes != nil && *cut.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, "Notas: "+*cut.Notes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
