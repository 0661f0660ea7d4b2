package infra

// pdf.go — Generacion de cotizaciones en PDF con go-pdf/fpdf.
// Documento A4 con:
//   - Encabezado con numero y fecha
//   - Datos del cliente
//   - Tabla de lineas (producto, cantidad, precio unitario, descuento, total)
//   - Adiciones anidadas bajo su linea
//   - Bloque de totales (subtotal, IVA, envio, seguro, total, anticipo)
//   - Nota de TRM cuando la cotizacion es en USD
//
// El archivo se escribe en storagePath/cotizacion_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"viotex/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateCotizacionPDF renders a Cotizacion (with Lineas and Adiciones
// preloaded) and returns the absolute path of the generated file.
func GenerateCotizacionPDF(c *model.Cotizacion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cotizacion_%d.pdf", c.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "VIOTEX", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Cotizacion N° %d", c.Numero), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, c.CreatedAt.Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Cliente ───────────────────────────────────────────────────────────────
	if c.Cliente != nil {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, "Cliente", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, c.Cliente.Nombre, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Documento: %s", c.Cliente.Documento), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	// ── Lineas ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.40 // descripcion
	col2 := contentW * 0.12 // cantidad
	col3 := contentW * 0.16 // precio unitario
	col4 := contentW * 0.12 // descuento
	col5 := contentW * 0.20 // total

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Precio", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Desc %", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col5, 6, "Total", "B", 1, "R", false, 0, "")

	for _, linea := range c.Lineas {
		pdf.SetFont("Helvetica", "", 8)
		nombre := linea.Descripcion
		if len(nombre) > 42 {
			nombre = nombre[:41] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%d", linea.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+linea.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, linea.DescuentoPct.StringFixed(1), "", 0, "C", false, 0, "")
		pdf.CellFormat(col5, 5, "$"+linea.TotalGeneral.StringFixed(2), "", 1, "R", false, 0, "")

		// Adiciones anidadas, sin el descuento de la linea padre.
		pdf.SetFont("Helvetica", "I", 7)
		for _, ad := range linea.Adiciones {
			sub := ad.PrecioUnitario.Mul(decimal.NewFromInt(int64(ad.Cantidad)))
			pdf.CellFormat(col1, 4, "  + "+ad.Descripcion, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 4, fmt.Sprintf("%d", ad.Cantidad), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 4, "$"+ad.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 4, "", "", 0, "C", false, 0, "")
			pdf.CellFormat(col5, 4, "$"+sub.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totales ───────────────────────────────────────────────────────────────
	labelW := col1 + col2 + col3 + col4

	writeTotal := func(label, valor string, bold bool) {
		style := ""
		size := 8.0
		if bold {
			style = "B"
			size = 10
		}
		pdf.SetFont("Helvetica", style, size)
		pdf.CellFormat(labelW, 5, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(col5, 5, valor, "", 1, "R", false, 0, "")
	}

	writeTotal("Subtotal:", "$"+c.Subtotal.StringFixed(2), false)
	if !c.IVA.IsZero() {
		writeTotal("IVA (19%):", "$"+c.IVA.StringFixed(2), false)
	}
	if !c.Envio.IsZero() {
		writeTotal("Envio:", "$"+c.Envio.StringFixed(2), false)
	}
	if !c.Seguro.IsZero() {
		writeTotal("Seguro:", "$"+c.Seguro.StringFixed(2), false)
	}
	writeTotal("TOTAL "+c.Moneda+":", "$"+c.Total.StringFixed(2), true)
	writeTotal("Anticipo (50%):", "$"+c.Anticipo.StringFixed(2), false)

	if c.Moneda == "USD" && c.TRMUsada.Valid {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(contentW, 4,
			fmt.Sprintf("Precios en USD calculados con TRM %s COP/USD.", c.TRMUsada.Decimal.StringFixed(2)),
			"", 1, "L", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Cotizacion valida por 15 dias.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
