package infra

// pdf.go — thermal-format PDF receipts using go-pdf/fpdf.
// Generates A7-size receipt-style boletas with:
//   - Gym name header
//   - Boleta number and timestamp
//   - Item table (description, quantity, subtotal)
//   - Renewal discount line (if applied)
//   - Bold total and payment method
//
// The output file is saved to storagePath/boleta_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateBoletaPDF generates the PDF receipt for a Venta.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateBoletaPDF(venta *model.Venta, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("boleta_%s.pdf", venta.NumeroBoleta)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Gimnasio Titanium", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Boleta de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Boleta info ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Boleta %s", venta.NumeroBoleta), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, venta.CreatedAt.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW*0.55, 4, "Detalle", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.15, 4, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(contentW*0.30, 4, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		pdf.CellFormat(contentW*0.55, 4, item.Descripcion, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.15, 4, fmt.Sprintf("%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(contentW*0.30, 4, fmt.Sprintf("$%d", item.Subtotal), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)

	// ── Discount ─────────────────────────────────────────────────────────────
	if venta.DescuentoNombre != nil && venta.DescuentoPct != nil {
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(contentW, 4,
			fmt.Sprintf("Descuento %s (%s%%)", *venta.DescuentoNombre, venta.DescuentoPct.String()),
			"", 1, "L", false, 0, "")
	}

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("TOTAL  $%d", venta.Total), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Pago: %s", venta.MetodoPago), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
