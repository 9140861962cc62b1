// Package pdf genera el recibo imprimible de una venta de la koperasi.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  Tienda + dirección    │  N° venta + fecha     │
//	│  Cajero / socio / método de pago               │
//	│  ───────────────────────────────────────────── │
//	│  Cant | Producto | Precio | Subtotal           │
//	│  ───────────────────────────────────────────── │
//	│                               TOTAL Rp ...     │
//	│  QR con el id de la venta                      │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/koperasi-api/internal/application/sales"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
)

var _ sales.ReceiptPDFGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 68}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Etiquetas del método de pago en el recibo.
var paymentLabels = map[string]string{
	entity.PaymentCash:     "Tunai",
	entity.PaymentTransfer: "Transfer",
	entity.PaymentOther:    "Lainnya",
}

// ReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type ReceiptGenerator struct {
	printer *message.Printer
}

// NewReceiptGenerator construye el generador; los montos se formatean en rupias (separador de miles ".").
func NewReceiptGenerator() *ReceiptGenerator {
	return &ReceiptGenerator{printer: message.NewPrinter(language.Indonesian)}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateReceiptPDF(ctx context.Context, shop sales.ShopInfo, tx *entity.Transaction) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Struk "+tx.ID, true).
		WithAuthor(shop.Name, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(shop, tx))
	m.AddRows(g.metaRow(tx))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(tx.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(tx))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(tx))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(shop sales.ShopInfo, tx *entity.Transaction) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(shop.Name, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(shop.Address, "-"), props.Text{Size: 7, Top: 8, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("STRUK PENJUALAN", props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(tx.ID, props.Text{Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 6}),
			text.New(tx.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 7, Align: align.Right, Top: 11, Color: colorGray}),
		),
	)
}

func (g *ReceiptGenerator) metaRow(tx *entity.Transaction) core.Row {
	payment, ok := paymentLabels[tx.PaymentMethod]
	if !ok {
		payment = tx.PaymentMethod
	}
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Kasir: %s   |   Anggota: %s   |   Pembayaran: %s",
			tx.Cashier, nonEmpty(tx.MemberName, entity.MemberNone), payment,
		), props.Text{Size: 7, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Qty", 1, align.Center),
		h("Produk", 6, align.Left),
		h("Harga", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *ReceiptGenerator) itemRows(items []entity.TransactionItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(it.Price), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(it.Subtotal), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *ReceiptGenerator) totalRow(tx *entity.Transaction) core.Row {
	return row.New(8).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1, Right: 2})),
		col.New(3).Add(text.New(g.money(tx.Total), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1, Right: 1})),
	)
}

func footerRow(tx *entity.Transaction) core.Row {
	return row.New(28).Add(
		col.New(4).Add(code.NewQr(tx.ID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New("Terima kasih telah berbelanja di koperasi.", props.Text{Size: 8, Top: 6, Left: 3, Color: colorGray}),
			text.New("Simpan struk ini sebagai bukti pembayaran.", props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

// money formatea un monto como "Rp 25.000" (sin decimales si son cero).
func (g *ReceiptGenerator) money(d decimal.Decimal) string {
	whole := d.Truncate(0)
	s := "Rp " + g.printer.Sprintf("%d", whole.IntPart())
	if frac := d.Sub(whole).Abs(); !frac.IsZero() {
		s += "," + frac.StringFixed(2)[2:]
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
