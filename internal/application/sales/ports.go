package sales

import (
	"context"

	"github.com/jhoicas/koperasi-api/internal/domain/entity"
)

// ShopInfo datos de la tienda para el encabezado del recibo.
type ShopInfo struct {
	Name    string
	Address string
}

// ReceiptPDFGenerator genera la representación PDF de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, shop ShopInfo, tx *entity.Transaction) ([]byte, error)
}
