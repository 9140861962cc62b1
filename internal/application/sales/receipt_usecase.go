package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo PDF de una venta.
type ReceiptUseCase struct {
	txRepo    repository.TransactionRepository
	generator ReceiptPDFGenerator
	shop      ShopInfo
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(txRepo repository.TransactionRepository, generator ReceiptPDFGenerator, shop ShopInfo) *ReceiptUseCase {
	return &ReceiptUseCase{txRepo: txRepo, generator: generator, shop: shop}
}

// DownloadReceiptPDF devuelve (pdfBytes, filename). ErrNotFound si la venta no existe.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, id string) ([]byte, string, error) {
	t, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	if t == nil {
		return nil, "", fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	pdfBytes, err := uc.generator.GenerateReceiptPDF(ctx, uc.shop, t)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", t.ID), nil
}
