package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
	appinventory "github.com/jhoicas/koperasi-api/internal/application/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

// CreateTransactionUseCase registra una venta y descuenta el inventario en una sola transacción.
type CreateTransactionUseCase struct {
	txRunner appinventory.TxRunner
	notifier appinventory.LowStockNotifier
}

// NewCreateTransactionUseCase construye el caso de uso. notifier puede ser nil.
func NewCreateTransactionUseCase(txRunner appinventory.TxRunner, notifier appinventory.LowStockNotifier) *CreateTransactionUseCase {
	if notifier == nil {
		notifier = appinventory.NopNotifier{}
	}
	return &CreateTransactionUseCase{txRunner: txRunner, notifier: notifier}
}

// CreateTransaction valida las líneas, bloquea los productos implicados y, si todas caben en el
// stock restante (acumulado entre líneas del mismo producto), descuenta stock, escribe un movimiento
// OUT por línea y guarda la venta con sus líneas. Cualquier error deja el almacenamiento intacto.
func (uc *CreateTransactionUseCase) CreateTransaction(ctx context.Context, cashier string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene líneas", domain.ErrInvalidInput)
	}
	productIDs := make([]string, 0, len(in.Items))
	for i := range in.Items {
		line := &in.Items[i]
		line.ProductID = strings.TrimSpace(line.ProductID)
		if line.ProductID == "" {
			return nil, fmt.Errorf("%w: línea %d sin product_id", domain.ErrInvalidInput, i+1)
		}
		if line.Qty <= 0 || line.Qty > inventory.MaxQuantity {
			return nil, fmt.Errorf("%w: línea %d con qty inválida", domain.ErrInvalidInput, i+1)
		}
		productIDs = append(productIDs, line.ProductID)
	}
	payment, err := NormalizePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	member := strings.TrimSpace(in.MemberName)
	if member == "" {
		member = entity.MemberNone
	}

	now := time.Now()
	ids := inventory.NewIDGenerator(now)
	txID := ids.Next(inventory.PrefixTransaction)
	var (
		sale    *entity.Transaction
		touched []entity.Product
	)

	err = uc.txRunner.Run(ctx, productIDs, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		txRepo repository.TransactionRepository,
	) error {
		// 1) Cargar productos bajo bloqueo y validar contra el stock restante, en el orden del cajero.
		products := make(map[string]*entity.Product, len(productIDs))
		order := make([]string, 0, len(productIDs))
		remaining := make(map[string]int, len(productIDs))
		for _, line := range in.Items {
			p, ok := products[line.ProductID]
			if !ok {
				var err error
				p, err = productRepo.GetByID(ctx, line.ProductID)
				if err != nil {
					return err
				}
				if p == nil {
					return inventory.ProductNotFound(line.ProductID)
				}
				products[p.ID] = p
				order = append(order, p.ID)
				remaining[p.ID] = p.Stock
			}
			if line.Qty > remaining[p.ID] {
				return inventory.InsufficientStock(p, remaining[p.ID], line.Qty)
			}
			remaining[p.ID] -= line.Qty
		}

		// 2) Líneas con precio congelado, movimientos OUT con saldo acumulado.
		sale = &entity.Transaction{
			ID:            txID,
			CreatedAt:     now,
			Cashier:       cashier,
			MemberName:    member,
			PaymentMethod: payment,
			Total:         decimal.Zero,
			Items:         make([]entity.TransactionItem, 0, len(in.Items)),
		}
		note := "Venta " + txID
		for i, line := range in.Items {
			p := products[line.ProductID]
			p.Stock -= line.Qty
			subtotal := p.SellPrice.Mul(decimal.NewFromInt(int64(line.Qty)))
			sale.Items = append(sale.Items, entity.TransactionItem{
				TransactionID: txID,
				LineNo:        i + 1,
				ProductID:     p.ID,
				ProductName:   p.Name,
				Quantity:      line.Qty,
				Price:         p.SellPrice,
				Subtotal:      subtotal,
			})
			sale.Total = sale.Total.Add(subtotal)

			if err := movRepo.Create(ctx, &entity.InventoryMovement{
				ID:           ids.Next(inventory.PrefixMovement),
				CreatedAt:    now,
				ProductID:    p.ID,
				ProductName:  p.Name,
				Type:         entity.MovementTypeOUT,
				Quantity:     line.Qty,
				BalanceAfter: p.Stock,
				Note:         note,
				Actor:        cashier,
				RefID:        txID,
			}); err != nil {
				return err
			}
		}

		// 3) Stock final por producto y cabecera de la venta.
		touched = touched[:0]
		for _, id := range order {
			p := products[id]
			p.UpdatedAt = now
			if err := productRepo.Update(ctx, p); err != nil {
				return err
			}
			touched = append(touched, *p)
		}
		return txRepo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	var low []entity.Product
	for _, p := range touched {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	if len(low) > 0 {
		uc.notifier.NotifyLowStock(low)
	}

	out := dto.ToTransactionResponse(sale)
	return &out, nil
}

// NormalizePaymentMethod acepta cash, transfer u other sin distinguir mayúsculas; vacío = cash.
func NormalizePaymentMethod(method string) (string, error) {
	switch m := strings.ToLower(strings.TrimSpace(method)); m {
	case "":
		return entity.PaymentCash, nil
	case entity.PaymentCash, entity.PaymentTransfer, entity.PaymentOther:
		return m, nil
	}
	return "", fmt.Errorf("%w: payment_method debe ser cash, transfer u other", domain.ErrInvalidInput)
}
