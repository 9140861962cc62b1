package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

// DefaultAdjustmentNote nota del movimiento cuando el operador no escribe ninguna.
const DefaultAdjustmentNote = "Ajuste de stock"

// AdjustmentUseCase registra correcciones manuales de stock (IN/OUT) de forma transaccional.
type AdjustmentUseCase struct {
	txRunner TxRunner
	notifier LowStockNotifier
}

// NewAdjustmentUseCase construye el caso de uso. notifier puede ser nil.
func NewAdjustmentUseCase(txRunner TxRunner, notifier LowStockNotifier) *AdjustmentUseCase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &AdjustmentUseCase{txRunner: txRunner, notifier: notifier}
}

// AdjustmentInput entrada de un ajuste. Actor es el usuario autenticado.
type AdjustmentInput struct {
	Actor     string
	ProductID string
	Type      string
	Qty       int
	Note      string
	UnitCost  *decimal.Decimal
}

// FromRequest adapta el body HTTP al caso de uso.
func (in *AdjustmentInput) FromRequest(actor string, req dto.StockAdjustmentRequest) {
	*in = AdjustmentInput{
		Actor:     actor,
		ProductID: req.ProductID,
		Type:      req.Type,
		Qty:       req.Qty,
		Note:      req.Note,
		UnitCost:  req.UnitCost,
	}
}

// CreateAdjustment valida el ajuste, bloquea el producto, aplica el cambio de stock y escribe
// exactamente un movimiento. Una salida mayor que el stock no modifica nada.
func (uc *AdjustmentUseCase) CreateAdjustment(ctx context.Context, in AdjustmentInput) (*entity.InventoryMovement, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	movementType, err := inventory.NormalizeType(in.Type)
	if err != nil {
		return nil, err
	}
	if in.Qty <= 0 {
		return nil, fmt.Errorf("%w: qty debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if err := inventory.CheckQuantity("qty", in.Qty); err != nil {
		return nil, err
	}
	if in.UnitCost != nil {
		if movementType != entity.MovementTypeIN {
			return nil, fmt.Errorf("%w: unit_cost solo aplica a entradas", domain.ErrInvalidInput)
		}
		if in.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: unit_cost no puede ser negativo", domain.ErrInvalidInput)
		}
	}
	note := strings.TrimSpace(in.Note)
	if note == "" {
		note = DefaultAdjustmentNote
	}

	now := time.Now()
	ids := inventory.NewIDGenerator(now)
	var (
		mov   *entity.InventoryMovement
		after entity.Product
	)
	err = uc.txRunner.Run(ctx, []string{productID}, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		_ repository.TransactionRepository,
	) error {
		p, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return inventory.ProductNotFound(productID)
		}
		newStock, err := inventory.Apply(p, movementType, in.Qty)
		if err != nil {
			return err
		}
		if in.UnitCost != nil {
			p.BuyPrice = inventory.WeightedCost(p.Stock, p.BuyPrice, in.Qty, *in.UnitCost)
		}
		p.Stock = newStock
		p.UpdatedAt = now
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		mov = &entity.InventoryMovement{
			ID:           ids.Next(inventory.PrefixMovement),
			CreatedAt:    now,
			ProductID:    p.ID,
			ProductName:  p.Name,
			Type:         movementType,
			Quantity:     in.Qty,
			BalanceAfter: newStock,
			Note:         note,
			Actor:        in.Actor,
			RefID:        entity.RefNone,
		}
		after = *p
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	if movementType == entity.MovementTypeOUT && after.IsLowStock() {
		uc.notifier.NotifyLowStock([]entity.Product{after})
	}
	return mov, nil
}
