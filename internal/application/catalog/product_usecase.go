package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/koperasi-api/internal/application/dto"
	appinventory "github.com/jhoicas/koperasi-api/internal/application/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
	"github.com/jhoicas/koperasi-api/internal/domain/inventory"
	"github.com/jhoicas/koperasi-api/internal/domain/repository"
)

// Notas de los movimientos generados desde el catálogo.
const (
	OpeningBalanceNote = "Stock inicial de producto nuevo"
	CatalogCorrectNote = "Corrección de stock desde catálogo"
)

// ProductUseCase alta, edición y listado del catálogo.
// Todo cambio de stock deja un movimiento para que el libro cuadre con el catálogo.
type ProductUseCase struct {
	txRunner appinventory.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner appinventory.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// List devuelve el catálogo completo en orden de inserción.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, inventory.ProductNotFound(id)
	}
	out := dto.ToProductResponse(p)
	return &out, nil
}

// Upsert crea el producto si el id no existe (o viene vacío) y lo actualiza en otro caso.
// Alta con stock > 0: un movimiento IN de saldo inicial. Edición de metadatos: sin movimiento.
// Edición con stock distinto: un movimiento IN/OUT por la diferencia.
func (uc *ProductUseCase) Upsert(ctx context.Context, actor string, in dto.UpsertProductRequest) (*dto.UpsertProductResponse, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	now := time.Now()
	ids := inventory.NewIDGenerator(now)
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = ids.Next(inventory.PrefixProduct)
	}

	var out dto.UpsertProductResponse
	err := uc.txRunner.Run(ctx, []string{id}, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		_ repository.TransactionRepository,
	) error {
		existing, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		var (
			p         *entity.Product
			prevStock int
			note      string
		)
		if existing == nil {
			p = &entity.Product{ID: id, CreatedAt: now}
			if in.Stock != nil {
				p.Stock = *in.Stock
			}
			note = OpeningBalanceNote
			out.Created = true
		} else {
			p = existing
			prevStock = existing.Stock
			if in.Stock != nil {
				p.Stock = *in.Stock
			}
			note = CatalogCorrectNote
		}
		p.Name = strings.TrimSpace(in.Name)
		p.SellPrice = in.SellPrice
		p.BuyPrice = in.BuyPrice
		p.MinStock = in.MinStock
		p.UpdatedAt = now

		if out.Created {
			err = productRepo.Create(ctx, p)
		} else {
			err = productRepo.Update(ctx, p)
		}
		if err != nil {
			return err
		}

		if movementType, qty, ok := inventory.DeltaMovement(prevStock, p.Stock); ok {
			mov := &entity.InventoryMovement{
				ID:           ids.Next(inventory.PrefixMovement),
				CreatedAt:    now,
				ProductID:    p.ID,
				ProductName:  p.Name,
				Type:         movementType,
				Quantity:     qty,
				BalanceAfter: p.Stock,
				Note:         note,
				Actor:        actor,
				RefID:        entity.RefNone,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			m := dto.ToMovementResponse(mov)
			out.Movement = &m
		}
		out.Product = dto.ToProductResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func validate(in *dto.UpsertProductRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.SellPrice.IsNegative() || in.BuyPrice.IsNegative() {
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.Stock != nil {
		if err := inventory.CheckQuantity("stock", *in.Stock); err != nil {
			return err
		}
	}
	return inventory.CheckQuantity("min_stock", in.MinStock)
}
