package inventory

import (
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/koperasi-api/internal/domain"
	"github.com/jhoicas/koperasi-api/internal/domain/entity"
)

// Límites de las consultas del libro.
const (
	MovementListLimit     = 200
	TransactionListLimit  = 100
	NotificationListLimit = 200
)

// MaxQuantity tope de cantidades y saldos; coincide con la columna INTEGER de PostgreSQL.
const MaxQuantity = math.MaxInt32

// CheckQuantity valida que n esté en [0, MaxQuantity]; field nombra el campo en el error.
func CheckQuantity(field string, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrInvalidInput, field)
	}
	if n > MaxQuantity {
		return fmt.Errorf("%w: %s supera el máximo %d", domain.ErrInvalidInput, field, MaxQuantity)
	}
	return nil
}

// NormalizeType acepta "in"/"out" en cualquier combinación de mayúsculas.
func NormalizeType(t string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case entity.MovementTypeIN:
		return entity.MovementTypeIN, nil
	case entity.MovementTypeOUT:
		return entity.MovementTypeOUT, nil
	case "":
		return "", fmt.Errorf("%w: type es obligatorio", domain.ErrInvalidInput)
	}
	return "", fmt.Errorf("%w: type debe ser IN u OUT", domain.ErrInvalidInput)
}

// Apply calcula el stock resultante de un movimiento sin modificar nada.
// Devuelve ErrInsufficientStock si el resultado sería negativo y ErrInvalidInput si superaría MaxQuantity.
func Apply(p *entity.Product, movementType string, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: qty debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if qty > MaxQuantity {
		return 0, fmt.Errorf("%w: qty supera el máximo %d", domain.ErrInvalidInput, MaxQuantity)
	}
	switch movementType {
	case entity.MovementTypeIN:
		if p.Stock > MaxQuantity-qty {
			return 0, fmt.Errorf("%w: el stock de %s superaría el máximo %d", domain.ErrInvalidInput, p.Name, MaxQuantity)
		}
		return p.Stock + qty, nil
	case entity.MovementTypeOUT:
		if qty > p.Stock {
			return 0, InsufficientStock(p, p.Stock, qty)
		}
		return p.Stock - qty, nil
	}
	return 0, fmt.Errorf("%w: type debe ser IN u OUT", domain.ErrInvalidInput)
}

// InsufficientStock construye el error nombrando el producto.
func InsufficientStock(p *entity.Product, available, requested int) error {
	return fmt.Errorf("%w para %s (disponible %d, solicitado %d)",
		domain.ErrInsufficientStock, p.Name, available, requested)
}

// ProductNotFound construye el error nombrando el id pedido.
func ProductNotFound(id string) error {
	return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
}

// LedgerBalance suma con signo los movimientos (+IN, -OUT).
func LedgerBalance(movements []*entity.InventoryMovement) int {
	total := 0
	for _, m := range movements {
		total += m.Signed()
	}
	return total
}

// DeltaMovement devuelve el tipo y la cantidad que llevan el stock de "from" a "to".
// ok es false si no hay diferencia.
func DeltaMovement(from, to int) (movementType string, qty int, ok bool) {
	switch {
	case to > from:
		return entity.MovementTypeIN, to - from, true
	case to < from:
		return entity.MovementTypeOUT, from - to, true
	}
	return "", 0, false
}
