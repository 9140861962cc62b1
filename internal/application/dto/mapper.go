package dto

import "github.com/jhoicas/koperasi-api/internal/domain/entity"

// ToProductResponse mapea la entidad a su salida HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SellPrice: p.SellPrice,
		BuyPrice:  p.BuyPrice,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		LowStock:  p.IsLowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToMovementResponse mapea un movimiento del libro.
func ToMovementResponse(m *entity.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		Type:         m.Type,
		Qty:          m.Quantity,
		BalanceAfter: m.BalanceAfter,
		Note:         m.Note,
		Actor:        m.Actor,
		RefID:        m.RefID,
	}
}

// ToTransactionResponse mapea una venta con sus líneas.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, TransactionItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Qty:         it.Quantity,
			Price:       it.Price,
			Subtotal:    it.Subtotal,
		})
	}
	return TransactionResponse{
		ID:            t.ID,
		CreatedAt:     t.CreatedAt,
		Cashier:       t.Cashier,
		MemberName:    t.MemberName,
		PaymentMethod: t.PaymentMethod,
		Total:         t.Total,
		Items:         items,
	}
}

// ToNotificationResponse mapea un aviso de stock bajo.
func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		CreatedAt:   n.CreatedAt,
		ProductID:   n.ProductID,
		ProductName: n.ProductName,
		Stock:       n.Stock,
		MinStock:    n.MinStock,
	}
}
