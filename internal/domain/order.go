package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
)

func (s OrderStatus) Valid() bool {
	return s == OrderStatusOutForDelivery || s == OrderStatusDelivered
}

type Order struct {
	ID             uint
	UserID         uint
	DeliveryCrewID *uint
	Status         OrderStatus
	Total          decimal.Decimal
	CreatedAt      time.Time
	Items          []OrderItem
}

// OrderItem is a frozen copy of a cart line. UnitPrice and LineTotal are never
// re-derived from the menu; MenuItemID becomes nil if the menu item is deleted.
type OrderItem struct {
	ID           uint
	OrderID      uint
	MenuItemID   *uint
	MenuItemName string
	Quantity     int
	UnitPrice    decimal.Decimal
	LineTotal    decimal.Decimal
}

func NewOrderItem(orderID uint, line CartLine) OrderItem {
	menuItemID := line.MenuItemID
	return OrderItem{
		OrderID:      orderID,
		MenuItemID:   &menuItemID,
		MenuItemName: line.MenuItemName,
		Quantity:     line.Quantity,
		UnitPrice:    line.UnitPrice,
		LineTotal:    line.Subtotal(),
	}
}

// OrderUpdate carries the fields a manager may change; nil means unchanged.
// ClearDeliveryCrew unassigns the crew and excludes DeliveryCrewID.
type OrderUpdate struct {
	Status            *OrderStatus
	DeliveryCrewID    *uint
	ClearDeliveryCrew bool
}

func (u OrderUpdate) Empty() bool {
	return u.Status == nil && u.DeliveryCrewID == nil && !u.ClearDeliveryCrew
}
