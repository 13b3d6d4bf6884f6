package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

type UpdateOrderRequest struct {
	Status         *string      `json:"status"`
	DeliveryCrewID NullableUint `json:"delivery_crew_id"`
}

// NullableUint tells an absent field apart from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type NullableUint struct {
	Set   bool
	Value *uint
}

func (n *NullableUint) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}

	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

type OrderDTO struct {
	ID             uint           `json:"id"`
	UserID         uint           `json:"user_id"`
	DeliveryCrewID *uint          `json:"delivery_crew_id"`
	Status         string         `json:"status"`
	Total          string         `json:"total"`
	Date           time.Time      `json:"date"`
	Items          []OrderItemDTO `json:"items"`
}

type OrderItemDTO struct {
	MenuItemID *uint  `json:"menu_item_id"`
	MenuItem   string `json:"menu_item"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	Price      string `json:"price"`
}
