package dto

type AddCartItemRequest struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   *int `json:"quantity"`
}

type CartLineDTO struct {
	MenuItemID uint   `json:"menu_item_id"`
	MenuItem   string `json:"menu_item"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	Price      string `json:"price"`
}

type CartResponse struct {
	Items []CartLineDTO `json:"items"`
	Total string        `json:"total"`
}
