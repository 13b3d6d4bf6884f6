package dto

import "littlelemon/internal/domain"

func NewMenuItemDTO(item domain.MenuItem) MenuItemDTO {
	return MenuItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price.StringFixed(2),
		Description: item.Description,
	}
}

func NewCartResponse(lines []domain.CartLine) CartResponse {
	items := make([]CartLineDTO, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartLineDTO{
			MenuItemID: l.MenuItemID,
			MenuItem:   l.MenuItemName,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice.StringFixed(2),
			Price:      l.Subtotal().StringFixed(2),
		})
	}

	return CartResponse{
		Items: items,
		Total: domain.CartTotal(lines).StringFixed(2),
	}
}

func NewOrderDTO(order domain.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderItemDTO{
			MenuItemID: it.MenuItemID,
			MenuItem:   it.MenuItemName,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.StringFixed(2),
			Price:      it.LineTotal.StringFixed(2),
		})
	}

	return OrderDTO{
		ID:             order.ID,
		UserID:         order.UserID,
		DeliveryCrewID: order.DeliveryCrewID,
		Status:         string(order.Status),
		Total:          order.Total.StringFixed(2),
		Date:           order.CreatedAt,
		Items:          items,
	}
}

func NewUserDTO(user domain.User) UserDTO {
	groups := user.Groups
	if groups == nil {
		groups = []string{}
	}
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.Staff,
		Groups:   groups,
	}
}

func NewGroupMemberDTO(user domain.User) GroupMemberDTO {
	return GroupMemberDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
