package dto

import "github.com/alimikegami/perfume-store/internal/domain"

type CartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalPrice float64           `json:"total_price"`
	ItemCount  int64             `json:"item_count"`
}

func NewCartResponse(cart domain.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}

	return CartResponse{
		Items:      items,
		TotalPrice: cart.TotalPrice(),
		ItemCount:  cart.ItemCount(),
	}
}
