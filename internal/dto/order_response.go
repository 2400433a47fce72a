package dto

import (
	"time"

	"github.com/alimikegami/perfume-store/internal/domain"
)

type OrderPayload struct {
	ID            FlexibleInt        `json:"id"`
	CustomerName  string             `json:"customer_name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	PostalCode    string             `json:"postal_code"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Total         FlexibleFloat      `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID FlexibleInt     `json:"product_id"`
	Product   *ProductPayload `json:"product"`
	Quantity  FlexibleInt     `json:"quantity"`
	Price     FlexibleFloat   `json:"price"`
}

// ToDomain keeps an unknown status string as is; the board groups it nowhere.
func (o OrderPayload) ToDomain() domain.Order {
	order := domain.Order{
		ID:            int64(o.ID),
		CustomerName:  o.CustomerName,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		City:          o.City,
		PostalCode:    o.PostalCode,
		PaymentMethod: o.PaymentMethod,
		Status:        domain.OrderStatus(o.Status),
		Total:         float64(o.Total),
		CreatedAt:     o.CreatedAt,
		Items:         make([]domain.OrderItem, 0, len(o.Items)),
	}

	for _, item := range o.Items {
		orderItem := domain.OrderItem{
			ProductID: int64(item.ProductID),
			Quantity:  int64(item.Quantity),
			UnitPrice: float64(item.Price),
		}
		if item.Product != nil {
			orderItem.ProductName = item.Product.Name
			if orderItem.ProductID == 0 {
				orderItem.ProductID = int64(item.Product.ID)
			}
		}
		order.Items = append(order.Items, orderItem)
	}

	return order
}

type BoardColumn struct {
	Status domain.OrderStatus `json:"status"`
	Orders []domain.Order     `json:"orders"`
}
