package dto

type CheckoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	PostalCode    string `json:"postal_code" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=paypal bank_transfer"`
}

type OrderItemRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// RemoteOrderRequest is what the catalog API receives on checkout.
type RemoteOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	PostalCode    string             `json:"postal_code"`
	PaymentMethod string             `json:"payment_method"`
	Total         float64            `json:"total"`
	Items         []OrderItemRequest `json:"items"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type OrderFilter struct {
	Q         string `query:"q"`
	Status    string `query:"status"`
	DateRange string `query:"date_range"`
	SortBy    string `query:"sort_by"`
	SortDir   string `query:"sort_dir"`
}

type MoveCardRequest struct {
	OrderID  int64  `json:"order_id"`
	ToStatus string `json:"to_status"`
	ToIndex  int    `json:"to_index"`
}
