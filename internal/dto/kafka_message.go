package dto

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type OrderStatusChanged struct {
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
}

type ProductImagesReordered struct {
	ProductID int64        `json:"product_id"`
	Orders    []ImageOrder `json:"orders"`
}

type OrderPlaced struct {
	OrderID int64   `json:"order_id"`
	Total   float64 `json:"total"`
	Items   int64   `json:"items"`
}
