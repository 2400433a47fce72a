package domain

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// TotalPrice is recomputed from the items on every call.
func (c Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount sums quantities, not distinct products.
func (c Cart) ItemCount() int64 {
	var count int64
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c Cart) IndexOf(productID int64) int {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

type AdminUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
