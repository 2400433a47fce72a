package domain

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

type Product struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Stock          int64          `json:"stock"`
	SizeML         int64          `json:"size_ml"`
	CategoryID     int64          `json:"category_id"`
	Category       *Category      `json:"category,omitempty"`
	Gender         Gender         `json:"gender"`
	IsHero         bool           `json:"is_hero"`
	IsFlagship     bool           `json:"is_flagship"`
	OlfactiveNotes string         `json:"olfactive_notes"`
	Images         []ProductImage `json:"images"`
}

// ProductImage.Order is the only ranking key; the lowest value is the primary image.
type ProductImage struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Path      string `json:"path"`
	Order     int    `json:"order"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PrimaryImage returns the image with the lowest order, or false when there are none.
func (p Product) PrimaryImage() (ProductImage, bool) {
	if len(p.Images) == 0 {
		return ProductImage{}, false
	}

	primary := p.Images[0]
	for _, img := range p.Images[1:] {
		if img.Order < primary.Order {
			primary = img
		}
	}

	return primary, true
}
