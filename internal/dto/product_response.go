package dto

import (
	"sort"

	"github.com/alimikegami/perfume-store/internal/domain"
)

// ProductPayload is a product as the catalog API sends it. Numbers may arrive as strings.
type ProductPayload struct {
	ID             FlexibleInt           `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          FlexibleFloat         `json:"price"`
	Stock          FlexibleInt           `json:"stock"`
	SizeML         FlexibleInt           `json:"size_ml"`
	CategoryID     FlexibleInt           `json:"category_id"`
	Category       *CategoryPayload      `json:"category"`
	Gender         string                `json:"gender"`
	IsHero         FlexibleBool          `json:"is_hero"`
	IsFlagship     FlexibleBool          `json:"is_flagship"`
	OlfactiveNotes string                `json:"olfactive_notes"`
	Images         []ProductImagePayload `json:"images"`
}

type ProductImagePayload struct {
	ID        FlexibleInt `json:"id"`
	ProductID FlexibleInt `json:"product_id"`
	Path      string      `json:"image_path"`
	Order     FlexibleInt `json:"order"`
}

type CategoryPayload struct {
	ID   FlexibleInt `json:"id"`
	Name string      `json:"name"`
	Slug string      `json:"slug"`
}

func (c CategoryPayload) ToDomain() domain.Category {
	return domain.Category{
		ID:   int64(c.ID),
		Name: c.Name,
		Slug: c.Slug,
	}
}

// ToDomain coerces the payload and returns images sorted by order.
func (p ProductPayload) ToDomain() domain.Product {
	product := domain.Product{
		ID:             int64(p.ID),
		Name:           p.Name,
		Description:    p.Description,
		Price:          float64(p.Price),
		Stock:          int64(p.Stock),
		SizeML:         int64(p.SizeML),
		CategoryID:     int64(p.CategoryID),
		Gender:         domain.Gender(p.Gender),
		IsHero:         bool(p.IsHero),
		IsFlagship:     bool(p.IsFlagship),
		OlfactiveNotes: p.OlfactiveNotes,
		Images:         make([]domain.ProductImage, 0, len(p.Images)),
	}

	if p.Category != nil {
		category := p.Category.ToDomain()
		product.Category = &category
		if product.CategoryID == 0 {
			product.CategoryID = category.ID
		}
	}

	for _, img := range p.Images {
		product.Images = append(product.Images, domain.ProductImage{
			ID:        int64(img.ID),
			ProductID: int64(img.ProductID),
			Path:      img.Path,
			Order:     int(img.Order),
		})
	}

	sort.SliceStable(product.Images, func(i, j int) bool {
		return product.Images[i].Order < product.Images[j].Order
	})

	return product
}

type ProductFilter struct {
	Category string `query:"category"`
	Gender   string `query:"gender"`
	Q        string `query:"q"`
}
