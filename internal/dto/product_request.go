package dto

// ProductRequest is the back-office product form. Numeric fields stay strings
// so that non-numeric input is reported as a validation error.
type ProductRequest struct {
	ID             int64  `json:"-" form:"-"`
	Name           string `json:"name" form:"name" validate:"required"`
	Description    string `json:"description" form:"description"`
	Price          string `json:"price" form:"price" validate:"required,numeric"`
	Stock          string `json:"stock" form:"stock" validate:"required,number"`
	SizeML         string `json:"size_ml" form:"size_ml" validate:"required,number"`
	CategoryID     string `json:"category_id" form:"category_id" validate:"required,number"`
	Gender         string `json:"gender" form:"gender" validate:"required,oneof=male female unisex"`
	IsHero         bool   `json:"is_hero" form:"is_hero"`
	IsFlagship     bool   `json:"is_flagship" form:"is_flagship"`
	OlfactiveNotes string `json:"olfactive_notes" form:"olfactive_notes"`

	// Image changes, used on update only.
	DeleteImageIDs []int64 `json:"delete_image_ids" form:"delete_image_ids"`
}

type ImageFile struct {
	FileName string
	Content  []byte
}

type CategoryRequest struct {
	ID   int64  `json:"-"`
	Name string `json:"name" validate:"required"`
	// Slug overrides the derived slug when non-empty.
	Slug string `json:"slug"`
}

type ImageOrder struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

// ImageReorderRequest is the body of the catalog API reorder endpoint.
type ImageReorderRequest struct {
	Orders []ImageOrder `json:"orders"`
}

type MoveImageRequest struct {
	Index int `json:"index"`
}

type SetMainImageRequest struct {
	ImageID int64 `json:"image_id"`
}
