package models

import "time"

// Product is a catalog item.
type Product struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name        string    `gorm:"size:255" bson:"name" json:"name"`
	Price       float64   `gorm:"index" bson:"price" json:"price"`
	Description string    `gorm:"type:text" bson:"description" json:"description"`
	Image       string    `gorm:"size:1024" bson:"image" json:"image"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProductPatch carries the fields of a partial update; nil means unchanged.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil && p.Image == nil
}

// Apply copies the set fields onto dst.
func (p ProductPatch) Apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
}
