package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Title            string                      `json:"title" gorm:"size:255"`
	Images           datatypes.JSONSlice[string] `json:"images"`
	Price            float64                     `json:"price"`
	BoxPrice         *float64                    `json:"boxPrice"`
	BoxDiscountPrice *float64                    `json:"boxDiscountPrice"`
	Summary          string                      `json:"summary"`
	Quantity         int                         `json:"quantity" gorm:"default:0"`
	BoxQuantity      *int                        `json:"boxQuantity"`
	InStock          bool                        `json:"inStock" gorm:"default:true"`
	IsActive         bool                        `json:"isActive" gorm:"default:true"`
	Categories       []Category                  `json:"categories,omitempty" gorm:"many2many:product_categories"`
}

type CreateProductInput struct {
	Title            string   `json:"title" binding:"required"`
	Images           []string `json:"images"`
	Price            float64  `json:"price" binding:"required,gt=0"`
	BoxPrice         *float64 `json:"boxPrice"`
	BoxDiscountPrice *float64 `json:"boxDiscountPrice"`
	Summary          string   `json:"summary" binding:"required"`
	Quantity         int      `json:"quantity" binding:"gte=0"`
	BoxQuantity      *int     `json:"boxQuantity"`
	InStock          *bool    `json:"inStock"`
	IsActive         *bool    `json:"isActive"`
	CategoryIDs      []uint   `json:"categoryIds" binding:"required,min=1"`
}

type UpdateProductInput struct {
	Title            *string  `json:"title"`
	Images           []string `json:"images"`
	Price            *float64 `json:"price"`
	BoxPrice         *float64 `json:"boxPrice"`
	BoxDiscountPrice *float64 `json:"boxDiscountPrice"`
	Summary          *string  `json:"summary"`
	Quantity         *int     `json:"quantity"`
	BoxQuantity      *int     `json:"boxQuantity"`
	InStock          *bool    `json:"inStock"`
	IsActive         *bool    `json:"isActive"`
	CategoryIDs      []uint   `json:"categoryIds"`
}

// Available reports whether the product can be added to a cart in the
// requested quantity.
func (p *Product) Available(quantity int) bool {
	return p.IsActive && p.InStock && p.Quantity >= quantity
}
