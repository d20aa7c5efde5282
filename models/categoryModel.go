package models

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name         string    `json:"name" gorm:"uniqueIndex;size:255"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;size:255"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	DisplayOrder int       `json:"displayOrder" gorm:"default:0"`
	Products     []Product `json:"products,omitempty" gorm:"many2many:product_categories"`
}

type CreateCategoryInput struct {
	Name         string `json:"name" binding:"required"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	IsActive     *bool  `json:"isActive"`
	DisplayOrder int    `json:"displayOrder"`
}

type UpdateCategoryInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Image        *string `json:"image"`
	IsActive     *bool   `json:"isActive"`
	DisplayOrder *int    `json:"displayOrder"`
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a category name: lowercased, runs of
// non-alphanumeric characters collapsed to single hyphens, no leading or
// trailing hyphen.
func Slugify(name string) string {
	slug := slugInvalid.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}
