package menu

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("menu item not found")
	ErrEmptyPatch = errors.New("no valid fields to update")
)

type Item struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	DiscountedPrice *float64  `json:"discounted_price"`
	Ingredients     string    `json:"ingredients"`
	Allergens       string    `json:"allergens"`
	Tags            string    `json:"tags"`
	ImageURL        string    `json:"image_url"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateRequest struct {
	Name            string   `json:"name" binding:"required,max=120"`
	Description     string   `json:"description" binding:"required,max=1000"`
	Category        string   `json:"category" binding:"required,max=60"`
	Price           float64  `json:"price" binding:"required,gt=0,lte=100000,money"`
	DiscountedPrice *float64 `json:"discounted_price" binding:"omitempty,gt=0,lte=100000,money"`
	Ingredients     string   `json:"ingredients" binding:"omitempty,max=1000"`
	Allergens       string   `json:"allergens" binding:"omitempty,max=500"`
	Tags            string   `json:"tags" binding:"omitempty,max=500"`
	ImageURL        string   `json:"image_url" binding:"omitempty,max=500"`
}

type Patch struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=120"`
	Description     *string  `json:"description" binding:"omitempty,max=1000"`
	Category        *string  `json:"category" binding:"omitempty,min=1,max=60"`
	Price           *float64 `json:"price" binding:"omitempty,gt=0,lte=100000,money"`
	DiscountedPrice *float64 `json:"discounted_price" binding:"omitempty,gt=0,lte=100000,money"`
	Ingredients     *string  `json:"ingredients" binding:"omitempty,max=1000"`
	Allergens       *string  `json:"allergens" binding:"omitempty,max=500"`
	Tags            *string  `json:"tags" binding:"omitempty,max=500"`
	ImageURL        *string  `json:"image_url" binding:"omitempty,max=500"`
	IsActive        *bool    `json:"is_active"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Price == nil && p.DiscountedPrice == nil && p.Ingredients == nil &&
		p.Allergens == nil && p.Tags == nil && p.ImageURL == nil && p.IsActive == nil
}

// Samples is the starter menu loaded into an empty catalog.
var Samples = []CreateRequest{
	{
		Name:            "Bruschetta Trio",
		Description:     "Fresh tomatoes, basil, garlic on ciabatta",
		Category:        "appetizers",
		Price:           35.0,
		DiscountedPrice: price(26.0),
		Ingredients:     "Ciabatta bread, tomatoes, basil, garlic, olive oil",
		Allergens:       "Gluten",
		Tags:            "vegetarian,gluten-free",
	},
	{
		Name:            "Seared Scallops",
		Description:     "Pan-seared Atlantic scallops with cauliflower purée",
		Category:        "appetizers",
		Price:           45.0,
		DiscountedPrice: price(34.0),
		Ingredients:     "Atlantic scallops, cauliflower, pancetta, truffle oil",
		Allergens:       "Milk",
		Tags:            "seafood,gluten-free",
	},
	{
		Name:            "Herb-Crusted Rack of Lamb",
		Description:     "New Zealand lamb with rosemary crust and mint jus",
		Category:        "mains",
		Price:           85.0,
		DiscountedPrice: price(68.0),
		Ingredients:     "New Zealand lamb, fresh herbs, mint, root vegetables",
		Allergens:       "Milk,Gluten",
		Tags:            "meat",
	},
	{
		Name:        "Wild Mushroom Risotto",
		Description: "Creamy arborio rice with wild forest mushrooms",
		Category:    "mains",
		Price:       42.0,
		Ingredients: "Arborio rice, wild mushrooms, vegetable stock, white wine",
		Allergens:   "Milk",
		Tags:        "vegetarian,vegan,gluten-free",
	},
}

func price(v float64) *float64 { return &v }
