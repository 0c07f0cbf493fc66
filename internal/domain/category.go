package domain

import "fmt"

// Category is the closed set of venue classifications the planner understands.
type Category string

const (
	CategoryRestaurant     Category = "restaurant"
	CategoryBar            Category = "bar"
	CategoryCafe           Category = "cafe"
	CategoryMuseum         Category = "museum"
	CategoryTheater        Category = "theater"
	CategoryPark           Category = "park"
	CategoryShoppingCenter Category = "shopping_center"
	CategorySportsFacility Category = "sports_facility"
	CategorySpa            Category = "spa"
	CategoryOther          Category = "other"
)

// AllCategories lists every valid category in a stable order.
var AllCategories = []Category{
	CategoryRestaurant,
	CategoryBar,
	CategoryCafe,
	CategoryMuseum,
	CategoryTheater,
	CategoryPark,
	CategoryShoppingCenter,
	CategorySportsFacility,
	CategorySpa,
	CategoryOther,
}

// ParseCategory validates a raw category string from an external collaborator.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	for _, known := range AllCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("parse category: unknown category %q", s)
}

func (c Category) String() string { return string(c) }
