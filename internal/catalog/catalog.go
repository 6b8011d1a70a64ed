package catalog

import "math/rand/v2"

type Category string

const (
	CategoryFood           Category = "food"
	CategoryClothing       Category = "clothing"
	CategoryEntertainment  Category = "entertainment"
	CategoryEducation      Category = "education"
	CategoryTechnology     Category = "technology"
	CategoryTransportation Category = "transportation"
	CategoryPets           Category = "pets"
	CategoryAnimals        Category = "animals"
	CategoryRealEstate     Category = "real_estate"
	CategoryLuxury         Category = "luxury"
	CategoryHome           Category = "home"
	CategoryRecreation     Category = "recreation"
	CategoryVehicles       Category = "vehicles"
	CategoryInvestment     Category = "investment"
	CategoryBusiness       Category = "business"
	CategoryMarketing      Category = "marketing"
	CategoryMilitary       Category = "military"
	CategoryArt            Category = "art"
)

var categories = []Category{
	CategoryFood, CategoryClothing, CategoryEntertainment, CategoryEducation,
	CategoryTechnology, CategoryTransportation, CategoryPets, CategoryAnimals,
	CategoryRealEstate, CategoryLuxury, CategoryHome, CategoryRecreation,
	CategoryVehicles, CategoryInvestment, CategoryBusiness, CategoryMarketing,
	CategoryMilitary, CategoryArt,
}

// Item is a purchasable catalog entry. Price is in whole dollars.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}

// Categories returns every known category tag.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)

	return out
}

// Valid reports whether c is one of the known category tags.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}

	return false
}

// All returns a copy of the catalog in display order.
func All() []Item {
	out := make([]Item, len(items))
	copy(out, items)

	return out
}

// ByID looks up an entry by its id.
func ByID(id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}

	return Item{}, false
}

// ByCategory returns the entries tagged with c, in catalog order.
func ByCategory(c Category) []Item {
	out := make([]Item, 0, 8)

	for _, it := range items {
		if it.Category == c {
			out = append(out, it)
		}
	}

	return out
}

// First is the entry shown before the player has asked for anything else.
func First() Item {
	return items[0]
}

// Random picks a uniformly distributed entry using r.
// A nil r falls back to the package-level generator.
func Random(r *rand.Rand) Item {
	if r == nil {
		return items[rand.IntN(len(items))]
	}

	return items[r.IntN(len(items))]
}
