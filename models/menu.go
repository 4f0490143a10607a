package models

type Category string

const (
	CategoryMain  Category = "MAIN"
	CategorySet   Category = "SET"
	CategorySnack Category = "SNACK"
	CategoryDrink Category = "DRINK"
)

// MenuItem is one purchasable item. The catalog is loaded once and never
// mutated at runtime.
type MenuItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Category Category `json:"category"`
}
