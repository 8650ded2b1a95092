package domain

// Employee represents a member of the waitstaff. Employees are reference
// data created at provisioning time; the code doubles as the login credential.
type Employee struct {
	ID   int
	Name string
	Code string
}

type Category string

const (
	CategoryDrink   Category = "drink"
	CategoryFood    Category = "food"
	CategoryAlcohol Category = "alcohol"
	CategoryMisc    Category = "misc"
)

// ParseCategory validates a wire-level category value.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryDrink, CategoryFood, CategoryAlcohol, CategoryMisc:
		return Category(s), nil
	}
	return "", ErrInvalidCategory
}

// MenuItem represents a sellable article. Reference data; the catalog price
// is a default only, each order line captures its own unit price at add time.
type MenuItem struct {
	ID       int
	Name     string
	Price    float64
	Category Category
}
