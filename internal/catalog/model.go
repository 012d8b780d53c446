package catalog

// Product is a catalog entry. Products are owned by the catalog and never
// mutated by the cart; the cart only snapshots them by value.
type Product struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Weight   int    `json:"weight"`
	Position int    `json:"-"`
}

// TableName pins the table installed by the catalog migrations.
func (Product) TableName() string {
	return "products"
}
