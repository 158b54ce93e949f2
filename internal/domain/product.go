package domain

// Product is a catalog entry. The catalog is read once at startup and
// passed by reference to the services that need it.
type Product struct {
	ID       string
	Name     string
	Amount   int64
	Currency string
	ImageURL string
}

// Catalog maps product id to product.
type Catalog map[string]Product

// FindByName returns the product whose display name exactly matches text.
// Matching is strict: no trimming, no case folding.
func (c Catalog) FindByName(text string) (Product, bool) {
	for _, p := range c {
		if p.Name == text {
			return p, true
		}
	}
	return Product{}, false
}
