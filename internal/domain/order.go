package domain

// Order describes a single purchase before the payment gateway has
// acknowledged it. Immutable once built by the intent router.
type Order struct {
	ProductID   string
	ProductName string
	Amount      int64
	Currency    string
	ImageURL    string
	OrderID     string
	ConfirmURL  string
	CancelURL   string
}
