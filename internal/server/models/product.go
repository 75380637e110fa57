package models

// Product is a catalog item. Image is the public URL of the resized product
// picture in object storage.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Image       string
	StockCount  int
	ProductCode string
	Description string
}
