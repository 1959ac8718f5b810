package product

// Product is a catalog entry.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog returns the sample listing. Order is part of the contract.
func Catalog() []Product {
	return []Product{
		{ID: "1", Name: "Laptop", Price: 999.99},
		{ID: "2", Name: "Mouse", Price: 29.99},
		{ID: "3", Name: "Keyboard", Price: 79.99},
	}
}
