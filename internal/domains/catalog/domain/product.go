package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultStock is the quantity assigned to a freshly added product.
const DefaultStock = 3

var (
	ErrEmptyName    = errors.New("product name is required")
	ErrInvalidPrice = errors.New("product price must be a non-negative number")
	ErrOutOfStock   = errors.New("product is out of stock")
	ErrNotFound     = errors.New("product not found")
)

// Product is a catalog entry with finite stock. The JSON shape matches the
// products.json file layout.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
}

// Rename mutates the product name ensuring the invariant.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice rejects negative and non-numeric prices.
func (p *Product) Reprice(price float64) error {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}
	p.Price = price
	return nil
}

// Describe replaces the free-form description.
func (p *Product) Describe(description string) {
	p.Description = description
}

// Reserve decrements stock by exactly one, failing when none remains.
// Quantity never goes below zero.
func (p *Product) Reserve() error {
	if p.Quantity < 1 {
		return ErrOutOfStock
	}
	p.Quantity--
	return nil
}

// Snapshot returns an immutable copy taken at order-placement time,
// independent of later catalog edits.
func (p *Product) Snapshot() Product {
	return *p
}

// Catalog is the whole-file product aggregate, always loaded and saved as a unit.
type Catalog []*Product

// NewProduct validates the invariants and builds a catalog entry.
func NewProduct(id, name string, price float64, description string) (*Product, error) {
	p := &Product{ID: id, Quantity: DefaultStock}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reprice(price); err != nil {
		return nil, err
	}
	p.Describe(description)
	return p, nil
}

// Add appends a new product with a positional id. Ids stay monotonic because
// products are never removed from the catalog.
func (c *Catalog) Add(name string, price float64, description string) (*Product, error) {
	id := strconv.Itoa(len(*c) + 1)
	product, err := NewProduct(id, name, price, description)
	if err != nil {
		return nil, err
	}
	*c = append(*c, product)
	return product, nil
}

// Find locates a product by id.
func (c Catalog) Find(id string) (*Product, error) {
	for _, p := range c {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

// Reserve decrements stock for the given product and returns the
// pre-decrement snapshot used as the order's product copy.
func (c Catalog) Reserve(id string) (Product, error) {
	product, err := c.Find(id)
	if err != nil {
		return Product{}, err
	}
	snapshot := product.Snapshot()
	if err := product.Reserve(); err != nil {
		return Product{}, err
	}
	return snapshot, nil
}

// Clone deep-copies the aggregate so a failed persistence can be rolled back.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	clone := make(Catalog, len(c))
	for i, p := range c {
		cp := *p
		clone[i] = &cp
	}
	return clone
}
