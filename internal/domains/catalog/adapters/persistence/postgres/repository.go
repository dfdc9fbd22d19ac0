package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ecomarket/marketplace/internal/domains/catalog/domain"
	"github.com/ecomarket/marketplace/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the catalog aggregate in PostgreSQL using GORM.
// The aggregate discipline is preserved: Load reads every row, Save replaces
// the whole table in one transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog store. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

type productRecord struct {
	ID          string  `gorm:"primaryKey;column:id"`
	Name        string  `gorm:"column:name"`
	Price       float64 `gorm:"column:price"`
	Description string  `gorm:"column:description"`
	Quantity    int     `gorm:"column:quantity"`
	Position    int     `gorm:"column:position"`
}

func (productRecord) TableName() string { return "products" }

func (r *Repository) Load(ctx context.Context) (domain.Catalog, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("position").Find(&records).Error; err != nil {
		return nil, err
	}
	catalog := make(domain.Catalog, 0, len(records))
	for _, record := range records {
		catalog = append(catalog, &domain.Product{
			ID:          record.ID,
			Name:        record.Name,
			Price:       record.Price,
			Description: record.Description,
			Quantity:    record.Quantity,
		})
	}
	return catalog, nil
}

func (r *Repository) Save(ctx context.Context, catalog domain.Catalog) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	records := make([]productRecord, 0, len(catalog))
	for i, product := range catalog {
		records = append(records, productRecord{
			ID:          product.ID,
			Name:        product.Name,
			Price:       product.Price,
			Description: product.Description,
			Quantity:    product.Quantity,
			Position:    i,
		})
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&productRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

func (r *Repository) ensureDB() error {
	if r.db == nil {
		return errors.New("postgres catalog repository is not connected")
	}
	return nil
}
