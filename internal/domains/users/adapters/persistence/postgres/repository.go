package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ecomarket/marketplace/internal/domains/users/domain"
	"github.com/ecomarket/marketplace/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the user directory aggregate in PostgreSQL using GORM.
// One row per user; orders and notifications travel as JSONB payloads so the
// row mirrors the users.json record shape. A position column preserves
// directory insertion order.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed directory store. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&userRecord{})
	}
	return repo
}

type userRecord struct {
	Username      string `gorm:"primaryKey;column:username"`
	Name          string `gorm:"column:name"`
	Email         string `gorm:"column:email"`
	Password      string `gorm:"column:password"`
	Admin         bool   `gorm:"column:admin"`
	Orders        string `gorm:"column:orders;type:jsonb"`
	Notifications string `gorm:"column:notifications;type:jsonb"`
	Position      int    `gorm:"column:position"`
}

func (userRecord) TableName() string { return "users" }

func (r *Repository) Load(ctx context.Context) (*domain.Directory, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("position").Find(&records).Error; err != nil {
		return nil, err
	}
	directory := domain.NewDirectory()
	for _, record := range records {
		user, err := record.toDomain()
		if err != nil {
			return nil, err
		}
		if err := directory.Insert(user); err != nil {
			return nil, err
		}
	}
	return directory, nil
}

func (r *Repository) Save(ctx context.Context, directory *domain.Directory) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	users := directory.Users()
	records := make([]userRecord, 0, len(users))
	for i, user := range users {
		record, err := toRecord(user, i)
		if err != nil {
			return err
		}
		records = append(records, record)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&userRecord{}).Error; err != nil {
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
		return errors.New("postgres user repository is not connected")
	}
	return nil
}

func toRecord(user *domain.User, position int) (userRecord, error) {
	orders, err := json.Marshal(user.Orders)
	if err != nil {
		return userRecord{}, fmt.Errorf("encode orders for %q: %w", user.Username, err)
	}
	notifications, err := json.Marshal(user.Notifications)
	if err != nil {
		return userRecord{}, fmt.Errorf("encode notifications for %q: %w", user.Username, err)
	}
	return userRecord{
		Username:      user.Username,
		Name:          user.Name,
		Email:         user.Email,
		Password:      user.Password,
		Admin:         user.Admin,
		Orders:        string(orders),
		Notifications: string(notifications),
		Position:      position,
	}, nil
}

func (record userRecord) toDomain() (*domain.User, error) {
	user := &domain.User{
		Username: record.Username,
		Name:     record.Name,
		Email:    record.Email,
		Password: record.Password,
		Admin:    record.Admin,
	}
	if record.Orders != "" {
		if err := json.Unmarshal([]byte(record.Orders), &user.Orders); err != nil {
			return nil, fmt.Errorf("decode orders for %q: %w", record.Username, err)
		}
	}
	if record.Notifications != "" {
		if err := json.Unmarshal([]byte(record.Notifications), &user.Notifications); err != nil {
			return nil, fmt.Errorf("decode notifications for %q: %w", record.Username, err)
		}
	}
	return user, nil
}
