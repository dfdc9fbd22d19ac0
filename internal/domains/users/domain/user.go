package domain

import (
	"errors"

	catalogdomain "github.com/ecomarket/marketplace/internal/domains/catalog/domain"
)

var (
	ErrEmptyUsername     = errors.New("username is required")
	ErrUserNotFound      = errors.New("user not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// User is a directory record: identity, role flag, order history, and the
// notification mailbox. Username is the directory key and is not serialized
// inside the record.
type User struct {
	Username      string   `json:"-"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	Admin         bool     `json:"admin"`
	Orders        []*Order `json:"orders"`
	Notifications []string `json:"notifications"`
}

// NewUser builds a self-registered user. The admin flag is fixed false at
// creation; admin records are seeded out of band.
func NewUser(username, name, email, password string) (*User, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	return &User{
		Username:      username,
		Name:          name,
		Email:         email,
		Password:      password,
		Orders:        []*Order{},
		Notifications: []string{},
	}, nil
}

// CheckPassword compares the stored password with the supplied credentials.
// Passwords are stored and compared as opaque strings.
func (u *User) CheckPassword(password string) bool {
	return password != "" && u.Password == password
}

// PlaceOrder appends a pending order holding a snapshot of the product at
// purchase time. The caller must have reserved stock first.
func (u *User) PlaceOrder(orderID string, product catalogdomain.Product) *Order {
	order := &Order{ID: orderID, Product: product, Status: StatusPending}
	u.Orders = append(u.Orders, order)
	return order
}

// FindOrder locates an order by id within this user's history.
func (u *User) FindOrder(orderID string) (*Order, error) {
	for _, order := range u.Orders {
		if order.ID == orderID {
			return order, nil
		}
	}
	return nil, ErrOrderNotFound
}

// Notify appends a message to the mailbox.
func (u *User) Notify(message string) {
	u.Notifications = append(u.Notifications, message)
}

// TakeNotifications empties the mailbox and returns the messages in insertion
// order. Callers must persist the cleared state before treating the messages
// as delivered.
func (u *User) TakeNotifications() []string {
	messages := u.Notifications
	u.Notifications = []string{}
	return messages
}

// Clone deep-copies the user including order history.
func (u *User) Clone() *User {
	clone := *u
	clone.Orders = make([]*Order, len(u.Orders))
	for i, order := range u.Orders {
		cp := *order
		clone.Orders[i] = &cp
	}
	clone.Notifications = append([]string(nil), u.Notifications...)
	if clone.Notifications == nil {
		clone.Notifications = []string{}
	}
	return &clone
}
