package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Directory is the username-keyed user aggregate, always loaded and saved as
// a whole. Insertion order of usernames is preserved across JSON round-trips
// so projections iterate users in the order they registered.
type Directory struct {
	users map[string]*User
	order []string
}

func NewDirectory() *Directory {
	return &Directory{users: map[string]*User{}}
}

// Insert adds a user under its username, enforcing key uniqueness.
func (d *Directory) Insert(user *User) error {
	if user == nil || user.Username == "" {
		return ErrEmptyUsername
	}
	if d.users == nil {
		d.users = map[string]*User{}
	}
	if _, exists := d.users[user.Username]; exists {
		return ErrDuplicateUsername
	}
	if user.Orders == nil {
		user.Orders = []*Order{}
	}
	if user.Notifications == nil {
		user.Notifications = []string{}
	}
	d.users[user.Username] = user
	d.order = append(d.order, user.Username)
	return nil
}

// Get returns the live user record for in-place mutation.
func (d *Directory) Get(username string) (*User, error) {
	user, ok := d.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Len reports the number of registered users.
func (d *Directory) Len() int {
	return len(d.order)
}

// Users returns the records in insertion order.
func (d *Directory) Users() []*User {
	list := make([]*User, 0, len(d.order))
	for _, username := range d.order {
		list = append(list, d.users[username])
	}
	return list
}

// OrderIDTaken reports whether any user already holds an order with the id.
func (d *Directory) OrderIDTaken(id string) bool {
	for _, username := range d.order {
		if _, err := d.users[username].FindOrder(id); err == nil {
			return true
		}
	}
	return false
}

// Clone deep-copies the aggregate so a failed persistence can be rolled back.
func (d *Directory) Clone() *Directory {
	clone := NewDirectory()
	for _, username := range d.order {
		_ = clone.Insert(d.users[username].Clone())
	}
	return clone
}

// MarshalJSON writes the directory as an object keyed by username, in
// insertion order. encoding/json would sort map keys alphabetically, which
// breaks the iteration contract.
func (d *Directory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, username := range d.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(username)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		record, err := json.Marshal(d.users[username])
		if err != nil {
			return nil, err
		}
		buf.Write(record)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by username, preserving key order via
// token-level decoding.
func (d *Directory) UnmarshalJSON(data []byte) error {
	d.users = map[string]*User{}
	d.order = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("user directory must be a JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		username, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected user directory key %v", tok)
		}
		user := &User{}
		if err := dec.Decode(user); err != nil {
			return fmt.Errorf("decode user %q: %w", username, err)
		}
		user.Username = username
		if err := d.Insert(user); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
