package domain

import (
	"errors"
	"time"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

var ErrInvalidTheme = errors.New("unknown theme")

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is a thin session-scoped identity holder. There is no auth
// backend; it only exists so presentation can show who is signed in.
type User struct {
	ID        string
	Email     string
	FullName  string
	AvatarURL string
	Role      UserRole
}

type EventKind string

const (
	EventItemAdded       EventKind = "cart_item_added"
	EventQuantityUpdated EventKind = "cart_quantity_updated"
	EventItemRemoved     EventKind = "cart_item_removed"
	EventCartCleared     EventKind = "cart_cleared"
)

// SessionEvent is the confirmation signal behind the storefront's
// toast notifications. Presentation wording stays out of the core;
// consumers map the kind to whatever they show.
type SessionEvent struct {
	Kind      EventKind
	ProductID string
	Quantity  int
	At        time.Time
}
