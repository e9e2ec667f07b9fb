package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single spending record
type Expense struct {
	ID       int
	UserID   int64
	Amount   decimal.Decimal
	Category string
	Date     time.Time
}

// CategoryTotal is a category with its summed amount
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// User represents a bot user
type User struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// DisplayName returns the name shown in reports: @username if set,
// otherwise first+last name, otherwise the numeric ID.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.FirstName != "" {
		name := u.FirstName
		if u.LastName != "" {
			name += " " + u.LastName
		}
		return name
	}
	return fmt.Sprintf("ID %d", u.UserID)
}
