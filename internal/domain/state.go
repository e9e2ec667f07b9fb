package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle                 UserState = "idle"
	StateAwaitingCategory     UserState = "awaiting_category"
	StateAwaitingRangeStart   UserState = "awaiting_range_start"
	StateAwaitingRangeEnd     UserState = "awaiting_range_end"
	StateAwaitingResetConfirm UserState = "awaiting_reset_confirm"
)

// StateData holds temporary data for user's current state. At most one
// pending amount exists per user; a new amount entry overwrites it.
type StateData struct {
	State         UserState
	PendingAmount decimal.Decimal // set in StateAwaitingCategory
	RangeStart    time.Time       // set in StateAwaitingRangeEnd
	ResetPeriod   Period          // set in StateAwaitingResetConfirm
	UpdatedAt     time.Time       // last transition, used for eviction
}
