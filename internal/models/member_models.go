package models

import "time"

// Member roles. Admins manage the catalog and member directory,
// regular users purchase and recharge.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Member represents a registered member of the gaming club.
type Member struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	PhoneNumber  string    `json:"phoneNumber" db:"phone_number"`
	Email        *string   `json:"email,omitempty" db:"email"`
	Role         string    `json:"role" db:"role"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	Balance      float64   `json:"balance" db:"balance"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	JoiningDate  time.Time `json:"joiningDate" db:"joining_date"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// MemberProfile is the composite returned by the member search endpoint:
// the member plus their recharge history and played-game history.
type MemberProfile struct {
	Member          *Member        `json:"member"`
	RechargeHistory []RechargeItem `json:"recharge_history"`
	Games           []GameSummary  `json:"games"`
	PlayedHistory   []PlayedItem   `json:"played_history"`
}

// RechargeItem is a single entry of a member's recharge history.
type RechargeItem struct {
	ID       int64     `json:"id"`
	Amount   float64   `json:"amount"`
	DateTime time.Time `json:"dateTime"`
}

// GameSummary is the trimmed game representation used in member profiles.
type GameSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// PlayedItem is a single entry of a member's played-game history,
// joining a purchase transaction with the game it was for.
type PlayedItem struct {
	ID       int64     `json:"id"`
	DateTime time.Time `json:"date_time"`
	GameName string    `json:"game_name"`
	Amount   float64   `json:"amount"`
}
