package models

import "time"

// Recharge is an append-only record of a balance top-up.
type Recharge struct {
	ID            int64     `json:"id" db:"id"`
	MemberID      int64     `json:"memberId" db:"member_id"`
	Amount        float64   `json:"amount" db:"amount"`
	PaymentMethod string    `json:"paymentMethod" db:"payment_method"`
	Date          time.Time `json:"date" db:"date"`
}
