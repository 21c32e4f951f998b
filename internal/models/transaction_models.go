package models

import "time"

// Transaction kinds. A purchase is either for a game or for a product;
// the kind is tagged explicitly rather than inferred from which
// reference happens to be set.
const (
	TxKindGamePurchase    = "game_purchase"
	TxKindProductPurchase = "product_purchase"
)

// Transaction statuses.
const (
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
)

// Transaction is an append-only record of a purchase. GameID is set for
// game purchases, ProductID for product purchases, never both.
type Transaction struct {
	ID        int64     `json:"id" db:"id"`
	MemberID  int64     `json:"memberId" db:"member_id"`
	Kind      string    `json:"kind" db:"kind"`
	GameID    *int64    `json:"gameId,omitempty" db:"game_id"`
	ProductID *int64    `json:"productId,omitempty" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Amount    float64   `json:"amount" db:"amount"`
	Status    string    `json:"status" db:"status"`
	Date      time.Time `json:"date" db:"date"`
}
