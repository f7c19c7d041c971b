package entity

// Balance is a single signed amount recorded against a counterparty.
// Positive means the counterparty owes the key holder.
type Balance struct {
	ID     string `db:"balance_id"`
	Owner  string `db:"api_key"`
	UserID string `db:"user_id"`
	Amount int64  `db:"balance"`
}
