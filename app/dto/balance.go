package dto

import "github.com/vibast-solutions/ms-go-records/app/entity"

// SumBalances adds up the listed amounts. Positive rows are owed to the
// caller and negative rows are owed by the caller.
func SumBalances(balances []*entity.Balance) int64 {
	var total int64
	for _, b := range balances {
		total += b.Amount
	}
	return total
}
