package entity

// APIKey is an issued bearer token. Only the digest of the token is stored.
type APIKey struct {
	KeyHash string `db:"key_hash"`
}
