package entity

import "github.com/vibast-solutions/ms-go-records/app/meta"

type User struct {
	ID    string     `db:"user_id"`
	Name  string     `db:"name"`
	Meta  meta.Pairs `db:"meta"`
	Owner string     `db:"owner"`
}
