package entity

import (
	"time"
)

// BaseSimple holds the columns the store assigns on insert.
type BaseSimple struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
