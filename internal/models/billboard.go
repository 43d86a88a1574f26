package models

import (
	"time"
)

type Billboard struct {
	ID          int64
	Topic       string
	Description string
	UserID      *int64 // nil if billboard has no owner
	CreatedAt   time.Time
}

type NewBillboard struct {
	Topic       string
	Description string
	UserID      int64
}
