package db

import "time"

// Domain models (db tags must match the Table column names). Every mutable
// field is a pointer because create/update bind missing fields as NULL.

type Establishment struct {
	ID    int64   `db:"establishmentId" json:"establishmentId"`
	Name  *string `db:"name" json:"name"`
	City  *string `db:"city" json:"city"`
	State *string `db:"state" json:"state"`
	Email *string `db:"email" json:"email"`
	Phone *string `db:"phone" json:"phone"`
	Zip   *string `db:"zip" json:"zip"`
}

type Special struct {
	ID            int64      `db:"specialId" json:"specialId"`
	StartTime     *time.Time `db:"startTime" json:"startTime"`
	EndTime       *time.Time `db:"endTime" json:"endTime"`
	Name          *string    `db:"name" json:"name"`
	CurrentPrice  *float64   `db:"currentPrice" json:"currentPrice"`
	DiscountPrice *float64   `db:"discountPrice" json:"discountPrice"`
	IsActive      *bool      `db:"isActive" json:"isActive"`
	NumAvailable  *int64     `db:"numAvailable" json:"numAvailable"`
}

func (e Establishment) PrimaryKey() int64 { return e.ID }

func (s Special) PrimaryKey() int64 { return s.ID }
