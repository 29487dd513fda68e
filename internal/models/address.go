package models

import "github.com/gocql/gocql"

type Address struct {
	ID        gocql.UUID `json:"id" db:"address_id"`
	UserID    string     `json:"user_id" db:"user_id"`
	FullName  string     `json:"full_name" db:"full_name"`
	Line1     string     `json:"line1" db:"line1"`
	Line2     string     `json:"line2,omitempty" db:"line2"`
	City      string     `json:"city" db:"city"`
	State     string     `json:"state" db:"state"`
	PinCode   string     `json:"pin_code" db:"pin_code"`
	Phone     string     `json:"phone" db:"phone"`
	IsDefault bool       `json:"is_default" db:"is_default"`
}
