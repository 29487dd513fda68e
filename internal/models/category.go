package models

import "github.com/gocql/gocql"

type Category struct {
	ID          gocql.UUID `json:"id" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	Slug        string     `json:"slug" db:"slug"`
	Description string     `json:"description" db:"description"`
	ImageURL    string     `json:"image_url" db:"image_url"`
}
