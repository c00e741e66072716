package models

import "time"

type Driver struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	LicenseNumber string    `json:"license_number"`
	PictureURL    string    `json:"picture_url"`
	DateJoined    time.Time `json:"date_joined"`
	Cars          []*Car    `json:"cars,omitempty"`
}
