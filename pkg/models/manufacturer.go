package models

type Manufacturer struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Country    string `json:"country"`
	PictureURL string `json:"picture_url"`
}
