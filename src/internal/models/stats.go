package models

type Stats struct {
	ImagesUploaded     int    `json:"images_uploaded"`
	CurrentConnections int    `json:"current_connections"`
	Status             string `json:"status"`
}
