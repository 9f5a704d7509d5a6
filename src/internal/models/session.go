package models

import "time"

// ClientSession tracks one connected hotspot client, keyed by IP.
// Sessions live in memory only and are reset on restart.
type ClientSession struct {
	IP           string    `json:"ip"`
	ConnectedAt  time.Time `json:"connected_at"`
	LastActivity time.Time `json:"last_activity"`
}
