package models

// EventEntry is one line of the append-only events log.
type EventEntry struct {
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip"`
	Action    string `json:"action"`
	Details   any    `json:"details"`
}

// UserActivityEntry is one line of the append-only user-activity log.
type UserActivityEntry struct {
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip"`
	Action    string `json:"action"`
	Filename  string `json:"filename,omitempty"`
}

// Event action constants
const (
	ActionConnected         = "connected"
	ActionViewingUploadPage = "viewing_upload_page"
	ActionUploaded          = "uploaded"
	ActionDisconnected      = "disconnected"
	ActionAutoDisconnected  = "auto_disconnected"
)
