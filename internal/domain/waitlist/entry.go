package waitlist

// ===============================
// Waitlist Status
// ===============================

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusNotified  Status = "notified"
	StatusExpired   Status = "expired"
	StatusFulfilled Status = "fulfilled"
)
