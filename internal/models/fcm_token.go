package models

// FcmToken ties a device push token to a login so the portal can be notified
// when a service is logged for one of its properties.
type FcmToken struct {
	ID        int    `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	Token     string `json:"token" db:"token"`
	Platform  string `json:"platform" db:"platform"` // "web", "android" or "ios"
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}

type RegisterFcmTokenRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}
