package models

import "time"

// Permission bits carried in the JWT permissions claim
const (
	PermEditMap int64 = 1 << 0
)

// Client represents an authenticated path service user
type Client struct {
	// From JWT claims
	ID          string `json:"id"`          // Converted from int64 user_id
	Username    string `json:"username"`    // JWT claim
	Email       string `json:"email"`       // JWT claim
	Permissions int64  `json:"permissions"` // JWT claim: bitwise permission flags
	Activated   int64  `json:"activated"`   // JWT claim: activation timestamp or ban status

	// Connection state
	Connected   bool      `json:"connected"`
	ConnectedAt time.Time `json:"connected_at"`
	SessionID   string    `json:"session_id"`
}

// IsActive checks if the account is activated and not banned
func (c *Client) IsActive() bool {
	// activated > 0 means activated
	// activated == 0 means not activated
	// activated == -1 means banned
	return c.Activated > 0
}

// IsBanned checks if the account is banned
func (c *Client) IsBanned() bool {
	return c.Activated == -1
}

// CanEditMap reports whether the client may change tiles
func (c *Client) CanEditMap() bool {
	return c.Permissions&PermEditMap != 0
}
