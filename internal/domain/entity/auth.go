package entity

// Caller is the verified identity behind an inbound callable request.
type Caller struct {
	UID    string         `json:"uid"`
	Email  string         `json:"email,omitempty"`
	Claims map[string]any `json:"claims,omitempty"`
}
