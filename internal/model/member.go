package model

// Member is a household member who can receive cleaning assignments.
// Phone is stored in international format (leading +) and doubles as the
// lookup key for inbound WhatsApp messages.
type Member struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	DateAdded string `json:"date_added"`
}
