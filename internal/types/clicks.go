package types

import "time"

// ClickData is the raw per-request context handed to the ledger.
// RemoteAddr is the unmasked client address and must never be stored as is.
type ClickData struct {
	ShortCode  string    `json:"short_code"`
	ClickedAt  time.Time `json:"clicked_at"`
	Referrer   string    `json:"referrer"`
	RemoteAddr string    `json:"-"`
	Locale     string    `json:"locale"`
}

// ClickEvent is the durable form of a click: the client address is kept
// only as a /24 (IPv4) or /48 (IPv6) network prefix.
type ClickEvent struct {
	ShortCode string    `json:"short_code" db:"shortcode"`
	ClickedAt time.Time `json:"clicked_at" db:"clicked_at"`
	Referrer  string    `json:"referrer" db:"referrer"`
	ClientNet string    `json:"client_net" db:"client_net"`
	Locale    string    `json:"locale" db:"locale"`
}
