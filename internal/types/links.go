package types

import "time"

type ShortLink struct {
	ID          int64     `json:"id" db:"id"`
	ShortCode   string    `json:"shortcode" db:"shortcode"`
	OriginalURL string    `json:"url" db:"original_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	ExpiresAt   time.Time `json:"expires_at" db:"expires_at"`
}

type LinkStats struct {
	Link        ShortLink
	TotalClicks int
	Clicks      []ClickEvent
}
