package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"time"

	"shortlink/internal/types"

	"github.com/redis/go-redis/v9"
	"github.com/skip2/go-qrcode"
)

const (
	minValidityMinutes = 1
	maxValidityMinutes = 43200 // 30 days

	cacheTTL   = 10 * time.Minute
	qrCodeSize = 256
)

// Custom codes only: generated codes come from the id sequence and may be
// shorter than four characters.
var shortCodePattern = regexp.MustCompile(`^[0-9A-Za-z_-]{4,32}$`)

//go:generate mockgen -source=shortener.go -destination=../mocks/mock_storage.go -package=mocks
type LinkStore interface {
	CreateLink(ctx context.Context, originalURL string, validityMinutes int, customCode string) (*types.ShortLink, error)
	GetLink(ctx context.Context, shortCode string) (*types.ShortLink, error)
}

type ClickLedger interface {
	RecordClick(ctx context.Context, click types.ClickData) error
	ClicksFor(ctx context.Context, shortCode string) ([]types.ClickEvent, error)
}

type LinkCache interface {
	Get(ctx context.Context, shortCode string) (*types.ShortLink, error)
	Set(ctx context.Context, shortCode string, link *types.ShortLink, expiration time.Duration) error
}

type Shortener struct {
	store   LinkStore
	ledger  ClickLedger
	cache   LinkCache
	baseURL string
}

func NewShortener(store LinkStore, ledger ClickLedger, cache LinkCache, baseURL string) *Shortener {
	return &Shortener{
		store:   store,
		ledger:  ledger,
		cache:   cache,
		baseURL: baseURL,
	}
}

// CreateShortLink is the sole write path for new links.
func (s *Shortener) CreateShortLink(ctx context.Context, originalURL string, validityMinutes int, customCode string) (*types.ShortLink, error) {
	if err := validateOriginalURL(originalURL); err != nil {
		return nil, err
	}
	if validityMinutes < minValidityMinutes || validityMinutes > maxValidityMinutes {
		return nil, types.ErrInvalidValidity
	}
	if customCode != "" && !shortCodePattern.MatchString(customCode) {
		return nil, types.ErrInvalidShortcode
	}

	link, err := s.store.CreateLink(ctx, originalURL, validityMinutes, customCode)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, link.ShortCode, link, cacheTTL); err != nil {
		slog.Warn("Failed to warm up cache", "error", err)
	}

	return link, nil
}

// Resolve returns the destination for a shortcode. Every attempt against an
// existing link is recorded first, expired or not; only then is the expiry
// verdict made against the click timestamp.
func (s *Shortener) Resolve(ctx context.Context, shortCode string, click types.ClickData) (string, error) {
	link, err := s.lookup(ctx, shortCode)
	if err != nil {
		return "", err
	}

	click.ShortCode = shortCode
	if err := s.ledger.RecordClick(ctx, click); err != nil {
		return "", err
	}

	if !click.ClickedAt.Before(link.ExpiresAt) {
		return "", types.ErrLinkExpired
	}

	return link.OriginalURL, nil
}

// Stats reads the link and its full click list. TotalClicks is counted from
// the ledger on every call rather than kept as a counter on the link row.
func (s *Shortener) Stats(ctx context.Context, shortCode string) (*types.LinkStats, error) {
	link, err := s.store.GetLink(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	clicks, err := s.ledger.ClicksFor(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	return &types.LinkStats{
		Link:        *link,
		TotalClicks: len(clicks),
		Clicks:      clicks,
	}, nil
}

// QRCode renders the short link as a PNG.
func (s *Shortener) QRCode(ctx context.Context, shortCode string) ([]byte, error) {
	if _, err := s.store.GetLink(ctx, shortCode); err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(s.ShortURL(shortCode), qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	return png, nil
}

// ShortURL builds the public form of a shortcode.
func (s *Shortener) ShortURL(shortCode string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, shortCode)
}

func (s *Shortener) lookup(ctx context.Context, shortCode string) (*types.ShortLink, error) {
	link, err := s.cache.Get(ctx, shortCode)
	if err == nil {
		return link, nil
	}

	if !errors.Is(err, redis.Nil) {
		slog.Warn("Redis error", "error", err)
	}

	link, err = s.store.GetLink(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, shortCode, link, cacheTTL); err != nil {
		slog.Warn("Failed to warm up cache", "error", err)
	}

	return link, nil
}

func validateOriginalURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return types.ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return types.ErrInvalidURL
	}
	return nil
}
