package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shortlink/internal/mocks"
	"shortlink/internal/types"

	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://short.test"

func newTestShortener(t *testing.T) (*Shortener, *mocks.MockLinkStore, *mocks.MockClickLedger, *mocks.MockLinkCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := mocks.NewMockLinkStore(ctrl)
	ledger := mocks.NewMockClickLedger(ctrl)
	cache := mocks.NewMockLinkCache(ctrl)
	return NewShortener(store, ledger, cache, testBaseURL), store, ledger, cache
}

func testLink(code string, validity time.Duration) *types.ShortLink {
	now := time.Now().UTC()
	return &types.ShortLink{
		ID:          1,
		ShortCode:   code,
		OriginalURL: "https://example.com/x",
		CreatedAt:   now,
		ExpiresAt:   now.Add(validity),
	}
}

func TestCreateShortLink(t *testing.T) {
	tests := []struct {
		name            string
		url             string
		validityMinutes int
		customCode      string
		mockSetup       func(store *mocks.MockLinkStore, cache *mocks.MockLinkCache)
		wantErr         error
	}{
		{
			name:            "generated code",
			url:             "https://example.com/x",
			validityMinutes: 5,
			mockSetup: func(store *mocks.MockLinkStore, cache *mocks.MockLinkCache) {
				store.EXPECT().
					CreateLink(gomock.Any(), "https://example.com/x", 5, "").
					Return(testLink("1", 5*time.Minute), nil)
				cache.EXPECT().
					Set(gomock.Any(), "1", gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:            "custom code",
			url:             "https://example.com/x",
			validityMinutes: 30,
			customCode:      "my-code_1",
			mockSetup: func(store *mocks.MockLinkStore, cache *mocks.MockLinkCache) {
				store.EXPECT().
					CreateLink(gomock.Any(), "https://example.com/x", 30, "my-code_1").
					Return(testLink("my-code_1", 30*time.Minute), nil)
				cache.EXPECT().
					Set(gomock.Any(), "my-code_1", gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:            "cache failure does not fail the create",
			url:             "https://example.com/x",
			validityMinutes: 30,
			mockSetup: func(store *mocks.MockLinkStore, cache *mocks.MockLinkCache) {
				store.EXPECT().
					CreateLink(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(testLink("1", 30*time.Minute), nil)
				cache.EXPECT().
					Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("redis down"))
			},
		},
		{
			name:            "relative url",
			url:             "/just/a/path",
			validityMinutes: 30,
			wantErr:         types.ErrInvalidURL,
		},
		{
			name:            "unsupported scheme",
			url:             "ftp://example.com/x",
			validityMinutes: 30,
			wantErr:         types.ErrInvalidURL,
		},
		{
			name:            "zero validity",
			url:             "https://example.com/x",
			validityMinutes: 0,
			wantErr:         types.ErrInvalidValidity,
		},
		{
			name:            "validity above the cap",
			url:             "https://example.com/x",
			validityMinutes: 50000,
			wantErr:         types.ErrInvalidValidity,
		},
		{
			name:            "shortcode with forbidden character",
			url:             "https://example.com/x",
			validityMinutes: 30,
			customCode:      "bad!",
			wantErr:         types.ErrInvalidShortcode,
		},
		{
			name:            "shortcode too short",
			url:             "https://example.com/x",
			validityMinutes: 30,
			customCode:      "abc",
			wantErr:         types.ErrInvalidShortcode,
		},
		{
			name:            "shortcode conflict",
			url:             "https://example.com/x",
			validityMinutes: 30,
			customCode:      "taken123",
			mockSetup: func(store *mocks.MockLinkStore, cache *mocks.MockLinkCache) {
				store.EXPECT().
					CreateLink(gomock.Any(), gomock.Any(), gomock.Any(), "taken123").
					Return(nil, types.ErrShortcodeConflict)
			},
			wantErr: types.ErrShortcodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shortener, store, _, cache := newTestShortener(t)
			if tt.mockSetup != nil {
				tt.mockSetup(store, cache)
			}

			link, err := shortener.CreateShortLink(context.Background(), tt.url, tt.validityMinutes, tt.customCode)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "https://example.com/x", link.OriginalURL)
		})
	}
}

func TestResolveActiveLink(t *testing.T) {
	shortener, store, ledger, cache := newTestShortener(t)

	link := testLink("abc1", time.Minute)
	cache.EXPECT().Get(gomock.Any(), "abc1").Return(nil, redis.Nil)
	store.EXPECT().GetLink(gomock.Any(), "abc1").Return(link, nil)
	cache.EXPECT().Set(gomock.Any(), "abc1", link, gomock.Any()).Return(nil)
	ledger.EXPECT().
		RecordClick(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, click types.ClickData) error {
			assert.Equal(t, "abc1", click.ShortCode)
			assert.Equal(t, "https://ref.example", click.Referrer)
			return nil
		})

	destination, err := shortener.Resolve(context.Background(), "abc1", types.ClickData{
		ClickedAt:  time.Now().UTC(),
		Referrer:   "https://ref.example",
		RemoteAddr: "203.0.113.77",
	})

	require.NoError(t, err)
	assert.Equal(t, link.OriginalURL, destination)
}

func TestResolveCacheHitSkipsStore(t *testing.T) {
	shortener, _, ledger, cache := newTestShortener(t)

	link := testLink("abc1", time.Minute)
	cache.EXPECT().Get(gomock.Any(), "abc1").Return(link, nil)
	ledger.EXPECT().RecordClick(gomock.Any(), gomock.Any()).Return(nil)

	destination, err := shortener.Resolve(context.Background(), "abc1", types.ClickData{ClickedAt: time.Now().UTC()})

	require.NoError(t, err)
	assert.Equal(t, link.OriginalURL, destination)
}

func TestResolveExpiredStillRecordsClick(t *testing.T) {
	shortener, _, ledger, cache := newTestShortener(t)

	link := testLink("abc1", 5*time.Minute)
	cache.EXPECT().Get(gomock.Any(), "abc1").Return(link, nil)
	ledger.EXPECT().RecordClick(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := shortener.Resolve(context.Background(), "abc1", types.ClickData{
		ClickedAt: link.ExpiresAt.Add(time.Minute),
	})

	assert.ErrorIs(t, err, types.ErrLinkExpired)
}

func TestResolveExactExpiryIsExpired(t *testing.T) {
	shortener, _, ledger, cache := newTestShortener(t)

	link := testLink("abc1", 5*time.Minute)
	cache.EXPECT().Get(gomock.Any(), "abc1").Return(link, nil)
	ledger.EXPECT().RecordClick(gomock.Any(), gomock.Any()).Return(nil)

	_, err := shortener.Resolve(context.Background(), "abc1", types.ClickData{ClickedAt: link.ExpiresAt})

	assert.ErrorIs(t, err, types.ErrLinkExpired)
}

func TestResolveUnknownCodeRecordsNothing(t *testing.T) {
	shortener, store, _, cache := newTestShortener(t)

	cache.EXPECT().Get(gomock.Any(), "nope").Return(nil, redis.Nil)
	store.EXPECT().GetLink(gomock.Any(), "nope").Return(nil, types.ErrNotFound)

	_, err := shortener.Resolve(context.Background(), "nope", types.ClickData{ClickedAt: time.Now().UTC()})

	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestResolveLedgerFailurePropagates(t *testing.T) {
	shortener, _, ledger, cache := newTestShortener(t)

	link := testLink("abc1", time.Minute)
	cache.EXPECT().Get(gomock.Any(), "abc1").Return(link, nil)
	ledger.EXPECT().RecordClick(gomock.Any(), gomock.Any()).Return(errors.New("clickhouse down"))

	_, err := shortener.Resolve(context.Background(), "abc1", types.ClickData{ClickedAt: time.Now().UTC()})

	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrLinkExpired)
}

func TestStats(t *testing.T) {
	shortener, store, ledger, _ := newTestShortener(t)

	link := testLink("abc1", 5*time.Minute)
	clicks := []types.ClickEvent{
		{ShortCode: "abc1", ClickedAt: link.CreatedAt.Add(time.Minute), ClientNet: "203.0.113.0/24"},
		{ShortCode: "abc1", ClickedAt: link.CreatedAt.Add(6 * time.Minute), ClientNet: "203.0.113.0/24"},
	}
	store.EXPECT().GetLink(gomock.Any(), "abc1").Return(link, nil)
	ledger.EXPECT().ClicksFor(gomock.Any(), "abc1").Return(clicks, nil)

	stats, err := shortener.Stats(context.Background(), "abc1")

	require.NoError(t, err)
	assert.Equal(t, *link, stats.Link)
	assert.Equal(t, 2, stats.TotalClicks)
	assert.Len(t, stats.Clicks, 2)
}

func TestStatsUnknownCode(t *testing.T) {
	shortener, store, _, _ := newTestShortener(t)

	store.EXPECT().GetLink(gomock.Any(), "nope").Return(nil, types.ErrNotFound)

	_, err := shortener.Stats(context.Background(), "nope")

	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestQRCode(t *testing.T) {
	shortener, store, _, _ := newTestShortener(t)

	store.EXPECT().GetLink(gomock.Any(), "abc1").Return(testLink("abc1", time.Minute), nil)

	png, err := shortener.QRCode(context.Background(), "abc1")

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestShortURL(t *testing.T) {
	shortener, _, _, _ := newTestShortener(t)
	assert.Equal(t, testBaseURL+"/abc1", shortener.ShortURL("abc1"))
}
