package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"shortlink/internal/service"
	"shortlink/internal/types"

	tele "gopkg.in/telebot.v4"
)

type TelegramBot struct {
	tgBot     *tele.Bot
	shortener *service.Shortener
}

func NewTelegramBot(tgToken string, shortener *service.Shortener) (*TelegramBot, error) {
	pref := tele.Settings{
		Token:  tgToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		slog.Error("failed to initialize telegram bot", "error", err)
		return nil, err
	}

	b := &TelegramBot{
		tgBot:     bot,
		shortener: shortener,
	}

	return b, nil
}

func (b *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Telegram bot started", "bot_username", b.tgBot.Me.Username)

	b.tgBot.Handle("/start", b.handleStart)
	b.tgBot.Handle("/stats", b.handleStats)
	b.tgBot.Handle(tele.OnText, b.handleMessage)

	go func() {
		<-ctx.Done()
		slog.Info("Telegram bot shutting down")
		b.tgBot.Stop()
	}()

	b.tgBot.Start()
	return nil
}

func (b *TelegramBot) handleStart(c tele.Context) error {
	slog.Debug("command /start received", "user_id", c.Sender().ID)
	return c.Send("Привіт! Надішліть мені посилання — я його скорочу. Команда /stats <код> покаже статистику переходів.")
}

func (b *TelegramBot) handleMessage(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	link, err := b.shortener.CreateShortLink(ctx, c.Text(), 30, "")
	if err != nil {
		if errors.Is(err, types.ErrInvalidURL) {
			return c.Send("Посилання повинно починатися з http:// або https:// і містити домен.")
		}
		slog.Error("failed to create short link", "error", err)
		return c.Send("Помилка при створенні посилання. Спробуйте ще раз")
	}

	return c.Send("Ось ваше нове скорочене посилання:\n" + b.shortener.ShortURL(link.ShortCode))
}

func (b *TelegramBot) handleStats(c tele.Context) error {
	code := strings.TrimSpace(c.Message().Payload)
	if code == "" {
		return c.Send("Вкажіть код посилання: /stats <код>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := b.shortener.Stats(ctx, code)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return c.Send("Такого коду не знайдено.")
		}
		slog.Error("failed to get link stats", "error", err, "code", code)
		return c.Send("Помилка при отриманні статистики. Спробуйте ще раз")
	}

	return c.Send(fmt.Sprintf(
		"Посилання: %s\nПереходів: %d\nДіє до: %s",
		b.shortener.ShortURL(stats.Link.ShortCode),
		stats.TotalClicks,
		stats.Link.ExpiresAt.Format(time.RFC3339),
	))
}
