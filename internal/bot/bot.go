// Package bot is the Telegram front end: commands, keyboards and callbacks
// on top of the service layer.
package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"astrobot/internal/db"
	"astrobot/internal/metrics"
	"astrobot/internal/model"
	"astrobot/internal/tarot"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type telegramClient interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	SelfUser() tgbotapi.User
}

type realTelegramClient struct {
	api *tgbotapi.BotAPI
}

func (c *realTelegramClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

func (c *realTelegramClient) Request(msg tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return c.api.Request(msg)
}

func (c *realTelegramClient) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return c.api.GetUpdatesChan(cfg)
}

func (c *realTelegramClient) SelfUser() tgbotapi.User {
	return c.api.Self
}

// Service is the part of the service layer the bot drives.
type Service interface {
	Languages() []model.Lang
	EnsureUser(ctx context.Context, userID int64, langHint string) (model.UserProfile, error)
	SelectSign(ctx context.Context, userID int64, raw string) (model.Sign, error)
	SetLanguage(ctx context.Context, userID int64, raw string) (model.Lang, error)
	SetReminder(ctx context.Context, userID int64, raw string) (model.ClockTime, error)
	DisableReminder(ctx context.Context, userID int64) error
	GetHoroscope(ctx context.Context, userID int64) (string, error)
	DrawTarot(ctx context.Context, userID int64) (tarot.Result, error)
	DailyQuote(ctx context.Context, userID int64) (string, error)
	Stats(ctx context.Context) (*db.Stats, error)
}

// Exporter writes the subscribers workbook.
type Exporter interface {
	Export(ctx context.Context, w io.Writer) error
}

// SignNames localizes sign buttons.
type SignNames interface {
	SignMeta(sign model.Sign, lang model.Lang) (emoji, name string)
}

type Options struct {
	Managers  []int64
	TimeSlots []string
	Location  *time.Location
	// ImagesDir holds tarot card images. Cards are sent as text when empty.
	ImagesDir string
	Debug     bool
}

// Bot handles Telegram updates for the horoscope service.
type Bot struct {
	tg       telegramClient
	svc      Service
	exporter Exporter
	signs    SignNames
	location *time.Location
	images   string
	now      func() time.Time
	logger   *zerolog.Logger

	mu        sync.RWMutex
	managers  map[int64]struct{}
	timeSlots []string
}

func New(token string, svc Service, exporter Exporter, signs SignNames, opts Options, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = opts.Debug
	return newBot(&realTelegramClient{api: api}, svc, exporter, signs, opts, logger)
}

// NewWithTelegramClient allows injecting a mocked Telegram client for tests.
func NewWithTelegramClient(tg telegramClient, svc Service, exporter Exporter, signs SignNames, opts Options, logger *zerolog.Logger) (*Bot, error) {
	return newBot(tg, svc, exporter, signs, opts, logger)
}

func newBot(tg telegramClient, svc Service, exporter Exporter, signs SignNames, opts Options, logger *zerolog.Logger) (*Bot, error) {
	if tg == nil {
		return nil, fmt.Errorf("telegram client is nil")
	}
	if svc == nil {
		return nil, fmt.Errorf("service is nil")
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	l := logger.With().Str("component", "bot").Logger()
	b := &Bot{
		tg:       tg,
		svc:      svc,
		exporter: exporter,
		signs:    signs,
		location: opts.Location,
		images:   opts.ImagesDir,
		now:      time.Now,
		logger:   &l,
	}
	b.SetManagers(opts.Managers)
	b.SetTimeSlots(opts.TimeSlots)
	return b, nil
}

// SetManagers replaces the manager list. Safe to call while the bot runs.
func (b *Bot) SetManagers(ids []int64) {
	mgrs := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		mgrs[id] = struct{}{}
	}
	b.mu.Lock()
	b.managers = mgrs
	b.mu.Unlock()
}

// SetTimeSlots replaces the reminder times offered by the time picker.
func (b *Bot) SetTimeSlots(slots []string) {
	valid := make([]string, 0, len(slots))
	for _, s := range slots {
		if at, err := model.ParseClock(s); err == nil {
			valid = append(valid, at.String())
		}
	}
	b.mu.Lock()
	b.timeSlots = valid
	b.mu.Unlock()
}

func (b *Bot) isManager(id int64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.managers[id]
	return ok
}

func (b *Bot) slots() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.timeSlots...)
}

// Start polls updates until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.tg.GetUpdatesChan(u)
	b.logger.Info().Str("username", b.tg.SelfUser().UserName).Msg("Bot authorized")

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			requestID := uuid.New().String()
			l := b.logger.With().Str("request_id", requestID).Logger()
			b.handleUpdate(l.WithContext(ctx), &update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	l := zerolog.Ctx(ctx)
	if update.CallbackQuery != nil {
		l.Debug().
			Int64("user_id", update.CallbackQuery.From.ID).
			Str("data", update.CallbackQuery.Data).
			Msg("Handling callback query")
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message != nil && update.Message.From != nil && update.Message.Chat != nil {
		l.Debug().
			Int64("user_id", update.Message.From.ID).
			Str("text", update.Message.Text).
			Msg("Handling message")
		b.handleMessage(ctx, update.Message)
	}
}

var knownCommands = map[string]bool{
	"/start": true, "/help": true, "/today": true, "/tarot": true, "/quote": true,
	"/sign": true, "/lang": true, "/time": true, "/daily_on": true, "/daily_off": true,
	"/stats": true, "/export": true,
}

// parseCommand splits "/cmd@bot args" into "/cmd" and "args".
func parseCommand(text string) (cmd, args string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	cmd, args, _ = strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	profile, err := b.svc.EnsureUser(ctx, userID, msg.From.LanguageCode)
	if err != nil {
		b.fail(ctx, chatID, profile.Lang, "ensure_user", err)
		return
	}
	lang := profile.Lang

	cmd, args := parseCommand(msg.Text)
	if cmd == "" {
		cmd = buttonAction[strings.TrimSpace(msg.Text)]
	}
	if cmd == "" {
		b.reply(chatID, tr(lang, txtUnknown))
		return
	}
	if knownCommands[cmd] {
		metrics.IncCommand(strings.TrimPrefix(cmd, "/"))
	}

	switch cmd {
	case "/start":
		b.sendWithMenu(chatID, lang, tr(lang, txtWelcome))
		b.sendSignPicker(chatID, lang)
	case "/help":
		text := tr(lang, txtHelp)
		if b.isManager(userID) {
			text += "\n\n" + tr(lang, txtHelpManager)
		}
		b.sendWithMenu(chatID, lang, text)
	case "/today":
		b.handleToday(ctx, chatID, userID, lang)
	case "/tarot":
		b.handleTarot(ctx, chatID, userID, lang)
	case "/quote":
		b.handleQuote(ctx, chatID, userID, lang)
	case "/sign":
		b.sendSignPicker(chatID, lang)
	case "/lang":
		b.sendLangPicker(chatID, lang)
	case "/time":
		b.sendReminderStatus(chatID, lang, profile)
		b.sendTimePicker(chatID, lang)
	case "/daily_on":
		if args == "" {
			b.sendTimePicker(chatID, lang)
			return
		}
		b.enableReminder(ctx, chatID, userID, lang, args)
	case "/daily_off":
		b.disableReminder(ctx, chatID, userID, lang)
	case "/stats":
		if !b.isManager(userID) {
			b.reply(chatID, tr(lang, txtUnknown))
			return
		}
		b.handleStats(ctx, chatID, lang)
	case "/export":
		if !b.isManager(userID) {
			b.reply(chatID, tr(lang, txtUnknown))
			return
		}
		b.handleExport(ctx, chatID, lang)
	default:
		b.reply(chatID, tr(lang, txtUnknown))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq == nil || cq.From == nil || cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	_ = b.answerCallback(cq.ID)

	userID := cq.From.ID
	chatID := cq.Message.Chat.ID
	data := cq.Data

	profile, err := b.svc.EnsureUser(ctx, userID, cq.From.LanguageCode)
	if err != nil {
		b.fail(ctx, chatID, profile.Lang, "ensure_user", err)
		return
	}
	lang := profile.Lang

	prefix, value, _ := strings.Cut(data, ":")

	switch prefix {
	case "sign":
		metrics.IncCommand("cb_sign")
		sign, err := b.svc.SelectSign(ctx, userID, value)
		if err != nil {
			b.fail(ctx, chatID, lang, "select_sign", err)
			return
		}
		emoji, name := b.signMeta(sign, lang)
		b.sendWithMenu(chatID, lang, trf(lang, txtSignSaved, emoji, name, tr(lang, btnToday)))
	case "lang":
		metrics.IncCommand("cb_lang")
		newLang, err := b.svc.SetLanguage(ctx, userID, value)
		if err != nil {
			b.fail(ctx, chatID, lang, "set_lang", err)
			return
		}
		b.sendWithMenu(chatID, newLang, tr(newLang, txtLangSaved))
	case "time":
		metrics.IncCommand("cb_time")
		if value == "off" {
			b.disableReminder(ctx, chatID, userID, lang)
			return
		}
		b.enableReminder(ctx, chatID, userID, lang, value)
	default:
		zerolog.Ctx(ctx).Warn().Str("data", data).Msg("Unknown callback")
	}
}

func (b *Bot) handleToday(ctx context.Context, chatID, userID int64, lang model.Lang) {
	text, err := b.svc.GetHoroscope(ctx, userID)
	if err != nil {
		b.fail(ctx, chatID, lang, "horoscope", err)
		return
	}
	b.reply(chatID, text)
}

func (b *Bot) handleTarot(ctx context.Context, chatID, userID int64, lang model.Lang) {
	res, err := b.svc.DrawTarot(ctx, userID)
	if err != nil {
		b.fail(ctx, chatID, lang, "tarot", err)
		return
	}
	text := res.Text
	if res.AlreadyDrawn {
		text += "\n\n" + tr(lang, txtTarotRepeat)
	}

	if path := b.cardImage(res); path != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
		photo.Caption = text
		if _, err := b.tg.Send(photo); err == nil {
			return
		}
		zerolog.Ctx(ctx).Warn().Str("image", path).Msg("Failed to send card image, falling back to text")
	}
	b.reply(chatID, text)
}

func (b *Bot) cardImage(res tarot.Result) string {
	if b.images == "" || res.Image == "" {
		return ""
	}
	path := filepath.Join(b.images, res.Image)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func (b *Bot) handleQuote(ctx context.Context, chatID, userID int64, lang model.Lang) {
	text, err := b.svc.DailyQuote(ctx, userID)
	if err != nil {
		b.fail(ctx, chatID, lang, "quote", err)
		return
	}
	b.reply(chatID, text)
}

func (b *Bot) enableReminder(ctx context.Context, chatID, userID int64, lang model.Lang, raw string) {
	at, err := b.svc.SetReminder(ctx, userID, raw)
	if err != nil {
		b.fail(ctx, chatID, lang, "set_reminder", err)
		return
	}
	b.reply(chatID, trf(lang, txtDailyOn, at.String(), b.location.String()))
}

func (b *Bot) disableReminder(ctx context.Context, chatID, userID int64, lang model.Lang) {
	if err := b.svc.DisableReminder(ctx, userID); err != nil {
		b.fail(ctx, chatID, lang, "disable_reminder", err)
		return
	}
	b.reply(chatID, tr(lang, txtDailyOff))
}

func (b *Bot) handleStats(ctx context.Context, chatID int64, lang model.Lang) {
	st, err := b.svc.Stats(ctx)
	if err != nil {
		b.fail(ctx, chatID, lang, "stats", err)
		return
	}
	var sb strings.Builder
	sb.WriteString(trf(lang, txtStats, st.Users, st.WithSign, st.Subscribed, st.TarotDraws, st.PatternDays))
	if len(st.BySign) > 0 {
		sb.WriteString("\n")
		for _, sign := range model.Signs {
			n, ok := st.BySign[sign]
			if !ok {
				continue
			}
			emoji, name := b.signMeta(sign, lang)
			fmt.Fprintf(&sb, "\n%s %s: %d", emoji, name, n)
		}
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) handleExport(ctx context.Context, chatID int64, lang model.Lang) {
	if b.exporter == nil {
		b.reply(chatID, tr(lang, txtError))
		return
	}
	var buf bytes.Buffer
	if err := b.exporter.Export(ctx, &buf); err != nil {
		b.fail(ctx, chatID, lang, "export", err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("subscribers_%s.xlsx", b.now().In(b.location).Format("20060102")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = tr(lang, txtExportCaption)
	if _, err := b.tg.Send(doc); err != nil {
		b.fail(ctx, chatID, lang, "export_send", err)
	}
}

func (b *Bot) signMeta(sign model.Sign, lang model.Lang) (string, string) {
	if b.signs == nil {
		return "", string(sign)
	}
	return b.signs.SignMeta(sign, lang)
}

func (b *Bot) sendSignPicker(chatID int64, lang model.Lang) {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, sign := range model.Signs {
		emoji, name := b.signMeta(sign, lang)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strings.TrimSpace(emoji+" "+name), "sign:"+string(sign)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	b.sendInline(chatID, tr(lang, txtChooseSign), rows)
}

func (b *Bot) sendLangPicker(chatID int64, lang model.Lang) {
	var row []tgbotapi.InlineKeyboardButton
	for _, l := range b.svc.Languages() {
		label, ok := langNames[l]
		if !ok {
			label = string(l)
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, "lang:"+string(l)))
	}
	b.sendInline(chatID, tr(lang, txtChooseLang), [][]tgbotapi.InlineKeyboardButton{row})
}

// sendReminderStatus shows the current reminder time and whether it is on.
func (b *Bot) sendReminderStatus(chatID int64, lang model.Lang, profile model.UserProfile) {
	key := txtTimeOff
	if profile.NotifyEnabled {
		key = txtTimeOn
	}
	b.reply(chatID, trf(lang, key, profile.NotifyTime.String(), b.location.String()))
}

func (b *Bot) sendTimePicker(chatID int64, lang model.Lang) {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, slot := range b.slots() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(slot, "time:"+slot))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(tr(lang, btnReminderOf), "time:off"),
	))
	b.sendInline(chatID, tr(lang, txtChooseTime), rows)
}

func (b *Bot) sendInline(chatID int64, text string, rows [][]tgbotapi.InlineKeyboardButton) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, _ = b.tg.Send(msg)
}

func (b *Bot) sendWithMenu(chatID int64, lang model.Lang, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenu(lang)
	_, _ = b.tg.Send(msg)
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = b.tg.Send(msg)
}

// fail answers input errors with a correction prompt and everything else
// with a generic apology.
func (b *Bot) fail(ctx context.Context, chatID int64, lang model.Lang, op string, err error) {
	switch {
	case errors.Is(err, model.ErrSignNotSelected):
		b.reply(chatID, tr(lang, txtNeedSign))
		b.sendSignPicker(chatID, lang)
	case errors.Is(err, model.ErrInvalidSign):
		b.reply(chatID, tr(lang, txtBadSign))
	case errors.Is(err, model.ErrInvalidLang):
		b.reply(chatID, tr(lang, txtBadLang))
	case errors.Is(err, model.ErrInvalidTime):
		b.reply(chatID, tr(lang, txtBadTime))
	default:
		metrics.IncHandlerError(op)
		zerolog.Ctx(ctx).Error().Err(err).Str("op", op).Int64("chat_id", chatID).Msg("Handler failed")
		b.reply(chatID, tr(lang, txtError))
	}
}

func (b *Bot) answerCallback(id string) error {
	_, err := b.tg.Request(tgbotapi.NewCallback(id, ""))
	return err
}
