// Package consumer routes Telegram updates: mode buttons, report requests
// and transaction batches.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/minhvu/sothuchi/internal/model"
	"github.com/minhvu/sothuchi/internal/parser"
	"github.com/minhvu/sothuchi/internal/producer"
	"github.com/minhvu/sothuchi/internal/repository"
	"github.com/minhvu/sothuchi/internal/service"
)

const (
	startCommand = "start"
	helpCommand  = "help"
	yearCommand  = "year"
)

const (
	buttonIncome  = "➕ Ghi thu"
	buttonExpense = "➖ Ghi chi"
	buttonDay     = "📊 Tổng kết ngày"
	buttonMonth   = "📅 Tổng kết tháng"
	buttonYear    = "📈 Tổng kết năm"
	buttonHelp    = "ℹ️ Help"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 32
)

const helpText = "📘 CÁCH NHẬP\n\n" +
	"20K CF  → Chi (theo chế độ đang chọn)\n" +
	"+1M LUONG → Thu\n" +
	"-50K AN → Chi\n" +
	"20260101 500K SPA → ghi cho ngày 2026-01-01\n" +
	"Nhiều dòng = nhiều giao dịch\n\n" +
	"👉 Không có dấu +/- thì phải chọn ➕ Ghi thu hoặc ➖ Ghi chi trước"

var mainKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonIncome),
		tgbotapi.NewKeyboardButton(buttonExpense),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonDay),
		tgbotapi.NewKeyboardButton(buttonMonth),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonYear),
		tgbotapi.NewKeyboardButton(buttonHelp),
	),
)

// Bot consumes Telegram updates and drives the recorder and reporter.
type Bot struct {
	bot         *tgbotapi.BotAPI
	updatesChan tgbotapi.UpdatesChannel
	validator   *validator.Validate
	modes       *repository.Modes
	recorder    *service.Recorder
	reporter    *service.Reporter
}

func NewBot(bot *tgbotapi.BotAPI, updatesChan tgbotapi.UpdatesChannel, validator *validator.Validate,
	modes *repository.Modes, recorder *service.Recorder, reporter *service.Reporter) *Bot {
	return &Bot{
		bot:         bot,
		updatesChan: updatesChan,
		validator:   validator,
		modes:       modes,
		recorder:    recorder,
		reporter:    reporter,
	}
}

func (b *Bot) Consume(ctx context.Context) {
	logrus.Infof("telegram bot %s started consuming", b.bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("bot consumer stopped: %v", ctx.Err())
			return
		case update := <-b.updatesChan:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	user := username(message)

	if message.IsCommand() {
		switch message.Command() {
		case startCommand:
			b.modes.Reset(user)
			b.reply(message, "👋 Chào bạn!")
			return
		case helpCommand:
			b.reply(message, helpText)
			return
		case yearCommand:
			b.handleYear(ctx, message, user, strings.TrimSpace(message.CommandArguments()))
			return
		default:
			logrus.Infof("unknown command: %s", message.Text)
			b.reply(message, "Lệnh không hợp lệ. Xem /help")
			return
		}
	}

	switch message.Text {
	case buttonIncome:
		b.modes.Set(user, model.ModeIncome)
		b.reply(message, "➕ Mặc định ghi THU")
		return
	case buttonExpense:
		b.modes.Set(user, model.ModeExpense)
		b.reply(message, "➖ Mặc định ghi CHI")
		return
	case buttonDay:
		b.handleDay(ctx, message, user)
		return
	case buttonMonth:
		b.handleMonth(ctx, message, user)
		return
	case buttonYear:
		b.handleYear(ctx, message, user, "")
		return
	case buttonHelp:
		b.reply(message, helpText)
		return
	}

	if parser.IsTransaction(message.Text) {
		b.handleTransactions(ctx, message, user)
		return
	}

	logrus.Infof("received message without a transaction: %s", message.Text)
	b.reply(message, "Mình không hiểu. Xem /help")
}

func (b *Bot) handleTransactions(ctx context.Context, message *tgbotapi.Message, user string) {
	newCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := b.recorder.Record(newCtx, user, message.Text, b.modes.Get(user))
	if errors.Is(err, service.ErrModeRequired) {
		b.reply(message, "⚠️ Chọn ➕ Ghi thu / ➖ Ghi chi trước, hoặc thêm dấu +/- cho từng dòng")
		return
	}

	// one-shot mode: any positive write count forces a fresh choice next time
	if result != nil && result.Written > 0 {
		b.modes.Reset(user)
	}

	if err != nil {
		logrus.Errorf("bot consumer couldn't record batch: %v", err)
		b.reply(message, fmt.Sprintf("⚠️ Lỗi lưu dữ liệu, đã ghi được %d dòng", result.Written))
		return
	}
	b.reply(message, producer.BatchOutcome(result.Written, result.Rejected))
}

func (b *Bot) handleDay(ctx context.Context, message *tgbotapi.Message, user string) {
	newCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	today := time.Now()
	summary, err := b.reporter.Day(newCtx, user, today)
	if err != nil {
		b.replyReportError(message, err)
		return
	}
	b.reply(message, producer.DayReport(today, summary))
}

func (b *Bot) handleMonth(ctx context.Context, message *tgbotapi.Message, user string) {
	newCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	summary, err := b.reporter.Month(newCtx, user, now.Year(), now.Month())
	if err != nil {
		b.replyReportError(message, err)
		return
	}
	b.reply(message, producer.MonthReport(now.Year(), now.Month(), summary))
}

func (b *Bot) handleYear(ctx context.Context, message *tgbotapi.Message, user, target string) {
	if target != "" && !b.validate(target, fmt.Sprintf("min=%d,max=%d", usernameMinLength, usernameMaxLength)) {
		b.reply(message, "Tên người dùng không hợp lệ")
		return
	}

	newCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	report, err := b.reporter.Year(newCtx, user, target, time.Now().Year())
	if err != nil {
		b.replyReportError(message, err)
		return
	}
	b.reply(message, producer.YearReport(report))
}

func (b *Bot) replyReportError(message *tgbotapi.Message, err error) {
	switch {
	case errors.Is(err, service.ErrNoData):
		b.reply(message, "Chưa có dữ liệu cho khoảng này")
	case errors.Is(err, service.ErrPermissionDenied):
		b.reply(message, "⛔ Bạn chỉ được xem báo cáo của chính mình")
	default:
		logrus.Errorf("bot consumer couldn't build report: %v", err)
		b.reply(message, "⚠️ Không đọc được dữ liệu, thử lại sau")
	}
}

func (b *Bot) reply(message *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = mainKeyboard

	if _, err := b.bot.Send(msg); err != nil {
		logrus.Errorf("bot consumer couldn't send message: %v", err)
	}
}

func (b *Bot) validate(value string, tags string) bool {
	return b.validator.Var(value, tags) == nil
}

func username(message *tgbotapi.Message) string {
	if message.From == nil || message.From.UserName == "" {
		return model.UnknownUser
	}
	return message.From.UserName
}
