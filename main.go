package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v8"
	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/minhvu/sothuchi/internal/config"
	"github.com/minhvu/sothuchi/internal/consumer"
	"github.com/minhvu/sothuchi/internal/repository"
	"github.com/minhvu/sothuchi/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found")
	}

	cfg := config.Config{}
	if err := env.Parse(&cfg); err != nil {
		logrus.Fatalf("couldn't parse config: %v", err)
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		logrus.Fatal(err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		logrus.Fatal(err)
	}

	updatesConfig := tgbotapi.NewUpdate(0)
	updatesConfig.Timeout = cfg.Telegram.Timeout

	tgBot := consumer.NewBot(bot, bot.GetUpdatesChan(updatesConfig), validator.New(),
		repository.NewModes(),
		service.NewRecorder(store),
		service.NewReporter(store, cfg.Owner))
	go tgBot.Consume(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit
	cancel()
	<-time.After(2 * time.Second)
}

func newStore(ctx context.Context, cfg config.Config) (repository.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		logrus.Infof("using sqlite store at %s", cfg.Store.SQLitePath)
		return repository.NewSQLite(cfg.Store.SQLitePath)
	case "memory":
		logrus.Info("using in-memory store, records are lost on restart")
		return repository.NewLocalStorage(), nil
	default:
		logrus.Infof("using google sheets store, spreadsheet %s", cfg.Sheets.SpreadsheetID)
		return repository.NewSheets(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName)
	}
}
