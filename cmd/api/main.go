package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tournotify/internal/checker"
	"tournotify/internal/config"
	"tournotify/internal/httpapi"
	"tournotify/internal/logging"
	"tournotify/internal/notify"
	"tournotify/internal/repo"
	"tournotify/internal/repo/memory"
	"tournotify/internal/repo/sqlite"
	"tournotify/internal/scheduler"
	"tournotify/internal/tours"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir, false)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var state repo.StateStore
	if cfg.StateDBPath != "" {
		st, err := sqlite.New(ctx, cfg.StateDBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer st.Close()
		state = st
		logger.Info("state_store", zap.String("kind", "sqlite"), zap.String("path", cfg.StateDBPath))
	} else {
		state = memory.New()
		logger.Info("state_store", zap.String("kind", "memory"))
	}

	notifier := buildNotifier(cfg)
	if len(notifier) == 0 {
		logger.Warn("no_notification_channels_configured")
	}

	src := tours.NewClient(cfg.UpstreamURL, cfg.TourCategoryID, cfg.GroupSize, cfg.HTTPTimeout)
	chk := checker.New(logger, src, state, notifier, cfg.Cooldown)

	if cfg.PollInterval > 0 {
		go scheduler.NewPoller(logger, chk, cfg.PollInterval).Run(ctx)
	}

	api := httpapi.NewServer(logger, chk, notifier, cfg.APIKeys, cfg.RateRPM, cfg.RateBurst)

	logger.Info("api_listen",
		zap.String("addr", cfg.Addr),
		zap.Duration("cooldown", cfg.Cooldown),
		zap.Duration("poll_interval", cfg.PollInterval),
	)
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}

func buildNotifier(cfg config.Config) notify.Multi {
	var m notify.Multi
	if v := notify.NewTwilioVoice(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.NotifyTo); v != nil {
		m = append(m, v)
	}
	if cfg.NotifySMS {
		if s := notify.NewTwilioSMS(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.NotifyTo); s != nil {
			m = append(m, s)
		}
	}
	if sl := notify.NewSlack(cfg.SlackWebhook); sl != nil {
		m = append(m, sl)
	}
	return m
}
