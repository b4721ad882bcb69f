package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/you/go-flight-monitor/internal/auth"
	"github.com/you/go-flight-monitor/internal/config"
	"github.com/you/go-flight-monitor/internal/httpx"
	"github.com/you/go-flight-monitor/internal/notify"
	"github.com/you/go-flight-monitor/internal/providers"
	"github.com/you/go-flight-monitor/internal/service"
)

func main() {

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Loading config; a run must not start with missing credentials
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("configuration incomplete")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Priced providers out of config parameters; the rest of the enabled
	// sources are link-only
	var priced []providers.QuoteProvider
	if cfg.SourceEnabled("amadeus") {
		priced = append(priced, providers.NewAmadeus(cfg))
	}

	agg := service.NewAggregator(cfg.Origin, cfg.Destination, priced, cfg.EnabledSources,
		cfg.SearchTimeout, logger.With().Str("component", "aggregator").Logger())

	history := service.NewFileHistoryStore(cfg.HistoryDir)
	engine := service.NewEngine(history, service.Thresholds{
		Target:      cfg.TargetPrice,
		Good:        cfg.GoodPrice,
		AlwaysBelow: cfg.AlwaysNotifyBelow,
		MinDrop:     cfg.MinDropForAlert,
	})

	var notifier notify.Notifier
	var tg *notify.Telegram
	if cfg.UseTelegram {
		tg = notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID,
			logger.With().Str("component", "telegram").Logger())
		notifier = tg
	} else {
		notifier = notify.NewEmail(cfg.EmailAddress, cfg.EmailPassword, cfg.SMTPHost, cfg.SMTPPort)
	}

	monitor, err := service.NewMonitor(cfg, agg, engine, notifier,
		logger.With().Str("component", "monitor").Logger())
	if err != nil {
		logger.Fatal().Err(err).Msg("bad trip window")
	}

	logger.Info().
		Str("route", cfg.Origin+"-"+cfg.Destination).
		Int("passengers", cfg.Passengers).
		Float64("target", cfg.TargetPrice).
		Float64("good", cfg.GoodPrice).
		Msg("🚀 flight monitor starting")

	// First check right away, then on the configured interval
	go func() {
		if _, err := monitor.CheckPrices(ctx); err != nil {
			logger.Error().Err(err).Msg("price check failed")
		}
		ticker := time.NewTicker(cfg.CheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := monitor.CheckPrices(ctx); err != nil {
					logger.Error().Err(err).Msg("price check failed")
				}
			}
		}
	}()

	defaults := service.CommandDefaults{
		Origin:        cfg.Origin,
		Destination:   cfg.Destination,
		DepartureDate: cfg.DepartureDate,
		ReturnDate:    cfg.ReturnDate,
		Passengers:    cfg.Passengers,
	}

	// Manual price requests over the Telegram bot (optional)
	if tg != nil && cfg.ListenCommands {
		interp := service.NewCommandInterpreter(agg, defaults)
		go func() {
			logger.Info().Msg("🛰️ listening for telegram commands")
			if err := tg.Listen(ctx, interp.Interpret); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("telegram listener stopped")
			}
		}()
	}

	publicMux := http.NewServeMux()

	// Public: login to get JWT
	publicMux.HandleFunc("/auth/login", auth.LoginHandler(cfg))

	// Protected group with JWT
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("/prices/live", httpx.LivePricesHandler(agg, defaults))
	protectedMux.HandleFunc("/prices/check", httpx.CheckNowHandler(monitor))

	root := auth.JWTMiddleware(publicMux, protectedMux, cfg)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           root,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("➡️ HTTP API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
