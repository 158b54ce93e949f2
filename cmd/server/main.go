package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/sumihiro3/hands-on-line-pay/internal/app"
	"github.com/sumihiro3/hands-on-line-pay/internal/clock"
	"github.com/sumihiro3/hands-on-line-pay/internal/config"
	"github.com/sumihiro3/hands-on-line-pay/internal/linebot"
	"github.com/sumihiro3/hands-on-line-pay/internal/linepay"
	"github.com/sumihiro3/hands-on-line-pay/internal/store"
	transporthttp "github.com/sumihiro3/hands-on-line-pay/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(log)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	clk := clock.NewSystem()
	reservations := store.NewMemory(cfg.ReservationTTL, clk)

	payClient := linepay.New(linepay.Config{
		ChannelID:     cfg.PayChannelID,
		ChannelSecret: cfg.PayChannelSecret,
		Sandbox:       cfg.PaySandbox,
	})
	botClient := linebot.NewClient(cfg.BotAccessToken)

	redirects := app.RedirectURLs{
		Confirm: cfg.BaseURL + "/pay/confirm",
		Cancel:  cfg.BaseURL + "/pay/cancel",
	}

	purchaseSvc := app.NewPurchaseService(payClient, botClient, reservations, cfg.Catalog, redirects, clk, log)
	confirmSvc := app.NewConfirmService(reservations, payClient, botClient, log)

	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(1).Minute().Do(func() {
		if removed := reservations.Sweep(); removed > 0 {
			log.WithFields(logrus.Fields{
				"removed":   removed,
				"remaining": reservations.Len(),
			}).Info("swept expired reservations")
		}
	}); err != nil {
		log.WithError(err).Fatal("schedule reservation sweep")
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	webhook := transporthttp.NewWebhookHandler(purchaseSvc, cfg.BotChannelSecret, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/webhook", webhook)
	mux.Handle("/pay/confirm", transporthttp.HandleConfirm(confirmSvc, log))
	mux.Handle("/pay/cancel", transporthttp.HandleCancel(log))
	mux.Handle("/", transporthttp.NotFoundHandler())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: transporthttp.RequestLogger(mux, log),
	}

	log.WithField("port", cfg.Port).Info("server listening")

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server error")
		}
	case <-stopCtx.Done():
		log.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server shutdown error")
	}

	// Let in-flight webhook event workers drain before the process exits.
	webhook.Wait()
	log.Info("server stopped")
}
