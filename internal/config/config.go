package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sumihiro3/hands-on-line-pay/internal/domain"
)

const (
	defaultPort           = "5000"
	defaultReservationTTL = 15 * time.Minute

	defaultProductID       = "CHOCOLATE"
	defaultProductName     = "チョコレート"
	defaultProductAmount   = 10
	defaultProductCurrency = "JPY"
	defaultProductImageURL = "https://2.bp.blogspot.com/-zEtBQS9hTfI/UZRBlbbtP8I/AAAAAAAASqE/vbK1D7YCNyU/s400/valentinesday_itachoco2.png"
)

// Config holds everything sourced from the environment at startup.
type Config struct {
	Port    string
	BaseURL string

	PayChannelID     string
	PayChannelSecret string
	PaySandbox       bool

	BotAccessToken   string
	BotChannelSecret string

	ReservationTTL time.Duration

	Catalog domain.Catalog
}

// Load reads .env when present, then the process environment. Missing
// credentials are a startup failure; everything else falls back to a
// default with a warning.
func Load(log *logrus.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug(".env not loaded")
	}

	cfg := Config{
		Port:             os.Getenv("PORT"),
		BaseURL:          os.Getenv("BASE_URL"),
		PayChannelID:     os.Getenv("LINE_PAY_CHANNEL_ID"),
		PayChannelSecret: os.Getenv("LINE_PAY_CHANNEL_SECRET"),
		BotAccessToken:   os.Getenv("LINE_BOT_ACCESS_TOKEN"),
		BotChannelSecret: os.Getenv("LINE_BOT_CHANNEL_SECRET"),
		PaySandbox:       true,
		ReservationTTL:   defaultReservationTTL,
	}

	if cfg.Port == "" {
		log.Warnf("PORT not set, using default %s", defaultPort)
		cfg.Port = defaultPort
	}
	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("BASE_URL is required to build redirect URLs")
	}
	if cfg.PayChannelID == "" || cfg.PayChannelSecret == "" {
		return Config{}, fmt.Errorf("LINE_PAY_CHANNEL_ID and LINE_PAY_CHANNEL_SECRET are required")
	}
	if cfg.BotAccessToken == "" || cfg.BotChannelSecret == "" {
		return Config{}, fmt.Errorf("LINE_BOT_ACCESS_TOKEN and LINE_BOT_CHANNEL_SECRET are required")
	}

	if v := os.Getenv("LINE_PAY_SANDBOX"); v != "" {
		sandbox, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse LINE_PAY_SANDBOX: %w", err)
		}
		cfg.PaySandbox = sandbox
	}

	if v := os.Getenv("RESERVATION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse RESERVATION_TTL: %w", err)
		}
		if ttl <= 0 {
			return Config{}, fmt.Errorf("RESERVATION_TTL must be positive, got %s", ttl)
		}
		cfg.ReservationTTL = ttl
	}

	catalog, err := loadCatalog()
	if err != nil {
		return Config{}, err
	}
	cfg.Catalog = catalog

	return cfg, nil
}

func loadCatalog() (domain.Catalog, error) {
	product := domain.Product{
		ID:       defaultProductID,
		Name:     defaultProductName,
		Amount:   defaultProductAmount,
		Currency: defaultProductCurrency,
		ImageURL: defaultProductImageURL,
	}

	if v := os.Getenv("PRODUCT_AMOUNT"); v != "" {
		amount, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse PRODUCT_AMOUNT: %w", err)
		}
		if amount <= 0 {
			return nil, fmt.Errorf("PRODUCT_AMOUNT must be positive, got %d", amount)
		}
		product.Amount = amount
	}

	return domain.Catalog{product.ID: product}, nil
}
