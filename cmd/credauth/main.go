package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"credauth/internal/config"
	"credauth/internal/delivery"
	"credauth/internal/directory"
	"credauth/internal/keymaterial"
	"credauth/internal/observability/logging"
	"credauth/internal/observability/metrics"
	"credauth/internal/otp"
	impl "credauth/internal/service/impl"
	httpx "credauth/internal/transport/http"
)

func main() {
	_ = godotenv.Load()

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "credauth",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	cfg := config.Load()
	metrics.MustRegister("credauth")

	// Key material is a startup precondition: a missing or unparsable
	// key file must kill the process, not surface per-request.
	keys, err := keymaterial.Load(cfg.PrivateKeyPath, cfg.PublicKeyPath, cfg.SigningKeyID)
	if err != nil {
		logger.Error("load key material", "error", err)
		os.Exit(1)
	}

	var store otp.ChallengeStore
	switch cfg.OtpStore {
	case "postgres":
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("connect otp store", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = otp.NewPostgresStore(pool)
	default:
		store = otp.NewMemoryStore()
	}

	var sender delivery.Sender
	if len(cfg.KafkaBrokers) > 0 {
		ks := delivery.NewKafkaSender(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() { _ = ks.Close() }()
		sender = ks
	} else {
		logger.Warn("no kafka brokers configured, otp delivery is log-only")
		sender = delivery.LogSender{}
	}

	pw := impl.NewPasswordServiceBcrypt()
	ts := impl.NewTokenServiceEdDSA(impl.TokenConfig{
		Issuer: cfg.Issuer,
		TTL:    cfg.TokenTTL,
	}, keys)
	otpSvc := impl.NewOtpService(impl.OtpConfig{TTL: cfg.OtpTTL}, store)
	dir := directory.NewClient(cfg.UserDirectoryURL)

	as := impl.NewAuthServiceImpl(dir, pw, ts, otpSvc, sender)
	as.ExposeOtp = cfg.ExposeOtp

	handler := httpx.NewRouter(as, ts, keys)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("credauth listening", "addr", srv.Addr, "issuer", cfg.Issuer, "otp_store", cfg.OtpStore)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
