// cmd/notifier/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"parkhub-notifier/internal/common/aws"
	"parkhub-notifier/internal/common/config"
	"parkhub-notifier/internal/common/database"
	"parkhub-notifier/internal/common/logger"
	"parkhub-notifier/internal/common/observability"
	"parkhub-notifier/internal/common/supabase"
	"parkhub-notifier/internal/handlers"
	sae "parkhub-notifier/internal/workers/booking/send-approval-email"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting booking notifier...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	requestTimeout := config.GetDuration(cfg.Server.RequestTimeout)

	// --- Init Supabase read client ---
	sb := supabase.NewClient(cfg.Supabase, requestTimeout)
	zapLog.Info("Supabase client initialized", zap.String("url", cfg.Supabase.URL))

	// --- Init optional Redis contact cache ---
	var redisClient *database.RedisClient
	if cfg.Cache.Redis.Address != "" {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Cache.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, contact cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Select the notifier: log recorder by default, SES when configured ---
	var notifier sae.Notifier
	if cfg.Notifications.EmailConfigured() {
		var sesClient *aws.SESClient
		err = retryWithBackoff(func() error {
			var err error
			sesClient, err = aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			return err
		}, 3, 2*time.Second, zapLog, "SES client initialization")

		if err != nil {
			zapLog.Fatal("ses client failed after retries", zap.Error(err))
		}

		notifier = sae.NewEmailNotifier(sesClient, cfg.Notifications.Email.FromEmail, log, obs)
		zapLog.Info("email transport enabled", zap.String("fromEmail", cfg.Notifications.Email.FromEmail))
	} else {
		notifier = sae.NewLogNotifier(log, obs)
		zapLog.Info("no email transport configured, notifications will be recorded only")
	}

	// --- Assemble the pipeline ---
	workerCfg := sae.LoadConfig()
	workerCfg.Timeout = requestTimeout
	workerCfg.CacheTTL = time.Duration(cfg.Cache.Redis.TTL) * time.Second

	var contactCache *redis.Client
	if redisClient != nil {
		contactCache = redisClient.Client
	}

	contacts := sae.NewContactResolver(sb, contactCache, workerCfg.CacheTTL, log)
	service := sae.NewService(workerCfg, sb, contacts, notifier, log)
	webhook := handlers.NewWebhookHandler(service, workerCfg.Timeout, obs, log)

	// --- HTTP server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/hooks/booking-status", instrument("booking-status", webhook.HandleBookingStatus))
	mux.HandleFunc("/healthz", instrument("healthz", handlers.Health))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Shutdown complete")
}

// instrument wraps a handler with the standard request metrics.
func instrument(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		httpRequestsTotal.WithLabelValues(name, r.Method, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(name, r.Method).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
