package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"astrobot/internal/audit"
	"astrobot/internal/bot"
	"astrobot/internal/cache"
	"astrobot/internal/config"
	"astrobot/internal/content"
	backup "astrobot/internal/database"
	"astrobot/internal/db"
	"astrobot/internal/events"
	"astrobot/internal/horoscope"
	"astrobot/internal/locks"
	"astrobot/internal/metrics"
	"astrobot/internal/quotes"
	"astrobot/internal/reminders"
	"astrobot/internal/service"
	"astrobot/internal/tarot"
	"astrobot/internal/textgen"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	configPath := os.Getenv("ASTROBOT_CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	setLogLevel(cfg.Logging.Level, &logger)

	if cfg.Telegram.BotToken == "" || cfg.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		logger.Fatal().Msg("set telegram.bot_token in config")
	}

	store := content.New(cfg.Content.DefaultLanguage)
	if err := store.Validate(cfg.Content.Languages); err != nil {
		logger.Fatal().Err(err).Msg("content store is incomplete")
	}

	database, err := db.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := connectRedis(ctx, cfg, &logger)
	if rdb != nil {
		defer rdb.Close()
	}

	var locker locks.Locker = locks.NewKeyed()
	var patternStore horoscope.PatternStore = database
	if rdb != nil {
		locker = locks.NewFailover(locks.NewRedis(rdb, cfg.LockTTL()), locker, &logger)
		patternStore = cache.NewPatternStore(database, rdb, cfg.PatternTTL(), logger)
	}

	source, err := textgen.New(ctx, cfg.TextGen)
	if err != nil {
		logger.Fatal().Err(err).Msg("text source error")
	}
	logger.Info().Str("provider", source.Name()).Msg("Text source ready")

	bus := events.NewEventBus(logger)
	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		metrics.Subscribe(bus)
	}

	generator := horoscope.NewGenerator(patternStore, store, locker, horoscope.GeneratorConfig{
		HistorySize:      cfg.Content.HistorySize,
		AntiRepeatWindow: cfg.Content.AntiRepeatWindow,
		MaxRetries:       cfg.Content.MaxRetries,
	}, logger)
	drawer := tarot.NewDrawer(database, store, locker, cfg.Tarot.WindowDays, cfg.Location(), logger)
	quoteService := quotes.NewService(database, source, store, locker, cfg.Content.QuoteNoRepeatDays, logger)

	svc := service.New(database, generator, horoscope.NewRenderer(store), drawer, quoteService, bus, service.Options{
		Location:          cfg.Location(),
		Languages:         cfg.Content.Languages,
		DefaultLang:       cfg.Content.DefaultLanguage,
		DefaultNotifyTime: cfg.DefaultNotifyTime(),
	}, logger)
	generator.OnCreate(svc.PatternCreated)

	b, err := bot.New(cfg.Telegram.BotToken, svc, audit.NewExporter(database), store, bot.Options{
		Managers:  cfg.Managers,
		TimeSlots: cfg.Reminders.TimeSlots,
		Location:  cfg.Location(),
		ImagesDir: cfg.Content.ImagesDir,
		Debug:     cfg.Telegram.Debug,
	}, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("create bot error")
	}

	var registerer prometheus.Registerer = prometheus.NewRegistry()
	if cfg.Monitoring.PrometheusEnabled {
		registerer = prometheus.DefaultRegisterer
	}
	reminderMetrics := reminders.NewMetrics(registerer, "astrobot")
	sender := reminders.NewSender(b.Notifier(), database, reminders.SenderConfig{
		RatePerSecond: cfg.Reminders.RatePerSecond,
		Burst:         cfg.Reminders.Burst,
	}, reminderMetrics, logger)
	scheduler := reminders.NewScheduler(reminders.SchedulerConfig{
		Location:      cfg.Location(),
		CheckInterval: cfg.ScanInterval(),
	}, database, svc, sender, reminderMetrics, logger)
	go scheduler.Start(ctx)
	defer scheduler.Stop()

	backups := backup.NewBackupService(database, cfg.Backup, &logger)
	go backups.Start(ctx)

	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, database, rdb, &logger)
	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	err = config.Watch(ctx, configPath, 30*time.Second, func(updated *config.Config) {
		b.SetManagers(updated.Managers)
		b.SetTimeSlots(updated.Reminders.TimeSlots)
		setLogLevel(updated.Logging.Level, &logger)
		logger.Info().Int("managers", len(updated.Managers)).Msg("Config reloaded")
	})
	if err != nil {
		logger.Warn().Err(err).Msg("config watcher disabled")
	}

	logger.Info().Str("timezone", cfg.Content.Timezone).Msg("Astrobot started")
	b.Start(ctx)
	logger.Info().Msg("Astrobot stopped")
}

func setLogLevel(raw string, logger *zerolog.Logger) {
	level, err := zerolog.ParseLevel(raw)
	if err != nil || level == zerolog.NoLevel {
		logger.Warn().Str("level", raw).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func connectRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		logger.Info().Msg("Redis not configured, using in-process locks")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})

	ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctxPing).Err(); err != nil {
		logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("Redis unreachable, using in-process locks")
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func startHealthServer(ctx context.Context, port int, database *db.DB, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := database.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
