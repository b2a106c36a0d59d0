package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/miracura/booking_widget/internal/api"
	"github.com/miracura/booking_widget/internal/app"
	"github.com/miracura/booking_widget/internal/auth"
	"github.com/miracura/booking_widget/internal/config"
	"github.com/miracura/booking_widget/internal/model"
	"github.com/miracura/booking_widget/internal/repository"
	"github.com/miracura/booking_widget/internal/service"
	"github.com/miracura/booking_widget/internal/wizard"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	logger.Sugar().Infow("Starting booking widget",
		"environment", cfg.Environment,
		"business_id", cfg.BusinessID,
		"api_url", cfg.APIURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Без Redis корзина живёт только в памяти процесса
	var kv repository.KVStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		kv = repository.NewRedisStore(client, cfg.BusinessID)
		logger.Info("Using Redis cart storage", zap.String("addr", cfg.RedisAddr))
	} else {
		kv = repository.NewMemoryStore()
		logger.Warn("REDIS_ADDR not set, carts will not survive restarts")
	}

	apiClient := api.NewClient(cfg.APIURL, cfg.BusinessID, logger)
	tokens := auth.NewGuestTokenProvider(apiClient, logger)
	repo := repository.NewCartRepository(kv)

	store := wizard.NewStore(apiClient, tokens, repo, wizard.Options{
		BusinessID: cfg.BusinessID,
		Locale:     cfg.Locale,
		DeviceZone: cfg.DeviceZone,
	}, logger)
	if err := store.Init(ctx); err != nil {
		logger.Fatal("Failed to restore reservation cart", zap.Error(err))
	}

	eshop := service.NewEshopCartService(apiClient, tokens, repo, cfg.BusinessID, logger)
	if err := eshop.Init(ctx); err != nil {
		logger.Fatal("Failed to restore eshop cart", zap.Error(err))
	}

	if serviceID := os.Getenv("DEMO_SERVICE_ID"); serviceID != "" {
		runDemoPass(ctx, store, serviceID, logger)
	}

	logger.Info("Widget ready",
		zap.Int("reservation_parts", len(store.Parts())),
		zap.Int("eshop_items", eshop.Count()))

	<-ctx.Done()
	logger.Info("Shutting down")
}

// runDemoPass прогоняет мастер по услуге: первый свободный слот
// добавляется в корзину. Чекаут не выполняется.
func runDemoPass(ctx context.Context, store *wizard.Store, serviceID string, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	store.SetService(ctx, &model.Service{
		ID:                 serviceID,
		Name:               model.LocalizedText{"en": "Demo Service"},
		ReservationMethods: []model.ReservationMethod{model.MethodStandard},
	})
	store.FindFirstAvailable(ctx)

	st := store.Snapshot()
	if st.SelectedSlot == nil {
		logger.Warn("Demo pass found no available slots", zap.String("service_id", serviceID))
		return
	}

	logger.Info("Demo pass selected slot",
		zap.String("date", st.SelectedDate),
		zap.String("time", st.SelectedSlot.TimeText),
		zap.String("month", st.MonthTitle))

	if res := store.AddToCart(ctx, *st.SelectedSlot); !res.Success {
		logger.Warn("Demo pass failed to add part", zap.String("error", res.Error))
		return
	}
	logger.Info("Demo pass added part to cart", zap.Int("parts", len(store.Parts())))
}
