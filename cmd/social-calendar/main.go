package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/api"
	availability_service "github.com/ansokolv/social-calendar-backend/internal/business/availability"
	items_service "github.com/ansokolv/social-calendar-backend/internal/business/items"
	scheduling_service "github.com/ansokolv/social-calendar-backend/internal/business/scheduling"
	"github.com/ansokolv/social-calendar-backend/internal/config"
	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/database/items"
	"github.com/ansokolv/social-calendar-backend/internal/database/user"
	"github.com/ansokolv/social-calendar-backend/internal/notifications"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/fcm"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/gcal"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/jwt"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/oauth"
	"github.com/ansokolv/social-calendar-backend/internal/redis"
	"github.com/robfig/cron/v3"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	jwts := jwt.NewManger()
	tokenParser := oauth.NewParser()

	redisPool := redis.NewRedisPool(logger)
	refreshTokens := redis.NewRefreshTokenRepository(redisPool, logger)
	busyCache := redis.NewBusyIntervalCache(redisPool, logger)

	db, err := database.NewPGX(ctx)
	if err != nil {
		log.Fatalf("unable to initializae db: %v", err)
	}
	usersRepository := user.NewRepository()
	itemsRepository := items.NewRepository()

	itemsService := items_service.NewService(db, itemsRepository)

	availabilityService := initAvailability(ctx, db, logger, usersRepository, itemsService, busyCache)
	schedulingService := scheduling_service.NewService(logger, availabilityService)

	fcmService, err := fcm.NewService(ctx)
	if err != nil {
		log.Fatalf("unable to initializae fcm service: %v", err)
	}

	sink := notifications.NewPushSink(db, logger, usersRepository, fcmService)
	scheduler := notifications.NewScheduler(logger, itemsService, sink)
	go scheduler.Run(ctx)

	reclaimer := cron.New()
	if _, err := reclaimer.AddFunc(config.ReclaimSchedule(), func() {
		scheduler.Reclaim(time.Now())
	}); err != nil {
		logger.Fatalw("error scheduling reclaim", "err", err)
	}
	reclaimer.Start()
	closer.Bind(func() {
		reclaimer.Stop()
	})

	api, err := api.NewApi(
		logger,
		rand.Reader,
		jwts,
		tokenParser,
		refreshTokens,
		db,
		usersRepository,
		itemsService,
		schedulingService,
		availabilityService,
	)
	if err != nil {
		logger.Fatalw("error initiating api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initAvailability(
	ctx context.Context,
	db database.PGX,
	logger *zap.SugaredLogger,
	users *user.Repository,
	itemsService *items_service.Service,
	busyCache *redis.BusyIntervalCache,
) *availability_service.Service {
	if !config.FreeBusyEnabled() {
		return availability_service.NewService(db, logger, users, itemsService, busyCache, nil)
	}

	freeBusy, err := gcal.NewService(ctx)
	if err != nil {
		log.Fatalf("unable to initializae freebusy service: %v", err)
	}

	return availability_service.NewService(db, logger, users, itemsService, busyCache, freeBusy)
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
