package main

import (
	"context"
	"os"

	"github.com/go-co-op/gocron/v2"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-BE/api"
	"github.com/campushub/campushub-BE/internal/db"
	"github.com/campushub/campushub-BE/internal/notification"
	"github.com/campushub/campushub-BE/internal/util"
	"github.com/campushub/campushub-BE/internal/worker"
	"github.com/campushub/campushub-BE/internal/ws"

	_ "github.com/campushub/campushub-BE/docs"
)

//	@title			CampusHub Notification API
//	@version		1.0.0
//	@description	Notification fan-out and delivery service for the CampusHub platform

//	@host		localhost:8080
//	@BasePath	/v1
//	@schemes	http https

//	@securityDefinitions.apikey	accessToken
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	// Create connection pool
	connPool, err := pgxpool.New(context.Background(), config.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to validate db connection string 😣")
	}

	store := db.NewStore(connPool)

	pingErr := store.Ping(context.Background())
	if pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to db 😣")
	}
	log.Info().Msg("connected to db ✅")

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	hub := ws.NewHub()
	notifier := notification.NewService(store, store, hub, redisDb)

	redisOpt := asynq.RedisClientOpt{Addr: config.RedisServerAddress}
	taskDistributor := worker.NewTaskDistributor(redisOpt)

	go runTaskProcessor(redisOpt, notifier)
	go runSessionSweeper(&config, hub)

	runHTTPServer(&config, store, notifier, hub, taskDistributor)
}

func runTaskProcessor(redisOpt asynq.RedisClientOpt, notifier *notification.Service) {
	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, notifier)
	log.Info().Msg("starting task processor")

	if err := taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
}

// runSessionSweeper periodically drops websocket sessions whose transport
// is no longer writable.
func runSessionSweeper(config *util.Config, hub *ws.Hub) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create scheduler 😣")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(config.SessionSweepEvery),
		gocron.NewTask(func() {
			hub.SweepStale()
		}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule session sweep 😣")
	}

	scheduler.Start()
}

func runHTTPServer(config *util.Config, store db.Store, notifier *notification.Service, hub *ws.Hub, taskDistributor worker.TaskDistributor) {
	server, err := api.NewServer(store, notifier, hub, taskDistributor, config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create HTTP server 😣")
	}

	err = server.Start(config.HTTPServerAddress)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}
