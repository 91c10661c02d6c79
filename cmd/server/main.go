package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	caseshandler "appealboard/internal/cases/handler"
	casesservice "appealboard/internal/cases/service"
	casestore "appealboard/internal/cases/store"
	docshandler "appealboard/internal/docs/handler"
	"appealboard/internal/docs/generator"
	docsservice "appealboard/internal/docs/service"
	docstore "appealboard/internal/docs/store"
	httptransport "appealboard/internal/http"
	meetingshandler "appealboard/internal/meetings/handler"
	meetingsservice "appealboard/internal/meetings/service"
	meetingstore "appealboard/internal/meetings/store"
	"appealboard/internal/notify"
	notifyhandler "appealboard/internal/notify/handler"
	notifykafka "appealboard/internal/notify/kafka"
	"appealboard/internal/platform/config"
	"appealboard/internal/platform/httpserver"
	"appealboard/internal/platform/logger"
	"appealboard/internal/platform/postgres"
	platformredis "appealboard/internal/platform/redis"
	"appealboard/internal/stage"
	"appealboard/internal/stage/catalog"
	"appealboard/internal/stage/locks"
	stagemetrics "appealboard/internal/stage/metrics"
	userstore "appealboard/internal/users/store"
)

// main wires the stores, the stage engine, and the HTTP surface. Backends are
// optional: without DATABASE_URL the service runs on in-memory stores, without
// REDIS_URL locking is in-process, without KAFKA_BROKERS notifications stay in
// the database only.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := catalog.MustLoad()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	var (
		cases         casestore.Store
		docs          docstore.Store
		meetings      meetingstore.Store
		users         userstore.Store
		notifications notify.Store
	)
	if db != nil {
		defer db.Close()
		if cfg.Migrate {
			if err := postgres.EnsureSchema(ctx, db); err != nil {
				return err
			}
		}
		cases = casestore.NewPostgres(db)
		docs = docstore.NewPostgres(db)
		meetings = meetingstore.NewPostgres(db)
		users = userstore.NewPostgres(db)
		notifications = notify.NewPostgresStore(db)
		log.Info("using postgres stores")
	} else {
		cases = casestore.NewMemory()
		docs = docstore.NewMemory()
		meetings = meetingstore.NewMemory()
		users = userstore.NewMemory()
		notifications = notify.NewMemoryStore()
		log.Info("using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	var locker stage.Locker
	if redisClient != nil {
		defer redisClient.Close()
		locker = locks.NewLease(redisClient.Client, log)
		log.Info("using redis lease locks")
	} else {
		locker = locks.NewSharded()
	}

	userNotifier := notify.NewDBUserNotifier(notifications, nil)
	var publisher *notifykafka.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = notifykafka.NewPublisher(cfg.KafkaBrokers, cfg.NotificationsTopic, log)
		if err != nil {
			return err
		}
		defer publisher.Close()
		if err := publisher.EnsureTopic(ctx, 3); err != nil {
			return err
		}
		log.Info("kafka notifications enabled", "topic", cfg.NotificationsTopic)
	}
	// Broadcast notifiers hold per-delivery addressee state, so the
	// orchestrator builds a fresh set for each delivery.
	newBroadcasters := func() []notify.BroadcastNotifier {
		bs := []notify.BroadcastNotifier{notify.NewDBBroadcastNotifier(notifications, nil)}
		if publisher != nil {
			bs = append(bs, publisher.Broadcast())
		}
		return bs
	}

	docsSvc := docsservice.New(docs, generator.NewStub(), cat, log)
	orchestrator := stage.New(stage.Deps{
		Cases:        cases,
		Docs:         docs,
		Meetings:     meetings,
		Users:        users,
		DocCreator:   docsSvc,
		UserNotifier: userNotifier,
		Broadcasters: newBroadcasters,
		Locker:       locker,
		Catalog:      cat,
		Metrics:      stagemetrics.New(),
		Logger:       log,
	})

	casesSvc := casesservice.New(cases, docsSvc, users, cat, log)
	meetingsSvc := meetingsservice.New(meetings, cases, cat, log)

	healthChecks := map[string]httptransport.HealthCheck{}
	if db != nil {
		healthChecks["postgres"] = db.PingContext
	}
	if redisClient != nil {
		healthChecks["redis"] = redisClient.Health
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:        log,
		JWTSigningKey: cfg.JWTSigningKey,
		Features: []httptransport.Registrar{
			caseshandler.New(casesSvc, orchestrator, cat, log),
			docshandler.New(docsSvc, orchestrator, log),
			meetingshandler.New(meetingsSvc, orchestrator, log),
			notifyhandler.New(notifications, log),
		},
		HealthChecks: healthChecks,
	})

	srv := httpserver.New(cfg.Addr, router)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting appealboard server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
