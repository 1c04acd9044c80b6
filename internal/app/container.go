package app

import (
	"context"
	"log"
	"os"
	"time"

	"shortlist-console/internal/config"
	"shortlist-console/internal/database"
	"shortlist-console/internal/database/migration"
	dbpostgres "shortlist-console/internal/database/postgres"
	"shortlist-console/internal/infrastructure/cache"
	"shortlist-console/internal/infrastructure/recruitingapi"
	"shortlist-console/internal/pkg/jwt"
	"shortlist-console/internal/repository"
	"shortlist-console/internal/session"
	"shortlist-console/internal/usecase"
	"shortlist-console/internal/usecase/application"
	"shortlist-console/internal/ws"
	"shortlist-console/migrations"
)

// Container owns every long-lived collaborator of the console.
type Container struct {
	Config config.Config
	Logger *log.Logger

	API   recruitingapi.Client
	Redis *cache.Redis
	DB    database.DB
	Hub   *ws.Hub

	Sessions     *session.Manager
	Activity     *usecase.Activity
	Auth         *usecase.Auth
	Jobs         *usecase.Jobs
	Dashboard    *usecase.Dashboard
	Shortlist    *usecase.Shortlist
	Applications *application.Service
}

// NewContainer connects the optional backing services and wires the
// usecases. Redis and Postgres failures degrade features instead of failing
// startup; only a broken migration is fatal.
func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	api := recruitingapi.NewClient(cfg.Recruiting.BaseURL, cfg.Recruiting.Timeout, logger)
	redis := cache.NewRedis(cfg.Redis, logger)

	var db database.DB
	if cfg.Database.Enabled() {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		conn, err := dbpostgres.Connect(connectCtx, cfg.Database)
		if err != nil {
			logger.Printf("[DB] postgres unavailable, activity log disabled: %v", err)
		} else {
			db = conn
			applied, err := migrationRunner(cfg.App.MigrationsDir).Run(ctx, db.SQLDB())
			if err != nil {
				_ = db.Close()
				return nil, err
			}
			logger.Printf("[DB] migrations applied=%d", applied)
		}
	}

	return Assemble(cfg, logger, api, redis, db), nil
}

// Assemble wires the usecases over already-built collaborators. redis and
// db may be nil.
func Assemble(cfg config.Config, logger *log.Logger, api recruitingapi.Client, redis *cache.Redis, db database.DB) *Container {
	if logger == nil {
		logger = log.Default()
	}

	var denylist session.Denylist = session.NoopDenylist{}
	var jobsCache usecase.JobsCache
	if redis.Available() {
		denylist = session.NewDenylist(redis)
		jobsCache = redis
	}

	var events repository.ConsoleEventRepository = repository.NoopConsoleEventRepository{}
	if db != nil {
		events = repository.NewPostgresConsoleEventRepository(db)
	}

	hub := ws.NewHub(logger)
	tokens := jwt.NewHMACService(cfg.Session.AccessSecret, cfg.Session.RefreshSecret, cfg.Session.AccessTTL, cfg.Session.RefreshTTL)
	sessions := session.NewManager(tokens, denylist, cfg.Session.AccessTTL, cfg.Session.RefreshTTL, logger)
	activity := usecase.NewActivity(events, logger)
	jobs := usecase.NewJobsUsecase(api, jobsCache, cfg.Redis.JobsCacheTTL, hub, activity, cfg.App.PublicBaseURL, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		API:          api,
		Redis:        redis,
		DB:           db,
		Hub:          hub,
		Sessions:     sessions,
		Activity:     activity,
		Auth:         usecase.NewAuthUsecase(api, sessions, activity, logger),
		Jobs:         jobs,
		Dashboard:    usecase.NewDashboardUsecase(jobs, activity),
		Shortlist:    usecase.NewShortlistUsecase(api, logger),
		Applications: application.NewService(api, hub, activity, logger),
	}
}

func migrationRunner(dir string) migration.Runner {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return migration.Runner{FS: os.DirFS(dir), Dir: "."}
		}
	}
	return migration.Runner{FS: migrations.Files, Dir: "."}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if err := c.Redis.Close(); err != nil {
		c.Logger.Printf("[Cache] close error: %v", err)
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
