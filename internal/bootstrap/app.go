package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/volops/voladmin/config"
	"github.com/volops/voladmin/internal/adapters/rediscache"
	"github.com/volops/voladmin/internal/adapters/sessionfile"
	"github.com/volops/voladmin/internal/api"
	"github.com/volops/voladmin/internal/domain/model"
	"github.com/volops/voladmin/internal/ports"
	"github.com/volops/voladmin/internal/service"
)

// App wires the configured adapters, the API client and the services
// together for one process.
type App struct {
	Config config.AppConfig
	Logger *slog.Logger

	Sessions ports.SessionStore
	Cache    *rediscache.Cache

	Client    *api.Client
	AuthAPI   *api.AuthAPI
	Users     *api.UserRepo
	Shifts    *api.ShiftRepo
	ActAPI    *api.ActivityRepo
	Todos     *api.TodoRepo
	Documents *api.DocumentRepo

	Auth       *service.AuthService
	UserAdmin  *service.UserService
	Importer   *service.Importer
	Activities *service.Store[model.Activity]
	ShiftStore *service.Store[model.Shift]
	TodoStore  *service.Store[model.Todo]
	DocStore   *service.Store[model.Document]
}

// NewApp builds the full dependency graph from loaded configuration.
func NewApp(cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sessionPath, err := cfg.Session.ResolvePath()
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	sessions := sessionfile.New(sessionPath)

	client := api.New(api.Options{
		Config:   cfg.API,
		Sessions: sessions,
		Logger:   logger,
	})

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Sessions:  sessions,
		Cache:     rediscache.FromConfig(cfg.Cache),
		Client:    client,
		AuthAPI:   api.NewAuthAPI(client),
		Users:     api.NewUserRepo(client),
		Shifts:    api.NewShiftRepo(client),
		ActAPI:    api.NewActivityRepo(client),
		Todos:     api.NewTodoRepo(client),
		Documents: api.NewDocumentRepo(client),
	}

	app.Auth = service.NewAuthService(service.AuthServiceOptions{
		API:      app.AuthAPI,
		Sessions: sessions,
		Logger:   logger,
	})
	app.UserAdmin = service.NewUserService(service.UserServiceOptions{
		Directory: app.Users,
		Logger:    logger,
	})
	app.Importer = service.NewImporter(service.ImporterOptions{
		Directory: app.Users,
		MaxBytes:  cfg.Limits.ImportMaxBytes,
		OnCommitted: func(ctx context.Context) {
			if _, err := app.UserAdmin.List(ctx, model.UserFilter{}); err != nil {
				logger.Warn("refreshing user list after import failed", "error", err)
			}
		},
		Logger: logger,
	})

	var cache ports.CacheRepository
	if app.Cache != nil {
		cache = app.Cache
	}
	ttl := cfg.Cache.TTL

	app.Activities = newStore(app.ActAPI, func(a model.Activity) int { return a.ID }, cache, "activities", ttl, logger)
	app.ShiftStore = newStore(app.Shifts, func(s model.Shift) int { return s.ID }, cache, "shifts", ttl, logger)
	app.TodoStore = newStore(app.Todos, func(td model.Todo) int { return td.ID }, cache, "todos", ttl, logger)
	app.DocStore = newStore(app.Documents, func(d model.Document) int { return d.ID }, cache, "documents", ttl, logger)

	return app, nil
}

func newStore[T any](
	repo ports.ResourceRepository[T],
	id func(T) int,
	cache ports.CacheRepository,
	name string,
	ttl time.Duration,
	logger *slog.Logger,
) *service.Store[T] {
	return service.NewStore(service.StoreOptions[T]{
		Repo:   repo,
		ID:     id,
		Cache:  cache,
		Name:   name,
		TTL:    ttl,
		Logger: logger,
	})
}

// Close releases pooled resources.
func (a *App) Close() error {
	if a.Cache != nil {
		return a.Cache.Close()
	}
	return nil
}
