package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	appMigrations "github.com/yigit/campusrecords/internal/app/migrations"
	appRepos "github.com/yigit/campusrecords/internal/app/repositories"
	"github.com/yigit/campusrecords/internal/app/repositories/memory"
	"github.com/yigit/campusrecords/internal/app/repositories/postgres"
	appServices "github.com/yigit/campusrecords/internal/app/services"
	"github.com/yigit/campusrecords/internal/config"
	"github.com/yigit/campusrecords/internal/db"
	"github.com/yigit/campusrecords/internal/pkg/logger"
	"github.com/yigit/campusrecords/internal/seed"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds everything a command needs
type Dependencies struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    appRepos.Store
	Services *appServices.Services
	// Database is nil for the memory driver
	Database *db.PostgresDB
}

// Close releases the store
func (d *Dependencies) Close() {
	if d.Store != nil {
		d.Store.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := cfg.Logging.Format == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := logger.Get()
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// OpenStore opens the store selected by database.driver
func OpenStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, *db.PostgresDB, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Info().Msg("Using in-memory store")
		return memory.NewStore(), nil, nil
	case config.DriverPostgres:
		lgr.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")
		return postgres.NewStore(database), database, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// RunMigrations applies the embedded schema. The memory store carries the
// schema in code, so there is nothing to apply for it.
func RunMigrations(ctx context.Context, deps *Dependencies) (int, error) {
	if deps.Database == nil {
		deps.Logger.Info().Msg("Memory driver selected, no migrations to apply")
		return 0, nil
	}

	deps.Logger.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(deps.Database.Pool, appMigrations.Files(), deps.Logger)
	applied, err := migrator.Migrate(ctx)
	if err != nil {
		deps.Logger.Error().Err(err).Msg("Database migration error")
		return applied, fmt.Errorf("database migrations failed: %w", err)
	}
	deps.Logger.Info().Int("applied", applied).Msg("Database migrations successfully applied.")
	return applied, nil
}

// BuildServices wires the services over store using the configured timezone
func BuildServices(cfg *config.Config, store appRepos.Store) *appServices.Services {
	return appServices.NewServices(store, appServices.WithLocation(cfg.Location()))
}

// Setup loads configuration, opens the store and builds the services. With
// the memory driver and app.seed_on_start the demo data is loaded as well,
// since an empty process-local store is otherwise of little use.
func Setup(ctx context.Context, configPath string) (*Dependencies, error) {
	cfg, lgr, err := LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}

	store, database, err := OpenStore(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Config:   cfg,
		Logger:   lgr,
		Store:    store,
		Services: BuildServices(cfg, store),
		Database: database,
	}

	if cfg.Database.Driver == config.DriverMemory && cfg.App.SeedOnStart {
		if err := seed.CreateDefaultData(ctx, deps.Services, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}
	return deps, nil
}
