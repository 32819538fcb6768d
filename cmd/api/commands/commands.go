package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/folio/portfolio/internal/adapters/repository"
	"github.com/folio/portfolio/internal/application/services"
	"github.com/folio/portfolio/internal/infrastructure/config"
	"github.com/folio/portfolio/internal/infrastructure/database"
	"github.com/folio/portfolio/internal/infrastructure/logger"
	"github.com/folio/portfolio/internal/infrastructure/metrics"
	"github.com/folio/portfolio/internal/infrastructure/server"
	"github.com/folio/portfolio/internal/ports"
)

// Build information, set with -ldflags at release time
var (
	Version   = "dev"
	GitCommit = "development"
	BuildDate = "unknown"
)

// NewServeCommand creates the serve command
func NewServeCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the portfolio API server",
		Long:  "Start the portfolio API server with all configured routes and middleware",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configFile)
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand(configFile *string) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage the schema of the postgres storage driver (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configFile, func(m *database.Migrator) error {
				changed, err := m.Up()
				if err != nil {
					return err
				}
				printMigrationResult(cmd.OutOrStdout(), "up", changed)
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configFile, func(m *database.Migrator) error {
				changed, err := m.Down()
				if err != nil {
					return err
				}
				printMigrationResult(cmd.OutOrStdout(), "down", changed)
				return nil
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configFile, func(m *database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return fmt.Errorf("failed to get migration version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\n", version)
				fmt.Fprintf(cmd.OutOrStdout(), "Dirty: %t\n", dirty)
				return nil
			})
		},
	})

	return migrateCmd
}

// NewSeedCommand creates the seed command
func NewSeedCommand(configFile *string) *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load content into empty collections",
		Long:  "Load a YAML fixture, or the built-in defaults, into every collection that holds no records yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			fixture := repository.DefaultFixture()
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read fixture: %w", err)
				}
				if fixture, err = repository.ParseFixture(data); err != nil {
					return err
				}
			}

			return runSeed(cmd.Context(), *configFile, fixture, cmd.OutOrStdout())
		},
	}

	seedCmd.Flags().String("file", "", "YAML fixture to load (defaults to the built-in sample content)")
	return seedCmd
}

// NewHashPasswordCommand creates the hash-password command
func NewHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := services.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print portfolio API version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Portfolio API %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build Date: %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Git Commit: %s\n", GitCommit)
		},
	}
}

// storage is an opened storage backend and the means to release it
type storage struct {
	store *repository.Store
	close func() error
}

// openStorage opens the backend selected by cfg.Storage.Driver.
func openStorage(cfg *config.Config, appLogger *logger.Logger, opts ...repository.StoreOption) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.New(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			migrator, err := database.NewMigrator(db)
			if err != nil {
				db.Close()
				return nil, err
			}
			if _, err := migrator.Up(); err != nil {
				db.Close()
				return nil, err
			}
		}
		backend := repository.NewPostgresBackend(db)
		return &storage{store: repository.NewStore(backend, opts...), close: backend.Close}, nil

	default:
		backend, err := repository.NewFileBackend(cfg.Storage.DataDir, appLogger)
		if err != nil {
			return nil, err
		}
		if cfg.Storage.WatchFiles {
			if err := backend.Watch(); err != nil {
				appLogger.Warnw("File watching disabled", "error", err)
			}
		}
		return &storage{store: repository.NewStore(backend, opts...), close: backend.Close}, nil
	}
}

// openCache returns the GitHub response cache and a function releasing it
func openCache(ctx context.Context, cfg *config.Config) (ports.CacheRepository, func() error, error) {
	if cfg.Cache.Driver != config.CacheDriverRedis {
		return repository.NewMemoryCache(), func() error { return nil }, nil
	}

	client, err := repository.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	cache := repository.NewRedisCache(client, "portfolio:")
	return cache, cache.Close, nil
}

func runServer(ctx context.Context, configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		m         *metrics.Metrics
		storeOpts []repository.StoreOption
	)
	if cfg.Metrics.Enabled {
		m = metrics.New()
		storeOpts = append(storeOpts, repository.WithObserver(m))
	}

	st, err := openStorage(cfg, appLogger, storeOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			appLogger.Warnw("Failed to close storage", "error", err)
		}
	}()

	cache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	if cfg.Storage.SeedDefaults {
		seeder := repository.NewSeeder(repository.NewRepositories(st.store), appLogger)
		if err := seeder.SeedDefaults(ctx); err != nil {
			return fmt.Errorf("failed to seed default content: %w", err)
		}
	}

	srv, err := server.New(cfg, server.Dependencies{
		Store:   st.store,
		Cache:   cache,
		Metrics: m,
	}, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	appLogger.Infow("Starting portfolio API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"storage", cfg.Storage.Driver,
		"cache", cfg.Cache.Driver,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	appLogger.Info("Server stopped")
	return nil
}

func runSeed(ctx context.Context, configFile string, fixture *repository.Fixture, out io.Writer) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	st, err := openStorage(cfg, appLogger)
	if err != nil {
		return err
	}
	defer st.close()

	seeded, err := repository.NewSeeder(repository.NewRepositories(st.store), appLogger).Apply(ctx, fixture)
	if err != nil {
		return err
	}

	if len(seeded) == 0 {
		fmt.Fprintln(out, "Nothing to seed, every collection already has content")
		return nil
	}

	names := make([]string, 0, len(seeded))
	for name := range seeded {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "Seeded %s: %d\n", name, seeded[name])
	}
	return nil
}

func withMigrator(configFile string, fn func(*database.Migrator) error) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	migrator, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	return fn(migrator)
}

func printMigrationResult(out io.Writer, direction string, changed bool) {
	if !changed {
		fmt.Fprintln(out, "No migrations to run")
		return
	}
	fmt.Fprintf(out, "Migration %s completed successfully\n", direction)
}
