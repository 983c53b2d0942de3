package internal

import (
	"context"
	"fmt"

	"github.com/2beens/footsies/internal/config"
	"github.com/2beens/footsies/internal/db"
	"github.com/2beens/footsies/internal/profile"
	"github.com/2beens/footsies/internal/training/session"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Storage holds the profile and session stores of the configured driver.
type Storage struct {
	Profiles profile.Store
	Sessions session.Store

	dbPool   *pgxpool.Pool
	sqliteDB *gorm.DB
	// extra prometheus collectors, e.g. the pgx pool stats
	collectors []prometheus.Collector
}

// OpenStorage opens the stores of cfg.StorageDriver, applying the schema when missing.
func OpenStorage(ctx context.Context, cfg *config.Config, tracingEnabled bool) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverSQLite:
		return openSQLiteStorage(cfg.SQLitePath)
	case config.StorageDriverPostgres:
		return openPostgresStorage(ctx, cfg, tracingEnabled)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
}

func openSQLiteStorage(path string) (*Storage, error) {
	sqliteDB, err := db.NewSQLiteDB(path, &profile.Record{}, &session.Record{})
	if err != nil {
		return nil, fmt.Errorf("new sqlite db: %w", err)
	}
	log.Debugf("using sqlite storage: %s", path)

	return &Storage{
		Profiles: profile.NewGormRepo(sqliteDB),
		Sessions: session.NewGormRepo(sqliteDB),
		sqliteDB: sqliteDB,
	}, nil
}

func openPostgresStorage(ctx context.Context, cfg *config.Config, tracingEnabled bool) (*Storage, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     cfg.PostgresPassword,
		MaxConns:       cfg.PostgresMaxConns,
		TracingEnabled: tracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if err := db.MigratePostgres(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, err
	}

	return &Storage{
		Profiles: profile.NewPgRepo(dbPool),
		Sessions: session.NewPgRepo(dbPool),
		dbPool:   dbPool,
		collectors: []prometheus.Collector{
			pgxpoolprometheus.NewCollector(
				dbPool,
				map[string]string{"db_name": cfg.PostgresDBName},
			),
		},
	}, nil
}

func (s *Storage) Close() error {
	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
	return db.CloseSQLite(s.sqliteDB)
}
