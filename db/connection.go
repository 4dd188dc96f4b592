package db

import (
	"context"
	"database/sql"
	"fmt"

	"career-guide/config"
	"career-guide/logger"
	"career-guide/storage"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

var DB *sql.DB

var Rdb *redis.Client

// InitDB opens the postgres pool used by the postgres storage driver and
// creates the collections table.
func InitDB(cfg config.Config) error {
	var err error
	DB, err = sql.Open("postgres", cfg.DBConnString())
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err = DB.Ping(); err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	if err := createTables(); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}

	logger.Info("Postgres connection opened (db=%s)", cfg.DBName)
	return nil
}

func createTables() error {
	if _, err := DB.Exec(storage.CollectionsTable); err != nil {
		return fmt.Errorf("error creating collections table: %w", err)
	}
	return nil
}

// ConnectRedis opens the client used by the redis storage driver.
func ConnectRedis(ctx context.Context, cfg config.Config) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := Rdb.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("error connecting to redis: %w", err)
	}

	logger.Info("Redis connection opened (%s)", cfg.RedisAddr)
	return nil
}

// Close releases whichever connections were opened.
func Close() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			logger.Error("Error closing database: %v", err)
		}
	}
	if Rdb != nil {
		if err := Rdb.Close(); err != nil {
			logger.Error("Error closing redis: %v", err)
		}
	}
}
