package database

import (
	"context"
	"fmt"
	"ledger/src/config"
	aws_handler "ledger/src/utils/aws"

	"github.com/jackc/pgx/v5/pgxpool"
)

func SetupDB(cfg *config.Config) (*pgxpool.Pool, error) {
	password := cfg.Databases.SQL.Password
	if cfg.Databases.SQL.PasswordSecretARN != "" {
		handler, err := aws_handler.NewAWSHandler(cfg.Databases.SQL.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to init AWS handler: %w", err)
		}
		password, err = handler.SecretManager.GetSecretValue(cfg.Databases.SQL.PasswordSecretARN)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch db password secret: %w", err)
		}
	}

	dsn := cfg.Databases.SQL.ConnectionString
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Databases.SQL.Host,
			cfg.Databases.SQL.Username,
			password,
			cfg.Databases.SQL.Database,
			cfg.Databases.SQL.Port)
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %v\nPlease ensure the database is running and accessible with the provided credentials", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v\nPlease check your database configuration and ensure it's running", err)
	}
	return pool, nil
}
