package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"appointment-booking/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"go.uber.org/zap"
)

// PgxIface is what the repositories need from Postgres. *pgxpool.Pool
// satisfies it directly and pgxmock stands in for it in tests.
type PgxIface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var _ PgxIface = (*pgxpool.Pool)(nil)

// RequiredTables must exist before the service accepts bookings.
var RequiredTables = []string{"appointments", "feedback", "admins"}

const connectTimeout = 5 * time.Second

// InitDB opens the pool, checks the connection and verifies the schema.
// In debug mode every statement is traced through the logger.
func InitDB(ctx context.Context, config utils.DatabaseConfig, logger *zap.Logger, debug bool) (PgxIface, error) {
	poolConfig, err := pgxpool.ParseConfig(connString(config))
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	if debug {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   QueryLogger(logger),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := pool.Ping(checkCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping %s: %w", config.Name, err)
	}
	if err := VerifySchema(checkCtx, pool, RequiredTables...); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// connString escapes credentials so passwords may contain any character.
func connString(config utils.DatabaseConfig) string {
	sslMode := config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(config.User, config.Password),
		Host:     net.JoinHostPort(config.Host, config.Port),
		Path:     "/" + config.Name,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return dsn.String()
}

// VerifySchema fails with the first missing table.
func VerifySchema(ctx context.Context, db PgxIface, tables ...string) error {
	for _, table := range tables {
		var exists bool
		if err := db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, table).Scan(&exists); err != nil {
			return fmt.Errorf("check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("table %s is missing; apply the schema before starting", table)
		}
	}
	return nil
}

// QueryLogger adapts pgx trace output to zap.
func QueryLogger(logger *zap.Logger) tracelog.Logger {
	logger = logger.With(zap.String("component", "postgres"))

	return tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		fields := make([]zap.Field, 0, len(data))
		for k, v := range data {
			fields = append(fields, zap.Any(k, v))
		}

		switch level {
		case tracelog.LogLevelError:
			logger.Error(msg, fields...)
		case tracelog.LogLevelWarn:
			logger.Warn(msg, fields...)
		case tracelog.LogLevelInfo:
			logger.Info(msg, fields...)
		default:
			logger.Debug(msg, fields...)
		}
	})
}
