package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gastos/internal/contextutil"
	"gastos/logging"

	_ "github.com/go-sql-driver/mysql"
)

// --- INIT START --- //

func Init() (*sql.DB, error) {
	var db *sql.DB
	var err error
	var dbname string

	username := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASS")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	dbname = os.Getenv("DB_NAME")
	fullDsn := os.Getenv("FULL_DSN")

	if dbname == "" {
		dbname = "gastos"
	}

	var adminDsn string
	if fullDsn != "" {
		parts := strings.Split(fullDsn, "/")
		adminDsn = strings.Join(parts[:len(parts)-1], "/") + "/"
	} else {
		if username == "" || password == "" || host == "" || port == "" {
			return nil, fmt.Errorf("missing required DB environment variables")
		}
		adminDsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/?parseTime=true", username, password, host, port)
	}

	logging.Logger.Info("Connecting to MySQL server for initialization...")
	adminDb, err := sql.Open("mysql", adminDsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open admin mysql handle: %v", err)
	}
	connected := false
	for i := 0; i < 15; i++ {
		if err := adminDb.Ping(); err == nil {
			connected = true
			break
		}
		logging.Logger.Warnf("Database not ready, retrying... (%d/15)", i+1)
		time.Sleep(3 * time.Second)
	}
	if !connected {
		return nil, fmt.Errorf("database unreachable after multiple attempts")
	}

	var dbnameExistence string
	checkDbnameExistQuery := "SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?"
	err = adminDb.QueryRow(checkDbnameExistQuery, dbname).Scan(&dbnameExistence)

	if err == sql.ErrNoRows {
		logging.Logger.Infof("Database '%s' does not exist, creating...", dbname)
		createDbSql := fmt.Sprintf("CREATE DATABASE `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;", dbname)
		if _, err := adminDb.Exec(createDbSql); err != nil {
			adminDb.Close()
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	} else if err != nil {
		adminDb.Close()
		return nil, fmt.Errorf("failed to check database existence: %v", err)
	}

	adminDb.Close()

	var finalDsn string
	if fullDsn != "" {
		finalDsn = fullDsn
	} else {
		finalDsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", username, password, host, port, dbname)
	}

	logging.Logger.Info("Connecting to database...")
	db, err = sql.Open("mysql", finalDsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database handle: %v", err)
	}

	// The ledger lives under two keys in a single kv table; no schema
	// versioning (unknown shapes degrade to defaults on read).
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ledger_kv (
        k VARCHAR(64) PRIMARY KEY,
        v MEDIUMTEXT NOT NULL,
        updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    );`); err != nil {
		return nil, fmt.Errorf("failed to ensure ledger_kv table: %v", err)
	}

	logging.Logger.Info("Connected to database successfully")
	return db, nil
}

// --- INIT END --- //

type MySQLKV struct {
	db *sql.DB
}

func NewMySQLKV(db *sql.DB) *MySQLKV {
	return &MySQLKV{db: db}
}

func (mySql *MySQLKV) Type() string {
	return "mysql"
}

func (mySql *MySQLKV) Get(ctx context.Context, key string) (string, bool, error) {
	traceID := contextutil.TraceIDFromContext(ctx)

	var value string
	err := mySql.db.QueryRowContext(ctx, "SELECT v FROM ledger_kv WHERE k = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		logging.Logger.Errorf("[TraceID=%s] | failed to read key '%s' in Storage.Get() function | Error: %v", traceID, key, err)
		return "", false, fmt.Errorf("failed to read '%s' from storage: %w", key, err)
	}
	return value, true, nil
}

func (mySql *MySQLKV) Set(ctx context.Context, key string, value string) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	query := "INSERT INTO ledger_kv (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v);"
	if _, err := mySql.db.ExecContext(ctx, query, key, value); err != nil {
		logging.Logger.Errorf("[TraceID=%s] | failed to write key '%s' in Storage.Set() function | Error: %v", traceID, key, err)
		return fmt.Errorf("failed to write '%s' to storage: %w", key, err)
	}
	return nil
}
