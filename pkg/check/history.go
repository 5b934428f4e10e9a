package check

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"keephy-check/pkg/model"
)

var (
	sqliteOnce sync.Once
	sqliteDB   *sql.DB
)

// historyPath resolves the local run-history database. Overridable for tests
// and CI sandboxes.
func historyPath() string {
	if p := os.Getenv("KEEPHY_CHECK_HISTORY"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "keephy-sitecheck.db")
	}
	return filepath.Join(home, ".keephy", "sitecheck.db")
}

func initSQLite() {
	sqliteOnce.Do(func() {
		path := historyPath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.Printf("history init mkdir failed: %v", err)
			return
		}
		dsn := "file:" + path + "?_pragma=busy_timeout=5000"
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			log.Printf("history open failed: %v", err)
			return
		}
		db.SetMaxOpenConns(1)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Printf("history ping failed: %v", err)
			_ = db.Close()
			return
		}
		if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS check_runs(id TEXT, mode TEXT, errors INTEGER, warnings INTEGER, success INTEGER, started_at INTEGER, finished_at INTEGER); CREATE INDEX IF NOT EXISTS idx_check_runs_started ON check_runs(started_at);`); err != nil {
			log.Printf("history init schema failed: %v", err)
			_ = db.Close()
			return
		}
		sqliteDB = db
	})
}

// RecordRun appends one checker invocation to the local history. Best effort;
// a missing or broken database never fails a check run.
func RecordRun(run model.CheckRun) {
	initSQLite()
	if sqliteDB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = sqliteDB.ExecContext(ctx,
		`INSERT INTO check_runs(id, mode, errors, warnings, success, started_at, finished_at) VALUES(?,?,?,?,?,?,?)`,
		run.ID, run.Mode, run.Errors, run.Warnings, boolInt(run.Success), run.StartedAt.Unix(), run.FinishedAt.Unix())
}

// RecentRuns returns the latest runs, newest first.
func RecentRuns(limit int) []model.CheckRun {
	initSQLite()
	if sqliteDB == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	rows, err := sqliteDB.QueryContext(ctx,
		`SELECT id, mode, errors, warnings, success, started_at, finished_at FROM check_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []model.CheckRun
	for rows.Next() {
		var run model.CheckRun
		var success int
		var started, finished int64
		if err := rows.Scan(&run.ID, &run.Mode, &run.Errors, &run.Warnings, &success, &started, &finished); err != nil {
			continue
		}
		run.Success = success != 0
		run.StartedAt = time.Unix(started, 0)
		run.FinishedAt = time.Unix(finished, 0)
		out = append(out, run)
	}
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
