// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"spidertype/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const dayFormat = "2006-01-02"

// Store wraps SQLite access for results, streak, achievements, and XP.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			language TEXT NOT NULL,
			mode TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL,
			wpm_net INTEGER NOT NULL,
			wpm_raw INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			consistency INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			incorrect_chars INTEGER NOT NULL,
			wpm_history TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS streak (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_streak INTEGER NOT NULL,
			best_streak INTEGER NOT NULL,
			last_test_date TEXT NOT NULL,
			last_streak_update_date TEXT NOT NULL,
			last_test_day TEXT NOT NULL,
			tests_today INTEGER NOT NULL,
			total_tests INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			achievement_id TEXT PRIMARY KEY,
			unlocked_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS xp (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			total INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_created_at ON results(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertResult stores a completed test result.
func (s *Store) InsertResult(ctx context.Context, res model.SessionResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, created_at, language, mode, duration_seconds, wpm_net, wpm_raw, accuracy, consistency, errors, correct_chars, incorrect_chars, wpm_history)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		res.Timestamp.Format(time.RFC3339Nano),
		res.Language,
		res.Mode,
		res.DurationSeconds,
		res.WPMNet,
		res.WPMRaw,
		res.AccuracyPercent,
		res.ConsistencyPct,
		res.ErrorCount,
		res.CorrectChars,
		res.IncorrectChars,
		encodeHistory(res.WPMHistory),
	)
	return err
}

// ListResults returns results filtered by stats config, oldest first.
func (s *Store) ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.SessionResult, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Language != "" {
		clauses = append(clauses, "language = ?")
		args = append(args, cfg.Language)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, created_at, language, mode, duration_seconds, wpm_net, wpm_raw, accuracy, consistency, errors, correct_chars, incorrect_chars, wpm_history
		FROM results
		WHERE %s
		ORDER BY created_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.SessionResult
	for rows.Next() {
		var res model.SessionResult
		var createdAt, history string
		if err := rows.Scan(&res.ID, &createdAt, &res.Language, &res.Mode, &res.DurationSeconds,
			&res.WPMNet, &res.WPMRaw, &res.AccuracyPercent, &res.ConsistencyPct,
			&res.ErrorCount, &res.CorrectChars, &res.IncorrectChars, &history); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		res.Timestamp = parsed
		res.WPMHistory, err = decodeHistory(history)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(results) > cfg.Last {
		results = results[len(results)-cfg.Last:]
	}
	return results, nil
}

// CountPerfectResults counts stored results with 100% accuracy.
func (s *Store) CountPerfectResults(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM results WHERE accuracy >= 100`).Scan(&count)
	return count, err
}

// Streak returns the streak record, or a zero record if none exists yet.
func (s *Store) Streak(ctx context.Context) (model.StreakRecord, error) {
	var rec model.StreakRecord
	var lastTestDate, lastUpdate, lastTestDay string
	err := s.db.QueryRowContext(ctx,
		`SELECT current_streak, best_streak, last_test_date, last_streak_update_date, last_test_day, tests_today, total_tests
		 FROM streak WHERE id = 1`).
		Scan(&rec.CurrentStreak, &rec.BestStreak, &lastTestDate, &lastUpdate, &lastTestDay, &rec.TestsToday, &rec.TotalTests)
	if errors.Is(err, sql.ErrNoRows) {
		return model.StreakRecord{}, nil
	}
	if err != nil {
		return model.StreakRecord{}, err
	}
	if rec.LastTestDate, err = parseDay(lastTestDate); err != nil {
		return model.StreakRecord{}, err
	}
	if rec.LastStreakUpdateDate, err = parseDay(lastUpdate); err != nil {
		return model.StreakRecord{}, err
	}
	if rec.LastTestDay, err = parseDay(lastTestDay); err != nil {
		return model.StreakRecord{}, err
	}
	return rec, nil
}

// SaveStreak upserts the single streak record.
func (s *Store) SaveStreak(ctx context.Context, rec model.StreakRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO streak (id, current_streak, best_streak, last_test_date, last_streak_update_date, last_test_day, tests_today, total_tests)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			current_streak = excluded.current_streak,
			best_streak = excluded.best_streak,
			last_test_date = excluded.last_test_date,
			last_streak_update_date = excluded.last_streak_update_date,
			last_test_day = excluded.last_test_day,
			tests_today = excluded.tests_today,
			total_tests = excluded.total_tests`,
		rec.CurrentStreak,
		rec.BestStreak,
		rec.LastTestDate.Format(dayFormat),
		rec.LastStreakUpdateDate.Format(dayFormat),
		rec.LastTestDay.Format(dayFormat),
		rec.TestsToday,
		rec.TotalTests,
	)
	return err
}

// UnlockedAchievements returns the set of unlocked achievement IDs.
func (s *Store) UnlockedAchievements(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT achievement_id FROM achievements`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	unlocked := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		unlocked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return unlocked, nil
}

// ListUnlocked returns all unlocks with their timestamps, oldest first.
func (s *Store) ListUnlocked(ctx context.Context) ([]model.UnlockedAchievement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT achievement_id, unlocked_at FROM achievements ORDER BY unlocked_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var out []model.UnlockedAchievement
	for rows.Next() {
		var ua model.UnlockedAchievement
		var unlockedAt string
		if err := rows.Scan(&ua.AchievementID, &unlockedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, unlockedAt)
		if err != nil {
			return nil, err
		}
		ua.UnlockedAt = parsed
		out = append(out, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Unlock appends an achievement unlock. Duplicate unlocks are no-ops.
func (s *Store) Unlock(ctx context.Context, ua model.UnlockedAchievement) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO achievements (achievement_id, unlocked_at) VALUES (?, ?)`,
		ua.AchievementID,
		ua.UnlockedAt.Format(time.RFC3339Nano),
	)
	return err
}

// TotalXP returns cumulative XP, zero if none recorded yet.
func (s *Store) TotalXP(ctx context.Context) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT total FROM xp WHERE id = 1`).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return total, err
}

// SetTotalXP upserts cumulative XP.
func (s *Store) SetTotalXP(ctx context.Context, total int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO xp (id, total) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET total = excluded.total`,
		total,
	)
	return err
}

func encodeHistory(history []int) string {
	parts := make([]string, len(history))
	for i, v := range history {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func decodeHistory(encoded string) ([]int, error) {
	if encoded == "" {
		return nil, nil
	}
	parts := strings.Split(encoded, ",")
	out := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("malformed wpm history: %w", err)
		}
		out[i] = v
	}
	return out, nil
}

func parseDay(value string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, value, time.Local)
}
