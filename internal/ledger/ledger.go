// Package ledger records completed rounds in a SQLite database.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	_ "modernc.org/sqlite"

	"github.com/lox/dicepoker/internal/hand"
	"github.com/lox/dicepoker/internal/round"
	"github.com/lox/dicepoker/internal/roundid"
)

// Entry is one recorded round.
type Entry struct {
	ID       string    `json:"id"`
	Session  string    `json:"session"`
	Recorded time.Time `json:"recorded"`
	round.Result
}

// Totals summarises every recorded round.
type Totals struct {
	Rounds     int
	Staked     int
	Returned   int
	Net        int
	Wins       int
	BestPayout int
	ByCategory map[hand.Category]int
}

// Ledger is the round history store.
type Ledger struct {
	db     *sql.DB
	clock  quartz.Clock
	ids    *roundid.Generator
	logger *log.Logger
}

// Open opens or creates the database at path and applies migrations. Use
// ":memory:" for a throwaway ledger.
func Open(ctx context.Context, path string, clock quartz.Clock, logger *log.Logger) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := migrate(ctx, db, func() int64 { return clock.Now().UnixMilli() }); err != nil {
		db.Close()
		return nil, err
	}

	return &Ledger{
		db:     db,
		clock:  clock,
		ids:    roundid.NewGenerator(clock, nil),
		logger: logger.WithPrefix("ledger"),
	}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record stores a completed round under the given session name.
func (l *Ledger) Record(ctx context.Context, session string, r round.Result) (Entry, error) {
	e := Entry{
		ID:       l.ids.New(),
		Session:  session,
		Recorded: l.clock.Now(),
		Result:   r,
	}

	_, err := l.db.ExecContext(ctx, `INSERT INTO rounds (
		id, session, round, wager, one_roll_stake, all_red_stake,
		opening_faces, opening_category, opening_multiplier, one_roll_payout,
		final_faces, category, multiplier, payout,
		all_red, all_red_payout, net, credit, elapsed_ms, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Session, r.Round, r.Wager, r.OneRollStake, r.AllRedStake,
		r.OpeningFaces.String(), string(r.OpeningHand.Category), r.OpeningHand.Multiplier, r.OneRollPayout,
		r.FinalFaces.String(), string(r.FinalHand.Category), r.FinalHand.Multiplier, r.Payout,
		r.AllRed, r.AllRedPayout, r.Net(), r.Credit, r.Elapsed.Milliseconds(), e.Recorded.UnixMilli(),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record round: %w", err)
	}
	l.logger.Debug("Recorded round", "id", e.ID, "session", session, "round", r.Round, "net", r.Net())
	return e, nil
}

// Recent returns up to limit rounds, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT
		id, session, round, wager, one_roll_stake, all_red_stake,
		opening_faces, opening_category, opening_multiplier, one_roll_payout,
		final_faces, category, multiplier, payout,
		all_red, all_red_payout, credit, elapsed_ms, created_at
	FROM rounds ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                    Entry
			opening, final       string
			openingCat, category string
			elapsedMS, created   int64
		)
		if err := rows.Scan(
			&e.ID, &e.Session, &e.Round, &e.Wager, &e.OneRollStake, &e.AllRedStake,
			&opening, &openingCat, &e.OpeningHand.Multiplier, &e.OneRollPayout,
			&final, &category, &e.FinalHand.Multiplier, &e.Payout,
			&e.AllRed, &e.AllRedPayout, &e.Credit, &elapsedMS, &created,
		); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		if e.OpeningFaces, err = parseFaces(opening); err != nil {
			return nil, fmt.Errorf("round %s: %w", e.ID, err)
		}
		if e.FinalFaces, err = parseFaces(final); err != nil {
			return nil, fmt.Errorf("round %s: %w", e.ID, err)
		}
		e.OpeningHand.Category = hand.Category(openingCat)
		e.FinalHand.Category = hand.Category(category)
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		e.Recorded = time.UnixMilli(created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rounds: %w", err)
	}
	return entries, nil
}

// Totals aggregates every recorded round.
func (l *Ledger) Totals(ctx context.Context) (Totals, error) {
	t := Totals{ByCategory: map[hand.Category]int{}}
	err := l.db.QueryRowContext(ctx, `SELECT
		COUNT(1),
		COALESCE(SUM(wager + one_roll_stake + all_red_stake), 0),
		COALESCE(SUM(payout + one_roll_payout + all_red_payout), 0),
		COALESCE(SUM(net), 0),
		COALESCE(SUM(CASE WHEN multiplier > 0 THEN 1 ELSE 0 END), 0),
		COALESCE(MAX(payout), 0)
	FROM rounds`).Scan(&t.Rounds, &t.Staked, &t.Returned, &t.Net, &t.Wins, &t.BestPayout)
	if err != nil {
		return t, fmt.Errorf("failed to total rounds: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, `SELECT category, COUNT(1) FROM rounds GROUP BY category`)
	if err != nil {
		return t, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return t, fmt.Errorf("failed to scan category: %w", err)
		}
		t.ByCategory[hand.Category(c)] = n
	}
	return t, rows.Err()
}

// Monitor returns a round monitor that records every completed round.
// Failures are logged; the game carries on without history.
func (l *Ledger) Monitor(ctx context.Context, session string) round.Monitor {
	return round.ResultFunc(func(r round.Result) {
		if _, err := l.Record(ctx, session, r); err != nil {
			l.logger.Error("Failed to record round", "round", r.Round, "error", err)
		}
	})
}

func parseFaces(s string) (hand.Faces, error) {
	var f hand.Faces
	fields := strings.Fields(s)
	if len(fields) != hand.Size {
		return f, fmt.Errorf("expected %d faces, got %q", hand.Size, s)
	}
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil || v < 1 || v > 6 {
			return f, fmt.Errorf("invalid face %q", field)
		}
		f[i] = v
	}
	return f, nil
}
