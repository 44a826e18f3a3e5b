// Package history records played games, turn reports and raids in SQLite.
package history

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/napolitain/microciv/internal/models"
)

// DB wraps a SQLite connection holding game history
type DB struct {
	conn *sqlx.DB
}

// GameRow is one recorded game
type GameRow struct {
	ID        string    `db:"id"`
	Seed      int64     `db:"seed"`
	Terrain   string    `db:"terrain"`
	Label     string    `db:"label"`
	CreatedAt time.Time `db:"created_at"`
}

// TurnRow is one resolved turn
type TurnRow struct {
	GameID        string  `db:"game_id"`
	Turn          int     `db:"turn"`
	Season        string  `db:"season"`
	SeasonChanged bool    `db:"season_changed"`
	Event         string  `db:"event"`
	Food          float64 `db:"food"`
	Wood          float64 `db:"wood"`
	Stone         float64 `db:"stone"`
	Science       float64 `db:"science"`
	FoodConsumed  float64 `db:"food_consumed"`
	Growth        int     `db:"growth"`
	Starved       int     `db:"starved"`
	Evicted       int     `db:"evicted"`
	Raided        bool    `db:"raided"`
	Won           bool    `db:"won"`
}

// RaidRow is one resolved raid
type RaidRow struct {
	GameID   string  `db:"game_id"`
	Turn     int     `db:"turn"`
	Strength int     `db:"strength"`
	Defense  int     `db:"defense"`
	Repelled bool    `db:"repelled"`
	People   int     `db:"people"`
	Building string  `db:"building"`
	Lost     float64 `db:"lost"`
	Looted   float64 `db:"looted"`
}

// Open opens or creates a history database at the given path
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		terrain TEXT NOT NULL,
		label TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turns (
		game_id TEXT NOT NULL REFERENCES games(id),
		turn INTEGER NOT NULL,
		season TEXT NOT NULL,
		season_changed INTEGER NOT NULL,
		event TEXT NOT NULL,
		food REAL NOT NULL,
		wood REAL NOT NULL,
		stone REAL NOT NULL,
		science REAL NOT NULL,
		food_consumed REAL NOT NULL,
		growth INTEGER NOT NULL,
		starved INTEGER NOT NULL,
		evicted INTEGER NOT NULL,
		raided INTEGER NOT NULL,
		won INTEGER NOT NULL,
		PRIMARY KEY (game_id, turn)
	);

	CREATE TABLE IF NOT EXISTS raids (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL REFERENCES games(id),
		turn INTEGER NOT NULL,
		strength INTEGER NOT NULL,
		defense INTEGER NOT NULL,
		repelled INTEGER NOT NULL,
		people INTEGER NOT NULL,
		building TEXT NOT NULL,
		lost REAL NOT NULL,
		looted REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS final_states (
		game_id TEXT PRIMARY KEY REFERENCES games(id),
		turn INTEGER NOT NULL,
		won INTEGER NOT NULL,
		digest TEXT NOT NULL,
		snapshot BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_raids_game ON raids(game_id, turn);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// StartGame registers a game before its turns are recorded
func (db *DB) StartGame(id string, seed int64, terrain models.TerrainID, label string) error {
	_, err := db.conn.Exec(
		`INSERT INTO games (id, seed, terrain, label, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, seed, string(terrain), label, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("start game %s: %w", id, err)
	}
	return nil
}

// RecordTurn stores a resolved turn and its raid, if any. Unresolved reports
// (ending a turn after victory) are ignored.
func (db *DB) RecordTurn(gameID string, r models.TurnReport) error {
	return db.RecordTurns(gameID, []models.TurnReport{r})
}

// RecordTurns stores several turn reports in one transaction
func (db *DB) RecordTurns(gameID string, reports []models.TurnReport) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range reports {
		if !r.Resolved {
			continue
		}
		row := TurnRow{
			GameID:        gameID,
			Turn:          r.Turn,
			Season:        string(r.Season),
			SeasonChanged: r.SeasonChanged,
			Event:         string(r.Event),
			Food:          r.Produced.Food,
			Wood:          r.Produced.Wood,
			Stone:         r.Produced.Stone,
			Science:       r.Produced.Science,
			FoodConsumed:  r.FoodConsumed,
			Growth:        r.Growth,
			Starved:       r.Starved,
			Evicted:       r.Evicted,
			Raided:        r.Raid != nil,
			Won:           r.Won,
		}
		if _, err := tx.NamedExec(`INSERT INTO turns
			(game_id, turn, season, season_changed, event, food, wood, stone, science,
			 food_consumed, growth, starved, evicted, raided, won)
			VALUES (:game_id, :turn, :season, :season_changed, :event, :food, :wood, :stone, :science,
			 :food_consumed, :growth, :starved, :evicted, :raided, :won)`, row); err != nil {
			return fmt.Errorf("record turn %d: %w", r.Turn, err)
		}

		if r.Raid == nil {
			continue
		}
		raid := RaidRow{
			GameID:   gameID,
			Turn:     r.Raid.Turn,
			Strength: r.Raid.Strength,
			Defense:  r.Raid.Defense,
			Repelled: r.Raid.Repelled,
			People:   r.Raid.People,
			Building: string(r.Raid.Building),
			Lost:     r.Raid.Losses.Total(),
			Looted:   r.Raid.Loot.Total(),
		}
		if _, err := tx.NamedExec(`INSERT INTO raids
			(game_id, turn, strength, defense, repelled, people, building, lost, looted)
			VALUES (:game_id, :turn, :strength, :defense, :repelled, :people, :building, :lost, :looted)`, raid); err != nil {
			return fmt.Errorf("record raid on turn %d: %w", r.Raid.Turn, err)
		}
	}
	return tx.Commit()
}

// Games returns every recorded game, oldest first
func (db *DB) Games() ([]GameRow, error) {
	var games []GameRow
	err := db.conn.Select(&games, `SELECT id, seed, terrain, label, created_at FROM games ORDER BY created_at, id`)
	return games, err
}

// Turns returns the recorded turns of a game in order
func (db *DB) Turns(gameID string) ([]TurnRow, error) {
	var turns []TurnRow
	err := db.conn.Select(&turns, `SELECT game_id, turn, season, season_changed, event, food, wood, stone, science,
		food_consumed, growth, starved, evicted, raided, won
		FROM turns WHERE game_id = ? ORDER BY turn`, gameID)
	return turns, err
}

// Raids returns the recorded raids of a game in order
func (db *DB) Raids(gameID string) ([]RaidRow, error) {
	var raids []RaidRow
	err := db.conn.Select(&raids, `SELECT game_id, turn, strength, defense, repelled, people, building, lost, looted
		FROM raids WHERE game_id = ? ORDER BY turn, id`, gameID)
	return raids, err
}
