package history

import (
	"bytes"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"github.com/napolitain/microciv/internal/converter"
	"github.com/napolitain/microciv/internal/models"
)

// FinalState is the stored end state of a game
type FinalState struct {
	GameID string `db:"game_id"`
	Turn   int    `db:"turn"`
	Won    bool   `db:"won"`
	Digest string `db:"digest"`
	Blob   []byte `db:"snapshot"`
}

// Digest returns the hex BLAKE3 hash of a snapshot's protobuf encoding.
// Two runs that end in the same state share a digest.
func Digest(s models.Snapshot) (string, error) {
	data, err := converter.MarshalSnapshot(s)
	if err != nil {
		return "", err
	}
	return hashBLAKE3(data), nil
}

// FinishGame stores the final snapshot of a game, lz4 compressed
func (db *DB) FinishGame(gameID string, s models.Snapshot) error {
	data, err := converter.MarshalSnapshot(s)
	if err != nil {
		return err
	}
	blob, err := compressLZ4(data)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	_, err = db.conn.Exec(
		`INSERT OR REPLACE INTO final_states (game_id, turn, won, digest, snapshot) VALUES (?, ?, ?, ?, ?)`,
		gameID, s.Turn, s.Won, hashBLAKE3(data), blob,
	)
	if err != nil {
		return fmt.Errorf("finish game %s: %w", gameID, err)
	}
	return nil
}

// FinalSnapshot loads and verifies the stored end state of a game
func (db *DB) FinalSnapshot(gameID string) (models.Snapshot, FinalState, error) {
	var fs FinalState
	err := db.conn.Get(&fs, `SELECT game_id, turn, won, digest, snapshot FROM final_states WHERE game_id = ?`, gameID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, fs, fmt.Errorf("no final state for game %s", gameID)
	}
	if err != nil {
		return models.Snapshot{}, fs, err
	}

	data, err := decompressLZ4(fs.Blob)
	if err != nil {
		return models.Snapshot{}, fs, fmt.Errorf("decompress snapshot: %w", err)
	}
	if got := hashBLAKE3(data); got != fs.Digest {
		return models.Snapshot{}, fs, fmt.Errorf("snapshot digest mismatch for game %s", gameID)
	}
	s, err := converter.UnmarshalSnapshot(data)
	return s, fs, err
}

func compressLZ4(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressLZ4(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, lz4.NewReader(bytes.NewReader(src))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hashBLAKE3(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
