package bolt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	bbolt "go.etcd.io/bbolt"
)

var (
	bucketTournaments     = []byte("tournaments")
	bucketTournamentNames = []byte("tournament_names")
	bucketTeams           = []byte("teams")
	bucketTeamNames       = []byte("team_names")
	bucketTeamOwners      = []byte("team_owners")
	bucketMatches         = []byte("match_results")
)

// Open opens (or creates) the database file and makes sure every bucket exists.
func Open(path string) (*bbolt.DB, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketTournaments, bucketTournamentNames, bucketTeams, bucketTeamNames, bucketTeamOwners, bucketMatches} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// compositeKey joins parts with a NUL separator so a prefix scan on one part never matches
// a longer sibling ("t1" vs "t10").
func compositeKey(parts ...string) []byte {
	var buf bytes.Buffer
	for _, part := range parts {
		buf.WriteString(part)
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func sequenceKey(tournamentID string, seq uint64) []byte {
	key := compositeKey(tournamentID)
	return binary.BigEndian.AppendUint64(key, seq)
}

func scanPrefix(b *bbolt.Bucket, prefix []byte, fn func(v []byte) error) error {
	c := b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

func encode(value any) ([]byte, error) {
	return sonic.Marshal(value)
}

func decode(data []byte, out any) error {
	return sonic.Unmarshal(data, out)
}
