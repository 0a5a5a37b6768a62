// Package store connects to the data store and manages session records
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"slices"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/perchapp/perch/internal/models"
	"github.com/perchapp/perch/internal/timeutil"
)

const (
	sessionBucket = "sessions"
	handleBucket  = "handles"
	dayBucket     = "days"
)

var (
	errPerchRunning = errors.New(
		"is Perch already running? Only one instance can be active at a time",
	)
	errSessionNotFound = errors.New(
		"session not found in the store",
	)
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// CreateSession stores a new session record keyed by its start time and
// indexes it under its handle.
func (c *Client) CreateSession(sess *models.Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	if sess.Status == "" {
		sess.Status = models.StatusRunning
	}

	key := timeutil.ToKey(sess.StartedAt)

	value, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	err = c.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(sessionBucket)).Put(key, value)
		if err != nil {
			return err
		}

		return tx.Bucket([]byte(handleBucket)).Put([]byte(sess.ID), key)
	})
	if err != nil {
		return "", err
	}

	return sess.ID, nil
}

// Heartbeat refreshes the presence data for a running session. Heartbeats
// against sessions that already reached a terminal status are dropped so a
// straggler update cannot resurrect a closed record.
func (c *Client) Heartbeat(id string, remaining int) error {
	return c.mutateSession(id, func(sess *models.Session) bool {
		if sess.Terminal() {
			return false
		}

		sess.LastHeartbeat = time.Now()
		sess.Remaining = remaining

		return true
	})
}

// CompleteSession marks a session as completed and adds its duration to the
// daily total. Completing an already-terminal session is a no-op.
func (c *Client) CompleteSession(
	id string,
	actual time.Duration,
	coins int,
) error {
	var done *models.Session

	err := c.mutateSession(id, func(sess *models.Session) bool {
		if sess.Terminal() {
			return false
		}

		sess.Status = models.StatusCompleted
		sess.EndedAt = time.Now()
		sess.Actual = actual
		sess.CoinsEarned = coins
		sess.Remaining = 0

		done = sess

		return true
	})
	if err != nil || done == nil {
		return err
	}

	return c.addToDayTotal(done.EndedAt, actual)
}

// AbandonSession marks a session as abandoned by its owner.
func (c *Client) AbandonSession(id string) error {
	return c.endSession(id, models.StatusAbandoned)
}

// FailSession marks a session as failed.
func (c *Client) FailSession(id string) error {
	return c.endSession(id, models.StatusFailed)
}

func (c *Client) endSession(id string, status models.SessionStatus) error {
	return c.mutateSession(id, func(sess *models.Session) bool {
		if sess.Terminal() {
			return false
		}

		sess.Status = status
		sess.EndedAt = time.Now()
		sess.Remaining = 0

		return true
	})
}

// mutateSession loads a session by handle, applies fn, and writes the result
// back if fn reports a change.
func (c *Client) mutateSession(
	id string,
	fn func(sess *models.Session) bool,
) error {
	return c.Update(func(tx *bolt.Tx) error {
		key := tx.Bucket([]byte(handleBucket)).Get([]byte(id))
		if key == nil {
			return errSessionNotFound
		}

		b := tx.Bucket([]byte(sessionBucket))

		sessBytes := b.Get(key)
		if len(sessBytes) == 0 {
			return errSessionNotFound
		}

		var sess models.Session

		err := json.Unmarshal(sessBytes, &sess)
		if err != nil {
			return err
		}

		if !fn(&sess) {
			return nil
		}

		value, err := json.Marshal(&sess)
		if err != nil {
			return err
		}

		return b.Put(key, value)
	})
}

func (c *Client) addToDayTotal(day time.Time, d time.Duration) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(dayBucket))
		key := timeutil.DayKey(day)

		var total int64

		if v := b.Get(key); len(v) != 0 {
			err := json.Unmarshal(v, &total)
			if err != nil {
				return err
			}
		}

		total += int64(d.Seconds())

		value, err := json.Marshal(total)
		if err != nil {
			return err
		}

		return b.Put(key, value)
	})
}

// TotalToday returns the total completed focus time for the day the given
// time falls on.
func (c *Client) TotalToday(now time.Time) (time.Duration, error) {
	var total int64

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(dayBucket)).Get(timeutil.DayKey(now))
		if len(v) == 0 {
			return nil
		}

		return json.Unmarshal(v, &total)
	})
	if err != nil {
		return 0, err
	}

	return time.Duration(total) * time.Second, nil
}

// GetSessions returns all sessions that started within the given time bounds,
// optionally narrowed to a set of locations.
func (c *Client) GetSessions(
	startTime, endTime time.Time,
	locations []string,
) ([]*models.Session, error) {
	var b [][]byte

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()
		min := timeutil.ToKey(startTime)
		max := timeutil.ToKey(endTime)

		//nolint:ineffassign,staticcheck // due to how boltdb works
		sk, sv := cur.Seek(min)
		// get the previous session so as to check if
		// it ended within the specified time bounds
		pk, pv := cur.Prev()
		if pk != nil {
			var sess models.Session

			err := json.Unmarshal(pv, &sess)
			if err != nil {
				return err
			}

			// include session in results if it ended
			// within the bounds of the specified time period
			if sess.EndedAt.After(startTime) {
				sk, sv = pk, pv
			} else {
				sk, sv = cur.Next()
			}
		} else {
			sk, sv = cur.Seek(min)
		}

		for k, v := sk, sv; k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			if len(locations) == 0 {
				b = append(b, v)
				continue
			}

			var sess models.Session

			err := json.Unmarshal(v, &sess)
			if err != nil {
				return err
			}

			if slices.Contains(locations, sess.Location) {
				b = append(b, v)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sessions := make([]*models.Session, 0, len(b))

	for _, v := range b {
		sess := &models.Session{}

		err = json.Unmarshal(v, sess)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, sess)
	}

	return sessions, nil
}

// DeleteSessions deletes one or more saved sessions along with their handle
// index entries.
func (c *Client) DeleteSessions(sessions []*models.Session) error {
	return c.Update(func(tx *bolt.Tx) error {
		for i := range sessions {
			sess := sessions[i]
			key := timeutil.ToKey(sess.StartedAt)

			err := tx.Bucket([]byte(sessionBucket)).Delete(key)
			if err != nil {
				return err
			}

			err = tx.Bucket([]byte(handleBucket)).Delete([]byte(sess.ID))
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errPerchRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{sessionBucket, handleBucket, dayBucket} {
			_, err := tx.CreateBucketIfNotExists([]byte(name))
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
