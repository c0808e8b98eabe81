// Package journal implements a persistent record of the responses of the
// transactions submitted by a client. The records are kept in a bbolt
// database (https://github.com/etcd-io/bbolt) and indexed by transaction
// identifier.
package journal

import (
	"bytes"
	"time"

	"go.etcd.io/bbolt"
	"golang.org/x/xerrors"
)

var bucketName = []byte("responses")

// Journal is a journal stored in a bbolt database.
type Journal struct {
	bolt *bbolt.DB
}

// lockTimeout is the maximum wait for the lock of a database used by another
// process.
const lockTimeout = time.Second

// Open opens the database at the path, or creates it if it does not exist.
func Open(path string) (*Journal, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, xerrors.Errorf("failed to open db: %v", err)
	}

	err = db.Update(func(txn *bbolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, xerrors.Errorf("failed to create bucket: %v", err)
	}

	return &Journal{bolt: db}, nil
}

// Write stores the value under the key. An existing record is replaced.
func (j *Journal) Write(key string, value []byte) error {
	return j.bolt.Update(func(txn *bbolt.Tx) error {
		return txn.Bucket(bucketName).Put([]byte(key), value)
	})
}

// Read returns the record of the key, or nil if it does not exist.
func (j *Journal) Read(key string) ([]byte, error) {
	var value []byte

	err := j.bolt.View(func(txn *bbolt.Tx) error {
		data := txn.Bucket(bucketName).Get([]byte(key))
		if data != nil {
			// The memory of the database is only valid during the
			// transaction.
			value = append([]byte{}, data...)
		}

		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("failed to read: %v", err)
	}

	return value, nil
}

// Scan iterates over the records whose key starts with the prefix, in the
// lexicographic order of the keys. The iteration stops when the callback
// returns an error.
func (j *Journal) Scan(prefix string, fn func(key string, value []byte) error) error {
	return j.bolt.View(func(txn *bbolt.Tx) error {
		cursor := txn.Bucket(bucketName).Cursor()
		p := []byte(prefix)

		for k, v := cursor.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = cursor.Next() {
			err := fn(string(k), v)
			if err != nil {
				return xerrors.Errorf("callback failed: %v", err)
			}
		}

		return nil
	})
}

// Close closes the database. Any call after this one returns an error.
func (j *Journal) Close() error {
	return j.bolt.Close()
}
