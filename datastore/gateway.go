package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreybb/shiftmate/models"
)

// Gateway is the persistence surface the handlers depend on.
// It owns no business rules.
type Gateway interface {
	// Insert stores rec in collection c and returns the stored row,
	// including the assigned id and created_at.
	Insert(ctx context.Context, c models.Collection, rec models.Record) (models.Record, error)
	// ListByUser returns every record of userID in c ordered by orderField.
	ListByUser(ctx context.Context, c models.Collection, userID, orderField string, descending bool) ([]models.Record, error)
}

type UserLister interface {
	ListUsers(ctx context.Context) ([]models.Record, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrPersistence matches every error returned by a gateway.
var ErrPersistence = errors.New("persistence failure")

// PersistenceError wraps a backend failure. Its message is for logs only.
type PersistenceError struct {
	Op         string
	Collection models.Collection
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func failure(op string, c models.Collection, err error) error {
	return &PersistenceError{Op: op, Collection: c, Err: err}
}

// Columns known per collection. Names outside these sets never reach SQL.
var collectionColumns = map[models.Collection][]string{
	models.CollectionShifts:          {"id", "user_id", "start_time", "end_time", "type", "created_at"},
	models.CollectionMoods:           {"id", "user_id", "mood_level", "note", "created_at"},
	models.CollectionHydrationEvents: {"id", "user_id", "amount_ml", "created_at"},
	models.CollectionUsers:           {"id", "email", "name", "created_at"},
}

// Columns holding timestamps, across all collections.
var timeColumns = map[string]bool{
	"start_time": true,
	"end_time":   true,
	"created_at": true,
}

func hasColumn(c models.Collection, column string) bool {
	for _, col := range collectionColumns[c] {
		if col == column {
			return true
		}
	}
	return false
}

func checkRecordCollection(c models.Collection) error {
	switch c {
	case models.CollectionShifts, models.CollectionMoods, models.CollectionHydrationEvents:
		return nil
	}
	return fmt.Errorf("unknown collection %q", string(c))
}
