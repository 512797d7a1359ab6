package routehandlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/coreybb/shiftmate/datastore"
	"github.com/coreybb/shiftmate/models"
)

// fakeGateway keeps records in memory and sorts them like a real backend.
type fakeGateway struct {
	mu      sync.Mutex
	records map[models.Collection][]models.Record
	nextID  int
	clock   time.Time
	err     error

	lastOrderField string
	lastDescending bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		records: map[models.Collection][]models.Record{},
		clock:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (g *fakeGateway) Insert(ctx context.Context, c models.Collection, rec models.Record) (models.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, &datastore.PersistenceError{Op: "insert", Collection: c, Err: g.err}
	}

	g.nextID++
	stored := models.Record{}
	for k, v := range rec {
		stored[k] = v
	}
	stored["id"] = fmt.Sprintf("id-%d", g.nextID)
	stored["created_at"] = g.clock
	g.clock = g.clock.Add(time.Minute)

	g.records[c] = append(g.records[c], stored)
	return stored, nil
}

func (g *fakeGateway) ListByUser(ctx context.Context, c models.Collection, userID, orderField string, descending bool) ([]models.Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastOrderField = orderField
	g.lastDescending = descending
	if g.err != nil {
		return nil, &datastore.PersistenceError{Op: "list", Collection: c, Err: g.err}
	}

	var out []models.Record
	for _, rec := range g.records[c] {
		if rec["user_id"] == userID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i][orderField].(time.Time)
		b, _ := out[j][orderField].(time.Time)
		if descending {
			return a.After(b)
		}
		return a.Before(b)
	})
	return out, nil
}

func (g *fakeGateway) ListUsers(ctx context.Context) ([]models.Record, error) {
	if g.err != nil {
		return nil, &datastore.PersistenceError{Op: "list", Collection: models.CollectionUsers, Err: g.err}
	}
	return g.records[models.CollectionUsers], nil
}

func (g *fakeGateway) Ping(ctx context.Context) error {
	return g.err
}

var errBackendDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")
