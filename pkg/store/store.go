// Package store keeps a history of routing runs.
//
// A [Run] records the component that was routed, the options that shaped
// the routing, and the resulting layout and netlist, so a run can be looked
// up again by ID. Two backends implement [Store]:
//
//   - [FileStore] for the CLI, one JSON file per run
//   - [MongoStore] for the API server, one document per run
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/fiberroute/pkg/cache"
	"github.com/matzehuels/fiberroute/pkg/graph"
)

// ErrNotFound is returned by Get when no run has the ID.
var ErrNotFound = errors.New("run not found")

// Store persists routing runs.
type Store interface {
	Save(ctx context.Context, run *Run) error
	// Get returns the run with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)
	// List returns up to limit runs, newest first. A limit of zero lists all.
	List(ctx context.Context, limit int) ([]*Run, error)
	Close() error
}

// Run is one routed component.
type Run struct {
	ID            string             `json:"id" bson:"_id"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	Component     string             `json:"component" bson:"component"`
	ComponentHash string             `json:"component_hash" bson:"component_hash"`
	Options       cache.RouteKeyOpts `json:"options" bson:"options"`
	Layout        graph.Layout       `json:"layout" bson:"layout"`
	Netlist       graph.Graph        `json:"netlist" bson:"netlist"`
}

// NewRun stamps a run with a fresh ID and the current time.
func NewRun(component, componentHash string, opts cache.RouteKeyOpts, layout graph.Layout, netlist graph.Graph) *Run {
	return &Run{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Component:     component,
		ComponentHash: componentHash,
		Options:       opts,
		Layout:        layout,
		Netlist:       netlist,
	}
}

// ValidID reports whether id has the form NewRun gives out.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Open returns a MongoStore when mongoURI is set, else a FileStore in dir.
func Open(ctx context.Context, mongoURI, database, dir string) (Store, error) {
	if mongoURI != "" {
		return NewMongoStore(ctx, mongoURI, database)
	}
	return NewFileStore(dir)
}
