// Package deckrev wires the review engine's pieces into one application
// container shared by every command.
package deckrev

import (
	"github.com/deckrev/deckrev/internal/api"
	"github.com/deckrev/deckrev/internal/core/bulk"
	"github.com/deckrev/deckrev/internal/core/config"
	"github.com/deckrev/deckrev/internal/core/eventbus"
	"github.com/deckrev/deckrev/internal/core/kv"
	"github.com/deckrev/deckrev/internal/core/media"
	"github.com/deckrev/deckrev/internal/core/pagination"
	"github.com/deckrev/deckrev/internal/core/selection"
	"github.com/deckrev/deckrev/internal/data/db"
)

// App aggregates the long-lived services commands operate on. It is
// populated once in the CLI Before hook.
type App struct {
	Config    *config.Config
	Client    *api.Client
	DB        *db.DB
	KV        kv.KV
	Bus       *eventbus.EventBus
	Selection *selection.Store
	Snapshots *pagination.SnapshotStore
	Media     *media.Resolver
	Bulk      *bulk.Coordinator
}

// New assembles the container from its already-constructed parts.
func New(cfg *config.Config, client *api.Client, database *db.DB, store kv.KV) *App {
	bus := eventbus.New()
	sel := selection.NewStore(store, bus)
	return &App{
		Config:    cfg,
		Client:    client,
		DB:        database,
		KV:        store,
		Bus:       bus,
		Selection: sel,
		Snapshots: pagination.NewSnapshotStore(store, cfg.SnapshotTTL()),
		Media:     media.NewResolver(client),
		Bulk:      bulk.NewCoordinator(client, sel, bus),
	}
}
