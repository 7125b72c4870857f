package handlers

import (
	"tripbook/internal/config"
	"tripbook/internal/store"
)

// API bundles the owned store handle and environment for every handler.
// The store is created once at startup and passed by reference; handlers
// never reach for process-wide state.
type API struct {
	Store *store.Store
	Env   config.Env
}
