package commands

import (
	"context"
	"log"

	"perishables/internal/config"
	"perishables/internal/service"
	"perishables/internal/watcher"
)

// watchConfig reloads the config file whenever it changes until ctx is done
func watchConfig(ctx context.Context, path string, svc *service.InventoryService) {
	w := watcher.New(path, func() { reloadConfig(path, svc) })
	if err := w.Watch(ctx); err != nil {
		log.Printf("Config watcher stopped: %v", err)
	}
}

// reloadConfig applies the settings that can change while serving. Only
// inventory.expiring_days is live; everything else needs a restart.
func reloadConfig(path string, svc *service.InventoryService) {
	next, _, err := config.LoadFromPath(path)
	if err != nil {
		log.Printf("Config reload failed, keeping current settings: %v", err)
		return
	}

	window := next.ExpiringWindow()
	if window == svc.ExpiringWindow() {
		log.Printf("Config reloaded from %s", path)
		return
	}
	svc.SetExpiringWindow(window)
	log.Printf("Config reloaded from %s: expiring window now %d days", path, window)
}
