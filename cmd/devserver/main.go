// devserver runs the directory with local stand-ins for every AWS
// dependency: an in-memory SQLite record store, an in-memory photo store
// served under /dev/photos, and in-process CPU workers.
// Usage: go run ./cmd/devserver
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/seantiz/directory/internal/api"
	"github.com/seantiz/directory/internal/config"
	"github.com/seantiz/directory/internal/directory"
	"github.com/seantiz/directory/internal/loadgen"
	"github.com/seantiz/directory/internal/metadata"
	"github.com/seantiz/directory/internal/objectstore"
	"github.com/seantiz/directory/internal/store"
)

const photosPrefix = "/dev/photos"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	logger := config.NewLogger(os.Stdout, cfg.LogLevel())
	photos := objectstore.NewMemoryStore(photosPrefix)

	srv := api.NewServer(cfg.ListenAddr, api.Deps{
		Directory:  directory.New(db, photos, logger),
		Metadata:   metadata.New(cfg.MetadataEndpoint, logger),
		Load:       loadgen.NewGenerator(loadgen.InProcessSpawner{}, cfg.StressMaxSeconds, logger),
		BucketName: "dev-photos",
	}, logger)
	srv.Router().Mount(photosPrefix, http.StripPrefix(photosPrefix, photos))

	logger.Info("devserver: starting", "addr", cfg.ListenAddr)
	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
