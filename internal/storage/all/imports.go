// Package all wires all built-in storage backends into the storage factory.
//
// Importing it (even as a blank import) runs the init functions of each
// concrete backend, which register their factories and DDL dialects:
//
//   - "postgres" (listingsetl/internal/storage/postgres)
//   - "mssql"    (listingsetl/internal/storage/mssql)
//   - "sqlite"   (listingsetl/internal/storage/sqlite)
//
// Typical usage (in cmd/ingest/main.go):
//
//	import _ "listingsetl/internal/storage/all"
//
//	repo, err := storage.New(ctx, storage.Config{Kind: cfg.Storage.Kind, DSN: cfg.Storage.DB.DSN})
//	if err != nil {
//	    // handle error
//	}
//	defer repo.Close()
//	if err := storage.EnsureSchema(ctx, cfg.Storage.Kind, repo, false); err != nil {
//	    // handle DDL error
//	}
package all

import (
	_ "listingsetl/internal/storage/mssql"
	_ "listingsetl/internal/storage/postgres"
	_ "listingsetl/internal/storage/sqlite"
)
