package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"listingsetl/internal/config"
	"listingsetl/internal/ddl"
	"listingsetl/internal/storage"

	// register all backends with the storage factory.
	_ "listingsetl/internal/storage/all"
)

var newRepositoryFn = storage.New

// main drops and recreates hosts, locations, room_types and listings.
func main() {
	var (
		kind    string
		dsn     string
		envFile string
		keep    bool
		timeout time.Duration
	)
	flag.StringVar(&kind, "kind", "", "storage backend ("+strings.Join(storage.ListKinds(), ", ")+"); env LISTINGS_DB_KIND, default postgres")
	flag.StringVar(&dsn, "dsn", "", "connection string (overrides env LISTINGS_DB_DSN)")
	flag.StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment is applied")
	flag.BoolVar(&keep, "keep", false, "create missing tables without dropping existing ones")
	flag.DurationVar(&timeout, "timeout", time.Minute, "overall timeout")
	printDDL := flag.Bool("print", false, "print the generic DDL and exit")
	flag.Parse()

	if *printDDL {
		for _, t := range ddl.Listings() {
			s, err := ddl.BuildCreateTableSQL(t)
			if err != nil {
				fatalf("%v", err)
			}
			fmt.Println(s)
		}
		return
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fatalf("load %s: %v", envFile, err)
	}
	if kind == "" {
		kind = os.Getenv(config.EnvStorageKind)
	}
	if kind == "" {
		kind = "postgres"
	}
	if dsn == "" {
		dsn = os.Getenv(config.EnvDSN)
	}
	if dsn == "" {
		fatalf("dsn is required (-dsn or %s)", config.EnvDSN)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := run(ctx, kind, dsn, !keep); err != nil {
		fatalf("%v", err)
	}
}

func run(ctx context.Context, kind, dsn string, drop bool) error {
	repo, err := newRepositoryFn(ctx, storage.Config{Kind: kind, DSN: dsn})
	if err != nil {
		return fmt.Errorf("open %s: %w", kind, err)
	}
	defer repo.Close()

	if err := storage.EnsureSchema(ctx, kind, repo, drop); err != nil {
		return err
	}
	log.Printf("dbsetup: schema ready on %s (drop=%v)", kind, drop)
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
