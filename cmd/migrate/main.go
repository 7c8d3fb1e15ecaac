package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"crm/internal/errors"
	"crm/internal/infra/persistence/migration"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
)

// Supported commands:
// - up:        apply every pending migration
// - down:      roll back the latest migration
// - down-to N: roll back until the schema is at version N
// - status:    print applied and pending migrations
// - version:   print the current and latest versions
// - reset:     roll everything back, then apply again

func main() {
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string (defaults to $DATABASE_URL)")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}
	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "Error: -dsn or DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *dsn, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn string, args []string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}

	migrator, err := migration.NewMigrator(db)
	if err != nil {
		return err
	}

	switch args[0] {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "down-to":
		if len(args) < 2 {
			return errors.New("down-to requires a target version")
		}
		version, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid version %q", args[1])
		}

		return migrator.DownTo(ctx, version)
	case "status":
		return migrator.Status(ctx)
	case "version":
		return printVersion(ctx, migrator)
	case "reset":
		return migrator.Reset(ctx)
	default:
		printUsage()

		return errors.Errorf("unknown command %q", args[0])
	}
}

func printVersion(ctx context.Context, migrator *migration.Migrator) error {
	current, err := migrator.Version(ctx)
	if err != nil {
		return err
	}
	latest, err := migrator.LatestVersion()
	if err != nil {
		return err
	}

	fmt.Printf("current: %d\nlatest:  %d\n", current, latest)

	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate [-dsn DSN] <command> [args]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  up           Apply all pending migrations")
	fmt.Fprintln(os.Stderr, "  down         Roll back the latest migration")
	fmt.Fprintln(os.Stderr, "  down-to N    Roll back to version N")
	fmt.Fprintln(os.Stderr, "  status       Show migration status")
	fmt.Fprintln(os.Stderr, "  version      Show current and latest schema versions")
	fmt.Fprintln(os.Stderr, "  reset        Roll back everything and re-apply")
}
