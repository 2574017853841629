package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/noah-isme/hackreg-api/internal/repository"
	"github.com/noah-isme/hackreg-api/pkg/config"
	"github.com/noah-isme/hackreg-api/pkg/database"
)

// opsctl bundles the operational checks that would otherwise live in
// scattered one-off scripts. Every subcommand shares the same config
// and connection bootstrap.

const schema = `CREATE TABLE IF NOT EXISTS applicants (
    id UUID PRIMARY KEY,
    full_name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    track TEXT NOT NULL,
    team_size INT NOT NULL DEFAULT 1,
    referral_code TEXT,
    payment_status TEXT NOT NULL DEFAULT '',
    payment_order_id TEXT,
    amount_paid NUMERIC(10,2),
    application_status TEXT NOT NULL DEFAULT 'submitted',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    paid_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS referral_codes (
    id UUID PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    referrer_name TEXT NOT NULL,
    discount_percent INT NOT NULL DEFAULT 0,
    active BOOLEAN NOT NULL DEFAULT true,
    max_uses INT,
    expires_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS family_contexts (
    id UUID PRIMARY KEY,
    applicant_id UUID NOT NULL REFERENCES applicants(id),
    guardian_name TEXT NOT NULL DEFAULT '',
    guardian_profession TEXT NOT NULL DEFAULT '',
    income_range TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS admin_users (
    id UUID PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT true,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_login_at TIMESTAMPTZ
);`

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "check-env":
		checkEnv()
	case "print-schema":
		fmt.Println(schema)
	case "verify-payments":
		verifyPayments(os.Args[2:])
	case "purge-test":
		purgeTest(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: opsctl <command> [flags]

commands:
  check-env        validate required environment configuration
  print-schema     print the database DDL
  verify-payments  list applicants stuck in pending payment
  purge-test       delete applicants registered with a test email domain`)
}

func checkEnv() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	failures := 0
	report := func(name string, ok bool, hint string) {
		mark := "ok"
		if !ok {
			mark = "MISSING"
			failures++
		}
		fmt.Printf("%-28s %s", name, mark)
		if !ok && hint != "" {
			fmt.Printf("  (%s)", hint)
		}
		fmt.Println()
	}

	report("DB_HOST", cfg.Database.Host != "", "")
	report("DB_USER", cfg.Database.User != "", "")
	report("DB_NAME", cfg.Database.Name != "", "")
	report("DB_ADMIN_USER", cfg.Database.AdminUser != "", "payment linking will fail without it")
	report("JWT_SECRET", cfg.JWT.Secret != "" && cfg.JWT.Secret != "dev_secret", "set a non-default secret")
	if cfg.Notify.Enabled {
		report("NOTIFY_SENDER_EMAIL", cfg.Notify.SenderEmail != "", "")
		report("NOTIFY_AWS_REGION", cfg.Notify.AWSRegion != "", "")
	}
	if cfg.Sheet.Enabled {
		report("SHEET_STORAGE_DIR", cfg.Sheet.StorageDir != "", "")
	}

	if failures > 0 {
		fmt.Printf("\n%d check(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("\nenvironment looks good")
}

func connect() (*database.Dual, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewDual(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	return db, cfg
}

func verifyPayments(args []string) {
	fs := flag.NewFlagSet("verify-payments", flag.ExitOnError)
	olderThan := fs.Duration("older-than", 24*time.Hour, "report rows pending longer than this")
	_ = fs.Parse(args)

	db, cfg := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OutboundTimeout)
	defer cancel()

	repo := repository.NewApplicantRepository(db)
	rows, err := repo.StalePending(ctx, *olderThan)
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}

	if len(rows) == 0 {
		fmt.Printf("no applicants pending longer than %s\n", *olderThan)
		return
	}

	fmt.Printf("%d applicant(s) pending longer than %s:\n", len(rows), *olderThan)
	for _, row := range rows {
		fmt.Printf("  %s  %-30s %s\n", row.ID, row.Email, row.FullName)
	}
}

func purgeTest(args []string) {
	fs := flag.NewFlagSet("purge-test", flag.ExitOnError)
	domain := fs.String("domain", "example.com", "email domain identifying test rows")
	confirm := fs.Bool("yes", false, "actually delete (dry description otherwise)")
	_ = fs.Parse(args)

	if !*confirm {
		fmt.Printf("would delete applicants with emails @%s; re-run with -yes to proceed\n", *domain)
		return
	}

	db, cfg := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OutboundTimeout)
	defer cancel()

	repo := repository.NewApplicantRepository(db)
	deleted, err := repo.PurgeTestRows(ctx, *domain)
	if err != nil {
		log.Fatalf("purge failed: %v", err)
	}
	fmt.Printf("deleted %d applicant(s)\n", deleted)
}
