package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/hackreg-api/pkg/config"
)

// Dual pairs the two database credentials the API operates with.
// Public is the restricted-privilege connection used for reads and
// anonymous inserts. Admin is the elevated credential reserved for
// server-initiated writes that must bypass row-level restrictions;
// it is nil when the admin credential is not configured.
type Dual struct {
	Public *sqlx.DB
	Admin  *sqlx.DB
}

// Elevated reports whether the elevated credential is available.
func (d *Dual) Elevated() bool {
	return d != nil && d.Admin != nil
}

// Close closes both handles.
func (d *Dual) Close() {
	if d.Public != nil {
		_ = d.Public.Close()
	}
	if d.Admin != nil {
		_ = d.Admin.Close()
	}
}

// NewDual dials the restricted connection and, when admin credentials
// are present, the elevated one.
func NewDual(cfg config.DatabaseConfig) (*Dual, error) {
	public, err := open(cfg, cfg.User, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("public connection: %w", err)
	}

	dual := &Dual{Public: public}

	if cfg.AdminUser != "" {
		admin, err := open(cfg, cfg.AdminUser, cfg.AdminPassword)
		if err != nil {
			_ = public.Close()
			return nil, fmt.Errorf("admin connection: %w", err)
		}
		dual.Admin = admin
	}

	return dual, nil
}

func open(cfg config.DatabaseConfig, user, password string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		user,
		password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
