// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/pdiddy/content-brief/pkg/types"
)

// clientRow is one profile in the clients table. Nested values are stored
// as JSON columns. ID and CreatedAt belong to the database.
type clientRow struct {
	bun.BaseModel `bun:"table:clients,alias:c"`

	ID             int64  `bun:",pk,autoincrement"`
	ClientName     string `bun:",unique,notnull"`
	Site           string
	Industry       string
	TargetAudience string
	BrandVoice     string
	ContentGoals   string
	Information    []string
	Restrictions   types.Restrictions
	Requirements   types.Requirements
	CreatedAt      time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

func rowFromProfile(p types.ClientProfile) *clientRow {
	return &clientRow{
		ClientName:     p.ClientName,
		Site:           p.Site,
		Industry:       p.Industry,
		TargetAudience: p.TargetAudience,
		BrandVoice:     p.BrandVoice,
		ContentGoals:   p.ContentGoals,
		Information:    p.Information,
		Restrictions:   p.Restrictions,
		Requirements:   p.Requirements,
	}
}

func (r *clientRow) profile() *types.ClientProfile {
	return &types.ClientProfile{
		ClientName:     r.ClientName,
		Site:           r.Site,
		Industry:       r.Industry,
		TargetAudience: r.TargetAudience,
		BrandVoice:     r.BrandVoice,
		ContentGoals:   r.ContentGoals,
		Information:    r.Information,
		Restrictions:   r.Restrictions,
		Requirements:   r.Requirements,
	}
}

// DBStore keeps profiles in a SQL table keyed by the raw client name.
type DBStore struct {
	db *bun.DB
}

// IsPostgresDSN reports whether dsn names a Postgres server.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// OpenDB connects to dsn and creates the clients table if it does not
// exist. Postgres URLs use pgdriver; anything else is a SQLite file path,
// optionally prefixed with "sqlite://".
func OpenDB(ctx context.Context, dsn string) (*DBStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, ErrNoDSN
	}

	var db *bun.DB
	if IsPostgresDSN(dsn) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		db = bun.NewDB(sqldb, pgdialect.New())
	} else {
		path := strings.TrimPrefix(dsn, "sqlite://")
		sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	if _, err := db.NewCreateTable().Model((*clientRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating clients table: %w", err)
	}
	return &DBStore{db: db}, nil
}

func (s *DBStore) Create(ctx context.Context, name string, data map[string]any) error {
	p, err := Build(name, data)
	if err != nil {
		return err
	}
	exists, err := s.Exists(ctx, p.ClientName)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrExists, p.ClientName)
	}
	if err := s.insert(ctx, p); err != nil {
		return err
	}
	slog.Info("profile created", "client", p.ClientName, "backend", "database")
	return nil
}

// insert adds p. A concurrent writer that took the name first surfaces as
// ErrExists.
func (s *DBStore) insert(ctx context.Context, p types.ClientProfile) error {
	_, err := s.db.NewInsert().Model(rowFromProfile(p)).Exec(ctx)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrExists, p.ClientName)
	}
	if err != nil {
		return fmt.Errorf("inserting profile %s: %w", p.ClientName, err)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint failure from
// either driver.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return false
}

func (s *DBStore) Get(ctx context.Context, name string) (*types.ClientProfile, error) {
	name = normalizeName(name)
	row := new(clientRow)
	err := s.db.NewSelect().Model(row).Where("client_name = ?", name).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", name, err)
	}
	return row.profile(), nil
}

func (s *DBStore) Update(ctx context.Context, name string, partial map[string]any) error {
	name = normalizeName(name)
	current, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	updated, err := Apply(*current, partial)
	if err != nil {
		return err
	}

	_, err = s.db.NewUpdate().
		Model(rowFromProfile(updated)).
		ExcludeColumn("id", "created_at").
		Where("client_name = ?", name).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("updating profile %s: %w", name, err)
	}
	slog.Info("profile updated", "client", name, "fields", len(partial), "backend", "database")
	return nil
}

func (s *DBStore) Delete(ctx context.Context, name string) (bool, error) {
	name = normalizeName(name)
	res, err := s.db.NewDelete().Model((*clientRow)(nil)).Where("client_name = ?", name).Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("deleting profile %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *DBStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.NewSelect().
		Model((*clientRow)(nil)).
		Column("client_name").
		Scan(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *DBStore) Exists(ctx context.Context, name string) (bool, error) {
	name = normalizeName(name)
	ok, err := s.db.NewSelect().Model((*clientRow)(nil)).Where("client_name = ?", name).Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("checking profile %s: %w", name, err)
	}
	return ok, nil
}

func (s *DBStore) Close() error {
	return s.db.Close()
}
