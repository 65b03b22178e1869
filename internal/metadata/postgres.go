package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/files-manager/files-service/internal/models"
)

// Postgres implements Store on top of database/sql.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing database handle. Used by tests and by
// Connect.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Connect opens a PostgreSQL connection, verifies it and ensures the schema
// exists.
func Connect(ctx context.Context, connectionString string) (*Postgres, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	p := NewPostgres(db)
	if err := p.createTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return p, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) createTables(ctx context.Context) error {
	query := `
    CREATE TABLE IF NOT EXISTS files (
        id UUID PRIMARY KEY,
        owner_id VARCHAR(64) NOT NULL,
        name VARCHAR(255) NOT NULL,
        kind VARCHAR(16) NOT NULL,
        parent_id VARCHAR(64) NOT NULL DEFAULT '0',
        is_public BOOLEAN NOT NULL DEFAULT false,
        storage_path VARCHAR(500) NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
    `
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return err
	}

	indexQuery := `
    CREATE INDEX IF NOT EXISTS idx_files_owner_id ON files(owner_id);
    CREATE INDEX IF NOT EXISTS idx_files_owner_parent ON files(owner_id, parent_id);
    CREATE INDEX IF NOT EXISTS idx_files_created_at ON files(created_at DESC);
    `
	_, err := p.db.ExecContext(ctx, indexQuery)
	return err
}

const fileColumns = `id, owner_id, name, kind, parent_id, is_public, storage_path, created_at`

func (p *Postgres) CreateFile(ctx context.Context, file *models.File) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	if file.ParentID == "" {
		file.ParentID = models.RootParent
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now().UTC()
	}

	query := `
    INSERT INTO files (id, owner_id, name, kind, parent_id, is_public, storage_path, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := p.db.ExecContext(ctx, query,
		file.ID,
		file.OwnerID,
		file.Name,
		file.Kind,
		file.ParentID,
		file.IsPublic,
		file.StoragePath,
		file.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (p *Postgres) GetFile(ctx context.Context, id string) (*models.File, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	return p.scanOne(p.db.QueryRowContext(ctx, query, id))
}

func (p *Postgres) GetOwnedFile(ctx context.Context, id, ownerID string) (*models.File, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1 AND owner_id = $2`
	return p.scanOne(p.db.QueryRowContext(ctx, query, id, ownerID))
}

func (p *Postgres) ListFiles(ctx context.Context, filter ListFilter) ([]*models.File, error) {
	page := filter.Page
	if page < 0 {
		page = 0
	}

	query := `SELECT ` + fileColumns + ` FROM files WHERE owner_id = $1`
	args := []any{filter.OwnerID}
	if filter.ParentID != nil {
		query += ` AND parent_id = $2`
		args = append(args, *filter.ParentID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		PageSize, page*PageSize)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	files := make([]*models.File, 0, PageSize)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

func (p *Postgres) SetPublic(ctx context.Context, id, ownerID string, public bool) (*models.File, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrNotFound
	}
	query := `
    UPDATE files SET is_public = $1
    WHERE id = $2 AND owner_id = $3
    RETURNING ` + fileColumns
	return p.scanOne(p.db.QueryRowContext(ctx, query, public, id, ownerID))
}

func (p *Postgres) CountFiles(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&count)
	return count, err
}

func (p *Postgres) CountOwners(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT owner_id) FROM files`).Scan(&count)
	return count, err
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (p *Postgres) scanOne(row *sql.Row) (*models.File, error) {
	file, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

func scanFile(row rowScanner) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.OwnerID,
		&file.Name,
		&file.Kind,
		&file.ParentID,
		&file.IsPublic,
		&file.StoragePath,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}
