package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// FolderPostgres is a PostgreSQL implementation of repository.FolderRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FolderPostgres struct {
	db *sql.DB
}

// NewFolderPostgres creates a new FolderPostgres repository.
func NewFolderPostgres(db *sql.DB) *FolderPostgres {
	return &FolderPostgres{db: db}
}

var _ repository.FolderRepository = (*FolderPostgres)(nil)

const folderColumns = "id, name, parent_id, created_at"

func scanFolder(row interface{ Scan(...any) error }) (*model.Folder, error) {
	var f model.Folder
	if err := row.Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt); err != nil {
		return nil, asNoRows(err)
	}
	return &f, nil
}

// Create inserts a new folder row and returns the stored record.
func (r *FolderPostgres) Create(ctx context.Context, folder *model.Folder) (*model.Folder, error) {
	const q = `
		INSERT INTO folders (id, name, parent_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, parent_id, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		folder.ID,
		folder.Name,
		folder.ParentID,
		folder.CreatedAt,
	)
	return scanFolder(row)
}

// FindByID fetches a single folder by its ID.
func (r *FolderPostgres) FindByID(ctx context.Context, id string) (*model.Folder, error) {
	const q = `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE id = $1
	`
	return scanFolder(r.db.QueryRowContext(ctx, q, id))
}

// OldestRoot returns the earliest-created root folder.
func (r *FolderPostgres) OldestRoot(ctx context.Context) (*model.Folder, error) {
	const q = `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE parent_id IS NULL
		ORDER BY created_at ASC
		LIMIT 1
	`
	return scanFolder(r.db.QueryRowContext(ctx, q))
}

// ListRoots returns all root folders ordered by name.
func (r *FolderPostgres) ListRoots(ctx context.Context) ([]model.Folder, error) {
	const q = `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE parent_id IS NULL
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFolders(rows)
}

// ListChildren returns immediate sub-folders using LIMIT/OFFSET pagination
// and a total count.
func (r *FolderPostgres) ListChildren(ctx context.Context, parentID string, pq repository.PageQuery) (*repository.PageResult[model.Folder], error) {
	const qCount = `SELECT COUNT(*) FROM folders WHERE parent_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, parentID).Scan(&total); err != nil {
		return nil, asNoRows(err)
	}

	const qList = `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE parent_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, parentID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectFolders(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Folder]{Items: items, Total: total}, nil
}

// ListAllChildren returns every immediate sub-folder of parentID.
func (r *FolderPostgres) ListAllChildren(ctx context.Context, parentID string) ([]model.Folder, error) {
	const q = `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE parent_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, q, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFolders(rows)
}

// FindChildByName returns the first child with the given name, or nil.
func (r *FolderPostgres) FindChildByName(ctx context.Context, parentID, name string) (*model.Folder, error) {
	const q = `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE parent_id = $1 AND name = $2
		LIMIT 1
	`
	f, err := scanFolder(r.db.QueryRowContext(ctx, q, parentID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return f, err
}

// Rename replaces the folder's name; created_at is unaffected.
func (r *FolderPostgres) Rename(ctx context.Context, id, name string) error {
	const q = `UPDATE folders SET name = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, name)
	if err != nil {
		return asNoRows(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a folder row; descendant rows go with it via the cascading
// foreign keys.
func (r *FolderPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM folders WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return asNoRows(err)
}

// SearchByName performs a case-insensitive substring match over folder names.
func (r *FolderPostgres) SearchByName(ctx context.Context, query string, limit int) ([]model.Folder, error) {
	const q = `
		SELECT id, name, parent_id, created_at
		FROM folders
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, likePattern(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFolders(rows)
}

func collectFolders(rows *sql.Rows) ([]model.Folder, error) {
	items := make([]model.Folder, 0)
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// likePattern wraps the query in wildcards, escaping any LIKE
// metacharacters the user typed so they match literally.
func likePattern(query string) string {
	esc := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + esc + "%"
}
