package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

func scanFile(row interface{ Scan(...any) error }) (*model.File, error) {
	var f model.File
	if err := row.Scan(&f.ID, &f.Name, &f.StoredName, &f.MimeType, &f.SizeBytes, &f.CreatedAt, &f.FolderID); err != nil {
		return nil, asNoRows(err)
	}
	return &f, nil
}

// Create inserts a new file row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, file *model.File) (*model.File, error) {
	const q = `
		INSERT INTO files (id, name, stored_name, mime_type, size_bytes, created_at, folder_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, stored_name, mime_type, size_bytes, created_at, folder_id
	`
	row := r.db.QueryRowContext(ctx, q,
		file.ID,
		file.Name,
		file.StoredName,
		file.MimeType,
		file.SizeBytes,
		file.CreatedAt,
		file.FolderID,
	)
	return scanFile(row)
}

// FindByID fetches a single file by its ID.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	const q = `
		SELECT id, name, stored_name, mime_type, size_bytes, created_at, folder_id
		FROM files
		WHERE id = $1
	`
	return scanFile(r.db.QueryRowContext(ctx, q, id))
}

// ListByFolder returns a folder's files using LIMIT/OFFSET pagination and a
// total count.
func (r *FilePostgres) ListByFolder(ctx context.Context, folderID string, pq repository.PageQuery) (*repository.PageResult[model.File], error) {
	const qCount = `SELECT COUNT(*) FROM files WHERE folder_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, folderID).Scan(&total); err != nil {
		return nil, asNoRows(err)
	}

	const qList = `
		SELECT id, name, stored_name, mime_type, size_bytes, created_at, folder_id
		FROM files
		WHERE folder_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, folderID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := collectFiles(rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.File]{Items: items, Total: total}, nil
}

// ListAllByFolder returns every file in the folder.
func (r *FilePostgres) ListAllByFolder(ctx context.Context, folderID string) ([]model.File, error) {
	const q = `
		SELECT id, name, stored_name, mime_type, size_bytes, created_at, folder_id
		FROM files
		WHERE folder_id = $1
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, q, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFiles(rows)
}

// FindByFolderAndName returns the first file with the given name in the
// folder, or nil.
func (r *FilePostgres) FindByFolderAndName(ctx context.Context, folderID, name string) (*model.File, error) {
	const q = `
		SELECT id, name, stored_name, mime_type, size_bytes, created_at, folder_id
		FROM files
		WHERE folder_id = $1 AND name = $2
		LIMIT 1
	`
	f, err := scanFile(r.db.QueryRowContext(ctx, q, folderID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return f, err
}

// Rename replaces the file's user-visible name; stored_name is immutable.
func (r *FilePostgres) Rename(ctx context.Context, id, name string) error {
	const q = `UPDATE files SET name = $2 WHERE id = $1`
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

// UpdateSize sets size_bytes after a blob is re-written during seeding.
func (r *FilePostgres) UpdateSize(ctx context.Context, id string, sizeBytes int64) error {
	const q = `UPDATE files SET size_bytes = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, sizeBytes)
	return err
}

// Delete removes a file row. It does not return an error if the row does not exist.
func (r *FilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return asNoRows(err)
	}
	_, _ = res.RowsAffected()
	return nil
}

// SearchByName performs a case-insensitive substring match over file names.
func (r *FilePostgres) SearchByName(ctx context.Context, query string, limit int) ([]model.File, error) {
	const q = `
		SELECT id, name, stored_name, mime_type, size_bytes, created_at, folder_id
		FROM files
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, likePattern(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFiles(rows)
}

func collectFiles(rows *sql.Rows) ([]model.File, error) {
	items := make([]model.File, 0)
	for rows.Next() {
		var f model.File
		if err := rows.Scan(&f.ID, &f.Name, &f.StoredName, &f.MimeType, &f.SizeBytes, &f.CreatedAt, &f.FolderID); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
