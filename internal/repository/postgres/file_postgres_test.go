package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

func fileRows(files ...model.File) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "stored_name", "mime_type", "size_bytes", "created_at", "folder_id"})
	for _, f := range files {
		rows.AddRow(f.ID, f.Name, f.StoredName, f.MimeType, f.SizeBytes, f.CreatedAt, f.FolderID)
	}
	return rows
}

func TestFilePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	file := &model.File{
		ID:         "file-id",
		Name:       "Balance Sheet.pdf",
		StoredName: "abc123.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  2048,
		CreatedAt:  time.Now().UTC(),
		FolderID:   "folder-id",
	}

	mock.ExpectQuery("INSERT INTO files").
		WithArgs(file.ID, file.Name, file.StoredName, file.MimeType, file.SizeBytes, file.CreatedAt, file.FolderID).
		WillReturnRows(fileRows(*file))

	result, err := repo.Create(ctx, file)

	assert.NoError(t, err)
	assert.Equal(t, file.StoredName, result.StoredName)
	assert.Equal(t, int64(2048), result.SizeBytes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ?").
			WithArgs("file-id").
			WillReturnRows(fileRows(model.File{ID: "file-id", Name: "doc.pdf", StoredName: "s.pdf", MimeType: "application/pdf", SizeBytes: 1, CreatedAt: time.Now(), FolderID: "f"}))

		file, err := repo.FindByID(ctx, "file-id")

		assert.NoError(t, err)
		assert.Equal(t, "file-id", file.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		file, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, file)
	})

	t.Run("malformed id reads as not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE id = ?").
			WithArgs("not-a-uuid").
			WillReturnError(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`})

		file, err := repo.FindByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, file)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_ListByFolder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM files WHERE folder_id = ?`).
		WithArgs("folder-id").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT (.+) FROM files WHERE folder_id = (.+) LIMIT (.+) OFFSET ?").
		WithArgs("folder-id", 50, 0).
		WillReturnRows(fileRows(
			model.File{ID: "a", Name: "a.pdf", StoredName: "sa.pdf", MimeType: "application/pdf", SizeBytes: 1, CreatedAt: time.Now(), FolderID: "folder-id"},
			model.File{ID: "b", Name: "b.pdf", StoredName: "sb.pdf", MimeType: "application/pdf", SizeBytes: 2, CreatedAt: time.Now(), FolderID: "folder-id"},
			model.File{ID: "c", Name: "c.pdf", StoredName: "sc.pdf", MimeType: "application/pdf", SizeBytes: 3, CreatedAt: time.Now(), FolderID: "folder-id"},
		))

	page, err := repo.ListByFolder(ctx, "folder-id", repository.PageQuery{Limit: 50, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 3)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_FindByFolderAndName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("absent yields nil without error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM files WHERE folder_id = (.+) AND name = ?").
			WithArgs("folder-id", "nope.pdf").
			WillReturnError(sql.ErrNoRows)

		file, err := repo.FindByFolderAndName(ctx, "folder-id", "nope.pdf")

		assert.NoError(t, err)
		assert.Nil(t, file)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_Rename(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	t.Run("missing row surfaces as ErrNoRows", func(t *testing.T) {
		mock.ExpectExec("UPDATE files SET name = ?").
			WithArgs("missing", "new.pdf").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Rename(ctx, "missing", "new.pdf"), sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	// Deleting an already-absent row is not an error
	mock.ExpectExec("DELETE FROM files WHERE id = ?").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(ctx, "missing"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilePostgres_SearchByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFilePostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM files WHERE name ILIKE").
		WithArgs("%nda%", 50).
		WillReturnRows(fileRows(model.File{ID: "a", Name: "NDA Template.pdf", StoredName: "s.pdf", MimeType: "application/pdf", SizeBytes: 1, CreatedAt: time.Now(), FolderID: "f"}))

	files, err := repo.SearchByName(ctx, "nda", 50)

	assert.NoError(t, err)
	assert.Len(t, files, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
