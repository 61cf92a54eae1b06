package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gc02/usuario-server/internal/model"
)

var relationColumns = []string{"idusuario", "idelemento", "fecha"}

func TestCartRepository_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "inserted"},
		{name: "duplicate pair", err: &pgconn.PgError{Code: codeUniqueViolation}, wantErr: model.ErrConflict},
		{name: "unknown user", err: &pgconn.PgError{Code: codeForeignKeyViolation}, wantErr: model.ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMock(t)
			exp := mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO usuario_cesta_elemento (idusuario, idelemento) VALUES ($1, $2)`)).
				WithArgs(int64(7), int64(40))
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnRows(sqlmock.NewRows(relationColumns).AddRow(7, 40, time.Now()))
			}

			rel, err := NewCartRepository(db).Create(context.Background(), 7, 40)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(40), rel.ElementID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCartRepository_Delete(t *testing.T) {
	t.Parallel()

	t.Run("absent row", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM usuario_cesta_elemento WHERE idusuario = $1 AND idelemento = $2`)).
			WithArgs(int64(7), int64(40)).
			WillReturnError(sql.ErrNoRows)

		_, err := NewCartRepository(db).Delete(context.Background(), 7, 40)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("present row", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM usuario_cesta_elemento`)).
			WithArgs(int64(7), int64(40)).
			WillReturnRows(sqlmock.NewRows(relationColumns).AddRow(7, 40, time.Now()))

		rel, err := NewCartRepository(db).Delete(context.Background(), 7, 40)
		require.NoError(t, err)
		assert.Equal(t, int64(7), rel.UserID)
	})
}

func TestCartRepository_DeleteByUser(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM usuario_cesta_elemento WHERE idusuario = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewCartRepository(db).DeleteByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestWishlistRepository_ListAndExists(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT idusuario, idelemento, fecha FROM usuario_desea_elemento WHERE idusuario = $1 ORDER BY fecha, idelemento`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(relationColumns).AddRow(2, 10, now).AddRow(2, 11, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM usuario_desea_elemento WHERE idusuario = $1 AND idelemento = $2)`)).
		WithArgs(int64(2), int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	repo := NewWishlistRepository(db)

	items, err := repo.ListByUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(10), items[0].ElementID)

	ok, err := repo.Exists(context.Background(), 2, 12)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_ListEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM usuario_desea_elemento`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(relationColumns))

	items, err := NewWishlistRepository(db).ListByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
