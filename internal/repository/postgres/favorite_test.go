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

var favoriteRowColumns = []string{"idusuario", "idelemento", "tipo", "fecha"}

func TestFavoriteRepository_Create(t *testing.T) {
	t.Parallel()

	t.Run("album", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO usuario_favorito_elemento (idusuario, idelemento, tipo)`)).
			WithArgs(int64(1), int64(9), int64(2)).
			WillReturnRows(sqlmock.NewRows(favoriteRowColumns).AddRow(1, 9, 2, time.Now()))

		fav, err := NewFavoriteRepository(db).Create(context.Background(), 1, 9, model.KindAlbum)
		require.NoError(t, err)
		assert.Equal(t, model.KindAlbum, fav.Kind)
	})

	t.Run("same class twice", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO usuario_favorito_elemento`)).
			WithArgs(int64(1), int64(9), int64(1)).
			WillReturnError(&pgconn.PgError{Code: codeUniqueViolation})

		_, err := NewFavoriteRepository(db).Create(context.Background(), 1, 9, model.KindTrack)
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}

func TestFavoriteRepository_ExistsByClass(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`AND clase = $3`)).
		WithArgs(int64(1), int64(5), int64(model.ClassArtist)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewFavoriteRepository(db).Exists(context.Background(), 1, 5, model.ClassArtist)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM usuario_favorito_elemento`)).
		WithArgs(int64(1), int64(5), int64(model.ClassContent)).
		WillReturnError(sql.ErrNoRows)

	_, err := NewFavoriteRepository(db).Delete(context.Background(), 1, 5, model.ClassContent)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestFavoriteRepository_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM usuario_favorito_elemento`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(favoriteRowColumns).
			AddRow(1, 5, 0, now).
			AddRow(1, 9, 1, now))

	favs, err := NewFavoriteRepository(db).ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, model.KindArtist, favs[0].Kind)
	assert.Equal(t, model.KindTrack, favs[1].Kind)
}
