package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gc02/usuario-server/internal/dbx"
	"github.com/gc02/usuario-server/internal/model"
)

var _ model.ArtistStore = (*ArtistRepository)(nil)

const artistReturning = `RETURNING idusuario, esnovedad, oyentes, valoracion, idgenero`

type ArtistRepository struct {
	db dbx.DBTX
}

func NewArtistRepository(db dbx.DBTX) *ArtistRepository {
	return &ArtistRepository{
		db: db,
	}
}

func scanArtist(row rowScanner) (model.Artist, error) {
	var (
		artist  model.Artist
		genreID sql.NullInt64
	)
	if err := row.Scan(&artist.UserID, &artist.IsNew, &artist.Listeners, &artist.Rating, &genreID); err != nil {
		return model.Artist{}, err
	}
	if genreID.Valid {
		id := genreID.Int64
		artist.GenreID = &id
	}
	return artist, nil
}

func (r *ArtistRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM artista WHERE idusuario = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check artist: %w", err)
	}
	return exists, nil
}

func (r *ArtistRepository) Create(ctx context.Context, userID int64, fields model.ArtistFields) (model.Artist, error) {
	query := `INSERT INTO artista (idusuario, esnovedad, oyentes, valoracion, idgenero)
			  VALUES ($1, COALESCE($2, true), COALESCE($3, 0), COALESCE($4, 0), $5)
			  ` + artistReturning

	artist, err := scanArtist(r.db.QueryRowContext(ctx, query,
		userID, fields.IsNew, fields.Listeners, fields.Rating, fields.GenreID))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Artist{}, model.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return model.Artist{}, model.ErrNotFound
		}
		return model.Artist{}, fmt.Errorf("failed to create artist: %w", err)
	}

	return artist, nil
}

func (r *ArtistRepository) Update(ctx context.Context, userID int64, fields model.ArtistFields) (model.Artist, error) {
	query := `UPDATE artista SET
			  esnovedad = COALESCE($2, esnovedad),
			  oyentes = COALESCE($3, oyentes),
			  valoracion = COALESCE($4, valoracion),
			  idgenero = COALESCE($5, idgenero)
			  WHERE idusuario = $1
			  ` + artistReturning

	artist, err := scanArtist(r.db.QueryRowContext(ctx, query,
		userID, fields.IsNew, fields.Listeners, fields.Rating, fields.GenreID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Artist{}, model.ErrNotFound
		}
		return model.Artist{}, fmt.Errorf("failed to update artist: %w", err)
	}

	return artist, nil
}

func (r *ArtistRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM artista WHERE idusuario = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	return nil
}
