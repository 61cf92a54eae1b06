package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gc02/usuario-server/internal/dbx"
	"github.com/gc02/usuario-server/internal/model"
)

var _ model.FavoriteStore = (*FavoriteRepository)(nil)

const favoriteColumns = `idusuario, idelemento, tipo, fecha`

type FavoriteRepository struct {
	db dbx.DBTX
}

func NewFavoriteRepository(db dbx.DBTX) *FavoriteRepository {
	return &FavoriteRepository{
		db: db,
	}
}

func scanFavorite(row rowScanner) (model.Favorite, error) {
	var fav model.Favorite
	err := row.Scan(&fav.UserID, &fav.ElementID, &fav.Kind, &fav.CreatedAt)
	return fav, err
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM usuario_favorito_elemento
			  WHERE idusuario = $1 ORDER BY fecha, idelemento`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.Favorite, 0)
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	return favorites, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM usuario_favorito_elemento
			  WHERE idusuario = $1 AND idelemento = $2 AND clase = $3)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, elementID, int16(class)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (r *FavoriteRepository) Create(ctx context.Context, userID, elementID int64, kind model.FavoriteKind) (model.Favorite, error) {
	query := `INSERT INTO usuario_favorito_elemento (idusuario, idelemento, tipo) VALUES ($1, $2, $3)
			  RETURNING ` + favoriteColumns

	fav, err := scanFavorite(r.db.QueryRowContext(ctx, query, userID, elementID, int16(kind)))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Favorite{}, model.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return model.Favorite{}, model.ErrNotFound
		}
		return model.Favorite{}, fmt.Errorf("failed to create favorite: %w", err)
	}

	return fav, nil
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID, elementID int64, class model.FavoriteClass) (model.Favorite, error) {
	query := `DELETE FROM usuario_favorito_elemento
			  WHERE idusuario = $1 AND idelemento = $2 AND clase = $3
			  RETURNING ` + favoriteColumns

	fav, err := scanFavorite(r.db.QueryRowContext(ctx, query, userID, elementID, int16(class)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Favorite{}, model.ErrNotFound
		}
		return model.Favorite{}, fmt.Errorf("failed to delete favorite: %w", err)
	}

	return fav, nil
}
