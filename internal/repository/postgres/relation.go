package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gc02/usuario-server/internal/dbx"
	"github.com/gc02/usuario-server/internal/model"
)

const (
	cartTable     = "usuario_cesta_elemento"
	wishlistTable = "usuario_desea_elemento"
	purchaseTable = "usuario_tiene_elemento"
)

// relationRepository implements the user-element tables that share
// the (idusuario, idelemento, fecha) layout. table is always one of the constants above.
type relationRepository struct {
	db    dbx.DBTX
	table string
	order string
}

func scanRelation(row rowScanner) (model.Relation, error) {
	var rel model.Relation
	err := row.Scan(&rel.UserID, &rel.ElementID, &rel.CreatedAt)
	return rel, err
}

func (r *relationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Relation, error) {
	query := fmt.Sprintf(`SELECT idusuario, idelemento, fecha FROM %s WHERE idusuario = $1 ORDER BY %s`, r.table, r.order)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	defer rows.Close()

	relations := make([]model.Relation, 0)
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.table, err)
		}
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", r.table, err)
	}

	return relations, nil
}

func (r *relationRepository) Exists(ctx context.Context, userID, elementID int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE idusuario = $1 AND idelemento = $2)`, r.table)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, elementID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", r.table, err)
	}
	return exists, nil
}

func (r *relationRepository) Create(ctx context.Context, userID, elementID int64) (model.Relation, error) {
	query := fmt.Sprintf(`INSERT INTO %s (idusuario, idelemento) VALUES ($1, $2)
			  RETURNING idusuario, idelemento, fecha`, r.table)

	rel, err := scanRelation(r.db.QueryRowContext(ctx, query, userID, elementID))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Relation{}, model.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return model.Relation{}, model.ErrNotFound
		}
		return model.Relation{}, fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}

	return rel, nil
}

func (r *relationRepository) Delete(ctx context.Context, userID, elementID int64) (model.Relation, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE idusuario = $1 AND idelemento = $2
			  RETURNING idusuario, idelemento, fecha`, r.table)

	rel, err := scanRelation(r.db.QueryRowContext(ctx, query, userID, elementID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Relation{}, model.ErrNotFound
		}
		return model.Relation{}, fmt.Errorf("failed to delete from %s: %w", r.table, err)
	}

	return rel, nil
}

var _ model.CartStore = (*CartRepository)(nil)

type CartRepository struct {
	relationRepository
}

func NewCartRepository(db dbx.DBTX) *CartRepository {
	return &CartRepository{relationRepository{db: db, table: cartTable, order: "fecha, idelemento"}}
}

// DeleteByUser empties the cart and returns how many rows were removed.
func (r *CartRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+cartTable+` WHERE idusuario = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to empty cart: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

var _ model.WishlistStore = (*WishlistRepository)(nil)

type WishlistRepository struct {
	relationRepository
}

func NewWishlistRepository(db dbx.DBTX) *WishlistRepository {
	return &WishlistRepository{relationRepository{db: db, table: wishlistTable, order: "fecha, idelemento"}}
}
