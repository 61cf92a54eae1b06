package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gc02/usuario-server/internal/dbx"
	"github.com/gc02/usuario-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const (
	userColumns = `u.id, u.nombreusuario, u.nombrereal, u.contrasenia, u.correo, u.descripcion,
			  u.fecharegistro, u.rutafoto, u.esartista`
	userWithArtistQuery = `SELECT ` + userColumns + `,
			  a.idusuario, a.esnovedad, a.oyentes, a.valoracion, a.idgenero
			  FROM usuario u LEFT JOIN artista a ON a.idusuario = u.id`
	userReturning = `RETURNING id, nombreusuario, nombrereal, contrasenia, correo, descripcion,
			  fecharegistro, rutafoto, esartista`
)

type rowScanner interface {
	Scan(dest ...any) error
}

type UserRepository struct {
	db dbx.DBTX
}

func NewUserRepository(db dbx.DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row rowScanner, dest *model.User, extra ...any) error {
	return row.Scan(append([]any{
		&dest.ID, &dest.Username, &dest.RealName, &dest.PasswordHash, &dest.Email, &dest.Description,
		&dest.RegisteredAt, &dest.PhotoPath, &dest.IsArtist,
	}, extra...)...)
}

func scanUserWithArtist(row rowScanner) (model.User, error) {
	var (
		user      model.User
		artistID  sql.NullInt64
		isNew     sql.NullBool
		listeners sql.NullInt64
		rating    sql.NullFloat64
		genreID   sql.NullInt64
	)

	if err := scanUser(row, &user, &artistID, &isNew, &listeners, &rating, &genreID); err != nil {
		return model.User{}, err
	}

	if artistID.Valid {
		user.Artist = &model.Artist{
			UserID:    artistID.Int64,
			IsNew:     isNew.Bool,
			Listeners: listeners.Int64,
			Rating:    rating.Float64,
		}
		if genreID.Valid {
			id := genreID.Int64
			user.Artist.GenreID = &id
		}
	}

	return user, nil
}

func (r *UserRepository) list(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, err := scanUserWithArtist(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	users, err := r.list(ctx, userWithArtistQuery+` ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) ListArtists(ctx context.Context) ([]model.User, error) {
	users, err := r.list(ctx, userWithArtistQuery+` WHERE u.esartista ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	user, err := scanUserWithArtist(r.db.QueryRowContext(ctx, userWithArtistQuery+` WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetArtistByID(ctx context.Context, id int64) (model.User, error) {
	user, err := scanUserWithArtist(r.db.QueryRowContext(ctx, userWithArtistQuery+` WHERE u.id = $1 AND u.esartista`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get artist by id: %w", err)
	}

	return user, nil
}

// Create inserts a user. fields.Password is stored as given and must already be hashed.
func (r *UserRepository) Create(ctx context.Context, fields model.UserFields) (model.User, error) {
	query := `INSERT INTO usuario (nombreusuario, nombrereal, contrasenia, correo, descripcion, fecharegistro, rutafoto, esartista)
			  VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()), $7, COALESCE($8, false))
			  ` + userReturning

	var user model.User
	err := scanUser(r.db.QueryRowContext(ctx, query,
		fields.Username, fields.RealName, fields.Password, fields.Email, fields.Description,
		fields.RegisteredAt, fields.PhotoPath, fields.IsArtist,
	), &user)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update changes the supplied columns only. The returned user has no artist loaded.
func (r *UserRepository) Update(ctx context.Context, id int64, fields model.UserFields) (model.User, error) {
	query := `UPDATE usuario SET
			  nombreusuario = COALESCE($2, nombreusuario),
			  nombrereal = COALESCE($3, nombrereal),
			  contrasenia = COALESCE($4, contrasenia),
			  correo = COALESCE($5, correo),
			  descripcion = COALESCE($6, descripcion),
			  fecharegistro = COALESCE($7, fecharegistro),
			  rutafoto = COALESCE($8, rutafoto),
			  esartista = COALESCE($9, esartista)
			  WHERE id = $1
			  ` + userReturning

	var user model.User
	err := scanUser(r.db.QueryRowContext(ctx, query, id,
		fields.Username, fields.RealName, fields.Password, fields.Email, fields.Description,
		fields.RegisteredAt, fields.PhotoPath, fields.IsArtist,
	), &user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete removes the user; artist and relation rows cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) (model.User, error) {
	query := `DELETE FROM usuario WHERE id = $1 ` + userReturning

	var user model.User
	if err := scanUser(r.db.QueryRowContext(ctx, query, id), &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to delete user: %w", err)
	}

	return user, nil
}
