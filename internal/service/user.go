package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gc02/usuario-server/internal/dto"
	"github.com/gc02/usuario-server/internal/logger"
	"github.com/gc02/usuario-server/internal/model"
)

// ErrStorageDisabled is returned by avatar operations when no object storage is configured.
var ErrStorageDisabled = errors.New("avatar storage is disabled")

type User struct {
	store    model.Store
	identity model.IdentityProvider
	storage  model.Storage
	enrich   enricher
	logger   *logger.Logger
}

// NewUser creates the account service. storage may be nil.
func NewUser(
	store model.Store,
	identity model.IdentityProvider,
	content model.ContentGateway,
	storage model.Storage,
	maxConcurrency int,
	logger *logger.Logger,
) *User {
	return &User{
		store:    store,
		identity: identity,
		storage:  storage,
		enrich:   enricher{content: content, limit: maxConcurrency},
		logger:   logger,
	}
}

func (s *User) ListPublic(ctx context.Context) ([]model.User, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		s.logger.Error("User service: failed to list users", "error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *User) GetPublic(ctx context.Context, id int64) (model.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, err
	}
	if err != nil {
		s.logger.Error("User service: failed to get user", "user_id", id, "error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Login returns the full profile of the authenticated subject.
func (s *User) Login(ctx context.Context, uid string) (model.Profile, error) {
	id, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		return model.Profile{}, fmt.Errorf("%w: uid %q is not a user id", model.ErrValidation, uid)
	}

	user, err := s.store.Users().GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, err
	}
	if err != nil {
		s.logger.Error("User service: failed to load user on login", "user_id", id, "error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to get user: %w", err)
	}

	profile, err := s.enrich.profile(ctx, user)
	if err != nil {
		s.logger.Error("User service: failed to resolve genre on login", "user_id", id, "error", err.Error())
		return model.Profile{}, err
	}

	s.logger.Info("User service: login", "user_id", id)
	return profile, nil
}

// Logout revokes the refresh tokens of uid.
func (s *User) Logout(ctx context.Context, uid string) error {
	if strings.TrimSpace(uid) == "" {
		return fmt.Errorf("%w: uid is empty", model.ErrValidation)
	}

	if err := s.identity.RevokeSessions(ctx, uid); err != nil {
		s.logger.Error("User service: failed to revoke sessions", "uid", uid, "error", err.Error())
		return fmt.Errorf("%w: failed to revoke sessions: %v", model.ErrUpstream, err)
	}

	s.logger.Info("User service: logout", "uid", uid)
	return nil
}

// Create stores the user, its artist profile when esartista is set, and the identity account
// keyed by the new user id. Either all of them exist afterwards or none does.
func (s *User) Create(ctx context.Context, req dto.UserRequest) (model.Profile, error) {
	if isBlank(req.NombreUsuario) || isBlank(req.Correo) || isBlank(req.Contrasenia) {
		return model.Profile{}, fmt.Errorf("%w: nombreusuario, correo and contrasenia are required", model.ErrValidation)
	}

	isArtist := req.EsArtista != nil && *req.EsArtista
	fields, artistFields := dto.SplitUserArtist(req, isArtist)

	hash, err := hashPassword(*req.Contrasenia)
	if err != nil {
		return model.Profile{}, err
	}
	fields.Password = &hash

	var (
		created         model.User
		identityCreated bool
	)
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos model.Repositories) error {
		user, err := repos.Users().Create(ctx, fields)
		if err != nil {
			return err
		}

		if artistFields != nil {
			artist, err := repos.Artists().Create(ctx, user.ID, *artistFields)
			if err != nil {
				return err
			}
			user.Artist = &artist
		}

		uid := strconv.FormatInt(user.ID, 10)
		err = s.identity.CreateAccount(ctx, model.NewAccount{
			UID:         uid,
			Email:       user.Email,
			Password:    *req.Contrasenia,
			DisplayName: user.Username,
		})
		if err != nil {
			s.logger.Error("User service: failed to create identity account", "user_id", user.ID, "error", err.Error())
			s.deleteIdentity(ctx, uid)
			if errors.Is(err, model.ErrConflict) {
				return err
			}
			return fmt.Errorf("%w: failed to create identity account: %v", model.ErrUpstream, err)
		}

		identityCreated = true
		created = user
		return nil
	})
	if err != nil {
		if identityCreated {
			s.logger.Error("User service: commit failed after identity account was created", "user_id", created.ID, "error", err.Error())
			s.deleteIdentity(ctx, strconv.FormatInt(created.ID, 10))
		}
		if errors.Is(err, model.ErrConflict) {
			return model.Profile{}, err
		}
		return model.Profile{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user created", "user_id", created.ID, "artist", created.Artist != nil)
	return model.Profile{User: created, Genre: requestedGenre(req, artistFields)}, nil
}

// requestedGenre echoes the genre sent with the payload without asking the content service.
func requestedGenre(req dto.UserRequest, artist *model.ArtistFields) *model.Genre {
	if artist == nil || artist.GenreID == nil {
		return nil
	}
	genre := &model.Genre{ID: *artist.GenreID}
	if req.Genero != nil && req.Genero.Nombre != nil {
		genre.Nombre = *req.Genero.Nombre
	}
	return genre
}

// deleteIdentity is a best-effort compensation.
func (s *User) deleteIdentity(ctx context.Context, uid string) {
	if err := s.identity.DeleteAccount(context.WithoutCancel(ctx), uid); err != nil {
		s.logger.Error("User service: failed to delete identity account during compensation", "uid", uid, "error", err.Error())
		return
	}
	s.logger.Info("User service: identity account compensated", "uid", uid)
}

// Update applies the supplied fields to the user identified by req.ID. The artist row follows
// esartista: it is created, updated or removed in the same transaction.
func (s *User) Update(ctx context.Context, req dto.UserRequest) (model.Profile, error) {
	if req.ID == nil {
		return model.Profile{}, fmt.Errorf("%w: id is required", model.ErrValidation)
	}
	id := *req.ID

	var updated model.User
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos model.Repositories) error {
		current, err := repos.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}

		isArtist := current.IsArtist
		if req.EsArtista != nil {
			isArtist = *req.EsArtista
		}
		fields, artistFields := dto.SplitUserArtist(req, isArtist)

		if fields.Password != nil {
			hash, err := hashPassword(*fields.Password)
			if err != nil {
				return err
			}
			fields.Password = &hash
		}

		user, err := repos.Users().Update(ctx, id, fields)
		if err != nil {
			return err
		}

		switch hasRow := current.Artist != nil; {
		case isArtist && hasRow:
			artist, err := repos.Artists().Update(ctx, id, *artistFields)
			if err != nil {
				return err
			}
			user.Artist = &artist
		case isArtist:
			artist, err := repos.Artists().Create(ctx, id, *artistFields)
			if err != nil {
				return err
			}
			user.Artist = &artist
		case hasRow:
			if err := repos.Artists().Delete(ctx, id); err != nil {
				return err
			}
		}

		updated = user
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrValidation) {
			return model.Profile{}, err
		}
		s.logger.Error("User service: failed to update user", "user_id", id, "error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to update user: %w", err)
	}

	profile, err := s.enrich.profile(ctx, updated)
	if err != nil {
		s.logger.Error("User service: failed to resolve genre after update", "user_id", id, "error", err.Error())
		return model.Profile{}, err
	}

	s.logger.Info("User service: user updated", "user_id", id)
	return profile, nil
}

// Delete removes the user and its identity account. If the identity provider refuses,
// the local delete is rolled back.
func (s *User) Delete(ctx context.Context, id int64) error {
	var deleted model.User
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos model.Repositories) error {
		user, err := repos.Users().Delete(ctx, id)
		if err != nil {
			return err
		}

		if err := s.identity.DeleteAccount(ctx, strconv.FormatInt(id, 10)); err != nil {
			return fmt.Errorf("%w: failed to delete identity account: %v", model.ErrUpstream, err)
		}

		deleted = user
		return nil
	})
	if errors.Is(err, model.ErrNotFound) {
		return err
	}
	if err != nil {
		s.logger.Error("User service: failed to delete user", "user_id", id, "error", err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.removeAvatar(ctx, deleted.PhotoPath)

	s.logger.Info("User service: user deleted", "user_id", id)
	return nil
}

// UploadAvatar stores the picture and points rutafoto at it. The previous picture is removed
// when it lives in the same bucket.
func (s *User) UploadAvatar(ctx context.Context, id int64, avatar model.Avatar) (model.Profile, error) {
	if s.storage == nil {
		return model.Profile{}, ErrStorageDisabled
	}

	current, err := s.store.Users().GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, err
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get user: %w", err)
	}

	key := fmt.Sprintf("avatars/%d/%s%s", id, uuid.NewString(), avatar.Ext)
	if err := s.storage.Upload(ctx, key, avatar.Reader, avatar.Size, avatar.ContentType); err != nil {
		s.logger.Error("User service: failed to upload avatar", "user_id", id, "error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := s.storage.URL(key)
	user, err := s.store.Users().Update(ctx, id, model.UserFields{PhotoPath: &url})
	if err != nil {
		s.logger.Error("User service: failed to save avatar path", "user_id", id, "error", err.Error())
		if derr := s.storage.Delete(context.WithoutCancel(ctx), key); derr != nil {
			s.logger.Warn("User service: failed to remove orphaned avatar", "key", key, "error", derr.Error())
		}
		if errors.Is(err, model.ErrNotFound) {
			return model.Profile{}, err
		}
		return model.Profile{}, fmt.Errorf("failed to save avatar path: %w", err)
	}
	user.Artist = current.Artist

	s.removeAvatar(ctx, current.PhotoPath)

	profile, err := s.enrich.profile(ctx, user)
	if err != nil {
		return model.Profile{}, err
	}

	s.logger.Info("User service: avatar updated", "user_id", id, "key", key)
	return profile, nil
}

func (s *User) removeAvatar(ctx context.Context, path *string) {
	if s.storage == nil || path == nil {
		return
	}
	key, ok := s.storage.KeyFromURL(*path)
	if !ok {
		return
	}
	if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Warn("User service: failed to remove avatar", "key", key, "error", err.Error())
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: failed to hash password: %v", model.ErrValidation, err)
	}
	return string(hash), nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
