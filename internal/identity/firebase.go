package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/gc02/usuario-server/internal/model"
)

var _ model.IdentityProvider = (*Firebase)(nil)

// authClient is the subset of *auth.Client used by Firebase.
type authClient interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// Credentials locates the service account. File wins over the inline fields.
type Credentials struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
	File        string
}

// Firebase implements model.IdentityProvider on Firebase Authentication.
type Firebase struct {
	client authClient
}

// NewFirebase initializes the Firebase app and its auth client.
func NewFirebase(ctx context.Context, creds Credentials) (*Firebase, error) {
	var opts []option.ClientOption
	switch {
	case creds.File != "":
		opts = append(opts, option.WithCredentialsFile(creds.File))
	case creds.ClientEmail != "" && creds.PrivateKey != "":
		raw, err := serviceAccountJSON(creds)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: creds.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase auth: %w", err)
	}

	return &Firebase{client: client}, nil
}

func serviceAccountJSON(creds Credentials) ([]byte, error) {
	raw, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   creds.ProjectID,
		"client_email": creds.ClientEmail,
		// keys passed through env usually carry escaped newlines
		"private_key": strings.ReplaceAll(creds.PrivateKey, `\n`, "\n"),
		"token_uri":   "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode service account: %w", err)
	}
	return raw, nil
}

func (f *Firebase) VerifyIDToken(ctx context.Context, idToken string) (model.Identity, error) {
	token, err := f.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return model.Identity{}, fmt.Errorf("%w: token has no uid", model.ErrUnauthenticated)
	}

	identity := model.Identity{UID: uid}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	return identity, nil
}

func (f *Firebase) CreateAccount(ctx context.Context, account model.NewAccount) error {
	params := (&auth.UserToCreate{}).
		UID(account.UID).
		Email(account.Email).
		Password(account.Password)
	if account.DisplayName != "" {
		params = params.DisplayName(account.DisplayName)
	}

	if _, err := f.client.CreateUser(ctx, params); err != nil {
		if auth.IsUIDAlreadyExists(err) || auth.IsEmailAlreadyExists(err) {
			return fmt.Errorf("%w: %v", model.ErrConflict, err)
		}
		return fmt.Errorf("failed to create identity account: %w", err)
	}
	return nil
}

// DeleteAccount removes the account. A missing account is not an error.
func (f *Firebase) DeleteAccount(ctx context.Context, uid string) error {
	if err := f.client.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete identity account: %w", err)
	}
	return nil
}

func (f *Firebase) RevokeSessions(ctx context.Context, uid string) error {
	if err := f.client.RevokeRefreshTokens(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return errors.Join(model.ErrNotFound, err)
		}
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}
