package model

import "context"

// Identity is the verified subject of a bearer credential.
type Identity struct {
	UID   string
	Email string
}

// NewAccount describes an identity provider account to create.
type NewAccount struct {
	UID         string
	Email       string
	Password    string
	DisplayName string
}

// IdentityProvider verifies credentials and manages accounts in the external identity service.
type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, token string) (Identity, error)
	CreateAccount(ctx context.Context, account NewAccount) error
	DeleteAccount(ctx context.Context, uid string) error
	RevokeSessions(ctx context.Context, uid string) error
}
