package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gc02/usuario-server/internal/model"
	"github.com/gc02/usuario-server/internal/token"
)

var _ model.IdentityProvider = (*Local)(nil)

// Local is an in-process identity provider for development and tests.
// Tokens are HMAC JWTs minted by internal/token; accounts live in memory.
type Local struct {
	issuer *token.JWT
	now    func() time.Time

	mu       sync.Mutex
	accounts map[string]model.NewAccount
	revoked  map[string]time.Time
}

func NewLocal(secret string) *Local {
	return &Local{
		issuer:   token.NewJWT(secret),
		now:      time.Now,
		accounts: make(map[string]model.NewAccount),
		revoked:  make(map[string]time.Time),
	}
}

func (l *Local) VerifyIDToken(_ context.Context, idToken string) (model.Identity, error) {
	subject, err := l.issuer.ParseIDToken(idToken)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	l.mu.Lock()
	revokedAt, ok := l.revoked[subject.UID]
	l.mu.Unlock()

	if ok && subject.IssuedAt.Before(revokedAt.Truncate(time.Second)) {
		return model.Identity{}, fmt.Errorf("%w: token revoked", model.ErrUnauthenticated)
	}

	return model.Identity{UID: subject.UID, Email: subject.Email}, nil
}

func (l *Local) CreateAccount(_ context.Context, account model.NewAccount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accounts[account.UID]; ok {
		return fmt.Errorf("%w: uid %s", model.ErrConflict, account.UID)
	}
	l.accounts[account.UID] = account
	return nil
}

func (l *Local) DeleteAccount(_ context.Context, uid string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.accounts, uid)
	l.revoked[uid] = l.now()
	return nil
}

func (l *Local) RevokeSessions(_ context.Context, uid string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.revoked[uid] = l.now()
	return nil
}

// Issue mints an identity token for uid, as the external provider would after sign-in.
func (l *Local) Issue(uid, email string) (string, error) {
	idToken, _, err := l.issuer.GenerateIDToken(uid, email)
	return idToken, err
}

// HasAccount reports whether an account with uid was created.
func (l *Local) HasAccount(uid string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.accounts[uid]
	return ok
}
