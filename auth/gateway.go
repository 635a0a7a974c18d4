package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mrobles-dev/cinevault/apperr"
)

// Account is the identity a gateway returns on successful authentication.
type Account struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	LastLogin time.Time
}

// Gateway is the asynchronous remote collaborator the store depends on. A
// real backend implementing these operations with the same success and
// error semantics is a drop-in replacement for the mock.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*Account, error)
	Register(ctx context.Context, email, password, name string) (*Account, error)
	VerifyToken(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, email, current, next string) error
}

// Demo credentials accepted by the mock gateway.
const (
	DemoAdminEmail    = "admin@test.com"
	DemoAdminPassword = "admin123"
	DemoUserEmail     = "user@test.com"
	DemoUserPassword  = "user123"
)

// MockGateway simulates the remote backend: fixed demo accounts, injectable
// latencies, and special-cased emails that trigger failure scenarios
// ("slow" delays then fails, "error" fails server-side, "invalid" is
// rejected at registration).
type MockGateway struct {
	latency     time.Duration
	slowLatency time.Duration
	secret      string

	mu       sync.Mutex
	accounts map[string]*mockAccount
}

type mockAccount struct {
	account Account
	hash    []byte
}

// MockOption configures a MockGateway.
type MockOption func(*MockGateway)

// WithLatency sets the simulated round-trip delay for normal calls.
func WithLatency(d time.Duration) MockOption {
	return func(g *MockGateway) { g.latency = d }
}

// WithSlowLatency sets the extra delay of the "slow" login scenario.
func WithSlowLatency(d time.Duration) MockOption {
	return func(g *MockGateway) { g.slowLatency = d }
}

// WithSecret sets the token-signing secret the gateway verifies against.
func WithSecret(secret string) MockOption {
	return func(g *MockGateway) { g.secret = secret }
}

// NewMockGateway creates a gateway seeded with the two demo accounts.
// Defaults: 1s latency, 5s slow latency.
func NewMockGateway(options ...MockOption) *MockGateway {
	g := &MockGateway{
		latency:     time.Second,
		slowLatency: 5 * time.Second,
		secret:      "cinevault-dev-secret",
		accounts:    make(map[string]*mockAccount),
	}
	for _, opt := range options {
		opt(g)
	}
	g.seed(DemoAdminEmail, DemoAdminPassword, "Administrator", RoleAdmin)
	g.seed(DemoUserEmail, DemoUserPassword, "Demo User", RoleUser)
	return g
}

func (g *MockGateway) seed(email, password, name string, role Role) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	g.accounts[email] = &mockAccount{
		account: Account{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			Role:      role,
			CreatedAt: time.Now(),
		},
		hash: hash,
	}
}

func (g *MockGateway) Login(ctx context.Context, email, password string) (*Account, error) {
	if err := wait(ctx, g.latency); err != nil {
		return nil, err
	}

	if strings.Contains(email, "slow") {
		if err := wait(ctx, g.slowLatency); err != nil {
			return nil, err
		}
		return nil, apperr.Authentication("The server took too long to respond")
	}
	if strings.Contains(email, "error") {
		return nil, apperr.Server("Internal server error")
	}

	g.mu.Lock()
	entry, ok := g.accounts[email]
	g.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(entry.hash, []byte(password)) != nil {
		return nil, apperr.Authentication("Incorrect email or password").
			WithCode(apperr.CodeInvalidCredentials)
	}

	acct := entry.account
	acct.LastLogin = time.Now()
	g.mu.Lock()
	entry.account.LastLogin = acct.LastLogin
	g.mu.Unlock()
	return &acct, nil
}

func (g *MockGateway) Register(ctx context.Context, email, password, name string) (*Account, error) {
	if err := wait(ctx, g.latency+g.latency/2); err != nil {
		return nil, err
	}

	g.mu.Lock()
	_, exists := g.accounts[email]
	g.mu.Unlock()
	if exists {
		return nil, apperr.Conflict("An account with this email already exists").
			WithCode(apperr.CodeUserAlreadyExists)
	}
	if strings.Contains(email, "invalid") {
		return nil, apperr.Validation("Invalid email").With("field", "email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, apperr.Server("could not store credentials").Wrap(err)
	}
	now := time.Now()
	acct := Account{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      RoleUser,
		CreatedAt: now,
		LastLogin: now,
	}
	g.mu.Lock()
	g.accounts[email] = &mockAccount{account: acct, hash: hash}
	g.mu.Unlock()
	return &acct, nil
}

func (g *MockGateway) VerifyToken(ctx context.Context, token string) error {
	if err := wait(ctx, g.latency/2); err != nil {
		return err
	}
	_, err := ParseToken(token, g.secret)
	return err
}

func (g *MockGateway) Logout(ctx context.Context, _ string) error {
	return wait(ctx, g.latency/2)
}

func (g *MockGateway) ChangePassword(ctx context.Context, email, current, next string) error {
	if err := wait(ctx, g.latency); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	entry, ok := g.accounts[email]
	if !ok {
		// Account minted before this process started; fall back to the
		// simulation's simple rule.
		if len(current) < 6 {
			return apperr.Authentication("Current password is incorrect")
		}
		return nil
	}
	if bcrypt.CompareHashAndPassword(entry.hash, []byte(current)) != nil {
		return apperr.Authentication("Current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.MinCost)
	if err != nil {
		return apperr.Server("could not store credentials").Wrap(err)
	}
	entry.hash = hash
	return nil
}

// wait sleeps for d or until the context is done. Simulated calls cannot be
// aborted by anything else; they settle and only then release the caller.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
