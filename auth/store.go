package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mrobles-dev/cinevault/apperr"
	"github.com/mrobles-dev/cinevault/errhub"
	"github.com/mrobles-dev/cinevault/schema"
)

// State is the lifecycle phase of the store.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// Store owns the session. It is constructed once at application start and
// handed to consumers; there are no package-level singletons. All mutating
// operations validate their input, call the gateway, persist the new
// snapshot, and swap the session wholesale.
type Store struct {
	gw    Gateway
	snaps SnapshotStore
	hub   *errhub.Hub

	secret   string
	tokenTTL time.Duration

	loginSchema    *schema.Schema
	registerSchema *schema.Schema
	profileSchema  *schema.Schema

	mu      sync.RWMutex
	session *Session
	state   State

	authenticating atomic.Bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTokenSecret sets the secret used to mint session tokens. It must
// match the secret the gateway verifies against.
func WithTokenSecret(secret string) StoreOption {
	return func(s *Store) { s.secret = secret }
}

// WithTokenTTL sets the minted token lifetime.
func WithTokenTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.tokenTTL = ttl }
}

// NewStore creates a Store in the uninitialized state. Call Init to
// rehydrate any persisted session.
func NewStore(gw Gateway, snaps SnapshotStore, hub *errhub.Hub, options ...StoreOption) *Store {
	s := &Store{
		gw:             gw,
		snaps:          snaps,
		hub:            hub,
		secret:         "cinevault-dev-secret",
		tokenTTL:       24 * time.Hour,
		loginSchema:    schema.Login(),
		registerSchema: schema.Register(),
		profileSchema:  schema.UserProfile(),
		state:          StateUninitialized,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Init rehydrates the persisted snapshot and verifies its token against the
// gateway. A failed check clears the snapshot and leaves the store
// anonymous; Init itself only fails on storage errors.
func (s *Store) Init(ctx context.Context) error {
	s.setState(StateInitializing)

	snap, err := s.snaps.Load()
	if err != nil {
		s.setState(StateAnonymous)
		return err
	}
	if snap == nil || snap.Token == "" {
		s.setState(StateAnonymous)
		return nil
	}

	if err := s.gw.VerifyToken(ctx, snap.Token); err != nil {
		_ = s.snaps.Clear()
		s.hub.Add(err, map[string]interface{}{"context": "auth_initialization"})
		s.setState(StateAnonymous)
		return nil
	}

	s.swap(snap, StateAuthenticated)
	return nil
}

// Login validates the credentials, authenticates against the gateway, mints
// a session token, and persists the new session.
func (s *Store) Login(ctx context.Context, data map[string]interface{}) (*Session, error) {
	return errhub.Do(s.hub, ctx, func(ctx context.Context) (*Session, error) {
		s.authenticating.Store(true)
		defer s.authenticating.Store(false)

		res := s.loginSchema.Validate(data)
		if !res.OK {
			return nil, res.Err()
		}
		email := res.Data["email"].(string)
		password := res.Data["password"].(string)

		acct, err := s.gw.Login(ctx, email, password)
		if err != nil {
			return nil, err
		}
		return s.establish(acct)
	}, map[string]interface{}{"context": "user_login", "operation": "authentication"})
}

// Register validates the registration data, creates the account, and signs
// the new user in.
func (s *Store) Register(ctx context.Context, data map[string]interface{}) (*Session, error) {
	return errhub.Do(s.hub, ctx, func(ctx context.Context) (*Session, error) {
		s.authenticating.Store(true)
		defer s.authenticating.Store(false)

		res := s.registerSchema.Validate(data)
		if !res.OK {
			return nil, res.Err()
		}
		email := res.Data["email"].(string)
		password := res.Data["password"].(string)
		name := res.Data["name"].(string)

		acct, err := s.gw.Register(ctx, email, password, name)
		if err != nil {
			return nil, err
		}
		return s.establish(acct)
	}, map[string]interface{}{"context": "user_registration", "operation": "authentication"})
}

// establish mints a token for the account and installs the session.
func (s *Store) establish(acct *Account) (*Session, error) {
	token, err := MintToken(acct.ID, acct.Email, acct.Role, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	created := acct.CreatedAt
	if created.IsZero() {
		created = now
	}
	sess := &Session{
		UserID:    acct.ID,
		Email:     acct.Email,
		Name:      acct.Name,
		Role:      acct.Role,
		Token:     token,
		Favorites: []Favorite{},
		CreatedAt: created,
		LastLogin: now,
		LoginTime: now,
		UpdatedAt: now,
	}
	if err := s.persist(sess); err != nil {
		return nil, err
	}
	s.swap(sess, StateAuthenticated)
	return sess.Clone(), nil
}

// Logout invalidates the token at the gateway, clears the snapshot, and
// returns the store to the anonymous state.
func (s *Store) Logout(ctx context.Context) error {
	_, err := errhub.Do(s.hub, ctx, func(ctx context.Context) (struct{}, error) {
		token := ""
		if sess := s.current(); sess != nil {
			token = sess.Token
		}
		if err := s.gw.Logout(ctx, token); err != nil {
			return struct{}{}, err
		}
		if err := s.snaps.Clear(); err != nil {
			return struct{}{}, err
		}
		s.swap(nil, StateAnonymous)
		return struct{}{}, nil
	}, map[string]interface{}{"context": "user_logout", "operation": "authentication"})
	return err
}

// AddFavorite saves a catalog item to the session's favorites. Adding an
// item that is already saved fails with a conflict, never a silent
// overwrite.
func (s *Store) AddFavorite(ctx context.Context, item Item) (*Session, error) {
	return errhub.Do(s.hub, ctx, func(ctx context.Context) (*Session, error) {
		sess := s.current()
		if sess == nil {
			return nil, apperr.Authentication("You must sign in to add favorites")
		}
		if item.ID <= 0 {
			return nil, apperr.Validation("Invalid catalog item")
		}
		if sess.HasFavorite(item.ID) {
			return nil, apperr.Conflict("This title is already in your favorites")
		}

		now := time.Now()
		next := sess.Clone()
		next.Favorites = append(next.Favorites, Favorite{Item: item, AddedAt: now})
		next.UpdatedAt = now
		if err := s.persist(next); err != nil {
			return nil, err
		}
		s.swap(next, StateAuthenticated)
		return next.Clone(), nil
	}, map[string]interface{}{"context": "add_favorite", "item_id": item.ID})
}

// RemoveFavorite drops the favorite with the given item id, if present.
func (s *Store) RemoveFavorite(ctx context.Context, id int) (*Session, error) {
	return errhub.Do(s.hub, ctx, func(ctx context.Context) (*Session, error) {
		sess := s.current()
		if sess == nil {
			return nil, apperr.Authentication("You must sign in to manage favorites")
		}

		next := sess.Clone()
		kept := next.Favorites[:0]
		for _, fav := range next.Favorites {
			if fav.ID != id {
				kept = append(kept, fav)
			}
		}
		next.Favorites = kept
		next.UpdatedAt = time.Now()
		if err := s.persist(next); err != nil {
			return nil, err
		}
		s.swap(next, StateAuthenticated)
		return next.Clone(), nil
	}, map[string]interface{}{"context": "remove_favorite", "item_id": id})
}

// UpdateProfile validates and applies profile edits to the session.
func (s *Store) UpdateProfile(ctx context.Context, data map[string]interface{}) (*Session, error) {
	return errhub.Do(s.hub, ctx, func(ctx context.Context) (*Session, error) {
		sess := s.current()
		if sess == nil {
			return nil, apperr.Authentication("You must sign in to edit your profile")
		}

		res := s.profileSchema.Validate(data)
		if !res.OK {
			return nil, res.Err()
		}

		next := sess.Clone()
		if name, ok := res.Data["name"].(string); ok {
			next.Name = name
		}
		if email, ok := res.Data["email"].(string); ok {
			next.Email = email
		}
		if bio, ok := res.Data["bio"].(string); ok {
			next.Bio = bio
		}
		if genres, ok := res.Data["favoriteGenres"].([]string); ok {
			next.FavoriteGenres = genres
		}
		next.UpdatedAt = time.Now()
		if err := s.persist(next); err != nil {
			return nil, err
		}
		s.swap(next, StateAuthenticated)
		return next.Clone(), nil
	}, map[string]interface{}{"context": "profile_update"})
}

// ChangePassword validates the new password and asks the gateway to verify
// the current one and apply the change.
func (s *Store) ChangePassword(ctx context.Context, current, next string) error {
	_, err := errhub.Do(s.hub, ctx, func(ctx context.Context) (struct{}, error) {
		sess := s.current()
		if sess == nil {
			return struct{}{}, apperr.Authentication("You must sign in to change your password")
		}

		res := s.loginSchema.Pick("password").Validate(map[string]interface{}{"password": next})
		if !res.OK {
			return struct{}{}, res.Err()
		}

		if err := s.gw.ChangePassword(ctx, sess.Email, current, next); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, map[string]interface{}{"context": "change_password"})
	return err
}

// RefreshUser re-verifies the session token and records the refresh time.
func (s *Store) RefreshUser(ctx context.Context) (*Session, error) {
	return errhub.Do(s.hub, ctx, func(ctx context.Context) (*Session, error) {
		sess := s.current()
		if sess == nil || sess.Token == "" {
			return nil, apperr.Authentication("No active session")
		}
		if err := s.gw.VerifyToken(ctx, sess.Token); err != nil {
			return nil, err
		}

		next := sess.Clone()
		next.LastRefresh = time.Now()
		if err := s.persist(next); err != nil {
			return nil, err
		}
		s.swap(next, StateAuthenticated)
		return next.Clone(), nil
	}, map[string]interface{}{"context": "refresh_user"})
}

// IsFavorite reports whether the item id is saved in the current session.
func (s *Store) IsFavorite(id int) bool {
	return s.current().HasFavorite(id)
}

// User returns a copy of the current session, nil when anonymous.
func (s *Store) User() *Session {
	return s.current().Clone()
}

// State returns the store's lifecycle phase.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Authenticated reports whether a session is established.
func (s *Store) Authenticated() bool {
	return s.current() != nil
}

// Authenticating reports whether a login or registration is in progress.
func (s *Store) Authenticating() bool {
	return s.authenticating.Load()
}

// Loading reports whether any store operation is in flight, via the shared
// hub counter.
func (s *Store) Loading() bool {
	return s.hub.Loading()
}

// HasRole reports whether the current session carries the role.
func (s *Store) HasRole(role Role) bool {
	sess := s.current()
	return sess != nil && sess.Role == role
}

// Admin reports whether the current session is an administrator.
func (s *Store) Admin() bool {
	return s.HasRole(RoleAdmin)
}

func (s *Store) current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *Store) persist(sess *Session) error {
	if err := s.snaps.Save(sess); err != nil {
		return apperr.Server("Could not persist the session").Wrap(err)
	}
	return nil
}

func (s *Store) swap(sess *Session, state State) {
	s.mu.Lock()
	s.session = sess
	s.state = state
	s.mu.Unlock()
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
