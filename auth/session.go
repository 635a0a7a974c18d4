// Package auth owns session state: authentication against an injected
// gateway, favorites and profile mutations, durable snapshot persistence,
// and derived user statistics. Every mutation is routed through the error
// hub so failures surface as classified events and loading state stays
// consistent.
package auth

import "time"

// Role is the authorization level of a session.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// MediaKind distinguishes catalog item types.
type MediaKind string

const (
	MediaMovies MediaKind = "movies"
	MediaTV     MediaKind = "tv"
)

// Item is a reference to a catalog entry.
type Item struct {
	ID     int       `json:"id"`
	Title  string    `json:"title"`
	Kind   MediaKind `json:"type"`
	Genres []string  `json:"genres,omitempty"`
}

// Favorite is a catalog item saved by the user, with the moment it was
// added. At most one favorite exists per item id.
type Favorite struct {
	Item
	AddedAt time.Time `json:"addedAt"`
}

// Session is the authenticated identity plus its saved favorites. It is
// replaced wholesale on every mutation and persisted as a single snapshot;
// a nil session means no user is logged in.
type Session struct {
	UserID         string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           Role       `json:"role"`
	Token          string     `json:"token"`
	Bio            string     `json:"bio,omitempty"`
	FavoriteGenres []string   `json:"favoriteGenres,omitempty"`
	Favorites      []Favorite `json:"favorites"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLogin      time.Time  `json:"lastLogin"`
	LoginTime      time.Time  `json:"loginTime"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LastRefresh    time.Time  `json:"lastRefresh,omitempty"`
}

// Clone returns a deep copy. Mutations operate on copies and swap them in,
// so concurrent readers never observe a partial update.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.FavoriteGenres = append([]string(nil), s.FavoriteGenres...)
	out.Favorites = make([]Favorite, len(s.Favorites))
	for i, fav := range s.Favorites {
		out.Favorites[i] = fav
		out.Favorites[i].Genres = append([]string(nil), fav.Genres...)
	}
	return &out
}

// HasFavorite reports whether the session holds a favorite for the item id.
func (s *Session) HasFavorite(id int) bool {
	if s == nil {
		return false
	}
	for _, fav := range s.Favorites {
		if fav.ID == id {
			return true
		}
	}
	return false
}
