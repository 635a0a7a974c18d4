package auth

import (
	"sort"
	"time"
)

// GenreCount is one entry of the favorite-genres ranking.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Stats is a derived view over the session's favorites.
type Stats struct {
	TotalFavorites  int          `json:"totalFavorites"`
	MoviesFavorites int          `json:"moviesFavorites"`
	TVFavorites     int          `json:"tvFavorites"`
	MemberSince     time.Time    `json:"memberSince"`
	LastLogin       time.Time    `json:"lastLogin"`
	FavoriteGenres  []GenreCount `json:"favoriteGenres"`
}

// Stats derives the current session's statistics. Returns nil when no user
// is logged in.
func (s *Store) Stats() *Stats {
	sess := s.current()
	if sess == nil {
		return nil
	}

	stats := &Stats{
		TotalFavorites: len(sess.Favorites),
		MemberSince:    sess.CreatedAt,
		LastLogin:      sess.LastLogin,
		FavoriteGenres: topGenres(sess.Favorites, 5),
	}
	if stats.MemberSince.IsZero() {
		stats.MemberSince = sess.LoginTime
	}
	for _, fav := range sess.Favorites {
		switch fav.Kind {
		case MediaMovies:
			stats.MoviesFavorites++
		case MediaTV:
			stats.TVFavorites++
		}
	}
	return stats
}

// topGenres ranks genres by frequency across the favorites, keeping the
// first n. Ties preserve first-encountered order.
func topGenres(favorites []Favorite, n int) []GenreCount {
	counts := make(map[string]int)
	var order []string
	for _, fav := range favorites {
		for _, genre := range fav.Genres {
			if counts[genre] == 0 {
				order = append(order, genre)
			}
			counts[genre]++
		}
	}

	ranked := make([]GenreCount, 0, len(order))
	for _, genre := range order {
		ranked = append(ranked, GenreCount{Genre: genre, Count: counts[genre]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
