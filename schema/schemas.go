package schema

import (
	"math"
	"unicode"
)

// SortOptions enumerates the accepted catalog sort orders.
var SortOptions = []string{"popularity", "rating", "date", "title"}

// Login validates sign-in credentials.
func Login() *Schema {
	return New("login",
		String("email").
			Required("The email is required").
			Email("Invalid email format").
			Max(100, "The email is too long"),
		String("password").
			Required("The password is required").
			Min(6, "The password must be at least 6 characters").
			Max(50, "The password is too long"),
	)
}

// Register validates account creation data, including the password strength
// rule and the confirmation cross-check.
func Register() *Schema {
	return New("register",
		String("name").
			Required("The name is required").
			Min(2, "The name must be at least 2 characters").
			Max(50, "The name is too long").
			Letters("The name can only contain letters"),
		String("email").
			Required("The email is required").
			Email("Invalid email format").
			Max(100, "The email is too long"),
		String("password").
			Required("The password is required").
			Min(6, "The password must be at least 6 characters").
			Max(50, "The password is too long").
			Check(strongPassword, "The password must contain at least one uppercase letter, one lowercase letter and one digit"),
		String("confirmPassword").
			Required("Password confirmation is required"),
	).Refine(func(data map[string]interface{}) bool {
		return data["password"] == data["confirmPassword"]
	}, "confirmPassword", "The passwords do not match")
}

// Search validates catalog query parameters, applying defaults for the
// absent ones.
func Search() *Schema {
	return New("search",
		String("searchTerm").
			Optional().
			Max(100, "Search term is too long"),
		String("sortBy").
			OneOf(SortOptions, "Invalid sort option").
			Default("popularity"),
		String("filterBy").
			Max(50, "Filter is too long").
			Default("all"),
		Int("page").
			Min(1, "The page must be greater than 0").
			Default(1),
		Int("limit").
			Min(1, "The limit must be greater than 0").
			Max(100, "The limit cannot be greater than 100").
			Default(20),
	)
}

// UserProfile validates profile edits.
func UserProfile() *Schema {
	return New("userProfile",
		String("name").
			Min(2, "The name must be at least 2 characters").
			Max(50, "The name is too long").
			Letters("The name can only contain letters"),
		String("email").
			Email("Invalid email format").
			Max(100, "The email is too long"),
		String("bio").
			Optional().
			Max(500, "The bio is too long"),
		StringList("favoriteGenres").
			Optional().
			Max(10, "You cannot select more than 10 genres"),
	)
}

// Review validates a rating with commentary for a catalog item.
func Review() *Schema {
	return New("review",
		Int("movieId").
			Min(1, "Invalid movie ID"),
		Float("rating").
			Min(1, "The rating must be at least 1").
			Max(10, "The rating cannot be greater than 10").
			Check(oneDecimal, "The rating can have at most one decimal"),
		String("title").
			Required("The title is required").
			Max(100, "The title is too long"),
		String("content").
			Min(10, "The review must be at least 10 characters").
			Max(2000, "The review is too long"),
		Bool("spoilers").
			Default(false),
	)
}

// oneDecimal accepts ratings with at most one decimal place.
func oneDecimal(v interface{}) bool {
	scaled := v.(float64) * 10
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

// strongPassword requires at least one uppercase letter, one lowercase
// letter, and one digit.
func strongPassword(v interface{}) bool {
	var upper, lower, digit bool
	for _, r := range v.(string) {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
