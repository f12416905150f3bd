package identity

import (
	"context"

	"quiz-session/internal/quiz"
)

type User struct {
	UID   string
	Email string
}

// Provider reports the signed-in user, if any.
type Provider interface {
	CurrentUser(ctx context.Context) (User, bool)
}

// Anonymous never has a signed-in user.
type Anonymous struct{}

func (Anonymous) CurrentUser(context.Context) (User, bool) {
	return User{}, false
}

// Static always returns the same user. Useful for tests and fixed-identity
// deployments.
type Static User

func (s Static) CurrentUser(context.Context) (User, bool) {
	if s.UID == "" {
		return User{}, false
	}
	return User(s), true
}

// UserID resolves the id reported with results, falling back to
// quiz.AnonymousUserID.
func UserID(ctx context.Context, provider Provider) string {
	if provider == nil {
		return quiz.AnonymousUserID
	}
	user, ok := provider.CurrentUser(ctx)
	if !ok || user.UID == "" {
		return quiz.AnonymousUserID
	}
	return user.UID
}
