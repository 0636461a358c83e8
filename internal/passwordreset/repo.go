package passwordreset

import "context"

var ErrTokenNotFound = errTokenNotFound{}

type errTokenNotFound struct{}

func (errTokenNotFound) Error() string { return "reset token not found" }

type Repo interface {
	Save(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (Token, error)
	Delete(ctx context.Context, token string) error
}
