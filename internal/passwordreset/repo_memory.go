package passwordreset

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tokens: make(map[string]Token)}
}

func (r *MemoryRepo) Save(ctx context.Context, token Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.tokens[token.Token] = token
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, token string) (Token, error) {
	if err := ctx.Err(); err != nil {
		return Token{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[token]
	if !ok {
		return Token{}, ErrTokenNotFound
	}
	return t, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.tokens, token)
	r.mu.Unlock()
	return nil
}
