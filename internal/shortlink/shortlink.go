// Package shortlink generates the compact tokens that resolve to recipes.
package shortlink

import (
	"context"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Alphabet is the set of characters a token is drawn from.
	Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Length is the fixed token length.
	Length = 6
)

// Checker reports whether a token is already taken by a stored recipe.
type Checker interface {
	ShortLinkExists(ctx context.Context, token string) (bool, error)
}

// Source produces candidate tokens.
type Source func() (string, error)

// Random draws a token from Alphabet using crypto-grade randomness.
func Random() (string, error) {
	return gonanoid.Generate(Alphabet, Length)
}

// Generator produces tokens that do not collide with stored ones.
type Generator struct {
	checker Checker
	source  Source
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the random token source.
func WithSource(src Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.source = src
		}
	}
}

// NewGenerator creates a Generator checking candidates against checker.
func NewGenerator(checker Checker, opts ...Option) *Generator {
	g := &Generator{checker: checker, source: Random}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a token unused at the time of the check. It retries until
// ctx is done; the caller's unique index still decides races after the check.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		token, err := g.source()
		if err != nil {
			return "", fmt.Errorf("generate short link: %w", err)
		}

		exists, err := g.checker.ShortLinkExists(ctx, token)
		if err != nil {
			return "", fmt.Errorf("check short link %q: %w", token, err)
		}
		if !exists {
			return token, nil
		}
	}
}

// Valid reports whether token has the shape of a generated short link.
func Valid(token string) bool {
	if len(token) != Length {
		return false
	}
	for _, r := range token {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}
