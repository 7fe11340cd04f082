package shortlink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setChecker struct {
	taken map[string]bool
	calls int
	err   error
}

func (c *setChecker) ShortLinkExists(_ context.Context, token string) (bool, error) {
	c.calls++
	if c.err != nil {
		return false, c.err
	}
	return c.taken[token], nil
}

func sequence(tokens ...string) Source {
	i := 0
	return func() (string, error) {
		t := tokens[i]
		i++
		return t, nil
	}
}

func TestRandom_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		token, err := Random()
		require.NoError(t, err)
		assert.Len(t, token, Length)
		assert.True(t, Valid(token), "token %q outside alphabet", token)
		seen[token] = true
	}
	// 62^6 tokens; 500 draws should not collide in practice.
	assert.Len(t, seen, 500)
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	checker := &setChecker{taken: map[string]bool{"aaaaaa": true, "bbbbbb": true}}
	g := NewGenerator(checker, WithSource(sequence("aaaaaa", "bbbbbb", "cccccc")))

	token, err := g.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "cccccc", token)
	assert.Equal(t, 3, checker.calls)
}

func TestGenerate_CheckerError(t *testing.T) {
	checker := &setChecker{err: errors.New("db down")}
	g := NewGenerator(checker, WithSource(sequence("aaaaaa")))

	_, err := g.Generate(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGenerator(&setChecker{}, WithSource(sequence("aaaaaa")))

	_, err := g.Generate(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestValid(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"aB3xY9", true},
		{"abc", false},
		{"abcdefg", false},
		{"abc-ef", false},
		{"абвгде", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.token))
		})
	}
}
