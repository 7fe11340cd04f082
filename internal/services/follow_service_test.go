package services

import (
	"context"
	"fmt"
	"testing"

	apperrors "github.com/anonto42/foodgram/backend/internal/errors"
	"github.com/anonto42/foodgram/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow_SelfFollowAlwaysFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := range 3 {
		user := testutil.CreateUser(t, f.db, fmt.Sprintf("user%d", i))
		_, err := f.follows.Follow(ctx, user.ID, user.ID)
		assert.ErrorIs(t, err, apperrors.ErrSelfFollow)
	}
}

func TestFollowUnfollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.db, "alice")
	bob := testutil.CreateUser(t, f.db, "bob")

	follow, err := f.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, follow.FollowerID)
	assert.Equal(t, bob.ID, follow.FolloweeID)

	_, err = f.follows.Follow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRelation)

	_, err = f.follows.Follow(ctx, alice.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = f.follows.Follow(ctx, 9999, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	profile, err := f.follows.GetUser(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)

	require.NoError(t, f.follows.Unfollow(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, f.follows.Unfollow(ctx, alice.ID, bob.ID), apperrors.ErrNotFound)

	profile, err = f.follows.GetUser(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = f.follows.GetUser(ctx, 999, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListSubscriptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, f.db, "reader")
	alice := testutil.CreateUser(t, f.db, "alice")
	bob := testutil.CreateUser(t, f.db, "bob")
	testutil.CreateUser(t, f.db, "carol")

	testutil.CreateRecipe(t, f.db, alice, "A1", nil)
	testutil.CreateRecipe(t, f.db, alice, "A2", nil)
	testutil.CreateRecipe(t, f.db, alice, "A3", nil)

	_, err := f.follows.Follow(ctx, reader.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.follows.Follow(ctx, reader.ID, alice.ID)
	require.NoError(t, err)

	subs, err := f.follows.ListSubscriptions(ctx, reader.ID, 2)
	require.NoError(t, err)
	require.Len(t, subs, 2)

	assert.Equal(t, "bob", subs[0].Username)
	assert.True(t, subs[0].IsSubscribed)
	assert.Empty(t, subs[0].Recipes)
	assert.NotNil(t, subs[0].Recipes)
	assert.Zero(t, subs[0].RecipesCount)

	assert.Equal(t, "alice", subs[1].Username)
	assert.EqualValues(t, 3, subs[1].RecipesCount)
	require.Len(t, subs[1].Recipes, 2)
	assert.Equal(t, "A3", subs[1].Recipes[0].Name)

	unlimited, err := f.follows.ListSubscriptions(ctx, reader.ID, 0)
	require.NoError(t, err)
	assert.Len(t, unlimited[1].Recipes, 3)

	none, err := f.follows.ListSubscriptions(ctx, bob.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	one, err := f.follows.GetSubscription(ctx, reader.ID, alice.ID, 1)
	require.NoError(t, err)
	assert.True(t, one.IsSubscribed)
	assert.Len(t, one.Recipes, 1)
}
