package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuery(t *testing.T) (*Query, *Posts, *Accounts) {
	t.Helper()

	a, _ := newTestAccounts(t)

	return &Query{DB: a.DB}, &Posts{DB: a.DB, Media: a.Media}, a
}

func TestSearchMatchesCaptionTagsAndLocation(t *testing.T) {
	q, p, a := newTestQuery(t)
	alice := mustRegister(t, a, "alice")
	bob := mustRegister(t, a, "bob")

	_, err := p.Create(context.Background(), alice.ID, PostInput{
		Caption: str("sunset #beach"),
		Tags:    str("beach, summer"),
	}, nil)
	require.NoError(t, err)

	_, err = p.Create(context.Background(), alice.ID, PostInput{
		Caption:  str("city lights"),
		Location: str("Lisbon"),
	}, nil)
	require.NoError(t, err)

	posts, err := q.Search("BEACH", bob.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "sunset #beach", posts[0].Caption)
	assert.Equal(t, "alice", posts[0].User.Username)

	posts, err = q.Search("lisbon", bob.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "city lights", posts[0].Caption)

	posts, err = q.Search("summer", bob.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	posts, err = q.Search("nothing-matches-this", bob.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSearchTreatsWildcardsAsLiterals(t *testing.T) {
	q, p, a := newTestQuery(t)
	alice := mustRegister(t, a, "alice")

	_, err := p.Create(context.Background(), alice.ID, PostInput{Caption: str("plain caption")}, nil)
	require.NoError(t, err)

	percent, err := p.Create(context.Background(), alice.ID, PostInput{Caption: str("100% battery")}, nil)
	require.NoError(t, err)

	underscore, err := p.Create(context.Background(), alice.ID, PostInput{Caption: str("snake_case")}, nil)
	require.NoError(t, err)

	// SQL wildcards in the term match themselves, not everything
	posts, err := q.Search("%", alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, percent.ID, posts[0].ID)

	posts, err = q.Search("_", alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, underscore.ID, posts[0].ID)

	posts, err = q.Search("100% bat", alice.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	posts, err = q.Search(`\`, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSearchEmptyTermReturnsNothing(t *testing.T) {
	q, p, a := newTestQuery(t)
	alice := mustRegister(t, a, "alice")

	_, err := p.Create(context.Background(), alice.ID, PostInput{Caption: str("hello")}, nil)
	require.NoError(t, err)

	posts, err := q.Search("   ", alice.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestSearchRespectsVisibility(t *testing.T) {
	q, p, a := newTestQuery(t)
	alice := mustRegister(t, a, "alice")
	bob := mustRegister(t, a, "bob")

	_, err := p.Create(context.Background(), alice.ID, PostInput{Caption: str("sunset #beach")}, nil)
	require.NoError(t, err)

	posts, err := q.Search("beach", bob.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	// Flipping the account private hides the post from everyone but
	// its owner
	require.NoError(t, a.SetPrivacy(alice.ID, true))

	posts, err = q.Search("beach", bob.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)

	posts, err = q.Search("beach", alice.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestListPaginatesWithFixedLimit(t *testing.T) {
	q, p, a := newTestQuery(t)
	alice := mustRegister(t, a, "alice")

	for i := 0; i < pageLimit+5; i++ {
		_, err := p.Create(context.Background(), alice.ID, PostInput{
			Caption: str(fmt.Sprintf("post %d", i)),
		}, nil)
		require.NoError(t, err)
	}

	page, err := q.List(alice.ID, 0)
	require.NoError(t, err)
	assert.Len(t, page, pageLimit)

	page, err = q.List(alice.ID, pageLimit)
	require.NoError(t, err)
	assert.Len(t, page, 5)

	// Negative offsets are treated as the first page
	page, err = q.List(alice.ID, -3)
	require.NoError(t, err)
	assert.Len(t, page, pageLimit)
}

func TestAnonymousViewerSeesOnlyPublicContent(t *testing.T) {
	q, p, a := newTestQuery(t)
	alice := mustRegister(t, a, "alice")
	bob := mustRegister(t, a, "bob")

	visible, err := p.Create(context.Background(), alice.ID, PostInput{Caption: str("open to all")}, nil)
	require.NoError(t, err)

	_, err = p.Create(context.Background(), alice.ID, PostInput{
		Caption: str("followers only"),
		Private: boolp(true),
	}, nil)
	require.NoError(t, err)

	require.NoError(t, a.SetPrivacy(bob.ID, true))
	_, err = p.Create(context.Background(), bob.ID, PostInput{Caption: str("open post, private owner")}, nil)
	require.NoError(t, err)

	// The empty viewer ID never matches an owner
	posts, err := q.Recent("")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, visible.ID, posts[0].ID)

	posts, err = q.Search("open", "")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, visible.ID, posts[0].ID)

	// Single fetch and the profile grid follow the same arm
	got, err := p.Get(visible.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "open to all", got.Caption)

	posts, err = p.ListByUser(alice.ID, "")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, visible.ID, posts[0].ID)

	posts, err = p.ListByUser(bob.ID, "")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestRecentHidesPrivatePosts(t *testing.T) {
	q, p, a := newTestQuery(t)
	alice := mustRegister(t, a, "alice")
	bob := mustRegister(t, a, "bob")

	_, err := p.Create(context.Background(), alice.ID, PostInput{Caption: str("public")}, nil)
	require.NoError(t, err)

	_, err = p.Create(context.Background(), alice.ID, PostInput{
		Caption: str("just for me"),
		Private: boolp(true),
	}, nil)
	require.NoError(t, err)

	posts, err := q.Recent(bob.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "public", posts[0].Caption)

	// The owner sees both
	posts, err = q.Recent(alice.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}
