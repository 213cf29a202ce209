package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

func TestRatingRepo_LazyDefaultIsPersisted(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	repo := NewRatingRepo(b)

	_, err := repo.Find(ctx, "42")
	require.ErrorIs(t, err, ErrNotFound)

	p, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, domain.PlayerRating{UserID: "42", Rating: 1000}, p)

	found, err := repo.Find(ctx, "42")
	require.NoError(t, err, "Get must persist the default record")
	assert.Equal(t, p, found)

	again, err := repo.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 0, again.MatchesPlayed)
	assert.Equal(t, 1000, again.Rating)
}

func TestRatingRepo_SetCreatesAndOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewRatingRepo(NewMemoryBackend())

	p, err := repo.Set(ctx, "7", 1500, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.PlayerRating{UserID: "7", Rating: 1500}, p)

	n := 12
	p, err = repo.Set(ctx, "7", 1400, &n)
	require.NoError(t, err)
	assert.Equal(t, 12, p.MatchesPlayed)

	p, err = repo.Set(ctx, "7", 1300, nil)
	require.NoError(t, err)
	assert.Equal(t, 12, p.MatchesPlayed, "matches untouched when not given")
	assert.Equal(t, 1300, p.Rating)
}

func TestRatingRepo_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewRatingRepo(NewMemoryBackend())
	_, err := repo.Set(ctx, "a", 1200, nil)
	require.NoError(t, err)

	out, err := repo.Update(ctx, []string{"a", "b"}, func(ps []domain.PlayerRating) []domain.PlayerRating {
		require.Equal(t, 1200, ps[0].Rating)
		require.Equal(t, 1000, ps[1].Rating)
		for i := range ps {
			ps[i].Rating += 5
			ps[i].MatchesPlayed++
		}
		return ps
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	b, err := repo.Find(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, domain.PlayerRating{UserID: "b", Rating: 1005, MatchesPlayed: 1}, b)
}

func TestRatingRepo_RejectsCorruptDocument(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Save(ctx, DocRatings, []byte(`{"1": {"elo": 1000, "matches": -3}}`)))
	_, err := NewRatingRepo(b).Get(ctx, "1")
	require.ErrorIs(t, err, ErrCorruptDocument)

	require.NoError(t, b.Save(ctx, DocRatings, []byte(`not json`)))
	_, err = NewRatingRepo(b).Get(ctx, "1")
	require.ErrorIs(t, err, ErrCorruptDocument)
}

func TestMatchRepo_PutGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepo(NewMemoryBackend())

	_, err := repo.Get(ctx, "m1")
	require.ErrorIs(t, err, ErrNotFound)

	m, err := domain.NewMatch("m1", 3, []string{"a"}, []string{"b"})
	require.NoError(t, err)
	m.Votes["a"] = domain.VoteWin
	require.NoError(t, repo.Put(ctx, m))

	got, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, m, got)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMatchRepo_RejectsInvalidOnLoadAndPut(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	repo := NewMatchRepo(b)

	require.ErrorIs(t, repo.Put(ctx, domain.Match{ID: "x", Number: 1}), domain.ErrInvalidMatch)

	require.NoError(t, b.Save(ctx, DocMatches, []byte(`{"m1": {"team1": ["a"], "team2": ["a"], "votes": {}, "locked": false, "match_number": 1}}`)))
	_, err := repo.Get(ctx, "m1")
	require.ErrorIs(t, err, ErrCorruptDocument)
}

func TestMatchRepo_NullVotesAreHealed(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Save(ctx, DocMatches, []byte(`{"m1": {"team1": ["a"], "team2": ["b"], "votes": null, "locked": false, "match_number": 1}}`)))
	m, err := NewMatchRepo(b).Get(ctx, "m1")
	require.NoError(t, err)
	assert.NotNil(t, m.Votes)
	assert.Equal(t, "m1", m.ID)
}

func TestCounterRepo_StrictlyIncreasing(t *testing.T) {
	ctx := context.Background()
	repo := NewCounterRepo(NewMemoryBackend())

	cur, err := repo.Current(ctx)
	require.NoError(t, err)
	assert.Zero(t, cur)

	for want := 1; want <= 5; want++ {
		got, err := repo.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFileBackend_RoundTripAndLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fb, err := NewFileBackend(dir)
	require.NoError(t, err)

	_, err = fb.Load(ctx, DocCounter)
	require.ErrorIs(t, err, ErrNotFound)

	counter := NewCounterRepo(fb)
	_, err = counter.Next(ctx)
	require.NoError(t, err)
	_, err = NewRatingRepo(fb).Get(ctx, "99")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, DocCounter))
	require.NoError(t, err)
	assert.JSONEq(t, `{"counter": 1}`, string(raw))

	raw, err = os.ReadFile(filepath.Join(dir, DocRatings))
	require.NoError(t, err)
	assert.JSONEq(t, `{"99": {"elo": 1000, "matches": 0}}`, string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestMatchRepo_ReadsNumericPlayerIDsAndWritesStrings(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fb, err := NewFileBackend(dir)
	require.NoError(t, err)

	legacy := `{"111": {"team1": [123456789012345678], "team2": [223456789012345678, "323456789012345678"], "votes": {"123456789012345678": "win"}, "locked": false, "match_number": 1}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DocMatches), []byte(legacy), 0o644))

	repo := NewMatchRepo(fb)
	m, err := repo.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, []string{"123456789012345678"}, m.Team1)
	assert.Equal(t, []string{"223456789012345678", "323456789012345678"}, m.Team2)
	assert.Equal(t, 1, m.TeamOf("123456789012345678"))
	assert.Equal(t, domain.VoteWin, m.Votes["123456789012345678"])

	m.Votes["223456789012345678"] = domain.VoteLose
	require.NoError(t, repo.Put(ctx, m))

	raw, err := os.ReadFile(filepath.Join(dir, DocMatches))
	require.NoError(t, err)
	assert.JSONEq(t, `{"111": {"team1": ["123456789012345678"], "team2": ["223456789012345678", "323456789012345678"], "votes": {"123456789012345678": "win", "223456789012345678": "lose"}, "locked": false, "match_number": 1}}`, string(raw))
}

func TestMatchRepo_RejectsNonIntegerPlayerIDs(t *testing.T) {
	ctx := context.Background()
	for _, team := range []string{`[1.5]`, `[true]`, `[-3]`, `[{}]`} {
		b := NewMemoryBackend()
		doc := `{"m1": {"team1": ` + team + `, "team2": ["b"], "votes": {}, "locked": false, "match_number": 1}}`
		require.NoError(t, b.Save(ctx, DocMatches, []byte(doc)))
		_, err := NewMatchRepo(b).Get(ctx, "m1")
		assert.ErrorIs(t, err, ErrCorruptDocument, team)
	}
}
