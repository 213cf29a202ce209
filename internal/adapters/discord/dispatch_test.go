package discord

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/inhouse-elo-bot/internal/app/service"
	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
	"github.com/jose-valero/inhouse-elo-bot/internal/infra/storage"
)

// restRecorder responde 200 a todo y guarda el content de los followups.
type restRecorder struct {
	followups []string
}

func (r *restRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil && strings.Contains(req.URL.Path, "/webhooks/") {
		var p struct {
			Content string `json:"content"`
		}
		raw, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(raw, &p)
		r.followups = append(r.followups, p.Content)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{}`)),
		Request:    req,
	}, nil
}

func (r *restRecorder) last() string {
	if len(r.followups) == 0 {
		return ""
	}
	return r.followups[len(r.followups)-1]
}

type nopVoice struct{}

func (nopVoice) CreateTeamChannel(context.Context, string, string, string, int) (string, error) {
	return "vc", nil
}

func (nopVoice) MoveMember(context.Context, string, string, string) error { return nil }

func (nopVoice) DeleteChannel(context.Context, string) error { return nil }

func (nopVoice) ChannelOccupants(context.Context, string, string) (int, error) { return 0, nil }

type nopMessenger struct{}

func (nopMessenger) SendMessage(context.Context, string, string) error { return nil }

const testGuild = "g"

func newTestRouter(t *testing.T, b storage.Backend) (*Router, *restRecorder) {
	t.Helper()
	rec := &restRecorder{}
	s, err := discordgo.New("Bot test")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: rec}

	l := logrus.New()
	l.SetOutput(io.Discard)
	log := logrus.NewEntry(l)

	ratings := service.NewRatingService(storage.NewRatingRepo(b), log)
	cleanup := service.NewCleanupService(nopVoice{}, log)
	matches := service.NewMatchService(
		ratings,
		storage.NewMatchRepo(b),
		storage.NewCounterRepo(b),
		nopVoice{},
		nopMessenger{},
		cleanup,
		map[string]string{"game": "cat"},
		"staff",
		rand.New(rand.NewPCG(1, 2)),
		log,
	)
	return NewRouter(s, testGuild, ratings, matches, cleanup, nil, log), rec
}

func interaction(typ discordgo.InteractionType, userID string, data discordgo.InteractionData) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "int-" + userID,
		AppID:     "app",
		Token:     "tok",
		Type:      typ,
		GuildID:   testGuild,
		ChannelID: "text",
		Member:    &discordgo.Member{User: &discordgo.User{ID: userID, Username: userID}},
		Data:      data,
	}}
}

func click(r *Router, userID, customID string) {
	ic := interaction(discordgo.InteractionMessageComponent, userID, discordgo.MessageComponentInteractionData{CustomID: customID})
	r.handleMessageComponent(r.s, ic)
}

func command(r *Router, userID, name string) {
	ic := interaction(discordgo.InteractionApplicationCommand, userID, discordgo.ApplicationCommandInteractionData{Name: name})
	r.handleSlashCommand(r.s, ic)
}

func putMatch(t *testing.T, b storage.Backend, id string, team1, team2 []string) {
	t.Helper()
	m, err := domain.NewMatch(id, 1, team1, team2)
	require.NoError(t, err)
	require.NoError(t, storage.NewMatchRepo(b).Put(context.Background(), m))
}

func TestComponents_VoteStaffAndRejections(t *testing.T) {
	b := storage.NewMemoryBackend()
	putMatch(t, b, "m1", []string{"a"}, []string{"b"})
	putMatch(t, b, "m2", []string{"c"}, []string{"d"})
	r, rec := newTestRouter(t, b)

	click(r, "a", "match_vote:m1:lose")
	assert.Equal(t, "✅ Vote recorded.", rec.last())

	// otra acción del mismo usuario dentro de la ventana sigue pasando
	click(r, "a", "match_staff:m1")
	assert.Equal(t, "🆘 Staff called, match on hold.", rec.last())

	click(r, "a", "match_vote:m1:win")
	assert.Equal(t, "⏳ Wait a second…", rec.last())

	click(r, "b", "match_vote:m1:win")
	assert.Equal(t, "⛔ Match already locked.", rec.last())

	click(r, "z", "match_vote:m2:win")
	assert.Equal(t, "❌ You are not part of this match.", rec.last())

	click(r, "y", "match_vote:nope:win")
	assert.Equal(t, "❌ Match not found.", rec.last())

	click(r, "x", "match_vote:m2:maybe")
	assert.Equal(t, "❌ Invalid vote.", rec.last())

	n := len(rec.followups)
	click(r, "a", "queue_join:m1")
	assert.Len(t, rec.followups, n, "foreign custom ids are ignored")
}

func TestComponents_StorageErrorIsReported(t *testing.T) {
	b := storage.NewMemoryBackend()
	require.NoError(t, b.Save(context.Background(), storage.DocMatches, []byte(`not json`)))
	r, rec := newTestRouter(t, b)

	click(r, "a", "match_vote:m1:win")
	assert.True(t, strings.HasPrefix(rec.last(), "⚠️ Could not record the vote: "), rec.last())

	click(r, "a", "match_staff:m1")
	assert.True(t, strings.HasPrefix(rec.last(), "⚠️ Could not reach the staff: "), rec.last())
}

func TestSlashCommands(t *testing.T) {
	r, rec := newTestRouter(t, storage.NewMemoryBackend())

	command(r, "a", "ping")
	assert.Equal(t, "🏓 Pong", rec.last())

	command(r, "a", "elo")
	assert.Equal(t, "📊 a has 1000 rating (0 matches played).", rec.last())

	// sin voice state en cache
	command(r, "a", "play")
	assert.Equal(t, "❌ You must be in a voice channel to start a match.", rec.last())

	command(r, "a", "setelo")
	assert.Equal(t, "🔒 You don't have permission for this action.", rec.last())
}
