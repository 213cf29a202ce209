package service

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/jose-valero/inhouse-elo-bot/internal/infra/storage"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type move struct{ user, channel string }

type fakeVoice struct {
	nextID    int
	created   []string
	limits    map[string]int
	parents   map[string]string
	moves     []move
	deletes   []string
	occupants map[string]int
	gone      map[string]bool
	deleteErr map[string]error
	moveErr   error
}

func newFakeVoice() *fakeVoice {
	return &fakeVoice{
		limits:    map[string]int{},
		parents:   map[string]string{},
		occupants: map[string]int{},
		gone:      map[string]bool{},
		deleteErr: map[string]error{},
	}
}

func (f *fakeVoice) CreateTeamChannel(_ context.Context, _, categoryID, name string, userLimit int) (string, error) {
	f.nextID++
	id := fmt.Sprintf("vc%d", f.nextID)
	f.created = append(f.created, name)
	f.limits[id] = userLimit
	f.parents[id] = categoryID
	return id, nil
}

func (f *fakeVoice) MoveMember(_ context.Context, _, userID, channelID string) error {
	f.moves = append(f.moves, move{userID, channelID})
	return f.moveErr
}

func (f *fakeVoice) DeleteChannel(_ context.Context, channelID string) error {
	f.deletes = append(f.deletes, channelID)
	return f.deleteErr[channelID]
}

func (f *fakeVoice) ChannelOccupants(_ context.Context, _, channelID string) (int, error) {
	if f.gone[channelID] {
		return 0, ErrChannelGone
	}
	return f.occupants[channelID], nil
}

type sent struct{ channel, content string }

type fakeMessenger struct {
	sent []sent
}

func (f *fakeMessenger) SendMessage(_ context.Context, channelID, content string) error {
	f.sent = append(f.sent, sent{channelID, content})
	return nil
}

func (f *fakeMessenger) to(channelID string) []string {
	var out []string
	for _, s := range f.sent {
		if s.channel == channelID {
			out = append(out, s.content)
		}
	}
	return out
}

type harness struct {
	backend *storage.MemoryBackend
	ratings *storage.RatingRepo
	matches *storage.MatchRepo
	counter *storage.CounterRepo
	voice   *fakeVoice
	msg     *fakeMessenger
	cleanup *CleanupService
	svc     *MatchService
}

const (
	gameChannel = "game-8s"
	category8s  = "cat-8s"
	staffChan   = "staff"
	textChan    = "text"
)

func newHarness() *harness {
	b := storage.NewMemoryBackend()
	h := &harness{
		backend: b,
		ratings: storage.NewRatingRepo(b),
		matches: storage.NewMatchRepo(b),
		counter: storage.NewCounterRepo(b),
		voice:   newFakeVoice(),
		msg:     &fakeMessenger{},
	}
	log := testLogger()
	h.cleanup = NewCleanupService(h.voice, log)
	h.svc = NewMatchService(
		NewRatingService(h.ratings, log),
		h.matches,
		h.counter,
		h.voice,
		h.msg,
		h.cleanup,
		map[string]string{gameChannel: category8s},
		staffChan,
		rand.New(rand.NewPCG(1, 1)),
		log,
	)
	return h
}
