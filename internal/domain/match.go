package domain

import (
	"errors"
	"fmt"
)

type Vote string

const (
	VoteWin  Vote = "win"
	VoteLose Vote = "lose"
)

func (v Vote) Valid() bool { return v == VoteWin || v == VoteLose }

// MatchState se deriva de locked + winner, no se persiste aparte.
type MatchState string

const (
	StateOpen     MatchState = "open"
	StateConflict MatchState = "conflict"
	StateResolved MatchState = "resolved"
)

var ErrInvalidMatch = errors.New("invalid match")

// Match es el registro del ledger. Winner: 0 = ninguno, 1 = team1, 2 = team2.
type Match struct {
	ID     string          `json:"-"`
	Number int             `json:"match_number"`
	Team1  []string        `json:"team1"`
	Team2  []string        `json:"team2"`
	Votes  map[string]Vote `json:"votes"`
	Locked bool            `json:"locked"`
	Winner int             `json:"winner,omitempty"`
}

func NewMatch(id string, number int, team1, team2 []string) (Match, error) {
	m := Match{
		ID:     id,
		Number: number,
		Team1:  append([]string(nil), team1...),
		Team2:  append([]string(nil), team2...),
		Votes:  map[string]Vote{},
	}
	if err := m.Validate(); err != nil {
		return Match{}, err
	}
	return m, nil
}

// Validate chequea las invariantes del registro; se usa al crear y al cargar del disco.
func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidMatch)
	}
	if m.Number <= 0 {
		return fmt.Errorf("%w %s: match number %d", ErrInvalidMatch, m.ID, m.Number)
	}
	if len(m.Team1) == 0 || len(m.Team2) == 0 {
		return fmt.Errorf("%w %s: empty team", ErrInvalidMatch, m.ID)
	}
	seen := make(map[string]struct{}, len(m.Team1)+len(m.Team2))
	for _, uid := range append(append([]string(nil), m.Team1...), m.Team2...) {
		if uid == "" {
			return fmt.Errorf("%w %s: empty player id", ErrInvalidMatch, m.ID)
		}
		if _, dup := seen[uid]; dup {
			return fmt.Errorf("%w %s: player %s listed twice", ErrInvalidMatch, m.ID, uid)
		}
		seen[uid] = struct{}{}
	}
	for uid, v := range m.Votes {
		if _, ok := seen[uid]; !ok {
			return fmt.Errorf("%w %s: vote from non participant %s", ErrInvalidMatch, m.ID, uid)
		}
		if !v.Valid() {
			return fmt.Errorf("%w %s: vote %q", ErrInvalidMatch, m.ID, v)
		}
	}
	switch {
	case m.Winner < 0 || m.Winner > 2:
		return fmt.Errorf("%w %s: winner %d", ErrInvalidMatch, m.ID, m.Winner)
	case m.Winner != 0 && !m.Locked:
		return fmt.Errorf("%w %s: winner recorded on open match", ErrInvalidMatch, m.ID)
	}
	return nil
}

func (m Match) State() MatchState {
	switch {
	case !m.Locked:
		return StateOpen
	case m.Winner == 0:
		return StateConflict
	default:
		return StateResolved
	}
}

// TeamOf devuelve 1, 2 o 0 si no participa.
func (m Match) TeamOf(userID string) int {
	for _, uid := range m.Team1 {
		if uid == userID {
			return 1
		}
	}
	for _, uid := range m.Team2 {
		if uid == userID {
			return 2
		}
	}
	return 0
}

func (m Match) Team(n int) []string {
	if n == 1 {
		return m.Team1
	}
	return m.Team2
}

// Verdict es el resultado de evaluar los votos acumulados.
type Verdict struct {
	State  MatchState
	Winner int
}

// Evaluate aplica las reglas en orden: unanimidad de "lose" en team1, luego en
// team2, luego conflicto (al menos un "win" en cada lado). No modifica el match.
func (m Match) Evaluate() Verdict {
	switch {
	case m.allVoted(m.Team1, VoteLose):
		return Verdict{State: StateResolved, Winner: 2}
	case m.allVoted(m.Team2, VoteLose):
		return Verdict{State: StateResolved, Winner: 1}
	case m.anyVoted(m.Team1, VoteWin) && m.anyVoted(m.Team2, VoteWin):
		return Verdict{State: StateConflict}
	}
	return Verdict{State: StateOpen}
}

func (m Match) allVoted(team []string, v Vote) bool {
	if len(team) == 0 {
		return false
	}
	for _, uid := range team {
		if m.Votes[uid] != v {
			return false
		}
	}
	return true
}

func (m Match) anyVoted(team []string, v Vote) bool {
	for _, uid := range team {
		if m.Votes[uid] == v {
			return true
		}
	}
	return false
}
