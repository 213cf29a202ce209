package domain

import (
	"cmp"
	"errors"
	"math/rand/v2"
	"slices"
)

var ErrNotEnoughPlayers = errors.New("at least 2 players are required")

type RatedPlayer struct {
	UserID string
	Rating int
}

// Balance reparte jugadores en dos equipos: shuffle (desempate), orden
// descendente por rating y greedy al equipo con menor suma (empate → team1).
// Un equipo con ceil(n/2) jugadores está lleno, así los tamaños difieren en 1 como mucho.
func Balance(players []RatedPlayer, rng *rand.Rand) (team1, team2 []string, err error) {
	if len(players) < 2 {
		return nil, nil, ErrNotEnoughPlayers
	}
	ps := slices.Clone(players)
	rng.Shuffle(len(ps), func(i, j int) { ps[i], ps[j] = ps[j], ps[i] })
	slices.SortStableFunc(ps, func(a, b RatedPlayer) int { return cmp.Compare(b.Rating, a.Rating) })

	limit := (len(ps) + 1) / 2
	var sum1, sum2 int
	for _, p := range ps {
		toTeam1 := sum1 <= sum2
		if toTeam1 && len(team1) == limit {
			toTeam1 = false
		} else if !toTeam1 && len(team2) == limit {
			toTeam1 = true
		}
		if toTeam1 {
			team1 = append(team1, p.UserID)
			sum1 += p.Rating
		} else {
			team2 = append(team2, p.UserID)
			sum2 += p.Rating
		}
	}
	return team1, team2, nil
}
