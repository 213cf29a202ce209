package domain

const (
	DefaultRating    = 1000
	PlacementMatches = 10
)

// PlayerRating es la entrada del ledger para un usuario de Discord.
type PlayerRating struct {
	UserID        string `json:"-"`
	Rating        int    `json:"elo"`
	MatchesPlayed int    `json:"matches"`
}

func NewPlayerRating(userID string) PlayerRating {
	return PlayerRating{UserID: userID, Rating: DefaultRating}
}

func (p PlayerRating) InPlacement() bool { return p.MatchesPlayed < PlacementMatches }

// WinnerGain: 15 si el ganador está sobre el promedio del equipo ganador, 25 si no.
// Doble durante placement.
func WinnerGain(p PlayerRating, avgWinner float64) int {
	gain := 15
	if float64(p.Rating) < avgWinner {
		gain = 25
	}
	if p.InPlacement() {
		gain *= 2
	}
	return gain
}

// LoserLoss compara contra el promedio de los GANADORES, no de su propio equipo.
func LoserLoss(p PlayerRating, avgWinner float64) int {
	loss := 10
	if float64(p.Rating) < avgWinner {
		loss = 20
	}
	if p.InPlacement() {
		loss *= 2
	}
	return loss
}

// AverageRating devuelve 0 para una lista vacía.
func AverageRating(ps []PlayerRating) float64 {
	if len(ps) == 0 {
		return 0
	}
	sum := 0
	for _, p := range ps {
		sum += p.Rating
	}
	return float64(sum) / float64(len(ps))
}

// ApplyResult devuelve los ratings actualizados de ambos equipos. No hay piso:
// el rating puede quedar negativo.
func ApplyResult(winners, losers []PlayerRating) (w, l []PlayerRating) {
	avg := AverageRating(winners)

	w = make([]PlayerRating, 0, len(winners))
	for _, p := range winners {
		p.Rating += WinnerGain(p, avg)
		p.MatchesPlayed++
		w = append(w, p)
	}
	l = make([]PlayerRating, 0, len(losers))
	for _, p := range losers {
		p.Rating -= LoserLoss(p, avg)
		p.MatchesPlayed++
		l = append(l, p)
	}
	return w, l
}
