package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jose-valero/inhouse-elo-bot/internal/domain"
)

// snowflake es un ID de Discord tal como aparece en los documentos: string o,
// en archivos escritos por el bot viejo, número JSON. Siempre se escribe como string.
type snowflake string

func (s *snowflake) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = snowflake(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("player id: %w", err)
	}
	if _, err := strconv.ParseUint(n.String(), 10, 64); err != nil {
		return fmt.Errorf("player id %s: not an integer", n)
	}
	*s = snowflake(n.String())
	return nil
}

func snowflakesToStrings(ids []snowflake) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// matchRecord es la forma en disco de domain.Match para lectura.
type matchRecord struct {
	Number int                    `json:"match_number"`
	Team1  []snowflake            `json:"team1"`
	Team2  []snowflake            `json:"team2"`
	Votes  map[string]domain.Vote `json:"votes"`
	Locked bool                   `json:"locked"`
	Winner int                    `json:"winner"`
}

func (r matchRecord) toMatch(id string) domain.Match {
	votes := r.Votes
	if votes == nil {
		votes = map[string]domain.Vote{}
	}
	return domain.Match{
		ID:     id,
		Number: r.Number,
		Team1:  snowflakesToStrings(r.Team1),
		Team2:  snowflakesToStrings(r.Team2),
		Votes:  votes,
		Locked: r.Locked,
		Winner: r.Winner,
	}
}
