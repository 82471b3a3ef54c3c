package statistics

import (
	"sort"
	"sync"
)

// Standing is one player's record across matches
type Standing struct {
	Name      string  `json:"name"`
	Matches   int     `json:"matches"`
	Rounds    int     `json:"rounds"`
	RoundsWon int     `json:"rounds_won"`
	Net       int     `json:"net"`
	MeanDelta float64 `json:"mean_delta"`
}

// Standings aggregates match ledgers by player name. It is safe for
// concurrent use.
type Standings struct {
	mu     sync.Mutex
	byName map[string]*Standing
}

// NewStandings creates an empty table
func NewStandings() *Standings {
	return &Standings{byName: make(map[string]*Standing)}
}

// AddMatch folds one match ledger into the standings
func (s *Standings) AddMatch(stats *GameStatistics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for seat, name := range stats.PlayerNames {
		st, ok := s.byName[name]
		if !ok {
			st = &Standing{Name: name}
			s.byName[name] = st
		}
		st.Matches++
		st.Rounds += len(stats.MoneyGained[seat])
		st.RoundsWon += stats.RoundsWon(seat)
		st.Net += stats.Net(seat)
		if st.Rounds > 0 {
			st.MeanDelta = float64(st.Net) / float64(st.Rounds)
		}
	}
}

// Ranked returns standings ordered by net winnings, then rounds won, then name
func (s *Standings) Ranked() []Standing {
	s.mu.Lock()
	out := make([]Standing, 0, len(s.byName))
	for _, st := range s.byName {
		out = append(out, *st)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Net != out[j].Net {
			return out[i].Net > out[j].Net
		}
		if out[i].RoundsWon != out[j].RoundsWon {
			return out[i].RoundsWon > out[j].RoundsWon
		}
		return out[i].Name < out[j].Name
	})
	return out
}
