package stats

import (
	"sort"

	"github.com/alex-adamant/volley/models"
)

// MinPairSample is the minimum shared games before a teammate or opponent
// is eligible for best/worst ranking. Two lucky games with someone should
// not crown them your best partner.
const MinPairSample = 3

type PairRecord struct {
	UserID  int     `json:"user_id"`
	Name    string  `json:"name"`
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Winrate float64 `json:"winrate"`
}

// PlayerPairings is the partner/opponent breakdown for one player.
type PlayerPairings struct {
	Teammates []*PairRecord `json:"teammates"`
	Opponents []*PairRecord `json:"opponents"`

	// Ranked picks; nil when no pairing reaches MinPairSample.
	BestPartner      *PairRecord `json:"best_partner,omitempty"`
	WorstPartner     *PairRecord `json:"worst_partner,omitempty"`
	ToughestOpponent *PairRecord `json:"toughest_opponent,omitempty"`
	EasiestOpponent  *PairRecord `json:"easiest_opponent,omitempty"`
}

// BuildPlayerPairings partitions one player's matches into per-teammate
// and per-opponent records.
func BuildPlayerPairings(roster []models.RosterEntry, matches []models.Match, userID int) *PlayerPairings {
	names := make(map[int]string, len(roster))
	for _, entry := range roster {
		names[entry.UserID] = entry.Name
	}

	teammates := make(map[int]*PairRecord)
	opponents := make(map[int]*PairRecord)
	ensure := func(m map[int]*PairRecord, id int) *PairRecord {
		if r, ok := m[id]; ok {
			return r
		}
		r := &PairRecord{UserID: id, Name: names[id]}
		m[id] = r
		return r
	}

	details := BuildPlayerMatchDetails(matches, 0)
	for _, detail := range details[userID] {
		won := detail.Result == MarkWin
		for _, id := range detail.TeammateIDs {
			record := ensure(teammates, id)
			record.Games++
			if won {
				record.Wins++
			} else {
				record.Losses++
			}
		}
		for _, id := range detail.OpponentIDs {
			record := ensure(opponents, id)
			record.Games++
			if won {
				record.Wins++
			} else {
				record.Losses++
			}
		}
	}

	pairings := &PlayerPairings{
		Teammates: sortRecords(teammates),
		Opponents: sortRecords(opponents),
	}

	pairings.BestPartner = pickRanked(pairings.Teammates, true)
	pairings.WorstPartner = pickRanked(pairings.Teammates, false)
	// The toughest opponent is the one you lose to most, so rank by the
	// lowest winrate against them.
	pairings.ToughestOpponent = pickRanked(pairings.Opponents, false)
	pairings.EasiestOpponent = pickRanked(pairings.Opponents, true)

	return pairings
}

func sortRecords(m map[int]*PairRecord) []*PairRecord {
	records := make([]*PairRecord, 0, len(m))
	for _, r := range m {
		r.Winrate = float64(r.Wins) / float64(r.Games)
		records = append(records, r)
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.UserID < b.UserID
	})
	return records
}

func pickRanked(records []*PairRecord, best bool) *PairRecord {
	var picked *PairRecord
	for _, r := range records {
		if r.Games < MinPairSample {
			continue
		}
		if picked == nil {
			picked = r
			continue
		}
		if best && r.Winrate > picked.Winrate {
			picked = r
		}
		if !best && r.Winrate < picked.Winrate {
			picked = r
		}
	}
	return picked
}
