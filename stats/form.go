package stats

import (
	"fmt"

	"github.com/alex-adamant/volley/models"
)

type FormMark string

const (
	MarkWin  FormMark = "W"
	MarkLoss FormMark = "L"
)

// Streak is the run of identical marks at the tail of a form sequence.
type Streak struct {
	Type  *FormMark `json:"type,omitempty"`
	Count int       `json:"count"`
}

// BuildPlayerForm returns the ordered W/L sequence per player id. A
// positive limit keeps only the last limit marks.
func BuildPlayerForm(matches []models.Match, limit int) map[int][]FormMark {
	form := make(map[int][]FormMark)

	for _, match := range matches {
		markA, markB := marks(match)
		form[match.PlayerA1ID] = append(form[match.PlayerA1ID], markA)
		form[match.PlayerA2ID] = append(form[match.PlayerA2ID], markA)
		form[match.PlayerB1ID] = append(form[match.PlayerB1ID], markB)
		form[match.PlayerB2ID] = append(form[match.PlayerB2ID], markB)
	}

	trimForm(form, limit)
	return form
}

// BuildTeamForm is BuildPlayerForm keyed by the canonical pairing key.
func BuildTeamForm(matches []models.Match, limit int) map[string][]FormMark {
	form := make(map[string][]FormMark)

	for _, match := range matches {
		markA, markB := marks(match)
		keyA := pairKey(match.PlayerA1ID, match.PlayerA2ID)
		keyB := pairKey(match.PlayerB1ID, match.PlayerB2ID)
		form[keyA] = append(form[keyA], markA)
		form[keyB] = append(form[keyB], markB)
	}

	trimForm(form, limit)
	return form
}

// PlayerMatchDetail is one match from a single player's point of view.
type PlayerMatchDetail struct {
	Result      FormMark `json:"result"`
	Score       string   `json:"score"`
	TeammateIDs []int    `json:"teammate_ids"`
	OpponentIDs []int    `json:"opponent_ids"`
}

// BuildPlayerMatchDetails returns per-player match histories with the
// score written from that player's side.
func BuildPlayerMatchDetails(matches []models.Match, limit int) map[int][]PlayerMatchDetail {
	details := make(map[int][]PlayerMatchDetail)

	for _, match := range matches {
		markA, markB := marks(match)
		scoreA := fmt.Sprintf("%d-%d", match.TeamAScore, match.TeamBScore)
		scoreB := fmt.Sprintf("%d-%d", match.TeamBScore, match.TeamAScore)

		teamA := []int{match.PlayerA1ID, match.PlayerA2ID}
		teamB := []int{match.PlayerB1ID, match.PlayerB2ID}

		for _, id := range teamA {
			details[id] = append(details[id], PlayerMatchDetail{
				Result:      markA,
				Score:       scoreA,
				TeammateIDs: others(teamA, id),
				OpponentIDs: teamB,
			})
		}
		for _, id := range teamB {
			details[id] = append(details[id], PlayerMatchDetail{
				Result:      markB,
				Score:       scoreB,
				TeammateIDs: others(teamB, id),
				OpponentIDs: teamA,
			})
		}
	}

	if limit > 0 {
		for id, history := range details {
			if len(history) > limit {
				details[id] = history[len(history)-limit:]
			}
		}
	}
	return details
}

// CurrentStreak counts the run of identical marks at the end of form.
func CurrentStreak(form []FormMark) Streak {
	if len(form) == 0 {
		return Streak{}
	}
	last := form[len(form)-1]
	count := 0
	for i := len(form) - 1; i >= 0; i-- {
		if form[i] != last {
			break
		}
		count++
	}
	return Streak{Type: &last, Count: count}
}

func marks(match models.Match) (teamA, teamB FormMark) {
	if match.TeamAWon() {
		return MarkWin, MarkLoss
	}
	return MarkLoss, MarkWin
}

func others(team []int, self int) []int {
	rest := make([]int, 0, len(team)-1)
	for _, id := range team {
		if id != self {
			rest = append(rest, id)
		}
	}
	return rest
}

func trimForm[K comparable](form map[K][]FormMark, limit int) {
	if limit <= 0 {
		return
	}
	for key, history := range form {
		if len(history) > limit {
			form[key] = history[len(history)-limit:]
		}
	}
}
