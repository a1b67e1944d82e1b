package models

import "time"

// Match is an immutable fact once recorded: two pairs, one winner.
// Replay order is day first, then insertion id — ratings are
// path-dependent, so this ordering is load-bearing.
type Match struct {
	ID         int       `json:"id"`
	ChatID     int64     `json:"chat_id"`
	PlayerA1ID int       `json:"player_a1_id"`
	PlayerA2ID int       `json:"player_a2_id"`
	PlayerB1ID int       `json:"player_b1_id"`
	PlayerB2ID int       `json:"player_b2_id"`
	TeamAScore int       `json:"team_a_score"`
	TeamBScore int       `json:"team_b_score"`
	Day        time.Time `json:"day"`
	League     int       `json:"league"`
}

func (m Match) TeamAWon() bool {
	return m.TeamAScore > m.TeamBScore
}

func (m Match) PlayerIDs() [4]int {
	return [4]int{m.PlayerA1ID, m.PlayerA2ID, m.PlayerB1ID, m.PlayerB2ID}
}
