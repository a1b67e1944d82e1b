package rating

import "math"

// UpdateRating is the shared Elo kernel. Both the results accumulator and
// the role classifier go through this single function; they must stay
// numerically identical for the same inputs.
//
// ratingDiff is the opposing team's rating sum minus the mover's team
// rating sum, score is 1 for a win and 0 for a loss, capPoints is the
// winning score clamped to ScoreCap and games is the mover's game count
// before this match.
func UpdateRating(current int, ratingDiff int, score int, capPoints int, games int, season bool, disableSeasonBoost bool) int {
	expected := 1 / (1 + math.Pow(10, float64(ratingDiff)/400))

	kModifier := 1.0
	if season {
		if !disableSeasonBoost && games < GamesCutoff {
			kModifier = 1.0 + float64(GamesCutoff-games)/GamesCutoff
		}
	} else if games < GamesCutoff {
		kModifier = 2.0
	}

	return int(math.Round(float64(current) + float64(capPoints)*kModifier*(float64(score)-expected)))
}

// WinProbability is the logistic expectation for a team whose rating sum
// exceeds the opponents' by ratingDiff.
func WinProbability(ratingDiff int) float64 {
	return 1 / (1 + math.Pow(10, -float64(ratingDiff)/400))
}

// CapPoints bounds the per-match rating swing by the winning score,
// clamped to ScoreCap.
func CapPoints(teamAScore, teamBScore int) int {
	winning := teamAScore
	if teamBScore > winning {
		winning = teamBScore
	}
	if winning > ScoreCap {
		return ScoreCap
	}
	return winning
}
