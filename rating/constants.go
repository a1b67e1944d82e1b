package rating

// Sentinel constants of the rating math. Several of these existed as
// scattered literals in older revisions of the calculation; keep them in
// one place so the accumulator and the role classifier cannot drift.
const (
	// BaseRating seeds every player in season mode and any player the
	// classifier meets without a roster entry.
	BaseRating = 1500

	// GamesCutoff is the experience threshold below which the K-modifier
	// is boosted to converge new players faster.
	GamesCutoff = 30

	// ScoreCap clamps the winning score used as the K base, so a game
	// played to 25 does not swing ratings harder than one played to 21.
	ScoreCap = 21

	// FavoriteMinWinProbability is the pre-match win probability at which
	// a team is labelled the favorite.
	FavoriteMinWinProbability = 0.55
)

// Permissive extremes for placement tracking: the first real standings
// snapshot always improves both.
const (
	initialPlaceHighest = 100
	initialPlaceLowest  = 0
)
