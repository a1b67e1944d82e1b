// Package schedule renders the fixed doubles templates used on court: a
// known-fair match order exists for 4 to 8 players, so the generator only
// shuffles who is who and flips team sides for variety.
package schedule

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// PointsOptions are the target scores a group usually plays to.
var PointsOptions = []int{15, 18, 21}

const (
	MinPlayers = 4
	MaxPlayers = 8
)

var ErrUnsupportedPlayerCount = errors.New("no schedule template for this player count")

// Generator renders schedules with its own randomness source so tests can
// pin the outcome.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate shuffles the given names and renders the template for that
// player count.
func (g *Generator) Generate(players []string) (string, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return "", fmt.Errorf("%w: %d players", ErrUnsupportedPlayerCount, len(players))
	}

	shuffled := make([]string, len(players))
	copy(shuffled, players)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	switch len(shuffled) {
	case 4:
		return g.schedule4(shuffled), nil
	case 5:
		return g.schedule5(shuffled), nil
	case 6:
		return g.schedule6(shuffled), nil
	case 7:
		return g.schedule7(shuffled), nil
	default:
		return g.schedule8(shuffled), nil
	}
}

// Flip is a coin toss, exposed for the "who serves first" command.
func (g *Generator) Flip() bool {
	return g.rng.Intn(2) == 0
}

// Dice rolls a six-sided die.
func (g *Generator) Dice() int {
	return g.rng.Intn(6) + 1
}

func (g *Generator) team(p1, p2 string) string {
	if g.Flip() {
		return p1 + " " + p2
	}
	return p2 + " " + p1
}

func (g *Generator) match(team1, team2 string, flipSides bool) string {
	if flipSides && g.Flip() {
		team1, team2 = team2, team1
	}
	return team1 + " vs " + team2
}

func (g *Generator) schedule4(p []string) string {
	var b strings.Builder
	b.WriteString("Round one\n")
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[0], p[1]), g.team(p[2], p[3]), false))
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[0], p[2]), g.team(p[1], p[3]), false))
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[0], p[3]), g.team(p[1], p[2]), false))
	b.WriteString("\nRound two\n")
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[2], p[3]), g.team(p[0], p[1]), false))
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[1], p[3]), g.team(p[0], p[2]), false))
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[1], p[2]), g.team(p[0], p[3]), false))
	writeScorekeeper(&b, p[3])
	return b.String()
}

func (g *Generator) schedule5(p []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[1]), g.team(p[2], p[3]), false))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[2]), g.team(p[1], p[4]), false))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[1], p[3]), g.team(p[0], p[4]), false))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[2], p[4]), g.team(p[0], p[3]), false))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[3], p[4]), g.team(p[1], p[2]), false))
	writeScorekeeper(&b, p[4])
	return b.String()
}

func (g *Generator) schedule6(p []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[3]), g.team(p[4], p[5]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[1], p[2]), g.team(p[3], p[4]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[5]), g.team(p[1], p[4]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[2]), g.team(p[1], p[5]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[2], p[4]), g.team(p[3], p[5]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[1]), g.team(p[2], p[3]), true))
	b.WriteString("\nExtra games\n")
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[4]), g.team(p[1], p[3]), false))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[2], p[5]), g.team(p[0], p[4]), false))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[1], p[3]), g.team(p[2], p[5]), false))
	writeScorekeeper(&b, p[5])
	return b.String()
}

func (g *Generator) schedule7(p []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[1]), g.team(p[2], p[3]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[4], p[5]), g.team(p[0], p[6]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[1], p[2]), g.team(p[3], p[4]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[3], p[5]), g.team(p[4], p[6]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[2]), g.team(p[1], p[5]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[3], p[6]), g.team(p[2], p[4]), true))
	fmt.Fprintf(&b, "%s\n", g.match(g.team(p[0], p[5]), g.team(p[1], p[6]), true))
	writeScorekeeper(&b, p[6])
	return b.String()
}

func (g *Generator) schedule8(p []string) string {
	var b strings.Builder
	b.WriteString("First four\n")
	fmt.Fprintf(&b, "%s %s %s %s\n", p[0], p[1], p[2], p[3])
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[0], p[1]), g.team(p[2], p[3]), true))
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[0], p[2]), g.team(p[1], p[3]), true))
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[0], p[3]), g.team(p[1], p[2]), true))
	writeScorekeeper(&b, p[3])
	b.WriteString("\nSecond four\n")
	fmt.Fprintf(&b, "%s %s %s %s\n", p[4], p[5], p[6], p[7])
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[4], p[5]), g.team(p[6], p[7]), true))
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[4], p[6]), g.team(p[5], p[7]), true))
	fmt.Fprintf(&b, "  %s\n", g.match(g.team(p[4], p[7]), g.team(p[5], p[6]), true))
	writeScorekeeper(&b, p[7])
	return b.String()
}

func writeScorekeeper(b *strings.Builder, name string) {
	b.WriteString("\nPays for the net and records results: ")
	b.WriteString(name)
	b.WriteString("\n")
}
