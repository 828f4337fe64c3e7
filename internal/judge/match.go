package judge

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// MatchScore aggregates the results of a series of games between two
// players.
type MatchScore struct {
	Wins         [2]int
	IllegalMoves [2]int
	Ties         int
}

// NumGames returns the number of games that produced a result.
func (s MatchScore) NumGames() int {
	return s.Wins[0] + s.Wins[1] + s.Ties
}

// MatchOptions controls how a matchup is played.
type MatchOptions struct {
	NumGames int
	// StopOnIllegalMove aborts the matchup as soon as one player makes
	// an illegal move.
	StopOnIllegalMove bool
}

// PlayMatch plays a series of games between two players and tallies the
// score.
func PlayMatch(rng *rand.Rand, player1, player2 *Player, opts MatchOptions, recorder *Recorder) (MatchScore, error) {
	var score MatchScore
	names := [2]string{player1.Name, player2.Name}

	for gameIdx := 0; gameIdx < opts.NumGames; gameIdx++ {
		result, err := PlayGame(rng, player1, player2, recorder)
		if err != nil {
			return score, fmt.Errorf("game %d: %w", gameIdx, err)
		}
		switch {
		case result.IllegalMove != nil:
			offender := 1 - result.Winner
			logrus.WithFields(logrus.Fields{
				"player": names[offender],
				"game":   gameIdx,
			}).Info("game decided by an illegal move")
			if opts.StopOnIllegalMove {
				return score, nil
			}
			score.Wins[result.Winner]++
			score.IllegalMoves[offender]++
		case result.Winner >= 0:
			logrus.WithFields(logrus.Fields{
				"winner": names[result.Winner],
				"game":   gameIdx,
				"cards":  result.CardsWon,
			}).Debug("game finished")
			score.Wins[result.Winner]++
		default:
			logrus.WithField("game", gameIdx).Debug("tie")
			score.Ties++
		}
	}
	return score, nil
}

// WriteSummary prints the human-readable end result of a matchup.
func (s MatchScore) WriteSummary(w io.Writer, name1, name2 string) {
	paren1, paren2 := "", ""
	if s.IllegalMoves[1] > 0 {
		paren1 = fmt.Sprintf(" (%d through illegal moves by %s)", s.IllegalMoves[1], name2)
	}
	if s.IllegalMoves[0] > 0 {
		paren2 = fmt.Sprintf(" (%d through illegal moves by %s)", s.IllegalMoves[0], name1)
	}
	fmt.Fprintf(w, "End result:\n- %d wins by %s%s\n- %d wins by %s%s\n- %d ties\n",
		s.Wins[0], name1, paren1, s.Wins[1], name2, paren2, s.Ties)
}

// Tournament is a round-robin tournament between any number of players.
type Tournament struct {
	Configs []PlayerConfig
	Opts    MatchOptions
	// Results maps a pair of player indexes (i < j) to the matchup
	// score between them.
	Results map[[2]int]MatchScore
}

// NewTournament prepares a tournament between the given players.
func NewTournament(configs []PlayerConfig, opts MatchOptions) *Tournament {
	return &Tournament{
		Configs: configs,
		Opts:    opts,
		Results: make(map[[2]int]MatchScore),
	}
}

// Run plays every pairing. Each pairing starts fresh player processes.
func (t *Tournament) Run(rng *rand.Rand, recorder *Recorder, summary io.Writer) error {
	for i := 0; i < len(t.Configs); i++ {
		for j := i + 1; j < len(t.Configs); j++ {
			player1, err := StartPlayer(t.Configs[i])
			if err != nil {
				return err
			}
			player2, err := StartPlayer(t.Configs[j])
			if err != nil {
				player1.Close()
				return err
			}

			score, err := PlayMatch(rng, player1, player2, t.Opts, recorder)
			player1.Close()
			player2.Close()
			if err != nil {
				return err
			}
			score.WriteSummary(summary, t.Configs[i].Nick, t.Configs[j].Nick)
			t.Results[[2]int{i, j}] = score
		}
	}
	return nil
}

// WriteTable prints an upper triangular matrix of the tournament
// results.
func (t *Tournament) WriteTable(w io.Writer) {
	fmt.Fprintf(w, "\nTournament results (p1 win %%, p2 win %%, tie %%):\n\n")
	fmt.Fprintf(w, " %-19s |", "p1 ↓           p2 →")
	for j := len(t.Configs) - 1; j >= 0; j-- {
		fmt.Fprintf(w, " %-19s |", t.Configs[j].Nick)
	}
	fmt.Fprintln(w)
	for i := range t.Configs {
		for k := 0; k < len(t.Configs)-i+1; k++ {
			fmt.Fprint(w, "---------------------|")
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, " %-19s |", t.Configs[i].Nick)
		for j := len(t.Configs) - 1; j >= 0; j-- {
			if i >= j {
				fmt.Fprint(w, "    ")
				continue
			}
			score, ok := t.Results[[2]int{i, j}]
			if !ok || score.NumGames() == 0 {
				fmt.Fprintf(w, " %-19s |", "N/A")
				continue
			}
			numGames := float64(score.NumGames())
			fmt.Fprintf(w, "%5.1f%% %5.1f%% %5.1f%% |",
				float64(score.Wins[0])/numGames*100,
				float64(score.Wins[1])/numGames*100,
				float64(score.Ties)/numGames*100)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "---------------------|")
}
