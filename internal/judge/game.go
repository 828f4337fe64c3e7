package judge

import (
	"errors"
	"math/rand"

	"github.com/sirupsen/logrus"

	"gomori/engine"
)

// GameResult is the outcome of one game between two players, indexed
// the same way as the players passed to PlayGame.
type GameResult struct {
	// Winner is 0 or 1, or -1 for a tie.
	Winner int
	// IllegalMove is set when the game was decided by an illegal move
	// instead of by card count.
	IllegalMove *engine.IllegalMoveError
	// CardsWon holds each player's final card count.
	CardsWon [2]int
}

type playerInGame struct {
	player *Player
	state  *engine.PlayerState
}

// PlayGame plays a single game between two players. It returns an error
// only on communication failure, not when an illegal move is played.
func PlayGame(rng *rand.Rand, player1, player2 *Player, recorder *Recorder) (GameResult, error) {
	// Assign the colors randomly.
	colors := [2]engine.Color{engine.Red, engine.Black}
	if rng.Intn(2) == 1 {
		colors[0], colors[1] = colors[1], colors[0]
	}

	players := [2]playerInGame{
		{player: player1, state: engine.NewPlayerState(colors[0], rng)},
		{player: player2, state: engine.NewPlayerState(colors[1], rng)},
	}

	// Inform the players about the new game, so they can reset their state.
	for idx := range players {
		var okay engine.Okay
		req := engine.Request{Type: engine.RequestNewGame, Color: colors[idx]}
		if err := players[idx].player.Perform(recorder, &req, &okay); err != nil {
			return GameResult{}, err
		}
	}

	// Randomly pick a starting player.
	current := rng.Intn(2)

	// The first turn is special: a single card, placed at the origin.
	var card engine.Card
	req := engine.Request{Type: engine.RequestPlayFirstTurn, Cards: players[current].state.Hand[:]}
	if err := players[current].player.Perform(recorder, &req, &card); err != nil {
		return GameResult{}, err
	}
	board, err := engine.ExecuteFirstTurn(players[current].state, card)
	if err != nil {
		return illegalMoveResult(players, current, err, recorder)
	}

	turnSkipped := false
	for {
		current = 1 - current
		req := engine.Request{
			Type:               engine.RequestPlayTurn,
			Cards:              players[current].state.Hand[:],
			Fields:             board.ToFields(),
			CardsWonByOpponent: players[1-current].state.WonCards.Cards(),
		}
		var action engine.PlayTurnResponse
		if err := players[current].player.Perform(recorder, &req, &action); err != nil {
			return GameResult{}, err
		}
		newBoard, result, err := engine.ExecuteTurn(players[current].state, board, action)
		if err != nil {
			return illegalMoveResult(players, current, err, recorder)
		}
		if result.Outcome == engine.TurnGameEnded {
			break
		}
		if result.Outcome == engine.TurnSkipped {
			// When both players couldn't play a card, the game ends.
			if turnSkipped {
				break
			}
			turnSkipped = true
		} else {
			turnSkipped = false
		}
		board = newBoard
	}

	if recorder != nil {
		if err := recorder.WriteGameRecording(); err != nil {
			return GameResult{}, err
		}
	}

	// The player with more cards wins.
	cards0 := players[0].state.WonCards.Len()
	cards1 := players[1].state.WonCards.Len()
	result := GameResult{Winner: -1, CardsWon: [2]int{cards0, cards1}}
	switch {
	case cards0 > cards1:
		result.Winner = 0
	case cards1 > cards0:
		result.Winner = 1
	}
	return result, nil
}

func illegalMoveResult(players [2]playerInGame, offender int, err error, recorder *Recorder) (GameResult, error) {
	var illegal *engine.IllegalMoveError
	if !errors.As(err, &illegal) {
		return GameResult{}, err
	}
	logrus.WithFields(logrus.Fields{
		"player": players[offender].player.Name,
		"reason": illegal.Error(),
	}).Info("illegal move")
	if recorder != nil {
		if err := recorder.WriteGameRecording(); err != nil {
			return GameResult{}, err
		}
	}
	return GameResult{
		Winner:      1 - offender,
		IllegalMove: illegal,
		CardsWon: [2]int{
			players[0].state.WonCards.Len(),
			players[1].state.WonCards.Len(),
		},
	}, nil
}
