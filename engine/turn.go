package engine

import "math/rand"

// PlayerState is the state for a single player during one game.
type PlayerState struct {
	DrawPile []Card
	Hand     [5]Card
	WonCards CardSet
}

// NewPlayerState deals a shuffled draw pile of the player's 26 cards and
// fills the initial hand from it.
func NewPlayerState(color Color, rng *rand.Rand) *PlayerState {
	drawPile := ShuffledDeck(color, rng)
	state := &PlayerState{}
	copy(state.Hand[:], drawPile[len(drawPile)-5:])
	state.DrawPile = drawPile[:len(drawPile)-5]
	return state
}

// TurnOutcome summarizes the outcome of playing a move.
type TurnOutcome uint8

const (
	// TurnSkipped means the player legally played no card.
	TurnSkipped TurnOutcome = iota
	// TurnNormal means the turn was played and the hand refilled.
	TurnNormal
	// TurnGameEnded means the draw pile ran out while refilling the
	// hand, which ends the game.
	TurnGameEnded
)

// TurnResult reports what a turn did. CardsWon is only set for
// TurnNormal.
type TurnResult struct {
	Outcome  TurnOutcome
	CardsWon CardSet
}

// ExecuteFirstTurn validates and applies the opening move: the card is
// placed at the origin and replaced in the hand from the draw pile.
func ExecuteFirstTurn(state *PlayerState, cardToPlace Card) (*Board, error) {
	cardFound := false
	for idx, card := range state.Hand {
		if card == cardToPlace {
			// The draw pile cannot be empty on the first turn.
			next := state.DrawPile[len(state.DrawPile)-1]
			state.DrawPile = state.DrawPile[:len(state.DrawPile)-1]
			state.Hand[idx] = next
			cardFound = true
		}
	}
	if !cardFound {
		return nil, &IllegalMoveError{Code: PlayedCardNotInHand, Card: cardToPlace}
	}
	return NewBoard([]Field{{I: 0, J: 0, TopCard: &cardToPlace}}), nil
}

// ExecuteTurn validates and applies a whole turn, returning the
// resulting board. A turn is either a skip, which is only legal when no
// hand card can be placed, or a sequence of placements where every card
// but the last must start a combo.
//
// When the draw pile runs out while refilling the hand, the game is
// over: the returned result is TurnGameEnded and the player state is
// left untouched.
func ExecuteTurn(state *PlayerState, board *Board, action PlayTurnResponse) (*Board, TurnResult, error) {
	if len(action) == 0 {
		// Skipping is only allowed if there is no possible move.
		for _, handCard := range state.Hand {
			if board.PossibleToPlaceCard(handCard) {
				return nil, TurnResult{}, &IllegalMoveError{Code: PlayedZeroCards}
			}
		}
		return board, TurnResult{Outcome: TurnSkipped}, nil
	}
	if len(action) > 5 {
		return nil, TurnResult{}, &IllegalMoveError{Code: PlayedMoreThanFiveCards}
	}

	var hand CardSet
	for _, card := range state.Hand {
		hand = hand.Insert(card)
	}

	var cardsWonThisTurn CardSet
	for cardIdx, ctp := range action {
		if !hand.Contains(ctp.Card) {
			return nil, TurnResult{}, &IllegalMoveError{
				Code:      PlayedCardNotInHand,
				CardIndex: cardIdx,
				Card:      ctp.Card,
			}
		}
		hand = hand.Remove(ctp.Card)

		calculation, err := board.Calculate(ctp)
		if err != nil {
			return nil, TurnResult{}, &IllegalMoveError{
				Code:      IllegalCardPlayed,
				CardIndex: cardIdx,
				Card:      ctp.Card,
				Cause:     err.(*PlacementError),
			}
		}
		lastCard := cardIdx == len(action)-1
		if !calculation.Combo && !lastCard {
			return nil, TurnResult{}, &IllegalMoveError{Code: PlayedCardAfterEndOfCombo, CardIndex: cardIdx}
		}
		board = calculation.Execute()
		if calculation.Combo && lastCard {
			// A combo must be continued while any hand card is placeable.
			for _, handCard := range hand.Cards() {
				if board.PossibleToPlaceCard(handCard) {
					return nil, TurnResult{}, &IllegalMoveError{Code: PrematurelyEndedCombo, CardIndex: cardIdx}
				}
			}
		}
		cardsWonThisTurn = cardsWonThisTurn.Union(calculation.CardsWon)
	}

	// Draw cards until the hand is full again.
	newHand := hand.Cards()
	for len(newHand) < 5 {
		if len(state.DrawPile) == 0 {
			return board, TurnResult{Outcome: TurnGameEnded}, nil
		}
		newHand = append(newHand, state.DrawPile[len(state.DrawPile)-1])
		state.DrawPile = state.DrawPile[:len(state.DrawPile)-1]
	}
	copy(state.Hand[:], newHand)
	state.WonCards = state.WonCards.Union(cardsWonThisTurn)
	return board, TurnResult{Outcome: TurnNormal, CardsWon: cardsWonThisTurn}, nil
}
