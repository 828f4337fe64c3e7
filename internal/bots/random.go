package bots

import (
	"math/rand"

	"gomori/engine"
)

// RandomBot plays uniformly random legal moves.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot creates a random bot with the given seed.
func NewRandomBot(seed int64) *RandomBot {
	return &RandomBot{rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) NewGame(color engine.Color) {}

func (b *RandomBot) PlayFirstTurn(cards [5]engine.Card) engine.Card {
	return cards[b.rng.Intn(len(cards))]
}

type placement struct {
	i, j int8
	card engine.Card
}

func possiblePlacements(board *engine.Board, cards engine.CardSet) []placement {
	var moves []placement
	for _, card := range cards.Cards() {
		for _, c := range board.LocationsForCard(card).Coords() {
			moves = append(moves, placement{i: c.I, j: c.J, card: card})
		}
	}
	return moves
}

func (b *RandomBot) PlayTurn(cards [5]engine.Card, fields []engine.Field, _ engine.CardSet) engine.PlayTurnResponse {
	var cardsToPlay engine.PlayTurnResponse

	board := engine.NewBoard(fields)
	remaining := engine.NewCardSet(cards[:]...)
	for {
		moves := possiblePlacements(board, remaining)
		if len(moves) == 0 {
			break
		}
		move := moves[b.rng.Intn(len(moves))]

		ctp := engine.CardToPlay{Card: move.card, I: move.i, J: move.j}
		if move.card.Rank() == engine.RankKing {
			ctp.TargetFieldForKingAbility = randomKingTarget(b.rng, board, move.i, move.j)
		}
		cardsToPlay = append(cardsToPlay, ctp)
		remaining = remaining.Remove(move.card)

		calc, err := board.Calculate(ctp)
		if err != nil {
			// Cannot happen for a location reported by LocationsForCard.
			panic(err)
		}
		if !calc.Combo {
			break
		}
		board = calc.Execute()
	}
	return cardsToPlay
}

// randomKingTarget picks a random face-up pile to flip, or the king's
// own cell if there is none.
func randomKingTarget(rng *rand.Rand, board *engine.Board, i, j int8) *[2]int8 {
	var flippable [][2]int8
	for _, field := range board.ToFields() {
		if field.TopCard != nil {
			flippable = append(flippable, [2]int8{field.I, field.J})
		}
	}
	if len(flippable) == 0 {
		return &[2]int8{i, j}
	}
	target := flippable[rng.Intn(len(flippable))]
	return &target
}
