package bots

import (
	"math/rand"

	"gomori/engine"
)

// GreedyBot maximizes the immediate value of each placement: won cards
// count double, and a combo gets a small bonus for the points it may
// still bring. Ties are broken randomly.
type GreedyBot struct {
	rng *rand.Rand
}

// NewGreedyBot creates a greedy bot with the given seed.
func NewGreedyBot(seed int64) *GreedyBot {
	return &GreedyBot{rng: rand.New(rand.NewSource(seed))}
}

func (b *GreedyBot) NewGame(color engine.Color) {}

func (b *GreedyBot) PlayFirstTurn(cards [5]engine.Card) engine.Card {
	return cards[b.rng.Intn(len(cards))]
}

func (b *GreedyBot) PlayTurn(cards [5]engine.Card, fields []engine.Field, _ engine.CardSet) engine.PlayTurnResponse {
	var cardsToPlay engine.PlayTurnResponse

	board := engine.NewBoard(fields)
	remaining := engine.NewCardSet(cards[:]...)
	for {
		ctp, ok := b.bestPlacement(board, remaining)
		if !ok {
			break
		}
		cardsToPlay = append(cardsToPlay, ctp)
		remaining = remaining.Remove(ctp.Card)

		calc, err := board.Calculate(ctp)
		if err != nil {
			panic(err)
		}
		if !calc.Combo {
			break
		}
		board = calc.Execute()
	}
	return cardsToPlay
}

func (b *GreedyBot) bestPlacement(board *engine.Board, cards engine.CardSet) (engine.CardToPlay, bool) {
	var topChoices []engine.CardToPlay
	topScore := 0
	for _, card := range cards.Cards() {
		for _, c := range board.LocationsForCard(card).Coords() {
			ctp := engine.CardToPlay{Card: card, I: c.I, J: c.J}
			if card.Rank() == engine.RankKing {
				ctp.TargetFieldForKingAbility = randomKingTarget(b.rng, board, c.I, c.J)
			}
			calc, err := board.Calculate(ctp)
			if err != nil {
				panic(err)
			}
			score := calc.CardsWon.Len() * 2
			if calc.Combo {
				score++
			}
			switch {
			case score > topScore:
				topChoices = []engine.CardToPlay{ctp}
				topScore = score
			case score == topScore:
				topChoices = append(topChoices, ctp)
			}
		}
	}
	if len(topChoices) == 0 {
		return engine.CardToPlay{}, false
	}
	return topChoices[b.rng.Intn(len(topChoices))], true
}
