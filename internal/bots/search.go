package bots

import (
	"github.com/sirupsen/logrus"

	"gomori/engine"
)

// SearchBot exhaustively searches all ways to play out the current hand
// and picks the sequence that wins the most cards. The search space is
// bounded by the hand size, so a full traversal is affordable.
type SearchBot struct{}

// NewSearchBot creates a search bot.
func NewSearchBot() *SearchBot {
	return &SearchBot{}
}

func (b *SearchBot) NewGame(color engine.Color) {}

func (b *SearchBot) PlayFirstTurn(cards [5]engine.Card) engine.Card {
	// Don't waste a "special" card on the first move.
	for _, card := range cards {
		switch card.Rank() {
		case engine.RankJack, engine.RankQueen, engine.RankKing, engine.RankAce:
		default:
			return card
		}
	}
	return cards[0]
}

func (b *SearchBot) PlayTurn(cards [5]engine.Card, fields []engine.Field, _ engine.CardSet) engine.PlayTurnResponse {
	root := searchState{
		cards: engine.NewCardSet(cards[:]...),
		board: engine.NewBoard(fields),
	}
	best := bestLine{score: -1}
	searchLine(root, nil, &best)
	logrus.WithFields(logrus.Fields{
		"score": best.score,
		"cards": len(best.actions),
	}).Debug("finished searching")
	return best.actions
}

type searchState struct {
	cards engine.CardSet
	board *engine.Board
	score int
}

type bestLine struct {
	actions []engine.CardToPlay
	score   int
}

// searchLine walks every legal continuation of the turn. Only completed
// lines of play are candidates: a line ends when the hand is exhausted
// or a placement does not start a combo.
func searchLine(state searchState, actions []engine.CardToPlay, best *bestLine) {
	if state.cards.IsEmpty() {
		if state.score > best.score {
			best.score = state.score
			best.actions = append([]engine.CardToPlay(nil), actions...)
		}
		return
	}
	for _, ctp := range possibleActions(state) {
		searchLine(applyAction(state, ctp), append(actions, ctp), best)
	}
}

func applyAction(state searchState, ctp engine.CardToPlay) searchState {
	calc, err := state.board.Calculate(ctp)
	if err != nil {
		panic(err)
	}
	next := searchState{
		board: calc.Execute(),
		score: state.score + calc.CardsWon.Len(),
	}
	// A non-combo placement ends the turn, so the line is complete.
	if calc.Combo {
		next.cards = state.cards.Remove(ctp.Card)
	}
	return next
}

func possibleActions(state searchState) []engine.CardToPlay {
	kingTargets := state.board.Diamonds().
		Union(state.board.Hearts()).
		Union(state.board.Spades()).
		Union(state.board.Clubs()).
		Coords()

	var actions []engine.CardToPlay
	for _, card := range state.cards.Cards() {
		for _, c := range state.board.LocationsForCard(card).Coords() {
			if card.Rank() != engine.RankKing {
				actions = append(actions, engine.CardToPlay{Card: card, I: c.I, J: c.J})
				continue
			}
			// One action per possible king ability target.
			for _, target := range kingTargets {
				actions = append(actions, engine.CardToPlay{
					Card: card,
					I:    c.I,
					J:    c.J,
					TargetFieldForKingAbility: &[2]int8{target.I, target.J},
				})
			}
		}
	}
	return actions
}
