package bots

import "gomori/engine"

// CardCounter tracks what is known about the cards in the game, derived
// from observing all requests.
type CardCounter struct {
	// Cards still in our own draw pile.
	DrawPile engine.CardSet
	// Cards in the opponent's draw pile or hand. There is no way to
	// tell the two apart.
	AvailableCardsOpponent engine.CardSet
	// Cards won by us.
	CardsWonSelf engine.CardSet
	// Cards won by the opponent.
	CardsWonOpponent engine.CardSet
}

func newCardCounter(color engine.Color) CardCounter {
	return CardCounter{
		DrawPile:               color.CardSet(),
		AvailableCardsOpponent: color.Other().CardSet(),
	}
}

// CountingBot is implemented by bots that embed a CardCounter and want
// it updated automatically by a CardCountingWrapper.
type CountingBot interface {
	Bot
	Counter() *CardCounter
}

// CardCountingWrapper keeps the wrapped bot's CardCounter up to date
// around every request.
type CardCountingWrapper struct {
	bot CountingBot
}

// NewCardCountingWrapper wraps a counting bot.
func NewCardCountingWrapper(bot CountingBot) *CardCountingWrapper {
	return &CardCountingWrapper{bot: bot}
}

func (w *CardCountingWrapper) NewGame(color engine.Color) {
	*w.bot.Counter() = newCardCounter(color)
	w.bot.NewGame(color)
}

func (w *CardCountingWrapper) PlayFirstTurn(cards [5]engine.Card) engine.Card {
	counter := w.bot.Counter()
	counter.DrawPile = counter.DrawPile.Difference(engine.NewCardSet(cards[:]...))
	return w.bot.PlayFirstTurn(cards)
}

func (w *CardCountingWrapper) PlayTurn(cards [5]engine.Card, fields []engine.Field, cardsWonByOpponent engine.CardSet) engine.PlayTurnResponse {
	counter := w.bot.Counter()
	counter.DrawPile = counter.DrawPile.Difference(engine.NewCardSet(cards[:]...))
	counter.CardsWonOpponent = counter.CardsWonOpponent.Union(cardsWonByOpponent)
	counter.AvailableCardsOpponent = counter.AvailableCardsOpponent.Difference(cardsWonByOpponent)
	for _, field := range fields {
		var onField engine.CardSet
		if field.TopCard != nil {
			onField = onField.Insert(*field.TopCard)
		}
		for _, card := range field.HiddenCards {
			onField = onField.Insert(card)
		}
		counter.AvailableCardsOpponent = counter.AvailableCardsOpponent.Difference(onField)
	}

	board := engine.NewBoard(fields)
	response := w.bot.PlayTurn(cards, fields, cardsWonByOpponent)
	for _, ctp := range response {
		calc, err := board.Calculate(ctp)
		if err != nil {
			// Let the judge handle the illegal card play.
			return response
		}
		counter.CardsWonSelf = counter.CardsWonSelf.Union(calc.CardsWon)
		board = calc.Execute()
	}
	return response
}
