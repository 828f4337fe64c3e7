package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// ---------------------------------------------------------------------------
// Wire types shared between judges and players
// ---------------------------------------------------------------------------

// Color is a player's card color. Red covers diamonds and hearts, black
// covers spades and clubs.
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == Red {
		return Black
	}
	return Red
}

// CardSet returns the 26 cards of this color.
func (c Color) CardSet() CardSet {
	if c == Red {
		return RedCardsSet
	}
	return BlackCardsSet
}

// Field is the wire representation of one board cell.
type Field struct {
	I           int8   `json:"i"`
	J           int8   `json:"j"`
	TopCard     *Card  `json:"top_card"`
	HiddenCards []Card `json:"hidden_cards"`
}

// CardToPlay is one placement within a turn. TargetFieldForKingAbility
// names the cell a king flips face down; it must be present exactly when
// a king lands on an occupied cell.
type CardToPlay struct {
	Card                      Card     `json:"card"`
	I                         int8     `json:"i"`
	J                         int8     `json:"j"`
	TargetFieldForKingAbility *[2]int8 `json:"target_field_for_king_ability,omitempty"`
}

// PlayTurnResponse is a full turn: the cards to place, in order. An
// empty turn skips.
type PlayTurnResponse []CardToPlay

// Request is a message from the judge to a player. Type selects which of
// the remaining fields are meaningful.
type Request struct {
	Type string `json:"type"`
	// NewGame
	Color Color `json:"color,omitempty"`
	// PlayFirstTurn and PlayTurn
	Cards []Card `json:"cards,omitempty"`
	// PlayTurn
	Fields             []Field `json:"fields,omitempty"`
	CardsWonByOpponent []Card  `json:"cards_won_by_opponent,omitempty"`
}

const (
	RequestNewGame       = "NewGame"
	RequestPlayFirstTurn = "PlayFirstTurn"
	RequestPlayTurn      = "PlayTurn"
	RequestBye           = "Bye"
)

// Okay is the acknowledgement players send for requests that have no
// substantive answer. It serializes as an empty JSON array so that every
// response line is an array.
type Okay struct{}

func (Okay) MarshalJSON() ([]byte, error) { return []byte("[]"), nil }

func (*Okay) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 0 {
		return fmt.Errorf("expected an empty array, got %d elements", len(raw))
	}
	return nil
}

// ShuffledDeck returns the 26 cards of a color in random order.
func ShuffledDeck(color Color, rng *rand.Rand) []Card {
	deck := color.CardSet().Cards()
	rng.Shuffle(len(deck), func(a, b int) {
		deck[a], deck[b] = deck[b], deck[a]
	})
	return deck
}
