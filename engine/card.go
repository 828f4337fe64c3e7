package engine

import (
	"encoding/json"
	"fmt"
)

// Suit of a playing card. The numeric values are the low two bits of a
// card index, so they must not be reordered.
type Suit uint8

const (
	SuitDiamonds Suit = 0
	SuitHearts   Suit = 1
	SuitSpades   Suit = 2
	SuitClubs    Suit = 3
)

// Rank of a playing card, Two through Ace. The numeric values are the
// high bits of a card index, so they must not be reordered.
type Rank uint8

const (
	RankTwo   Rank = 0
	RankThree Rank = 1
	RankFour  Rank = 2
	RankFive  Rank = 3
	RankSix   Rank = 4
	RankSeven Rank = 5
	RankEight Rank = 6
	RankNine  Rank = 7
	RankTen   Rank = 8
	RankJack  Rank = 9
	RankQueen Rank = 10
	RankKing  Rank = 11
	RankAce   Rank = 12
)

// NumCards is the size of the full deck.
const NumCards = 52

// Card is a playing card in a standard 52-card deck, packed into a uint8.
// The packed value is the card's dense index, rank*4 + suit, in [0, 52).
// Ordering cards by their packed value orders them by rank first, suit
// second, which is the iteration order of CardSet.
type Card uint8

// NewCard constructs a Card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(rank)<<2 | uint8(suit)&3)
}

// CardFromIndex converts a dense index in [0, 52) back into a Card.
// It is the inverse of Index.
func CardFromIndex(idx uint8) (Card, error) {
	if idx >= NumCards {
		return 0, fmt.Errorf("card index %d out of range", idx)
	}
	return Card(idx), nil
}

// Index returns the card's dense index, rank*4 + suit.
func (c Card) Index() uint8 { return uint8(c) }

// Rank returns the rank part of the card.
func (c Card) Rank() Rank { return Rank(uint8(c) >> 2) }

// Suit returns the suit part of the card.
func (c Card) Suit() Suit { return Suit(uint8(c) & 3) }

// CanBePlacedOn reports whether this card may be placed on top of other.
// A card can always be placed on a card of the same rank. Additionally,
// an ace can be placed on anything, and a face card (J/Q/K) can be placed
// on any card of its own suit.
func (c Card) CanBePlacedOn(other Card) bool {
	if c.Rank() == other.Rank() {
		return true
	}
	switch c.Rank() {
	case RankAce:
		return true
	case RankJack, RankQueen, RankKing:
		return c.Suit() == other.Suit()
	}
	return false
}

// ---------------------------------------------------------------------------
// Text representation
// ---------------------------------------------------------------------------

var rankRunes = [13]rune{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}
var suitRunes = [4]rune{'♦', '♥', '♠', '♣'}

// String renders the card as a two-rune code, e.g. "T♥" for the ten of
// hearts. This is the same format ParseCard accepts.
func (c Card) String() string {
	return string([]rune{rankRunes[c.Rank()], suitRunes[c.Suit()]})
}

// UnicodeChar returns the Unicode playing-card character for this card.
// See https://en.wikipedia.org/wiki/Playing_Cards_(Unicode_block).
func (c Card) UnicodeChar() rune {
	var row rune
	switch c.Suit() {
	case SuitSpades:
		row = 0
	case SuitHearts:
		row = 1
	case SuitDiamonds:
		row = 2
	case SuitClubs:
		row = 3
	}
	var col rune
	switch c.Rank() {
	case RankAce:
		col = 1
	case RankQueen:
		col = 13 // col 12 is the knight, which standard decks don't have
	case RankKing:
		col = 14
	default:
		col = rune(c.Rank()) + 2
	}
	return 0x1F0A0 + 16*row + col
}

// ParseCard parses a two-rune card code: the rank ('2'–'9', 'T', 'J',
// 'Q', 'K' or 'A') followed by the suit ('♦', '♥', '♠' or '♣').
func ParseCard(s string) (Card, error) {
	runes := []rune(s)
	if len(runes) != 2 {
		return 0, fmt.Errorf("card code %q must be exactly two runes", s)
	}
	rank, err := parseRank(runes[0])
	if err != nil {
		return 0, err
	}
	suit, err := parseSuit(runes[1])
	if err != nil {
		return 0, err
	}
	return NewCard(rank, suit), nil
}

// MustParseCard is ParseCard for constant card codes in tests and
// examples; it panics on invalid input.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseRank(r rune) (Rank, error) {
	for i, rr := range rankRunes {
		if r == rr {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("invalid rank %q", r)
}

func parseSuit(r rune) (Suit, error) {
	for i, sr := range suitRunes {
		if r == sr {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("invalid suit %q", r)
}

// ---------------------------------------------------------------------------
// JSON encoding
// ---------------------------------------------------------------------------
//
// The wire format used between the judge and the bots spells out rank and
// suit as strings: {"rank":"10","suit":"♥"}. Note that the rank of a ten
// is "10" on the wire but 'T' in the ParseCard format.

var rankStrings = [13]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
var suitStrings = [4]string{"♦", "♥", "♠", "♣"}

// MarshalJSON encodes the card as {"rank":...,"suit":...}.
func (c Card) MarshalJSON() ([]byte, error) {
	if uint8(c) >= NumCards {
		return nil, fmt.Errorf("cannot encode invalid card %d", uint8(c))
	}
	return []byte(`{"rank":"` + rankStrings[c.Rank()] + `","suit":"` + suitStrings[c.Suit()] + `"}`), nil
}

// UnmarshalJSON decodes a {"rank":...,"suit":...} object.
func (c *Card) UnmarshalJSON(data []byte) error {
	var obj struct {
		Rank string `json:"rank"`
		Suit string `json:"suit"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	rank, suit := Rank(255), Suit(255)
	for i, s := range rankStrings {
		if obj.Rank == s {
			rank = Rank(i)
		}
	}
	for i, s := range suitStrings {
		if obj.Suit == s {
			suit = Suit(i)
		}
	}
	if rank == Rank(255) {
		return fmt.Errorf("invalid rank %q", obj.Rank)
	}
	if suit == Suit(255) {
		return fmt.Errorf("invalid suit %q", obj.Suit)
	}
	*c = NewCard(rank, suit)
	return nil
}
