package engine

import (
	"math/bits"
	"strings"
)

// CardSet is a compact, immutable set of cards: one bit per card index,
// in the low 52 bits of a uint64. The zero value is the empty set.
//
// All methods are pure and return a new set; none mutate the receiver.
// Reassign the result to the caller's own variable to "update" a set.
type CardSet uint64

const allCardsMask CardSet = (1 << NumCards) - 1

// RedCardsSet contains all diamonds and hearts.
const RedCardsSet CardSet = 0x3333333333333

// BlackCardsSet contains all spades and clubs.
const BlackCardsSet CardSet = 0xccccccccccccc

// NewCardSet builds a set from the given cards.
func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s |= 1 << c.Index()
	}
	return s
}

// Len returns the number of cards in the set.
func (s CardSet) Len() int { return bits.OnesCount64(uint64(s)) }

// IsEmpty reports whether the set contains no cards.
func (s CardSet) IsEmpty() bool { return s == 0 }

// Contains reports whether card is in the set.
func (s CardSet) Contains(card Card) bool { return s&(1<<card.Index()) != 0 }

// Insert returns the set with card added. Inserting a card that is
// already present is a no-op.
func (s CardSet) Insert(card Card) CardSet { return s | 1<<card.Index() }

// Remove returns the set with card removed. Removing an absent card is
// a no-op.
func (s CardSet) Remove(card Card) CardSet { return s &^ (1 << card.Index()) }

// Union returns the set of cards in either set.
func (s CardSet) Union(other CardSet) CardSet { return s | other }

// Intersect returns the set of cards in both sets.
func (s CardSet) Intersect(other CardSet) CardSet { return s & other }

// Difference returns the cards in s that are not in other.
func (s CardSet) Difference(other CardSet) CardSet { return s &^ other }

// SymmetricDifference returns the cards in exactly one of the two sets.
func (s CardSet) SymmetricDifference(other CardSet) CardSet { return s ^ other }

// Complement returns the cards of the full deck that are not in s.
func (s CardSet) Complement() CardSet { return ^s & allCardsMask }

// Cards returns the cards in the set in ascending index order, i.e.
// by rank first and suit second.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	for rem := uint64(s); rem != 0; rem &= rem - 1 {
		out = append(out, Card(bits.TrailingZeros64(rem)))
	}
	return out
}

// ForEach calls fn for every card in the set in ascending index order.
func (s CardSet) ForEach(fn func(Card)) {
	for rem := uint64(s); rem != 0; rem &= rem - 1 {
		fn(Card(bits.TrailingZeros64(rem)))
	}
}

// String renders the set as a bracketed list of card codes.
func (s CardSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	s.ForEach(func(c Card) {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(c.String())
	})
	b.WriteByte('}')
	return b.String()
}

// RedCards returns all diamonds and hearts in ascending index order.
func RedCards() []Card { return RedCardsSet.Cards() }

// BlackCards returns all spades and clubs in ascending index order.
func BlackCards() []Card { return BlackCardsSet.Cards() }
