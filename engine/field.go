package engine

// CompactField is the state of a single cell on the board, packed into a
// uint64:
//
//   - the low 52 bits are a CardSet of the hidden cards,
//   - bits 52–57 are the index of the face-up top card, if any,
//   - bit 58 indicates whether there is a face-up top card.
//
// It does not store the order of hidden cards, because that never
// matters for the game. The zero value is an empty cell.
//
// Like CardSet, it is an immutable value type: methods return a new
// CompactField instead of mutating.
type CompactField uint64

const (
	topCardIndicatorBit CompactField = 1 << 58
	topCardMask         CompactField = 0x3f << 52
	hiddenCardsMask     CompactField = (1 << NumCards) - 1
)

// NewCompactField builds a cell from an optional top card and hidden set.
func NewCompactField(topCard *Card, hidden CardSet) CompactField {
	f := CompactField(hidden)
	if topCard != nil {
		f |= topCardIndicatorBit | CompactField(topCard.Index())<<52
	}
	return f
}

// IsEmpty reports whether the cell holds no cards at all.
func (f CompactField) IsEmpty() bool { return f == 0 }

// TopCard returns the face-up card on top of the cell, if there is one.
func (f CompactField) TopCard() (Card, bool) {
	if f&topCardIndicatorBit == 0 {
		return 0, false
	}
	return Card((f & topCardMask) >> 52), true
}

// CanPlaceCard reports whether card may be placed on this cell. A cell
// without a face-up top card accepts any card.
func (f CompactField) CanPlaceCard(card Card) bool {
	top, ok := f.TopCard()
	if !ok {
		return true
	}
	return card.CanBePlacedOn(top)
}

// PlaceCard returns the cell with card as the new face-up top card. Any
// previous top card moves into the hidden set.
func (f CompactField) PlaceCard(card Card) CompactField {
	return f.TurnFaceDown() | topCardIndicatorBit | CompactField(card.Index())<<52
}

// TurnFaceDown returns the cell with its top card moved into the hidden
// set. A cell without a face-up top card is returned unchanged.
func (f CompactField) TurnFaceDown() CompactField {
	if f&topCardIndicatorBit == 0 {
		return f
	}
	idx := (f & topCardMask) >> 52
	return f&^(topCardIndicatorBit|topCardMask) | 1<<idx
}

// HiddenCards returns the set of hidden cards on the cell.
func (f CompactField) HiddenCards() CardSet { return CardSet(f & hiddenCardsMask) }

// NumHiddenCards returns the number of hidden cards on the cell.
func (f CompactField) NumHiddenCards() int { return f.HiddenCards().Len() }

// AllCards returns every card on the cell, hidden or face up.
func (f CompactField) AllCards() CardSet {
	s := f.HiddenCards()
	if top, ok := f.TopCard(); ok {
		s = s.Insert(top)
	}
	return s
}

// ToField converts the cell into its protocol representation at (i, j).
func (f CompactField) ToField(i, j int8) Field {
	out := Field{I: i, J: j, HiddenCards: f.HiddenCards().Cards()}
	if top, ok := f.TopCard(); ok {
		c := top
		out.TopCard = &c
	}
	return out
}

// compactFieldFromField converts a protocol Field into its packed form.
// The top card must not also be listed among the hidden cards.
func compactFieldFromField(field Field) CompactField {
	return NewCompactField(field.TopCard, NewCardSet(field.HiddenCards...))
}
