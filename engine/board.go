package engine

import "sort"

// BoardSize is the side length of the square area the board may occupy.
const BoardSize = 4

type placedField struct {
	i, j  int8
	field CompactField
}

// Board is a board with at least one card on it. It is immutable;
// playing a card produces a new Board via Calculate and Execute.
type Board struct {
	// Exactly one entry per field with at least one card on it, sorted
	// by (i, j). bbox and suits are derived from this list.
	fields []placedField
	bbox   BoundingBox
	// The visible diamond/heart/spade/club cards on the board.
	suits [4]BitBoard
}

type diff struct {
	flipped BitBoard
	won     BitBoard
	card    Card
	i, j    int8
}

// Calculation is the planned outcome of playing a single card. It ties
// the diff to the board it was computed from; Execute applies it.
type Calculation struct {
	board *Board
	diff  diff
	// CardsWon are the cards captured by this play.
	CardsWon CardSet
	// Combo reports whether another card must follow this one.
	Combo bool
}

// NewBoard creates a board from a list of fields.
//
// Panics if the list is empty.
func NewBoard(fields []Field) *Board {
	if len(fields) == 0 {
		panic("a board must have at least one card on it")
	}
	placed := make([]placedField, 0, len(fields))
	bbox := NewBoundingBox(fields[0].I, fields[0].J)
	var suits [4]BitBoard
	for s := range suits {
		suits[s] = NewBitBoard(fields[0].I, fields[0].J)
	}

	for _, field := range fields {
		bbox.Expand(field.I, field.J)
		placed = append(placed, placedField{
			i:     field.I,
			j:     field.J,
			field: compactFieldFromField(field),
		})
		if field.TopCard != nil {
			suit := field.TopCard.Suit()
			suits[suit] = suits[suit].Insert(field.I, field.J)
		}
	}
	sort.Slice(placed, func(a, b int) bool {
		if placed[a].i != placed[b].i {
			return placed[a].i < placed[b].i
		}
		return placed[a].j < placed[b].j
	})

	return &Board{fields: placed, bbox: bbox, suits: suits}
}

// BBox returns the smallest area enclosing the cards currently on the
// board. It is never larger than BoardSize×BoardSize.
func (b *Board) BBox() BoundingBox { return b.bbox }

// PlayableArea returns the coordinates where a card may be placed
// without going out of bounds. It can be larger than
// BoardSize×BoardSize, e.g. with a single card on the board it is the
// 7×7 area centered on that card.
func (b *Board) PlayableArea() BoundingBox {
	return BoundingBox{
		IMin: b.bbox.IMax - BoardSize + 1,
		JMin: b.bbox.JMax - BoardSize + 1,
		IMax: b.bbox.IMin + BoardSize - 1,
		JMax: b.bbox.JMin + BoardSize - 1,
	}
}

// Diamonds returns the visible diamonds on the board.
func (b *Board) Diamonds() BitBoard { return b.suits[SuitDiamonds] }

// Hearts returns the visible hearts on the board.
func (b *Board) Hearts() BitBoard { return b.suits[SuitHearts] }

// Spades returns the visible spades on the board.
func (b *Board) Spades() BitBoard { return b.suits[SuitSpades] }

// Clubs returns the visible clubs on the board.
func (b *Board) Clubs() BitBoard { return b.suits[SuitClubs] }

// Get returns the field at the given coordinate, if any cards are on it.
func (b *Board) Get(i, j int8) (CompactField, bool) {
	idx := sort.Search(len(b.fields), func(k int) bool {
		f := b.fields[k]
		return f.i > i || (f.i == i && f.j >= j)
	})
	if idx < len(b.fields) && b.fields[idx].i == i && b.fields[idx].j == j {
		return b.fields[idx].field, true
	}
	return 0, false
}

// InBounds reports whether a card may be placed at (i, j) without
// stretching the board beyond BoardSize×BoardSize.
func (b *Board) InBounds(i, j int8) bool {
	return int(i)-int(b.bbox.IMin) < BoardSize &&
		int(b.bbox.IMax)-int(i) < BoardSize &&
		int(j)-int(b.bbox.JMin) < BoardSize &&
		int(b.bbox.JMax)-int(j) < BoardSize
}

// NumFields returns the number of fields with at least one card.
func (b *Board) NumFields() int { return len(b.fields) }

// ToFields converts the board back into a list of wire fields.
func (b *Board) ToFields() []Field {
	out := make([]Field, 0, len(b.fields))
	for _, f := range b.fields {
		if f.field.IsEmpty() {
			continue
		}
		out = append(out, f.field.ToField(f.i, f.j))
	}
	return out
}

// Calculate plans playing a card and returns the effects it would have.
//
// This is the core operation on a board. It checks whether playing the
// card is legal given the other cards, which cards it would win, and
// stages the changes to make. The returned Calculation's Execute method
// applies the changes and produces the new board.
//
// It does not validate that the card has not already been played.
func (b *Board) Calculate(ctp CardToPlay) (*Calculation, error) {
	if !b.InBounds(ctp.I, ctp.J) {
		return nil, &PlacementError{Code: OutOfBounds}
	}

	existing, cellOccupied := b.Get(ctp.I, ctp.J)

	// Reject if the field's face-up card does not accept the new one.
	if cellOccupied {
		if top, faceUp := existing.TopCard(); faceUp && !ctp.Card.CanBePlacedOn(top) {
			return nil, &PlacementError{Code: IncompatibleCard, ExistingCard: top}
		}
	}

	// A field only exists while a card is on it, so existence of the
	// field means this play is a combo.
	combo := cellOccupied

	var flipped BitBoard
	if combo {
		var err error
		flipped, err = b.fieldsToFlip(ctp)
		if err != nil {
			return nil, err
		}
	} else {
		flipped = NewBitBoard(ctp.I, ctp.J)
	}

	// All visible cards of the played suit, as they would look after
	// this play. A line of 4 must consist of cards of this suit.
	sameSuit := b.suits[ctp.Card.Suit()].
		Recenter(ctp.I, ctp.J).
		Insert(ctp.I, ctp.J).
		Difference(flipped)
	won := sameSuit.LinesThrough(ctp.I, ctp.J).Remove(ctp.I, ctp.J)

	var cardsWon CardSet
	for _, f := range b.fields {
		if won.Contains(f.i, f.j) {
			cardsWon = cardsWon.Union(f.field.AllCards())
		}
	}

	return &Calculation{
		board:    b,
		diff:     diff{flipped: flipped, won: won, card: ctp.Card, i: ctp.I, j: ctp.J},
		CardsWon: cardsWon,
		Combo:    combo,
	}, nil
}

// fieldsToFlip activates a face card's ability and returns the cells
// whose top card is turned face down. The result may contain empty
// cells; flipping those is a no-op.
func (b *Board) fieldsToFlip(ctp CardToPlay) (BitBoard, error) {
	flipped := NewBitBoard(ctp.I, ctp.J)
	switch ctp.Card.Rank() {
	case RankJack:
		for _, c := range [4]Coord{
			{ctp.I - 1, ctp.J},
			{ctp.I + 1, ctp.J},
			{ctp.I, ctp.J - 1},
			{ctp.I, ctp.J + 1},
		} {
			if b.InBounds(c.I, c.J) {
				flipped = flipped.Insert(c.I, c.J)
			}
		}
	case RankQueen:
		for _, c := range [4]Coord{
			{ctp.I - 1, ctp.J - 1},
			{ctp.I - 1, ctp.J + 1},
			{ctp.I + 1, ctp.J - 1},
			{ctp.I + 1, ctp.J + 1},
		} {
			if b.InBounds(c.I, c.J) {
				flipped = flipped.Insert(c.I, c.J)
			}
		}
	case RankKing:
		if ctp.TargetFieldForKingAbility == nil {
			return 0, &PlacementError{Code: NoTargetForKingAbility}
		}
		targetI, targetJ := ctp.TargetFieldForKingAbility[0], ctp.TargetFieldForKingAbility[1]
		target, ok := b.Get(targetI, targetJ)
		if !ok {
			return 0, &PlacementError{
				Code:    TargetForKingAbilityDoesNotExist,
				TargetI: targetI,
				TargetJ: targetJ,
			}
		}
		if _, faceUp := target.TopCard(); !faceUp && (targetI != ctp.I || targetJ != ctp.J) {
			return 0, &PlacementError{
				Code:    TargetForKingAbilityIsFaceDown,
				TargetI: targetI,
				TargetJ: targetJ,
			}
		}
		flipped = flipped.Insert(targetI, targetJ)
	}
	return flipped, nil
}

// PossibleToPlaceCard reports whether the card can be played anywhere.
// This is cheaper than checking LocationsForCard.
func (b *Board) PossibleToPlaceCard(card Card) bool {
	// With fewer than 16 occupied fields there is always a free
	// in-bounds cell, and a card can always be placed on a free cell.
	if len(b.fields) < 16 {
		return true
	}
	for _, f := range b.fields {
		if f.field.CanPlaceCard(card) {
			return true
		}
	}
	return false
}

// LocationsForCard returns the set of coordinates where the card may be
// placed.
func (b *Board) LocationsForCard(card Card) BitBoard {
	area := b.PlayableArea()
	centerI, centerJ := b.suits[0].Center()
	bitboard := NewBitBoard(centerI, centerJ).
		InsertArea(area.IMin, area.JMin, area.IMax, area.JMax)

	for _, f := range b.fields {
		if !f.field.CanPlaceCard(card) {
			bitboard = bitboard.Remove(f.i, f.j)
		}
	}
	return bitboard
}

// Execute applies the staged changes and returns the resulting board.
func (c *Calculation) Execute() *Board {
	return c.diff.apply(c.board)
}

func (d diff) apply(board *Board) *Board {
	newFields := make([]placedField, 0, len(board.fields)+1)
	bbox := NewBoundingBox(d.i, d.j)
	var suits [4]BitBoard
	for s := range suits {
		suits[s] = NewBitBoard(d.i, d.j)
	}
	destinationExists := false

	// Copy over the fields while applying changes and rebuilding the
	// derived data.
	for _, f := range board.fields {
		if d.won.Contains(f.i, f.j) {
			continue
		}
		field := f.field
		if f.i == d.i && f.j == d.j {
			field = field.PlaceCard(d.card)
			destinationExists = true
		}
		if d.flipped.Contains(f.i, f.j) {
			field = field.TurnFaceDown()
		}
		newFields = append(newFields, placedField{i: f.i, j: f.j, field: field})

		bbox.Expand(f.i, f.j)
		if top, faceUp := field.TopCard(); faceUp {
			suits[top.Suit()] = suits[top.Suit()].Insert(f.i, f.j)
		}
	}

	// Handle the new card if it landed on a previously empty cell.
	if !destinationExists {
		field := NewCompactField(nil, 0).PlaceCard(d.card)
		if d.flipped.Contains(d.i, d.j) {
			field = field.TurnFaceDown()
		} else {
			suits[d.card.Suit()] = suits[d.card.Suit()].Insert(d.i, d.j)
		}
		newFields = append(newFields, placedField{i: d.i, j: d.j, field: field})
		sort.Slice(newFields, func(a, b int) bool {
			if newFields[a].i != newFields[b].i {
				return newFields[a].i < newFields[b].i
			}
			return newFields[a].j < newFields[b].j
		})
	}

	return &Board{fields: newFields, bbox: bbox, suits: suits}
}
