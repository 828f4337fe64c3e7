package engine

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func cardPtr(s string) *Card {
	c := MustParseCard(s)
	return &c
}

// ---------------------------------------------------------------------------
// Line detection and capture
// ---------------------------------------------------------------------------

func TestPlayCardHorizontal(t *testing.T) {
	board := NewBoard([]Field{
		{I: -1, J: 0, TopCard: cardPtr("4♦")},
		{I: -1, J: -1, TopCard: cardPtr("5♦")},
		{I: -1, J: -2, TopCard: cardPtr("6♦")},
		{I: -1, J: -3, TopCard: cardPtr("A♠")},
	})
	calc, err := board.Calculate(CardToPlay{Card: MustParseCard("A♦"), I: -1, J: -3})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !calc.diff.flipped.IsEmpty() {
		t.Error("flipped cells on a non-face-card play")
	}
	want := NewCardSet(MustParseCard("4♦"), MustParseCard("5♦"), MustParseCard("6♦"))
	if calc.CardsWon != want {
		t.Errorf("CardsWon = %v, want %v", calc.CardsWon, want)
	}
	if !calc.Combo {
		t.Error("placing on an occupied cell must be a combo")
	}

	after := calc.Execute()
	// The three captured fields are gone, the ace pile remains.
	if after.NumFields() != 1 {
		t.Fatalf("fields after capture = %d", after.NumFields())
	}
	field, ok := after.Get(-1, -3)
	if !ok {
		t.Fatal("destination field missing")
	}
	top, _ := field.TopCard()
	if top != MustParseCard("A♦") {
		t.Errorf("top card = %v", top)
	}
	if !field.HiddenCards().Contains(MustParseCard("A♠")) {
		t.Error("previous top card not hidden")
	}
}

func TestPlayCardAntidiagonal(t *testing.T) {
	board := NewBoard([]Field{
		{I: -1, J: 0, TopCard: cardPtr("4♦")},
		{I: 0, J: -1, TopCard: cardPtr("5♦")},
		{I: 1, J: -2, TopCard: cardPtr("6♦")},
		{I: 2, J: -3, TopCard: cardPtr("A♠")},
	})
	calc, err := board.Calculate(CardToPlay{Card: MustParseCard("A♦"), I: 2, J: -3})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if calc.diff.won.IsEmpty() {
		t.Error("anti-diagonal line not detected")
	}
}

func TestNoLineAcrossDifferentSuits(t *testing.T) {
	board := NewBoard([]Field{
		{I: 0, J: 0, TopCard: cardPtr("4♦")},
		{I: 0, J: 1, TopCard: cardPtr("5♥")},
		{I: 0, J: 2, TopCard: cardPtr("6♦")},
	})
	calc, err := board.Calculate(CardToPlay{Card: MustParseCard("7♦"), I: 0, J: 3})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !calc.CardsWon.IsEmpty() {
		t.Errorf("CardsWon = %v, want none", calc.CardsWon)
	}
}

// ---------------------------------------------------------------------------
// Placement legality
// ---------------------------------------------------------------------------

func TestCalculateOutOfBounds(t *testing.T) {
	board := NewBoard([]Field{
		{I: 0, J: 0, TopCard: cardPtr("4♦")},
		{I: 3, J: 0, TopCard: cardPtr("5♦")},
	})
	_, err := board.Calculate(CardToPlay{Card: MustParseCard("6♦"), I: 4, J: 0})
	var placement *PlacementError
	if !errors.As(err, &placement) || placement.Code != OutOfBounds {
		t.Fatalf("err = %v, want OutOfBounds", err)
	}
	if _, err := board.Calculate(CardToPlay{Card: MustParseCard("6♦"), I: 2, J: 1}); err != nil {
		t.Errorf("in-bounds placement rejected: %v", err)
	}
}

func TestCalculateIncompatibleCard(t *testing.T) {
	board := NewBoard([]Field{{I: 0, J: 0, TopCard: cardPtr("4♦")}})
	_, err := board.Calculate(CardToPlay{Card: MustParseCard("5♦"), I: 0, J: 0})
	var placement *PlacementError
	if !errors.As(err, &placement) || placement.Code != IncompatibleCard {
		t.Fatalf("err = %v, want IncompatibleCard", err)
	}
	if placement.ExistingCard != MustParseCard("4♦") {
		t.Errorf("ExistingCard = %v", placement.ExistingCard)
	}
}

func TestCalculateKingAbility(t *testing.T) {
	newBoard := func() *Board {
		return NewBoard([]Field{
			{I: 0, J: 0, TopCard: cardPtr("4♠")},
			{I: 1, J: 1, TopCard: cardPtr("9♥")},
			{I: 2, J: 2, HiddenCards: []Card{MustParseCard("3♣")}},
		})
	}
	king := MustParseCard("K♠")

	// A king on an occupied cell must name a target.
	_, err := newBoard().Calculate(CardToPlay{Card: king, I: 0, J: 0})
	var placement *PlacementError
	if !errors.As(err, &placement) || placement.Code != NoTargetForKingAbility {
		t.Fatalf("err = %v, want NoTargetForKingAbility", err)
	}

	// The target must exist.
	_, err = newBoard().Calculate(CardToPlay{
		Card: king, I: 0, J: 0,
		TargetFieldForKingAbility: &[2]int8{3, 3},
	})
	if !errors.As(err, &placement) || placement.Code != TargetForKingAbilityDoesNotExist {
		t.Fatalf("err = %v, want TargetForKingAbilityDoesNotExist", err)
	}
	if placement.TargetI != 3 || placement.TargetJ != 3 {
		t.Errorf("target = (%d, %d)", placement.TargetI, placement.TargetJ)
	}

	// The target must have a face-up card, unless it is the king's own cell.
	_, err = newBoard().Calculate(CardToPlay{
		Card: king, I: 0, J: 0,
		TargetFieldForKingAbility: &[2]int8{2, 2},
	})
	if !errors.As(err, &placement) || placement.Code != TargetForKingAbilityIsFaceDown {
		t.Fatalf("err = %v, want TargetForKingAbilityIsFaceDown", err)
	}

	// A valid target gets flipped.
	calc, err := newBoard().Calculate(CardToPlay{
		Card: king, I: 0, J: 0,
		TargetFieldForKingAbility: &[2]int8{1, 1},
	})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	after := calc.Execute()
	field, ok := after.Get(1, 1)
	if !ok {
		t.Fatal("target field missing")
	}
	if _, faceUp := field.TopCard(); faceUp {
		t.Error("target field still face up")
	}

	// A king placed on an empty cell needs no target.
	if _, err := newBoard().Calculate(CardToPlay{Card: king, I: 0, J: 1}); err != nil {
		t.Errorf("king on empty cell rejected: %v", err)
	}
}

func TestCalculateJackFlipsNeighbors(t *testing.T) {
	board := NewBoard([]Field{
		{I: 0, J: 0, TopCard: cardPtr("4♠")},
		{I: 0, J: 1, TopCard: cardPtr("9♥")},
		{I: 1, J: 0, TopCard: cardPtr("8♣")},
		{I: 1, J: 1, TopCard: cardPtr("7♦")},
	})
	calc, err := board.Calculate(CardToPlay{Card: MustParseCard("J♠"), I: 0, J: 0})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	after := calc.Execute()

	// The orthogonal neighbors are flipped, the diagonal one is not.
	for _, c := range []Coord{{0, 1}, {1, 0}} {
		field, _ := after.Get(c.I, c.J)
		if _, faceUp := field.TopCard(); faceUp {
			t.Errorf("(%d, %d) still face up", c.I, c.J)
		}
	}
	field, _ := after.Get(1, 1)
	if _, faceUp := field.TopCard(); !faceUp {
		t.Error("(1, 1) was flipped")
	}
}

func TestFlippedCardsCannotFormLines(t *testing.T) {
	// The queen lands on (0, 0) and flips (1, 1) diagonally, breaking
	// the diamond diagonal that would otherwise be completed.
	board := NewBoard([]Field{
		{I: 0, J: 0, TopCard: cardPtr("Q♠")},
		{I: 1, J: 1, TopCard: cardPtr("4♦")},
		{I: 2, J: 2, TopCard: cardPtr("5♦")},
		{I: 3, J: 3, TopCard: cardPtr("6♦")},
	})
	calc, err := board.Calculate(CardToPlay{Card: MustParseCard("Q♦"), I: 0, J: 0})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !calc.CardsWon.IsEmpty() {
		t.Errorf("CardsWon = %v, want none", calc.CardsWon)
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestPlayableArea(t *testing.T) {
	board := NewBoard([]Field{
		{I: 0, J: 0, TopCard: cardPtr("4♦")},
		{I: 1, J: 2, TopCard: cardPtr("5♦")},
	})
	area := board.PlayableArea()
	want := BoundingBox{IMin: -2, JMin: -1, IMax: 3, JMax: 3}
	if area != want {
		t.Errorf("PlayableArea() = %+v, want %+v", area, want)
	}
}

// arbitraryFields spreads roughly half the deck over the whole
// BoardSize×BoardSize area, stacking cards into piles and leaving some
// piles face down. With ~26 cards on 16 cells, crowded and full boards
// come up regularly.
func arbitraryFields(rng *rand.Rand, exclude Card) []Field {
	byCoord := map[Coord]*Field{}
	for _, card := range CardSet(0).Complement().Cards() {
		if card == exclude || rng.Intn(2) == 0 {
			continue
		}
		coord := Coord{
			I: int8(rng.Intn(BoardSize)) - 2,
			J: int8(rng.Intn(BoardSize)) - 2,
		}
		field, ok := byCoord[coord]
		if !ok {
			field = &Field{I: coord.I, J: coord.J}
			byCoord[coord] = field
		}
		field.HiddenCards = append(field.HiddenCards, card)
	}

	fields := make([]Field, 0, len(byCoord))
	for _, field := range byCoord {
		if n := len(field.HiddenCards); rng.Intn(2) == 0 {
			top := field.HiddenCards[n-1]
			field.TopCard = &top
			field.HiddenCards = field.HiddenCards[:n-1]
		}
		fields = append(fields, *field)
	}
	if len(fields) == 0 {
		filler := MustParseCard("2♦")
		if filler == exclude {
			filler = MustParseCard("3♦")
		}
		fields = append(fields, Field{TopCard: &filler})
	}
	return fields
}

func TestLocationsForCardMatchesCalculate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	all := CardSet(0).Complement().Cards()
	for trial := 0; trial < 200; trial++ {
		card := all[rng.Intn(len(all))]
		board := NewBoard(arbitraryFields(rng, card))

		anyLocation := false
		for _, c := range board.LocationsForCard(card).Coords() {
			anyLocation = true
			_, err := board.Calculate(CardToPlay{Card: card, I: c.I, J: c.J})
			var placement *PlacementError
			if err != nil && (!errors.As(err, &placement) || placement.Code != NoTargetForKingAbility) {
				t.Fatalf("location (%d, %d) rejected: %v", c.I, c.J, err)
			}
		}
		if anyLocation != board.PossibleToPlaceCard(card) {
			t.Fatalf("LocationsForCard and PossibleToPlaceCard disagree for %v", card)
		}
	}
}

func TestFullBoardPlacement(t *testing.T) {
	// All 16 cells occupied: there is no free in-bounds cell, so only
	// the piles themselves can accept a card.
	tops := make([]Card, 0, BoardSize*BoardSize)
	for r := RankTwo; r <= RankNine; r++ {
		tops = append(tops, NewCard(r, SuitDiamonds), NewCard(r, SuitClubs))
	}
	fields := make([]Field, 0, len(tops))
	for k := range tops {
		fields = append(fields, Field{
			I:       int8(k / BoardSize),
			J:       int8(k % BoardSize),
			TopCard: &tops[k],
		})
	}
	board := NewBoard(fields)
	if board.NumFields() != BoardSize*BoardSize {
		t.Fatalf("NumFields() = %d", board.NumFields())
	}

	// A rank that is absent from every pile cannot be played.
	ten := MustParseCard("T♥")
	if board.PossibleToPlaceCard(ten) {
		t.Errorf("PossibleToPlaceCard(%v) on a full board without tens", ten)
	}
	if !board.LocationsForCard(ten).IsEmpty() {
		t.Errorf("LocationsForCard(%v) = %v", ten, board.LocationsForCard(ten).Coords())
	}

	// A king without a visible card of its own suit cannot be played.
	if board.PossibleToPlaceCard(MustParseCard("K♥")) {
		t.Error("PossibleToPlaceCard(K♥) with no heart on the board")
	}

	// A matching rank goes only on the piles of that rank.
	five := MustParseCard("5♥")
	locations := board.LocationsForCard(five).Coords()
	if len(locations) != 2 {
		t.Fatalf("LocationsForCard(%v) = %v", five, locations)
	}
	for _, c := range locations {
		field, _ := board.Get(c.I, c.J)
		top, _ := field.TopCard()
		if top.Rank() != RankFive {
			t.Errorf("location (%d, %d) has top card %v", c.I, c.J, top)
		}
		calc, err := board.Calculate(CardToPlay{Card: five, I: c.I, J: c.J})
		if err != nil {
			t.Fatalf("Calculate at (%d, %d): %v", c.I, c.J, err)
		}
		if !calc.Combo {
			t.Errorf("placement on (%d, %d) is not a combo", c.I, c.J)
		}
	}

	// An ace goes on every pile.
	if got := board.LocationsForCard(MustParseCard("A♥")).Len(); got != BoardSize*BoardSize {
		t.Errorf("LocationsForCard(A♥).Len() = %d", got)
	}

	// The short and the exact query agree for the whole deck.
	for _, card := range CardSet(0).Complement().Cards() {
		if board.PossibleToPlaceCard(card) != !board.LocationsForCard(card).IsEmpty() {
			t.Errorf("LocationsForCard and PossibleToPlaceCard disagree for %v", card)
		}
	}
}

func TestExecutePreservesDerivedState(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		deck := CardSet(0).Complement().Cards()
		rng.Shuffle(len(deck), func(a, b int) { deck[a], deck[b] = deck[b], deck[a] })

		board := NewBoard([]Field{{TopCard: &deck[0]}})
		for _, card := range deck[1:] {
			locations := board.LocationsForCard(card).Coords()
			if len(locations) == 0 {
				continue
			}
			c := locations[rng.Intn(len(locations))]
			ctp := CardToPlay{Card: card, I: c.I, J: c.J}
			calc, err := board.Calculate(ctp)
			var placement *PlacementError
			if errors.As(err, &placement) && placement.Code == NoTargetForKingAbility {
				visible := board.Diamonds().
					Union(board.Hearts()).
					Union(board.Spades()).
					Union(board.Clubs()).
					Coords()
				if len(visible) == 0 {
					continue
				}
				target := visible[rng.Intn(len(visible))]
				ctp.TargetFieldForKingAbility = &[2]int8{target.I, target.J}
				calc, err = board.Calculate(ctp)
			}
			if err != nil {
				t.Fatalf("Calculate(%+v): %v", ctp, err)
			}
			board = calc.Execute()
			assertDerivedState(t, board)
		}
	}
}

// assertDerivedState checks that the bounding box and the suit
// bitboards carried by the board match what a fresh board built from
// the same fields derives.
func assertDerivedState(t *testing.T, board *Board) {
	t.Helper()
	rebuilt := NewBoard(board.ToFields())
	if rebuilt.BBox() != board.BBox() {
		t.Fatalf("bbox = %+v, rebuilt = %+v", board.BBox(), rebuilt.BBox())
	}
	pairs := [4][2]BitBoard{
		{board.Diamonds(), rebuilt.Diamonds()},
		{board.Hearts(), rebuilt.Hearts()},
		{board.Spades(), rebuilt.Spades()},
		{board.Clubs(), rebuilt.Clubs()},
	}
	for suit, pair := range pairs {
		got, want := pair[0].Coords(), pair[1].Coords()
		if len(got) != len(want) {
			t.Fatalf("suit %d bitboard = %v, rebuilt = %v", suit, got, want)
		}
		for k := range got {
			if got[k] != want[k] {
				t.Fatalf("suit %d bitboard = %v, rebuilt = %v", suit, got, want)
			}
		}
	}
	if !reflect.DeepEqual(board.ToFields(), rebuilt.ToFields()) {
		t.Fatal("fields changed when rebuilding the board")
	}
}

func TestToFieldsRoundTrip(t *testing.T) {
	fields := []Field{
		{I: -1, J: 0, TopCard: cardPtr("4♦"), HiddenCards: []Card{MustParseCard("4♠")}},
		{I: 0, J: 0, TopCard: cardPtr("5♦")},
		{I: 1, J: 1, HiddenCards: []Card{MustParseCard("2♣"), MustParseCard("9♥")}},
	}
	board := NewBoard(fields)
	got := board.ToFields()
	if len(got) != len(fields) {
		t.Fatalf("ToFields() has %d fields", len(got))
	}
	// ToFields is sorted by coordinates, same as the input here.
	for k, f := range got {
		if f.I != fields[k].I || f.J != fields[k].J {
			t.Errorf("field %d at (%d, %d), want (%d, %d)", k, f.I, f.J, fields[k].I, fields[k].J)
		}
	}
	if got[2].TopCard != nil {
		t.Error("face-down field has a top card")
	}
	if len(got[2].HiddenCards) != 2 {
		t.Errorf("hidden cards = %v", got[2].HiddenCards)
	}
}

func TestSuitBitboardsTrackTopCards(t *testing.T) {
	board := NewBoard([]Field{
		{I: 0, J: 0, TopCard: cardPtr("4♦")},
		{I: 0, J: 1, TopCard: cardPtr("4♥"), HiddenCards: []Card{MustParseCard("9♠")}},
		{I: 1, J: 0, HiddenCards: []Card{MustParseCard("2♣")}},
	})
	if !board.Diamonds().Contains(0, 0) || board.Diamonds().Len() != 1 {
		t.Error("diamonds bitboard wrong")
	}
	if !board.Hearts().Contains(0, 1) || board.Hearts().Len() != 1 {
		t.Error("hearts bitboard wrong")
	}
	// Hidden cards are not visible.
	if !board.Spades().IsEmpty() || !board.Clubs().IsEmpty() {
		t.Error("hidden cards leaked into the suit bitboards")
	}
}
