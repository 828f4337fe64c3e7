package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestState(t *testing.T, color Color, seed int64) *PlayerState {
	t.Helper()
	state := NewPlayerState(color, rand.New(rand.NewSource(seed)))
	if len(state.DrawPile) != 21 {
		t.Fatalf("draw pile has %d cards", len(state.DrawPile))
	}
	return state
}

func TestNewPlayerState(t *testing.T) {
	state := newTestState(t, Red, 1)
	var all CardSet
	for _, card := range state.DrawPile {
		all = all.Insert(card)
	}
	for _, card := range state.Hand {
		all = all.Insert(card)
	}
	if all != RedCardsSet {
		t.Errorf("dealt cards = %v, want the full red half", all)
	}
	if !state.WonCards.IsEmpty() {
		t.Error("new player state has won cards")
	}
}

func TestExecuteFirstTurn(t *testing.T) {
	state := newTestState(t, Black, 2)
	played := state.Hand[2]
	expectedDraw := state.DrawPile[len(state.DrawPile)-1]

	board, err := ExecuteFirstTurn(state, played)
	if err != nil {
		t.Fatalf("ExecuteFirstTurn: %v", err)
	}
	field, ok := board.Get(0, 0)
	if !ok {
		t.Fatal("no field at the origin")
	}
	top, _ := field.TopCard()
	if top != played {
		t.Errorf("top card = %v, want %v", top, played)
	}
	if state.Hand[2] != expectedDraw {
		t.Errorf("hand slot = %v, want the drawn card %v", state.Hand[2], expectedDraw)
	}
	if len(state.DrawPile) != 20 {
		t.Errorf("draw pile has %d cards", len(state.DrawPile))
	}
}

func TestExecuteFirstTurnCardNotInHand(t *testing.T) {
	state := newTestState(t, Black, 3)
	notInHand := state.DrawPile[0]
	_, err := ExecuteFirstTurn(state, notInHand)
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Code != PlayedCardNotInHand {
		t.Fatalf("err = %v, want PlayedCardNotInHand", err)
	}
}

// singleCardBoard builds a board holding one face-up card at the origin.
func singleCardBoard(card Card) *Board {
	return NewBoard([]Field{{I: 0, J: 0, TopCard: &card}})
}

func TestExecuteTurnNormal(t *testing.T) {
	state := newTestState(t, Red, 4)
	board := singleCardBoard(MustParseCard("4♠"))
	played := state.Hand[0]

	// Place the card on an empty cell next to the spade.
	newBoard, result, err := ExecuteTurn(state, board, PlayTurnResponse{
		{Card: played, I: 0, J: 1},
	})
	if err != nil {
		t.Fatalf("ExecuteTurn: %v", err)
	}
	if result.Outcome != TurnNormal {
		t.Fatalf("outcome = %v", result.Outcome)
	}
	if !result.CardsWon.IsEmpty() {
		t.Errorf("CardsWon = %v", result.CardsWon)
	}
	if newBoard.NumFields() != 2 {
		t.Errorf("fields = %d", newBoard.NumFields())
	}
	if len(state.DrawPile) != 20 {
		t.Errorf("draw pile has %d cards", len(state.DrawPile))
	}
	for _, card := range state.Hand {
		if card == played {
			t.Error("played card still in hand")
		}
	}
}

func TestExecuteTurnCardNotInHand(t *testing.T) {
	state := newTestState(t, Red, 5)
	board := singleCardBoard(MustParseCard("4♠"))
	notInHand := state.DrawPile[0]

	_, _, err := ExecuteTurn(state, board, PlayTurnResponse{
		{Card: notInHand, I: 0, J: 1},
	})
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Code != PlayedCardNotInHand {
		t.Fatalf("err = %v, want PlayedCardNotInHand", err)
	}
}

func TestExecuteTurnSkipRejectedWhenMovePossible(t *testing.T) {
	state := newTestState(t, Red, 6)
	board := singleCardBoard(MustParseCard("4♠"))

	// Fewer than 16 fields, so every hand card is placeable.
	_, _, err := ExecuteTurn(state, board, nil)
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Code != PlayedZeroCards {
		t.Fatalf("err = %v, want PlayedZeroCards", err)
	}
}

func TestExecuteTurnTooManyCards(t *testing.T) {
	state := newTestState(t, Red, 7)
	board := singleCardBoard(MustParseCard("4♠"))

	action := make(PlayTurnResponse, 6)
	for k := range action {
		action[k] = CardToPlay{Card: state.Hand[0], I: 0, J: 1}
	}
	_, _, err := ExecuteTurn(state, board, action)
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Code != PlayedMoreThanFiveCards {
		t.Fatalf("err = %v, want PlayedMoreThanFiveCards", err)
	}
}

func TestExecuteTurnIllegalPlacement(t *testing.T) {
	state := newTestState(t, Red, 8)
	board := singleCardBoard(MustParseCard("4♠"))

	_, _, err := ExecuteTurn(state, board, PlayTurnResponse{
		{Card: state.Hand[0], I: 5, J: 5},
	})
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Code != IllegalCardPlayed {
		t.Fatalf("err = %v, want IllegalCardPlayed", err)
	}
	var placement *PlacementError
	if !errors.As(err, &placement) || placement.Code != OutOfBounds {
		t.Errorf("cause = %v, want OutOfBounds", illegal.Cause)
	}
}

func TestExecuteTurnCardAfterEndOfCombo(t *testing.T) {
	state := newTestState(t, Red, 9)
	board := singleCardBoard(MustParseCard("4♠"))

	// The first card lands on an empty cell, ending the turn; a second
	// card is not allowed.
	_, _, err := ExecuteTurn(state, board, PlayTurnResponse{
		{Card: state.Hand[0], I: 0, J: 1},
		{Card: state.Hand[1], I: 0, J: 2},
	})
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Code != PlayedCardAfterEndOfCombo {
		t.Fatalf("err = %v, want PlayedCardAfterEndOfCombo", err)
	}
	if illegal.CardIndex != 0 {
		t.Errorf("CardIndex = %d", illegal.CardIndex)
	}
}

func TestExecuteTurnPrematurelyEndedCombo(t *testing.T) {
	// Hand-built state: the player holds a card placeable after the
	// combo starts, so stopping there is illegal.
	state := &PlayerState{
		DrawPile: BlackCards()[:10],
	}
	copy(state.Hand[:], []Card{
		MustParseCard("4♠"),
		MustParseCard("5♠"),
		MustParseCard("6♠"),
		MustParseCard("7♠"),
		MustParseCard("8♠"),
	})
	board := singleCardBoard(MustParseCard("4♥"))

	_, _, err := ExecuteTurn(state, board, PlayTurnResponse{
		{Card: MustParseCard("4♠"), I: 0, J: 0},
	})
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) || illegal.Code != PrematurelyEndedCombo {
		t.Fatalf("err = %v, want PrematurelyEndedCombo", err)
	}
}

func TestExecuteTurnGameEnded(t *testing.T) {
	state := &PlayerState{}
	copy(state.Hand[:], []Card{
		MustParseCard("4♠"),
		MustParseCard("A♠"),
		MustParseCard("K♠"),
		MustParseCard("Q♠"),
		MustParseCard("J♠"),
	})
	board := singleCardBoard(MustParseCard("4♥"))

	// The draw pile is empty, so refilling the hand ends the game. The
	// whole hand goes onto one pile: same rank, then the ace, then the
	// face cards on their own suit. The king flips its own pile.
	_, result, err := ExecuteTurn(state, board, PlayTurnResponse{
		{Card: MustParseCard("4♠"), I: 0, J: 0},
		{Card: MustParseCard("A♠"), I: 0, J: 0},
		{Card: MustParseCard("K♠"), I: 0, J: 0, TargetFieldForKingAbility: &[2]int8{0, 0}},
		{Card: MustParseCard("Q♠"), I: 0, J: 0},
		{Card: MustParseCard("J♠"), I: 0, J: 0},
	})
	if err != nil {
		t.Fatalf("ExecuteTurn: %v", err)
	}
	if result.Outcome != TurnGameEnded {
		t.Fatalf("outcome = %v", result.Outcome)
	}
}
