package engine

import "fmt"

// PlacementErrorCode identifies the reason a card cannot be placed.
type PlacementErrorCode uint8

const (
	// OutOfBounds means the placement would stretch the board beyond 4×4.
	OutOfBounds PlacementErrorCode = iota
	// IncompatibleCard means the target cell's face-up card does not
	// accept the played card.
	IncompatibleCard
	// NoTargetForKingAbility means a king was played onto an occupied
	// cell without naming a cell to flip.
	NoTargetForKingAbility
	// TargetForKingAbilityDoesNotExist means the named cell is empty.
	TargetForKingAbilityDoesNotExist
	// TargetForKingAbilityIsFaceDown means the named cell has no face-up
	// card left to flip.
	TargetForKingAbilityIsFaceDown
)

// PlacementError describes why placing a card on a board is illegal.
type PlacementError struct {
	Code PlacementErrorCode
	// ExistingCard is the face-up card refusing the placement. Only set
	// for IncompatibleCard.
	ExistingCard Card
	// TargetI and TargetJ are the coordinates of the offending king
	// ability target. Only set for TargetForKingAbilityDoesNotExist and
	// TargetForKingAbilityIsFaceDown.
	TargetI, TargetJ int8
}

func (e *PlacementError) Error() string {
	switch e.Code {
	case OutOfBounds:
		return "card placed out of bounds"
	case IncompatibleCard:
		return fmt.Sprintf("card cannot be placed on top of %v", e.ExistingCard)
	case NoTargetForKingAbility:
		return "no target field for king ability"
	case TargetForKingAbilityDoesNotExist:
		return fmt.Sprintf("target field for king ability (%d, %d) does not exist", e.TargetI, e.TargetJ)
	case TargetForKingAbilityIsFaceDown:
		return fmt.Sprintf("target field for king ability (%d, %d) is already face down", e.TargetI, e.TargetJ)
	default:
		return "invalid placement"
	}
}

// IllegalMoveErrorCode identifies the rule a submitted turn broke.
type IllegalMoveErrorCode uint8

const (
	// PlayedCardNotInHand means the player does not hold the card.
	PlayedCardNotInHand IllegalMoveErrorCode = iota
	// PlayedZeroCards means the player skipped despite holding a
	// placeable card.
	PlayedZeroCards
	// PlayedMoreThanFiveCards means the turn listed more cards than a
	// hand can hold.
	PlayedMoreThanFiveCards
	// IllegalCardPlayed wraps a PlacementError for one of the cards.
	IllegalCardPlayed
	// PlayedCardAfterEndOfCombo means a card followed a non-combo
	// placement.
	PlayedCardAfterEndOfCombo
	// PrematurelyEndedCombo means the turn stopped mid-combo while a
	// hand card was still placeable.
	PrematurelyEndedCombo
)

// IllegalMoveError describes why a whole turn is illegal. CardIndex is
// the zero-based position within the submitted turn of the card at
// fault, where that is meaningful.
type IllegalMoveError struct {
	Code      IllegalMoveErrorCode
	CardIndex int
	// Card is the offending card. Set for PlayedCardNotInHand and
	// IllegalCardPlayed.
	Card Card
	// Cause is the underlying placement failure for IllegalCardPlayed.
	Cause *PlacementError
}

func (e *IllegalMoveError) Error() string {
	switch e.Code {
	case PlayedCardNotInHand:
		return fmt.Sprintf("played a card (%v) that is not in the player's hand", e.Card)
	case PlayedZeroCards:
		return "played zero cards, which is only allowed if no card in hand can be played"
	case PlayedMoreThanFiveCards:
		return "played more than five cards"
	case IllegalCardPlayed:
		return fmt.Sprintf("the %s card that was played (%v) cannot be played there: %v", ordinal(e.CardIndex), e.Card, e.Cause)
	case PlayedCardAfterEndOfCombo:
		return fmt.Sprintf("the %s card was played after the end of a combo", ordinal(e.CardIndex))
	case PrematurelyEndedCombo:
		return fmt.Sprintf("the combo was ended prematurely after the %s card", ordinal(e.CardIndex))
	default:
		return "illegal move"
	}
}

// Unwrap exposes the placement failure behind an IllegalCardPlayed.
func (e *IllegalMoveError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return nil
}

func ordinal(idx int) string {
	switch idx {
	case 0:
		return "first"
	case 1:
		return "second"
	case 2:
		return "third"
	case 3:
		return "fourth"
	case 4:
		return "fifth"
	default:
		return fmt.Sprintf("%dth", idx+1)
	}
}
