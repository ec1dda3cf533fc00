/*
Package quiz provides the check-your-understanding exercises.

PURPOSE:
  The lab pairs the forecast with short exercises: sort statements into
  bins (payment terms, advantages vs disadvantages) and complete a sentence
  from a word bank. Each exercise keeps its own placement state and never
  touches forecast state.

KEY TYPES:
  SortExercise: Static content (cards and bins)
  Board:        One learner's placements for a SortExercise
  Sentence:     One learner's slot-fill state for a FillExercise

GRADING:
  A card counts as correct only when it sits in its expected bin. Cards
  still in the hand are wrong, so a partially completed board never passes.

SEE ALSO:
  - quiz/content.go: Built-in exercises
  - api/handlers.go: Stateless grading endpoint
*/
package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCard is returned when a placement names a card not in the exercise.
	ErrUnknownCard = errors.New("unknown card")

	// ErrUnknownBin is returned when a placement names a bin not in the exercise.
	ErrUnknownBin = errors.New("unknown bin")

	// ErrNoEmptySlot is returned when filling a sentence with no free slot.
	ErrNoEmptySlot = errors.New("no empty slot")

	// ErrSlotOutOfRange is returned when clearing a slot that does not exist.
	ErrSlotOutOfRange = errors.New("slot out of range")
)

// =============================================================================
// SORT EXERCISES
// =============================================================================

// Bin is a drop target.
type Bin struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Card is a statement to sort. Want is the id of the correct bin.
type Card struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Want string `json:"-"`
}

// SortExercise is a card-sorting exercise.
type SortExercise struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Bins  []Bin  `json:"bins"`
	Cards []Card `json:"cards"`
}

func (ex *SortExercise) card(id string) (Card, bool) {
	for _, c := range ex.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

func (ex *SortExercise) hasBin(id string) bool {
	for _, b := range ex.Bins {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Result is the outcome of checking an exercise.
type Result struct {
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	Wrong   []string `json:"wrong"` // card ids, in exercise order
	Passed  bool     `json:"passed"`
}

// Grade checks placements (card id -> bin id) against the exercise.
func Grade(ex *SortExercise, placements map[string]string) (Result, error) {
	for cardID, binID := range placements {
		if _, ok := ex.card(cardID); !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
		}
		if !ex.hasBin(binID) {
			return Result{}, fmt.Errorf("%w: %s", ErrUnknownBin, binID)
		}
	}

	res := Result{Total: len(ex.Cards), Wrong: []string{}}
	for _, c := range ex.Cards {
		if placements[c.ID] == c.Want {
			res.Correct++
			continue
		}
		res.Wrong = append(res.Wrong, c.ID)
	}
	res.Passed = res.Correct == res.Total
	return res, nil
}

// Board holds one learner's placements. Not safe for concurrent use.
type Board struct {
	ex         *SortExercise
	placements map[string]string
}

// NewBoard starts an empty board for ex.
func NewBoard(ex *SortExercise) *Board {
	return &Board{ex: ex, placements: make(map[string]string)}
}

// Place moves a card into a bin, replacing any earlier placement.
func (b *Board) Place(cardID, binID string) error {
	if _, ok := b.ex.card(cardID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}
	if !b.ex.hasBin(binID) {
		return fmt.Errorf("%w: %s", ErrUnknownBin, binID)
	}
	b.placements[cardID] = binID
	return nil
}

// Remove returns a card to the hand.
func (b *Board) Remove(cardID string) {
	delete(b.placements, cardID)
}

// BinOf returns where a card currently sits.
func (b *Board) BinOf(cardID string) (string, bool) {
	bin, ok := b.placements[cardID]
	return bin, ok
}

// Check grades the current placements.
func (b *Board) Check() Result {
	// Place only admits known cards and bins.
	res, _ := Grade(b.ex, b.placements)
	return res
}

// =============================================================================
// FILL EXERCISES
// =============================================================================

// FillExercise is a sentence with blanks and a word bank.
type FillExercise struct {
	ID    string   `json:"id"`
	Slots []string `json:"-"` // expected word per slot
	Bank  []string `json:"bank"`
}

// Sentence is one learner's attempt at a FillExercise.
type Sentence struct {
	ex     *FillExercise
	values []string
}

// NewSentence starts with every slot empty.
func NewSentence(ex *FillExercise) *Sentence {
	return &Sentence{ex: ex, values: make([]string, len(ex.Slots))}
}

// Fill puts word in the first empty slot and returns its index.
func (s *Sentence) Fill(word string) (int, error) {
	for i, v := range s.values {
		if v == "" {
			s.values[i] = word
			return i, nil
		}
	}
	return -1, ErrNoEmptySlot
}

// Clear empties a slot and returns the word it held.
func (s *Sentence) Clear(slot int) (string, error) {
	if slot < 0 || slot >= len(s.values) {
		return "", fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	word := s.values[slot]
	s.values[slot] = ""
	return word, nil
}

// Values returns a copy of the current slot contents.
func (s *Sentence) Values() []string {
	return append([]string(nil), s.values...)
}

// Check compares every slot to its expected word, ignoring case.
func (s *Sentence) Check() Result {
	res := Result{Total: len(s.ex.Slots), Wrong: []string{}}
	for i, want := range s.ex.Slots {
		if strings.EqualFold(s.values[i], want) {
			res.Correct++
			continue
		}
		res.Wrong = append(res.Wrong, fmt.Sprintf("slot-%d", i))
	}
	res.Passed = res.Correct == res.Total
	return res
}
