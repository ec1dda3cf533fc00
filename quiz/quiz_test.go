package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/cashflow-lab/quiz"
)

func TestBoard_PaymentTerms_AllCorrect(t *testing.T) {
	b := quiz.NewBoard(quiz.PaymentTerms())

	require.NoError(t, b.Place("t1", "0"))
	require.NoError(t, b.Place("t2", "30"))
	require.NoError(t, b.Place("t3", "60"))

	res := b.Check()
	assert.True(t, res.Passed)
	assert.Equal(t, 3, res.Correct)
	assert.Empty(t, res.Wrong)
}

func TestBoard_UnplacedCardsCountAsWrong(t *testing.T) {
	// GIVEN: Only one card placed, and it is in the wrong bin
	b := quiz.NewBoard(quiz.PaymentTerms())
	require.NoError(t, b.Place("t3", "30"))

	// WHEN: Checking
	res := b.Check()

	// THEN: Nothing is correct
	assert.False(t, res.Passed)
	assert.Equal(t, 0, res.Correct)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"t1", "t2", "t3"}, res.Wrong)
}

func TestBoard_MoveAndRemove(t *testing.T) {
	b := quiz.NewBoard(quiz.AdvantagesDisadvantages())

	require.NoError(t, b.Place("a1", "dis"))
	require.NoError(t, b.Place("a1", "adv"))
	bin, ok := b.BinOf("a1")
	assert.True(t, ok)
	assert.Equal(t, "adv", bin)

	b.Remove("a1")
	_, ok = b.BinOf("a1")
	assert.False(t, ok)
}

func TestBoard_RejectsUnknownIDs(t *testing.T) {
	b := quiz.NewBoard(quiz.PaymentTerms())

	assert.ErrorIs(t, b.Place("zz", "0"), quiz.ErrUnknownCard)
	assert.ErrorIs(t, b.Place("t1", "90"), quiz.ErrUnknownBin)
}

func TestGrade_Advantages(t *testing.T) {
	res, err := quiz.Grade(quiz.AdvantagesDisadvantages(), map[string]string{
		"a1": "adv", "a2": "adv", "a3": "dis",
		"d1": "dis", "d2": "dis", "d3": "dis",
	})
	require.NoError(t, err)

	assert.False(t, res.Passed)
	assert.Equal(t, 5, res.Correct)
	assert.Equal(t, []string{"a3"}, res.Wrong)
}

func TestFindSort(t *testing.T) {
	ex, ok := quiz.FindSort("advantages")
	require.True(t, ok)
	assert.Len(t, ex.Cards, 6)

	_, ok = quiz.FindSort("missing")
	assert.False(t, ok)
}

func TestSentence_FillClearCheck(t *testing.T) {
	ex := &quiz.FillExercise{
		ID:    "purpose",
		Slots: []string{"predict", "shortages"},
		Bank:  []string{"predict", "shortages", "profit"},
	}
	s := quiz.NewSentence(ex)

	// Words go into the first empty slot
	i, err := s.Fill("profit")
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	i, err = s.Fill("Shortages")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = s.Fill("predict")
	assert.ErrorIs(t, err, quiz.ErrNoEmptySlot)

	res := s.Check()
	assert.False(t, res.Passed)
	assert.Equal(t, []string{"slot-0"}, res.Wrong)

	// Clearing frees the slot for the next word
	word, err := s.Clear(0)
	require.NoError(t, err)
	assert.Equal(t, "profit", word)
	_, err = s.Fill("PREDICT")
	require.NoError(t, err)

	assert.True(t, s.Check().Passed, "comparison ignores case")
	assert.Equal(t, []string{"PREDICT", "Shortages"}, s.Values())

	_, err = s.Clear(5)
	assert.ErrorIs(t, err, quiz.ErrSlotOutOfRange)
}
