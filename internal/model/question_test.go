package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionStateNext(t *testing.T) {
	t.Parallel()

	t.Run("cycles in fixed order", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, StateUnknown, StateBlank.Next())
		assert.Equal(t, StatePositive, StateUnknown.Next())
		assert.Equal(t, StateNegative, StatePositive.Next())
		assert.Equal(t, StateBlank, StateNegative.Next())
	})

	t.Run("four clicks return to start", func(t *testing.T) {
		t.Parallel()
		for _, start := range []QuestionState{StateBlank, StateUnknown, StatePositive, StateNegative} {
			s := start
			for i := 0; i < 4; i++ {
				s = s.Next()
			}
			assert.Equal(t, start, s)
		}
	})

	t.Run("unrecognized state resets to blank", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, StateBlank, QuestionState("bogus").Next())
	})
}

func TestQuestionStateValid(t *testing.T) {
	t.Parallel()
	assert.True(t, StateBlank.Valid())
	assert.True(t, StateNegative.Valid())
	assert.False(t, QuestionState("").Valid())
	assert.False(t, QuestionState("maybe").Valid())
}

func TestNewComponent(t *testing.T) {
	t.Parallel()
	c := NewComponent()
	assert.Len(t, c, QuestionsPerCategory)
	for _, q := range c {
		assert.Equal(t, StateBlank, q.State)
		assert.Empty(t, q.Note)
	}
}

func TestComponentClone(t *testing.T) {
	t.Parallel()
	c := NewComponent()
	c[0].State = StatePositive
	c[0].Note = "budget confirmed"

	clone := c.Clone()
	clone[0].State = StateNegative
	clone[0].Note = "changed"

	assert.Equal(t, StatePositive, c[0].State)
	assert.Equal(t, "budget confirmed", c[0].Note)
}
