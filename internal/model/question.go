package model

// QuestionState is the answer state of a single qualification question.
type QuestionState string

const (
	StateBlank    QuestionState = "blank"
	StateUnknown  QuestionState = "unknown"
	StatePositive QuestionState = "positive"
	StateNegative QuestionState = "negative"
)

// stateCycle is the fixed click-through order. Clicking a question advances
// to the next state and wraps from negative back to blank.
var stateCycle = []QuestionState{StateBlank, StateUnknown, StatePositive, StateNegative}

// Next returns the state that follows s in the answer cycle. Unrecognized
// states reset to blank.
func (s QuestionState) Next() QuestionState {
	for i, st := range stateCycle {
		if st == s {
			return stateCycle[(i+1)%len(stateCycle)]
		}
	}
	return StateBlank
}

// Valid reports whether s is one of the four defined answer states.
func (s QuestionState) Valid() bool {
	for _, st := range stateCycle {
		if st == s {
			return true
		}
	}
	return false
}

// QuestionData is a single answered question: its state plus a free-text note.
type QuestionData struct {
	State QuestionState `json:"state"`
	Note  string        `json:"note"`
}

// QuestionsPerCategory is the fixed number of questions in each FAINT category.
const QuestionsPerCategory = 8

// FAINTComponent is the ordered answer list for one category. Its length is
// always QuestionsPerCategory; position i aligns with question i of the
// active framework's prompt list for the category.
type FAINTComponent []QuestionData

// NewComponent returns a component with every question in the blank state.
func NewComponent() FAINTComponent {
	c := make(FAINTComponent, QuestionsPerCategory)
	for i := range c {
		c[i].State = StateBlank
	}
	return c
}

// Clone returns a deep copy of the component.
func (c FAINTComponent) Clone() FAINTComponent {
	out := make(FAINTComponent, len(c))
	copy(out, c)
	return out
}
