package game

// Option designates one of a question's four answers.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

// ValidOption reports whether s names one of the four answer slots.
func ValidOption(s string) bool {
	switch Option(s) {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Question is immutable once loaded. Ordinal is 1-based and stable for the
// whole run.
type Question struct {
	Ordinal int
	Text    string
	Options [4]string // indexed A..D
	Correct Option
}

// IsCorrect checks a submitted option against this question. Anything that is
// not exactly the correct designator counts as wrong.
func (q Question) IsCorrect(option string) bool {
	return ValidOption(option) && Option(option) == q.Correct
}
