package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bank serves an ordered, finite sequence of questions. It is consumed by a
// single reader (the coordinator) and is not safe for concurrent use.
type Bank struct {
	questions []Question
	next      int
}

type bankFile struct {
	Questions []struct {
		Text    string   `yaml:"text"`
		Options []string `yaml:"options"`
		Correct string   `yaml:"correct"`
	} `yaml:"questions"`
}

// LoadBank reads a question file. Callers fall back to DefaultBank when it
// fails; a bad bank file never takes the server down.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file: %w", err)
	}

	var bf bankFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse question file: %w", err)
	}
	if len(bf.Questions) == 0 {
		return nil, fmt.Errorf("question file %s has no questions", path)
	}

	b := &Bank{}
	for i, qs := range bf.Questions {
		if len(qs.Options) != 4 {
			return nil, fmt.Errorf("question %d has %d options, want 4", i+1, len(qs.Options))
		}
		if !ValidOption(qs.Correct) {
			return nil, fmt.Errorf("question %d has correct option %q, want A-D", i+1, qs.Correct)
		}
		q := Question{
			Ordinal: i + 1,
			Text:    qs.Text,
			Correct: Option(qs.Correct),
		}
		copy(q.Options[:], qs.Options)
		b.questions = append(b.questions, q)
	}
	return b, nil
}

// DefaultBank is the built-in single-question fallback.
func DefaultBank() *Bank {
	return &Bank{
		questions: []Question{{
			Ordinal: 1,
			Text:    "Who holds the single-game points record?",
			Options: [4]string{"Michael Jordan", "Kobe Bryant", "Wilt Chamberlain", "LeBron James"},
			Correct: OptionC,
		}},
	}
}

// Next pops the next question in sequence, false once exhausted.
func (b *Bank) Next() (Question, bool) {
	if b.next >= len(b.questions) {
		return Question{}, false
	}
	q := b.questions[b.next]
	b.next++
	return q, true
}

// ByOrdinal looks a question up without consuming it.
func (b *Bank) ByOrdinal(ordinal int) (Question, bool) {
	if ordinal < 1 || ordinal > len(b.questions) {
		return Question{}, false
	}
	return b.questions[ordinal-1], true
}

// Remaining reports how many questions have not been served yet.
func (b *Bank) Remaining() int {
	return len(b.questions) - b.next
}
