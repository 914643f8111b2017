package game

import "testing"

func testQuestion() Question {
	return Question{
		Ordinal: 4,
		Text:    "Largest planet?",
		Options: [4]string{"Mars", "Jupiter", "Venus", "Saturn"},
		Correct: OptionB,
	}
}

func TestRoundScoreCorrect(t *testing.T) {
	r := NewRound(testQuestion(), []int{1, 2})
	out, delta := r.Score(4, "B")
	if out != OutcomeCorrect || delta != CorrectPoints {
		t.Fatalf("score = (%v, %d), want (correct, %d)", out, delta, CorrectPoints)
	}
}

func TestRoundScoreWrongOption(t *testing.T) {
	r := NewRound(testQuestion(), []int{1})
	out, delta := r.Score(4, "A")
	if out != OutcomeWrong || delta != WrongPoints {
		t.Fatalf("score = (%v, %d), want (wrong, %d)", out, delta, WrongPoints)
	}
}

func TestRoundScoreStaleOrdinalIsWrong(t *testing.T) {
	// A submission for an earlier question scores as wrong even when the
	// option would have been right for the live question.
	r := NewRound(testQuestion(), []int{1})
	out, delta := r.Score(3, "B")
	if out != OutcomeWrong || delta != WrongPoints {
		t.Fatalf("stale ordinal score = (%v, %d), want (wrong, %d)", out, delta, WrongPoints)
	}
}

func TestRoundScoreInvalidOptionIsWrong(t *testing.T) {
	r := NewRound(testQuestion(), []int{1})
	if out, _ := r.Score(4, "Q"); out != OutcomeWrong {
		t.Fatalf("invalid option outcome = %v, want wrong", out)
	}
}

func TestRoundEligibility(t *testing.T) {
	r := NewRound(testQuestion(), []int{1, 3})
	if !r.IsEligible(1) || !r.IsEligible(3) {
		t.Fatalf("players registered at broadcast should be eligible")
	}
	if r.IsEligible(2) {
		t.Fatalf("player 2 joined mid-round, should not be eligible")
	}
}

func TestValidOption(t *testing.T) {
	for _, s := range []string{"A", "B", "C", "D"} {
		if !ValidOption(s) {
			t.Fatalf("ValidOption(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "a", "E", "AB"} {
		if ValidOption(s) {
			t.Fatalf("ValidOption(%q) = true, want false", s)
		}
	}
}
