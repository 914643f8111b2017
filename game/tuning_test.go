package game

import "testing"

func TestTuningSanity(t *testing.T) {
	if BuzzWindow <= 0 || AnswerWindow <= 0 {
		t.Fatalf("windows must be > 0")
	}
	if CorrectPoints <= 0 {
		t.Fatalf("CorrectPoints = %d, want > 0", CorrectPoints)
	}
	if WrongPoints >= 0 || TimeoutPoints >= 0 {
		t.Fatalf("penalties must be negative: wrong=%d timeout=%d", WrongPoints, TimeoutPoints)
	}
	if TimeoutPoints >= WrongPoints {
		t.Fatalf("timing out should cost more than answering wrong")
	}
}
