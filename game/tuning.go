package game

import "time"

const (
	BuzzWindow   = 15 * time.Second // eligibility window, always runs to completion
	AnswerWindow = 10 * time.Second // winner's exclusive answer window

	CorrectPoints = 10
	WrongPoints   = -10
	TimeoutPoints = -20
)
