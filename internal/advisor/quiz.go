package advisor

import "fmt"

// ErrAnswerCount reports an answer set that does not cover the quiz.
type ErrAnswerCount struct {
	Got  int
	Want int
}

func (e ErrAnswerCount) Error() string {
	return fmt.Sprintf("expected %d answers, got %d", e.Want, e.Got)
}

// Grade maps selected option indexes to per-question correctness. The
// submission must answer every question; out-of-range selections count
// as wrong rather than failing the whole submission.
func Grade(selected []int) ([]bool, error) {
	if len(selected) != len(quizQuestions) {
		return nil, ErrAnswerCount{Got: len(selected), Want: len(quizQuestions)}
	}
	correct := make([]bool, len(selected))
	for i, choice := range selected {
		correct[i] = choice == quizQuestions[i].Correct
	}
	return correct, nil
}

// ScoreKnowledge buckets a correctness vector into a knowledge level.
// An empty vector grades as Novice.
func ScoreKnowledge(correct []bool) KnowledgeLevel {
	if len(correct) == 0 {
		return Novice
	}
	n := 0
	for _, ok := range correct {
		if ok {
			n++
		}
	}
	switch {
	case n <= 2:
		return Novice
	case n <= 4:
		return Beginner
	case n <= 6:
		return Intermediate
	default:
		return Professional
	}
}
