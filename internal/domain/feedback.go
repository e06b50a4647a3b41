package domain

import "time"

// Feedback is one user rating of a generated answer. It is appended to
// persistent storage and never read back by the engine.
type Feedback struct {
	Question  string
	Answer    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// Rating bounds for feedback submissions.
const (
	MinRating = 1
	MaxRating = 5
)

// Validate checks the feedback fields a caller must supply.
func (f Feedback) Validate() error {
	if f.Question == "" {
		return ErrInvalidFeedback
	}
	if f.Rating < MinRating || f.Rating > MaxRating {
		return ErrInvalidFeedback
	}
	return nil
}
