package models

import "time"

// QuizSession tracks one client's recommendation requests so that a late
// response for superseded answers can be recognised.
type QuizSession struct {
	ID              string    `json:"id"`
	State           string    `json:"state"`
	LatestRequestID string    `json:"latestRequestId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
	LastActivity    time.Time `json:"lastActivity"`
}

// IsExpired checks if session has expired
func (s *QuizSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// UpdateActivity records activity and pushes the expiry out by ttl.
func (s *QuizSession) UpdateActivity(ttl time.Duration) {
	s.LastActivity = time.Now()
	s.ExpiresAt = s.LastActivity.Add(ttl)
}
