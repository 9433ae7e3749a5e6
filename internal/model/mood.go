package model

import "time"

const (
	MoodScoreMin = 1
	MoodScoreMax = 5
)

type MoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Score     int       `json:"score"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type MoodSummary struct {
	Count   int        `json:"count"`
	Average float64    `json:"average"`
	Latest  *MoodEntry `json:"latest,omitempty"`
}
