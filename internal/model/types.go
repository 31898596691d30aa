// Package model defines shared data structures.
package model

import "time"

// Config defines play settings.
type Config struct {
	DBPath    string
	Shape     int
	Puzzle    string
	Mouse     bool
	Radius    float64
	Tolerance float64
	LogPath   string
}

// Completion records when a puzzle was first solved.
type Completion struct {
	PuzzleID     string
	Sides        int
	PuzzleNumber int
	CompletedAt  time.Time
}

// ShapeProgress summarizes one shape for reporting.
type ShapeProgress struct {
	Sides     int
	Name      string
	Completed int
	Total     int
	Unlocked  bool
}
