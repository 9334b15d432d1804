package model

import "time"

// GameRecord is the persisted summary of a completed session. The stats
// aggregator folds records incrementally and replays them on recalculation.
type GameRecord struct {
	SessionID        SessionID
	UserID           UserID
	PlaylistID       PlaylistID
	Mode             GameMode
	TotalRounds      int
	Score            int
	MaxPossibleScore int
	Won              bool
	CompletedAt      time.Time
}
