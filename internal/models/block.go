package models

import "time"

// Block is a unilateral exclusion edge. Its existence hides the pair from
// candidate results in both directions and dissolves any existing match.
type Block struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlockerID uint      `json:"blocker_id" gorm:"uniqueIndex:idx_block_pair;index"`
	BlockedID uint      `json:"blocked_id" gorm:"uniqueIndex:idx_block_pair;index"`
	CreatedAt time.Time `json:"created_at"`
}

// Report records a user reporting another as a fake account.
type Report struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReporterID uint      `json:"reporter_id" gorm:"uniqueIndex:idx_report_pair;index"`
	ReportedID uint      `json:"reported_id" gorm:"uniqueIndex:idx_report_pair"`
	CreatedAt  time.Time `json:"created_at"`
}

// Visit records a profile view, shown in the visit history.
type Visit struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VisitorID uint      `json:"visitor_id" gorm:"index"`
	VisitedID uint      `json:"visited_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is the projection returned by the likes/visits history.
type HistoryEntry struct {
	ID             uint      `json:"id"`
	SenderID       uint      `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
}
