package models

import "time"

// Relationship status values for the directed initiator -> receiver edge.
// MATCH is pair-symmetric: both rows of a matched pair carry it.
const (
	StatusLiked    = "LIKED"
	StatusDisliked = "DISLIKED"
	StatusMatch    = "MATCH"
)

// Relationship is a directed swipe edge between two profiles. At most one
// row exists per ordered pair; a match is created by promoting two mutual
// LIKED rows, never by inserting a new one.
type Relationship struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	InitiatorID uint      `json:"initiator_id" gorm:"uniqueIndex:idx_relationship_pair;index"`
	ReceiverID  uint      `json:"receiver_id" gorm:"uniqueIndex:idx_relationship_pair;index"`
	Status      string    `json:"status" gorm:"type:varchar(10)"`
	CreatedAt   time.Time `json:"created_at"`
}

// MatchSummary is the projection returned when listing a user's matches.
type MatchSummary struct {
	ID             uint   `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfilePicture string `json:"profile_picture"`
	Age            int    `json:"age"`
	FameRating     int    `json:"fame_rating"`
	Gender         string `json:"gender"`
}
