package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LiveTranscription is one streaming caption turn, stored in Mongo where the
// append-heavy realtime data lives.
type LiveTranscription struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WebinarID string             `bson:"webinar_id" json:"webinar_id"`
	TurnOrder int64              `bson:"turn_order" json:"turn_order"`
	Text      string             `bson:"text" json:"text"`

	IsFormatted         bool     `bson:"is_formatted" json:"is_formatted"`
	EndOfTurn           bool     `bson:"end_of_turn" json:"end_of_turn"`
	EndOfTurnConfidence *float64 `bson:"end_of_turn_confidence,omitempty" json:"end_of_turn_confidence,omitempty"`

	Timestamp float64 `bson:"timestamp" json:"timestamp"` // unix seconds
}
