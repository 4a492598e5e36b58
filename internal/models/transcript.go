package models

import (
	"time"

	"gorm.io/datatypes"
)

type TranscriptStatus string

const (
	TranscriptProcessing TranscriptStatus = "PROCESSING"
	TranscriptCompleted  TranscriptStatus = "COMPLETED"
	TranscriptFailed     TranscriptStatus = "FAILED"
)

// WebinarTranscript is the one-per-webinar batch transcription result. Created
// in PROCESSING state when a recording is submitted; filled once by the
// pipeline and read-only afterwards except for status transitions.
type WebinarTranscript struct {
	ID               string           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	WebinarID        string           `gorm:"column:webinar_id;type:uuid;index" json:"webinar_id"`
	Status           TranscriptStatus `gorm:"column:status;type:text" json:"status"`
	VendorID         *string          `gorm:"column:vendor_id;type:text" json:"vendor_id,omitempty"`
	TranscriptText   *string          `gorm:"column:transcript_text;type:text" json:"transcript_text,omitempty"`
	Confidence       *float64         `gorm:"column:confidence" json:"confidence,omitempty"`
	AudioDuration    *int64           `gorm:"column:audio_duration" json:"audio_duration,omitempty"` // seconds, rounded
	ProcessingTimeMS *int64           `gorm:"column:processing_time_ms" json:"processing_time_ms,omitempty"`
	AutoHighlights   datatypes.JSON   `gorm:"column:auto_highlights;type:jsonb" json:"auto_highlights,omitempty"`
	SentimentResults datatypes.JSON   `gorm:"column:sentiment_results;type:jsonb" json:"sentiment_results,omitempty"`

	Segments []TranscriptSegment `gorm:"foreignKey:TranscriptID" json:"segments,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (WebinarTranscript) TableName() string { return "webinar_transcripts" }

// TranscriptSegment is one speaker-attributed utterance span in seconds.
// Speaker, Confidence, and Sentiment are nullable; a stored confidence of 0
// means measured-as-zero, not absent.
type TranscriptSegment struct {
	ID           string   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TranscriptID string   `gorm:"column:transcript_id;type:uuid;index" json:"transcript_id"`
	Text         string   `gorm:"column:text;type:text" json:"text"`
	StartTime    float64  `gorm:"column:start_time" json:"start_time"`
	EndTime      float64  `gorm:"column:end_time" json:"end_time"`
	Speaker      *string  `gorm:"column:speaker;type:text" json:"speaker,omitempty"`
	Confidence   *float64 `gorm:"column:confidence" json:"confidence,omitempty"`
	Sentiment    *float64 `gorm:"column:sentiment" json:"sentiment,omitempty"`
}

func (TranscriptSegment) TableName() string { return "transcript_segments" }

// WebinarInsights is the one-per-webinar derived summary produced right after
// transcription completes.
type WebinarInsights struct {
	ID                    string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	WebinarID             string         `gorm:"column:webinar_id;type:uuid;uniqueIndex" json:"webinar_id"`
	OverallSentiment      float64        `gorm:"column:overall_sentiment" json:"overall_sentiment"`
	QuestionCount         int            `gorm:"column:question_count" json:"question_count"`
	TopKeywords           datatypes.JSON `gorm:"column:top_keywords;type:jsonb" json:"top_keywords,omitempty"`
	EngagementScore       float64        `gorm:"column:engagement_score" json:"engagement_score"`
	AverageConfidence     float64        `gorm:"column:average_confidence" json:"average_confidence"`
	KeyMoments            datatypes.JSON `gorm:"column:key_moments;type:jsonb" json:"key_moments,omitempty"`
	AudienceParticipation float64        `gorm:"column:audience_participation" json:"audience_participation"`
	CreatedAt             time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (WebinarInsights) TableName() string { return "webinar_insights" }
