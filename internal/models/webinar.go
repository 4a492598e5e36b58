package models

import "time"

type Webinar struct {
	ID                       string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title                    string    `gorm:"column:title;type:text" json:"title"`
	Description              string    `gorm:"column:description;type:text" json:"description,omitempty"`
	StartTime                time.Time `gorm:"column:start_time;type:timestamptz" json:"start_time"`
	PresenterID              string    `gorm:"column:presenter_id;type:uuid;index" json:"presenter_id"`
	Presenter                *User     `gorm:"foreignKey:PresenterID" json:"presenter,omitempty"`
	TranscriptLanguage       string    `gorm:"column:transcript_language;type:text" json:"transcript_language,omitempty"`
	LiveTranscriptionEnabled bool      `gorm:"column:live_transcription_enabled" json:"live_transcription_enabled"`
	RecordingURL             *string   `gorm:"column:recording_url;type:text" json:"recording_url,omitempty"`
	CreatedAt                time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt                time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Webinar) TableName() string { return "webinars" }

// Attendance joins an attendee identity to a webinar with watch metrics.
type Attendance struct {
	ID                   string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	WebinarID            string     `gorm:"column:webinar_id;type:uuid;index" json:"webinar_id"`
	UserID               string     `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	User                 *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinedAt             time.Time  `gorm:"column:joined_at;type:timestamptz" json:"joined_at"`
	LeftAt               *time.Time `gorm:"column:left_at;type:timestamptz" json:"left_at,omitempty"`
	WatchDurationSeconds int64      `gorm:"column:watch_duration_seconds" json:"watch_duration_seconds"`
}

func (Attendance) TableName() string { return "attendances" }
