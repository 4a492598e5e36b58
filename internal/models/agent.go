package models

import "time"

// AiAgent is a voice-agent assistant configured on the external vendor and
// mirrored locally per user.
type AiAgent struct {
	ID                string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID            string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	VendorAssistantID string    `gorm:"column:vendor_assistant_id;type:text" json:"vendor_assistant_id"`
	Name              string    `gorm:"column:name;type:text" json:"name"`
	Provider          string    `gorm:"column:provider;type:text" json:"provider"` // "openai"
	Model             string    `gorm:"column:model;type:text" json:"model"`       // "gpt-4o"
	Prompt            string    `gorm:"column:prompt;type:text" json:"prompt"`
	FirstMessage      string    `gorm:"column:first_message;type:text" json:"first_message"`
	CreatedAt         time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (AiAgent) TableName() string { return "ai_agents" }
