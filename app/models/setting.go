package models

import "time"

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value     *string   `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingLogo = "logo"
