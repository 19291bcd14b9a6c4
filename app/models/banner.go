package models

import "time"

type Banner struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255" json:"title"`
	TitleAr       string    `gorm:"size:255" json:"title_ar"`
	Subtitle      string    `gorm:"size:255" json:"subtitle"`
	SubtitleAr    string    `gorm:"size:255" json:"subtitle_ar"`
	ButtonText    string    `gorm:"size:100" json:"button_text"`
	ButtonTextAr  string    `gorm:"size:100" json:"button_text_ar"`
	ButtonLink    string    `gorm:"size:512" json:"button_link"`
	ButtonText2   string    `gorm:"column:button_text_2;size:100" json:"button_text_2"`
	ButtonText2Ar string    `gorm:"column:button_text_2_ar;size:100" json:"button_text_2_ar"`
	ButtonLink2   string    `gorm:"column:button_link_2;size:512" json:"button_link_2"`
	ImageDesktop  string    `gorm:"size:512" json:"image_desktop"`
	ImageTablet   string    `gorm:"size:512" json:"image_tablet"`
	ImageMobile   string    `gorm:"size:512" json:"image_mobile"`
	DisplayOrder  int       `gorm:"not null;default:0" json:"display_order"`
	Enabled       bool      `gorm:"not null" json:"enabled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
