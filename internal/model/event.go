package model

import (
	"time"

	"gorm.io/gorm"
)

// Image 图床返回的引用，PublicID 用于删除
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Event struct {
	Model
	Title       string    `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Image       *Image    `gorm:"type:text;serializer:json" json:"image"`
	Description string    `gorm:"type:text;not null" json:"description" validate:"required"`
	Location    string    `gorm:"type:varchar(255);not null" json:"location" validate:"required"`
	OpeningDate time.Time `gorm:"not null;index" json:"openingDate" validate:"required"`
	ClosingDate time.Time `gorm:"not null" json:"closingDate" validate:"required,gtefield=OpeningDate"`
}

func (e *Event) Validate() error {
	trimAll(&e.Title, &e.Description, &e.Location)
	return validateStruct(e)
}

func (e *Event) BeforeSave(*gorm.DB) error {
	return e.Validate()
}
