package model

import (
	"time"

	"gorm.io/gorm"
)

// UserDetails 报名时的用户姓名快照，之后用户改名不影响
type UserDetails struct {
	Name    string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Surname string `gorm:"type:varchar(100);not null" json:"surname" validate:"required"`
}

type EventRegistration struct {
	Model
	EventID          uint        `gorm:"not null;uniqueIndex:idx_event_user" json:"eventId" validate:"required"`
	UserID           uint        `gorm:"not null;uniqueIndex:idx_event_user;index" json:"userId" validate:"required"`
	RegistrationDate time.Time   `gorm:"not null" json:"registrationDate"`
	UserDetails      UserDetails `gorm:"embedded;embeddedPrefix:user_" json:"userDetails"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty" validate:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty" validate:"-"`
}

func (EventRegistration) TableName() string {
	return "event_registration"
}

func (r *EventRegistration) Validate() error {
	trimAll(&r.UserDetails.Name, &r.UserDetails.Surname)
	if r.RegistrationDate.IsZero() {
		r.RegistrationDate = time.Now()
	}
	return validateStruct(r)
}

func (r *EventRegistration) BeforeSave(*gorm.DB) error {
	return r.Validate()
}
