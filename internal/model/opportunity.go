package model

import (
	"strings"

	"gorm.io/gorm"
)

type Category string

const (
	CategoryBursary    Category = "Bursary"
	CategoryInService  Category = "In-Service"
	CategoryJobs       Category = "Jobs"
	CategoryHeckathons Category = "Heckathons"
)

var Categories = []string{
	string(CategoryBursary),
	string(CategoryInService),
	string(CategoryJobs),
	string(CategoryHeckathons),
}

type WorkLocation string

const (
	WorkLocationOnSite WorkLocation = "On-site"
	WorkLocationRemote WorkLocation = "Remote"
	WorkLocationHybrid WorkLocation = "Hybrid"
	WorkLocationNA     WorkLocation = "N/A"
)

var WorkLocations = []string{
	string(WorkLocationOnSite),
	string(WorkLocationRemote),
	string(WorkLocationHybrid),
	string(WorkLocationNA),
}

type Opportunity struct {
	Model
	Title        string       `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Organization string       `gorm:"type:varchar(255);not null" json:"organization" validate:"required"`
	Category     Category     `gorm:"type:varchar(32);not null;index" json:"category" validate:"required,oneof=Bursary In-Service Jobs Heckathons"`
	Location     WorkLocation `gorm:"type:varchar(32);not null;index" json:"location" validate:"required,oneof=On-site Remote Hybrid N/A"`
	Commitment   string       `gorm:"type:varchar(255);not null" json:"commitment" validate:"required"`
	Duration     string       `gorm:"type:varchar(255);not null" json:"duration" validate:"required"`
	Description  string       `gorm:"type:text;not null" json:"description" validate:"required"`
	Skills       []string     `gorm:"type:text;serializer:json" json:"skills"`
}

func (o *Opportunity) Validate() error {
	trimAll(&o.Title, &o.Organization, &o.Commitment, &o.Duration, &o.Description)
	o.Category = Category(strings.TrimSpace(string(o.Category)))
	o.Location = WorkLocation(strings.TrimSpace(string(o.Location)))
	if o.Skills == nil {
		o.Skills = []string{}
	}
	return validateStruct(o)
}

func (o *Opportunity) BeforeSave(*gorm.DB) error {
	return o.Validate()
}
