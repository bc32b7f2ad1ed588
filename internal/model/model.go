package model

import (
	"time"
)

// Model 所有记录共用的主键与时间戳，删除均为物理删除
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
