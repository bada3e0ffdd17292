package models

import (
	"time"

	"gorm.io/datatypes"
)

// Visitor is an anonymous, IP-keyed visit counter. Location and UserAgent are
// snapshotted on first sight and never updated again; repeat visits only
// increment ViewCount and refresh LastVisited.
type Visitor struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	IP          string         `gorm:"size:45;uniqueIndex;not null" json:"ip"`
	Location    datatypes.JSON `json:"location"`
	UserAgent   string         `gorm:"type:text" json:"user_agent"`
	ViewCount   uint           `gorm:"not null;default:1" json:"view_count"`
	LastVisited time.Time      `gorm:"autoUpdateTime" json:"last_visited"`
}
