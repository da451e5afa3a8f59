// models/board_game.go
package models

import "time"

const GameTable = "bg_games"

type BoardGame struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Barcode     string    `gorm:"size:32;index" json:"barcode,omitempty"` // 扫描用数字编号，可空
	Category    string    `gorm:"size:100" json:"category"`
	Description string    `gorm:"size:1000" json:"description"`
	ImageURL    string    `gorm:"size:500" json:"imageUrl"`
	IsPopular   bool      `gorm:"not null;default:false" json:"isPopular"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// cart flag, lives in memory only — ledger never sees it
	Selected bool `gorm:"-" json:"selected"`
}

func (BoardGame) TableName() string { return GameTable }
