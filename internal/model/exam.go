package model

import "time"

type Exam struct {
	Document
	Name      string    `json:"name" gorm:"size:255;not null"`
	Date      time.Time `json:"date" gorm:"index"`
	Address   string    `json:"address,omitempty" gorm:"size:512"`
	UserID    string    `json:"userId" gorm:"size:36;index"`
	ProductID string    `json:"productId,omitempty" gorm:"size:64"`
}
