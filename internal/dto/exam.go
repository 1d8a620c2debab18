package dto

import "time"

type ExamRequest struct {
	Name      string     `json:"name" validate:"required"`
	Date      *time.Time `json:"date"`
	Address   string     `json:"address"`
	ProductID string     `json:"productId"`
}
