package dto

import "time"

type SlotListDTO struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DisplayTime string    `json:"display_time"`
}
