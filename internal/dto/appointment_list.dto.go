package dto

import "time"

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	ClientName       string    `json:"client_name"`
	ClientPhone      string    `json:"client_phone"`
	ServiceName      string    `json:"service_name"`
	ProfessionalName string    `json:"professional_name"`
}
