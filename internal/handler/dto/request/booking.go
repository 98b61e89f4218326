package request

import (
	"strings"
	"time"

	"booking-engine/internal/usecase/commands"
)

type CreateBookingRequest struct {
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerEmail string    `json:"customer_email" binding:"required"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	BusinessName  string    `json:"business_name,omitempty"`
	BusinessType  string    `json:"business_type,omitempty"`
	BusinessNotes string    `json:"business_notes,omitempty"`
	BookedAt      time.Time `json:"booked_at" binding:"required"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		CustomerName:  strings.TrimSpace(r.CustomerName),
		CustomerEmail: strings.TrimSpace(r.CustomerEmail),
		CustomerPhone: strings.TrimSpace(r.CustomerPhone),
		BusinessName:  strings.TrimSpace(r.BusinessName),
		BusinessType:  strings.TrimSpace(r.BusinessType),
		BusinessNotes: strings.TrimSpace(r.BusinessNotes),
		BookedAt:      r.BookedAt,
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
