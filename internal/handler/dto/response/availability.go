package response

import (
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotInstanceResponse struct {
	TemplateID     uuid.UUID `json:"templateId"`
	Date           string    `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Capacity       int       `json:"capacity"`
	AvailableCount int       `json:"availableCount"`
	IsFull         bool      `json:"isFull"`
}

func FromSlotInstances(views []*queries.SlotInstanceView) []*SlotInstanceResponse {
	out := make([]*SlotInstanceResponse, len(views))
	for i, v := range views {
		out[i] = &SlotInstanceResponse{
			TemplateID:     v.TemplateID,
			Date:           v.Date,
			StartTime:      v.StartTime,
			EndTime:        v.EndTime,
			Capacity:       v.Capacity,
			AvailableCount: v.AvailableCount,
			IsFull:         v.IsFull,
		}
	}
	return out
}
