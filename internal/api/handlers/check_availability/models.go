package check_availability

import (
	"time"

	checkAvailability "github.com/EarneyGit/restaurent-kockraco-sub000/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BranchID             int64      `json:"branchId"`
	ServiceType          string     `json:"serviceType"`
	EvaluatedAt          time.Time  `json:"evaluatedAt"`
	Available            bool       `json:"available"`
	Reason               string     `json:"reason"`
	NextAvailableInstant *time.Time `json:"nextAvailableInstant"`
	DisplayedReadyTime   string     `json:"displayedReadyTime,omitempty"`
	ReadyAt              *time.Time `json:"readyAt,omitempty"`
	Degraded             bool       `json:"degraded,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		BranchID:             resp.BranchID,
		ServiceType:          string(resp.ServiceType),
		EvaluatedAt:          resp.EvaluatedAt,
		Available:            resp.Available,
		Reason:               string(resp.Reason),
		NextAvailableInstant: resp.NextAvailableInstant,
		DisplayedReadyTime:   resp.DisplayedReadyTime.String(),
		ReadyAt:              resp.ReadyAt,
		Degraded:             resp.Degraded,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// at - необязательный момент проверки в RFC3339
func ToUseCaseRequest(branchID int64, serviceType, at string) (*checkAvailability.Request, error) {
	req := &checkAvailability.Request{
		BranchID:    branchID,
		ServiceType: serviceType,
	}

	if at != "" {
		instant, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, err
		}
		req.RequestedInstant = &instant
	}

	return req, nil
}

