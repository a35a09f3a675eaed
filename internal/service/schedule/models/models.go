package models

import (
	"errors"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/domain"
)

// SnapshotResponse снимок конфигурации филиала с результатом валидации
type SnapshotResponse struct {
	BranchID     int64                    `json:"branchId"`
	Valid        bool                     `json:"valid"`
	Error        string                   `json:"error,omitempty"`
	Weekly       domain.WeeklySchedule    `json:"weeklySchedule"`
	ClosedDates  domain.ClosedDates       `json:"closedDates"`
	Restrictions domain.RestrictionConfig `json:"restrictionConfig"`
}

// FromDomainSnapshot конвертирует доменный снимок в ответ
// Для некорректной конфигурации в Error попадает только код ConfigurationInvalid
func FromDomainSnapshot(snapshot *domain.ScheduleSnapshot, validationErr error) *SnapshotResponse {
	resp := &SnapshotResponse{
		BranchID:     snapshot.BranchID,
		Valid:        validationErr == nil,
		Weekly:       snapshot.Weekly,
		ClosedDates:  snapshot.ClosedDates,
		Restrictions: snapshot.Restrictions,
	}

	if validationErr != nil {
		if errors.Is(validationErr, domain.ErrConfigurationInvalid) {
			resp.Error = domain.ErrConfigurationInvalid.Error()
		} else {
			resp.Error = validationErr.Error()
		}
	}

	if resp.ClosedDates == nil {
		resp.ClosedDates = domain.ClosedDates{}
	}

	return resp
}
