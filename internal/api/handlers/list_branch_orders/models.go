package list_branch_orders

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/EarneyGit/restaurent-kockraco-sub000/internal/service/orders/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(branchID int64, query url.Values) (*models.ListOrdersRequest, error) {
	req := &models.ListOrdersRequest{BranchID: branchID}

	if serviceType := query.Get("serviceType"); serviceType != "" {
		req.ServiceType = &serviceType
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	var err error
	if req.From, err = parseInstant(query.Get("from")); err != nil {
		return nil, fmt.Errorf("invalid from value: %w", err)
	}
	if req.To, err = parseInstant(query.Get("to")); err != nil {
		return nil, fmt.Errorf("invalid to value: %w", err)
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid limit value %q", limitStr)
		}
		req.Limit = limit
	}

	return req, nil
}

func parseInstant(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
