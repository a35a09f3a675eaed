package domain

import "fmt"

// ServiceType is an ordering channel with its own schedule and restriction scope
type ServiceType string

const (
	ServiceTypeCollection    ServiceType = "collection"
	ServiceTypeDelivery      ServiceType = "delivery"
	ServiceTypeTableOrdering ServiceType = "tableOrdering"
)

// AllServiceTypes lists every concrete service type
var AllServiceTypes = []ServiceType{
	ServiceTypeCollection,
	ServiceTypeDelivery,
	ServiceTypeTableOrdering,
}

// IsValid returns true for a known service type
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceTypeCollection, ServiceTypeDelivery, ServiceTypeTableOrdering:
		return true
	default:
		return false
	}
}

// ParseServiceType converts a raw string into a ServiceType
func ParseServiceType(raw string) (ServiceType, error) {
	s := ServiceType(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown service type %q", raw)
	}
	return s, nil
}
