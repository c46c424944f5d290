// Package catalog exposes the laboratory's DNA test service catalog to the
// portal: the list customers browse before booking and the per-service detail
// the booking flow links to. It is a thin, read-only proxy over the lab API.
package catalog

// Service is one bookable DNA test.
type Service struct {
	ID               string  `json:"serviceId"`
	Name             string  `json:"serviceName"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	Price            float64 `json:"price"`
	DurationDays     int     `json:"durationDays"`
	CollectionMethod string  `json:"collectionMethod,omitempty"`
	Active           bool    `json:"isActive"`
}
