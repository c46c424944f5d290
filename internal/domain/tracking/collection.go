// Package tracking derives an order's user-facing fulfilment state: a single
// 0-100 progress value and the step-by-step tracking timeline. Both are pure
// over the order aggregate; the only state is the calculator's optional
// progress cache.
package tracking

import (
	"strings"

	"github.com/helixlab/portal/internal/domain/order"
)

const (
	CollectionHome     = "home"
	CollectionFacility = "facility"
)

// CollectionMethod resolves how the order's samples are gathered. The fallback
// chain is fixed: the first order detail's explicit collection method wins,
// then the presence of an appointment implies facility collection, then home.
// This is the single place that logic lives; nothing else re-derives it.
func CollectionMethod(agg *order.Aggregate) string {
	if agg == nil {
		return CollectionHome
	}
	if len(agg.Details) > 0 {
		switch strings.ToLower(agg.Details[0].CollectionMethod) {
		case CollectionHome:
			return CollectionHome
		case CollectionFacility:
			return CollectionFacility
		}
	}
	if agg.Appointment != nil {
		return CollectionFacility
	}
	return CollectionHome
}
