package tracking

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/helixlab/portal/internal/domain/order"
	"github.com/helixlab/portal/internal/platform/cache"
)

// Fixed per-status progress contributions. These are design constants tuned
// against the order-level base progress table in the order package; the final
// value takes the most advanced of all signals because the order's own status
// field often lags physical reality (a delivered kit can sit on
// status=confirmed for days).
var kitProgress = map[string]float64{
	"ordered":   25,
	"preparing": 30,
	"shipped":   45,
	"delivered": 55,
	"ready":     50,
	"expired":   0,
}

var sampleProgress = map[string]float64{
	"pending":   10,
	"collected": 60,
	"shipped":   70,
	"received":  75,
	"analyzing": 85,
	"completed": 95,
	"failed":    0,
}

const resultsBonusMax = 10

// Calculator computes order progress with an injectable TTL cache. The cache
// is a throughput optimisation only; correctness never depends on it, and the
// key embeds the order ID so one order's progress can never be served for
// another.
type Calculator struct {
	store cache.Store
	ttl   time.Duration
}

func NewCalculator(store cache.Store, ttl time.Duration) *Calculator {
	if store == nil {
		store = cache.NewNoOpStore()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Calculator{store: store, ttl: ttl}
}

// Progress returns the order's overall progress as an integer in [0, 100].
// It never fails: any panic inside the detailed computation degrades to the
// pure status-table value.
func (c *Calculator) Progress(agg *order.Aggregate) (progress int) {
	if agg == nil {
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			progress = order.OrderStatusInfo(agg.Order.Status).BaseProgress
		}
	}()

	key := cacheKey(agg)
	if data, ok := c.store.Get(key); ok {
		if cached, err := strconv.Atoi(string(data)); err == nil {
			return cached
		}
	}

	progress = compute(agg)
	c.store.Set(key, []byte(strconv.Itoa(progress)), c.ttl)
	return progress
}

func compute(agg *order.Aggregate) int {
	base := float64(order.OrderStatusInfo(agg.Order.Status).BaseProgress)
	kit := meanProgress(kitStatuses(agg.SampleKits), kitProgress)
	sample := meanProgress(sampleStatuses(agg.Samples), sampleProgress)
	appointment := appointmentProgress(agg.Appointment)

	final := math.Max(math.Max(base, kit), math.Max(sample, appointment))
	final = clamp(final)

	// Results bonus: partial results nudge the bar toward done without ever
	// lowering it.
	if len(agg.TestResults) > 0 && len(agg.Samples) > 0 {
		ratio := float64(len(agg.TestResults)) / float64(len(agg.Samples))
		final = clamp(final + ratio*resultsBonusMax)
	}

	return int(math.Round(final))
}

func kitStatuses(kits []order.SampleKit) []string {
	statuses := make([]string, len(kits))
	for i, k := range kits {
		statuses[i] = k.Status
	}
	return statuses
}

func sampleStatuses(samples []order.Sample) []string {
	statuses := make([]string, len(samples))
	for i, s := range samples {
		statuses[i] = s.Status
	}
	return statuses
}

func meanProgress(statuses []string, table map[string]float64) float64 {
	if len(statuses) == 0 {
		return 0
	}
	var sum float64
	for _, status := range statuses {
		sum += table[status] // unknown statuses contribute 0
	}
	return sum / float64(len(statuses))
}

func appointmentProgress(appt *order.Appointment) float64 {
	if appt == nil {
		return 0
	}
	switch {
	case appt.Status.Confirmed():
		return 40
	case appt.Status == order.AppointmentCompleted:
		return 70
	default:
		return 20
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func cacheKey(agg *order.Aggregate) string {
	return fmt.Sprintf("progress:%s:%s:%d:%d:%t",
		agg.Order.ID,
		agg.Order.Status,
		len(agg.SampleKits),
		len(agg.Samples),
		agg.Appointment != nil,
	)
}
