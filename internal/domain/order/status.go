package order

// The status taxonomy maps the raw status strings the lab API emits to
// display metadata. Every lookup is total: an unrecognised status falls back
// to the pending entry instead of failing, because backend deployments have
// introduced new states ahead of the portal before.

// StatusInfo describes a kit or sample status for display.
type StatusInfo struct {
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// OrderStatus adds the base progress floor contributed purely by the
// order-level status field.
type OrderStatus struct {
	Label        string `json:"label"`
	Color        string `json:"color"`
	Description  string `json:"description"`
	BaseProgress int    `json:"baseProgress"`
}

var orderStatuses = map[string]OrderStatus{
	"pending":          {Label: "Pending", Color: "orange", Description: "Order placed, awaiting confirmation", BaseProgress: 10},
	"confirmed":        {Label: "Confirmed", Color: "blue", Description: "Order confirmed by the laboratory", BaseProgress: 25},
	"kit_preparing":    {Label: "Preparing kit", Color: "cyan", Description: "Sample collection kit is being prepared", BaseProgress: 35},
	"kit_sent":         {Label: "Kit sent", Color: "geekblue", Description: "Collection kit shipped to the customer", BaseProgress: 50},
	"sample_collected": {Label: "Sample collected", Color: "purple", Description: "Sample has been collected", BaseProgress: 65},
	"sample_received":  {Label: "Sample received", Color: "blue", Description: "Sample received at the laboratory", BaseProgress: 75},
	"processing":       {Label: "Analyzing", Color: "gold", Description: "Laboratory analysis in progress", BaseProgress: 85},
	"completed":        {Label: "Completed", Color: "green", Description: "Results are ready", BaseProgress: 100},
	"cancelled":        {Label: "Cancelled", Color: "red", Description: "Order was cancelled", BaseProgress: 0},
}

var kitStatuses = map[string]StatusInfo{
	"ordered":   {Label: "Ordered", Color: "orange", Description: "Kit requested"},
	"preparing": {Label: "Preparing", Color: "cyan", Description: "Kit is being assembled"},
	"shipped":   {Label: "Shipped", Color: "geekblue", Description: "Kit is on its way"},
	"delivered": {Label: "Delivered", Color: "green", Description: "Kit delivered to the shipping address"},
	"ready":     {Label: "Ready", Color: "blue", Description: "Kit ready for collection"},
	"expired":   {Label: "Expired", Color: "red", Description: "Kit expired unused"},
}

var sampleStatuses = map[string]StatusInfo{
	"pending":   {Label: "Pending", Color: "orange", Description: "Awaiting collection"},
	"collected": {Label: "Collected", Color: "purple", Description: "Sample collected"},
	"shipped":   {Label: "Shipped", Color: "geekblue", Description: "Sample in transit to the laboratory"},
	"received":  {Label: "Received", Color: "blue", Description: "Sample received at the laboratory"},
	"analyzing": {Label: "Analyzing", Color: "gold", Description: "Analysis in progress"},
	"completed": {Label: "Completed", Color: "green", Description: "Analysis finished"},
	"failed":    {Label: "Failed", Color: "red", Description: "Sample unusable, recollection required"},
}

// OrderStatusInfo returns display metadata and the base progress for an order
// status. Unknown statuses map to the pending entry.
func OrderStatusInfo(status string) OrderStatus {
	if info, ok := orderStatuses[status]; ok {
		return info
	}
	return orderStatuses["pending"]
}

// KitStatusInfo returns display metadata for a kit status, defaulting to the
// ordered entry for unknown values.
func KitStatusInfo(status string) StatusInfo {
	if info, ok := kitStatuses[status]; ok {
		return info
	}
	return kitStatuses["ordered"]
}

// SampleStatusInfo returns display metadata for a sample status, defaulting
// to the pending entry for unknown values.
func SampleStatusInfo(status string) StatusInfo {
	if info, ok := sampleStatuses[status]; ok {
		return info
	}
	return sampleStatuses["pending"]
}

// StatusTables bundles all three taxonomies for the admin UI, which renders
// status pickers and legends from them.
func StatusTables() map[string]interface{} {
	return map[string]interface{}{
		"order":  orderStatuses,
		"kit":    kitStatuses,
		"sample": sampleStatuses,
	}
}
