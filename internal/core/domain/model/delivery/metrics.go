package delivery

// Metrics summarizes the dispatch board. It is always derived from the current
// assignments and persons, never maintained incrementally.
type Metrics struct {
	TotalDeliveries       int     `json:"totalDeliveries"`
	CompletedDeliveries   int     `json:"completedDeliveries"`
	AverageDeliveryTime   int     `json:"averageDeliveryTime"`
	OnTimeDeliveryRate    float64 `json:"onTimeDeliveryRate"`
	ActiveDeliveryPersons int     `json:"activeDeliveryPersons"`
	PendingDeliveries     int     `json:"pendingDeliveries"`
}
