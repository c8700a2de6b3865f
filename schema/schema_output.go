package schema

// EnrichedSlotMetric adds presentation data to an AggregatedSlotMetric.
type EnrichedSlotMetric struct {
	Rank int  `json:"rank"`
	Band Band `json:"band"`
	AggregatedSlotMetric
}

// EnrichedStore adds presentation data to a StoreProductivity.
type EnrichedStore struct {
	Rank int  `json:"rank"`
	Band Band `json:"band"`
	StoreProductivity
}

// GetBand returns the productivity band of a value given the low and high thresholds.
// Buckets without staffed hours have no meaningful productivity and get EmptyBand.
func GetBand(productivity, hours, low, high float64) Band {
	switch {
	case hours <= 0:
		return EmptyBand
	case productivity < low:
		return LowBand
	case productivity > high:
		return HighBand
	default:
		return NormalBand
	}
}

// EnrichSlots adds rank and band to slot metrics, keeping their order.
func EnrichSlots(slots []AggregatedSlotMetric, low, high float64) []EnrichedSlotMetric {
	output := make([]EnrichedSlotMetric, len(slots))
	for i, s := range slots {
		output[i] = EnrichedSlotMetric{
			Rank:                 i + 1,
			Band:                 GetBand(s.RevenuePerHour, s.AvgHours, low, high),
			AggregatedSlotMetric: s,
		}
	}
	return output
}

// EnrichStores adds rank and band to store summaries, keeping their order.
func EnrichStores(stores []StoreProductivity, low, high float64) []EnrichedStore {
	output := make([]EnrichedStore, len(stores))
	for i, s := range stores {
		output[i] = EnrichedStore{
			Rank:              i + 1,
			Band:              GetBand(s.AvgMonthlyProductivity, s.TotalHours, low, high),
			StoreProductivity: s,
		}
	}
	return output
}

// SlotReport is the presentation form of the slot productivity table.
type SlotReport struct {
	Summary Summary              `json:"summary"`
	Slots   []EnrichedSlotMetric `json:"slots"`
}
