package game

import "math"

// ApplyActiveEvents multiplies revenue of matching businesses and trend of
// matching stocks by each active event's multiplier, then counts the events
// down. The effect compounds on every turn an event stays active and is never
// reverted. It returns the titles of events that expired.
func ApplyActiveEvents(s GameState) (GameState, []string) {
	if len(s.ActiveEvents) == 0 {
		return s, nil
	}

	var touchBusinesses, touchStocks bool
	for _, ev := range s.ActiveEvents {
		touchBusinesses = touchBusinesses || len(ev.AffectedBusinessTypes) > 0
		touchStocks = touchStocks || len(ev.AffectedStocks) > 0
	}
	if touchBusinesses {
		s = s.withBusinesses()
	}
	if touchStocks {
		s = s.withStocks()
	}

	remaining := make([]EconomicEvent, 0, len(s.ActiveEvents))
	var retired []string
	for _, ev := range s.ActiveEvents {
		for i := range s.Businesses {
			if ev.affectsBusiness(s.Businesses[i].Type) {
				s.Businesses[i].Revenue *= ev.Multiplier
			}
		}
		for i := range s.Stocks {
			if ev.affectsStock(s.Stocks[i].ID) {
				s.Stocks[i].Trend = clamp(s.Stocks[i].Trend*ev.Multiplier, -MaxStockTrend, MaxStockTrend)
			}
		}
		if ev.TurnsLeft > 1 {
			ev.TurnsLeft--
			remaining = append(remaining, ev)
			continue
		}
		retired = append(retired, ev.Title)
	}
	s.ActiveEvents = remaining
	return s, retired
}

// TriggerEvent fires one not-yet-applied catalog event with fixed probability.
// A catalog event fires at most once per game.
func TriggerEvent(s GameState, rnd Source) (GameState, *EconomicEvent) {
	if rnd.Float64() >= EventTriggerChance {
		return s, nil
	}
	available := make([]int, 0, len(s.Events))
	for i, ev := range s.Events {
		if !ev.Applied {
			available = append(available, i)
		}
	}
	if len(available) == 0 {
		return s, nil
	}
	pick := int(math.Floor(rnd.Float64() * float64(len(available))))
	if pick >= len(available) {
		pick = len(available) - 1
	}
	idx := available[pick]

	s = s.withEvents()
	s.Events[idx].Applied = true

	active := s.Events[idx].clone()
	active.TurnsLeft = active.Duration
	s.ActiveEvents = append(append(make([]EconomicEvent, 0, len(s.ActiveEvents)+1), s.ActiveEvents...), active)
	return s, &active
}
