package game

import "slices"

// Copy-on-write helpers. A step copies only the slices it is about to write;
// everything else stays shared with the previous state value.

func (s GameState) withBusinesses() GameState {
	s.Businesses = slices.Clone(s.Businesses)
	return s
}

func (s GameState) withStocks() GameState {
	s.Stocks = slices.Clone(s.Stocks)
	return s
}

func (s GameState) withAssets() GameState {
	s.Assets = slices.Clone(s.Assets)
	return s
}

func (s GameState) withEvents() GameState {
	s.Events = slices.Clone(s.Events)
	return s
}

func (b Business) withUpgrades() Business {
	b.Upgrades = slices.Clone(b.Upgrades)
	return b
}

func (b Business) withStrategies() Business {
	b.Strategies = slices.Clone(b.Strategies)
	return b
}

// Clone returns a fully independent copy, for handing a state to code that
// may write through its slices.
func (s GameState) Clone() GameState {
	s = s.withBusinesses().withStocks().withAssets().withEvents()
	for i := range s.Businesses {
		b := s.Businesses[i].withUpgrades().withStrategies()
		b.Resources = slices.Clone(b.Resources)
		s.Businesses[i] = b
	}
	for i := range s.Stocks {
		s.Stocks[i].History = slices.Clone(s.Stocks[i].History)
	}
	for i := range s.Events {
		s.Events[i] = s.Events[i].clone()
	}
	s.ActiveEvents = slices.Clone(s.ActiveEvents)
	for i := range s.ActiveEvents {
		s.ActiveEvents[i] = s.ActiveEvents[i].clone()
	}
	return s
}

func (e EconomicEvent) clone() EconomicEvent {
	e.AffectedBusinessTypes = slices.Clone(e.AffectedBusinessTypes)
	e.AffectedStocks = slices.Clone(e.AffectedStocks)
	return e
}
