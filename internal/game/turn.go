package game

// AdvanceTurn resolves one turn: revenue, market, events (apply, then maybe
// trigger), net worth, unlocks. The input is never modified; the returned
// state is the only result. No step can fail, so a turn is always applied in
// full.
func AdvanceTurn(s GameState, rnd Source) (GameState, TurnReport) {
	s.Turn++

	s, revenue := CollectRevenue(s)
	s = AdvanceMarket(s, rnd)
	s, retired := ApplyActiveEvents(s)
	s, triggered := TriggerEvent(s, rnd)
	s = refreshNetWorth(s)
	s, unlocked := UnlockBusinesses(s)

	return s, TurnReport{
		Turn:           s.Turn,
		Revenue:        revenue,
		TriggeredEvent: triggered,
		RetiredEvents:  retired,
		Unlocked:       unlocked,
	}
}
