package game

// ValidActions returns the actions the player may take right now. The result
// is empty when it is not the player's turn, the player has folded or is
// all-in, or the game is over.
func ValidActions(s State, playerID string) []ActionKind {
	if s.GameComplete || s.CurrentTurn != playerID {
		return nil
	}
	idx := s.PlayerIndex(playerID)
	if idx < 0 {
		return nil
	}
	p := &s.Players[idx]
	if !p.CanAct() || p.Chips == 0 {
		return nil
	}

	toCall := max(0, s.CurrentBet-p.Bet)
	actions := []ActionKind{Fold}
	if toCall == 0 {
		actions = append(actions, Check)
	} else {
		actions = append(actions, Call)
	}
	if p.Chips > toCall {
		actions = append(actions, Raise)
	}
	return append(actions, AllIn)
}

// Apply validates one submission and returns the state that results from
// it, including any street, hand or game transitions it triggers. The input
// state is never modified; on error it is returned unchanged alongside an
// *ActionError.
func Apply(s State, a Action) (State, error) {
	if s.GameComplete {
		return s, reject(GameAlreadyComplete, a.PlayerID, "match finished after hand %d", s.HandNumber)
	}
	idx := s.PlayerIndex(a.PlayerID)
	if idx < 0 || s.CurrentTurn != a.PlayerID {
		return s, reject(NotYourTurn, a.PlayerID, "turn belongs to %q", s.CurrentTurn)
	}

	p := &s.Players[idx]
	toCall := max(0, s.CurrentBet-p.Bet)
	kind := Normalize(a.Kind, toCall)

	// Size the contribution before copying anything so a rejected raise has
	// no side effects.
	var put int
	switch kind {
	case Fold, Check:
	case Call:
		put = min(toCall, p.Chips)
	case Raise:
		increment := a.Amount
		if increment <= 0 {
			increment = s.defaultRaise()
		}
		switch {
		// Compared without adding so an oversized amount cannot overflow.
		case increment >= p.Chips-toCall:
			put = p.Chips
		case increment < s.MinRaise:
			return s, reject(IllegalRaiseSize, a.PlayerID, "raise of %d is below the minimum raise of %d", increment, s.MinRaise)
		default:
			put = toCall + increment
		}
	case AllIn:
		put = p.Chips
	default:
		panic("unhandled action kind " + kind.String())
	}

	next := s.Clone()
	if err := next.act(idx, kind, put, a); err != nil {
		return s, err
	}
	return next, nil
}

// act applies an already validated action to the receiver, which must be a
// private copy.
func (s *State) act(idx int, kind ActionKind, put int, a Action) error {
	p := &s.Players[idx]
	opp := &s.Players[1-idx]

	if kind == Fold {
		p.Folded = true
	}
	p.commit(put)
	s.Pot += put

	if p.Bet > s.CurrentBet {
		// Any bet over the current one reopens the action. Only a full raise
		// moves the minimum; a short all-in does not.
		if increment := p.Bet - s.CurrentBet; increment >= s.MinRaise {
			s.MinRaise = increment
		}
		s.CurrentBet = p.Bet
		opp.HasActed = false
	}
	p.HasActed = true

	applied := kind
	if kind == Raise && p.AllIn {
		applied = AllIn
	}
	s.Actions = append(s.Actions, ActionRecord{
		HandNumber: s.HandNumber,
		Street:     s.Street,
		PlayerID:   p.ID,
		Requested:  a.Kind,
		Kind:       applied,
		Amount:     put,
		Reasoning:  a.Reasoning,
	})

	return s.settle(idx)
}
