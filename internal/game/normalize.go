package game

// Normalize maps a submitted action string onto the action the engine
// applies, given how much the player must put in to call. It is the complete
// auto-correction policy:
//
//	submitted        nothing to call   facing a bet
//	fold             fold              fold
//	check            check             call
//	call             check             call
//	bet, raise       raise             raise
//	all-in           all-in            all-in
//	anything else    check             call
//
// Corrections are silent; the submission still consumes the player's turn.
func Normalize(submitted string, toCall int) ActionKind {
	kind, _ := ParseActionKind(submitted)
	switch kind {
	case Check, Call:
		if toCall > 0 {
			return Call
		}
		return Check
	case Fold, Raise, AllIn:
		return kind
	default:
		panic("unhandled action kind " + kind.String())
	}
}

// defaultRaise is the increment used when a raise arrives without a
// positive amount.
func (s *State) defaultRaise() int {
	return max(2*s.BigBlind, s.MinRaise)
}
