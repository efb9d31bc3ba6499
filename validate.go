package main

// Rejection reasons are part of the wire contract; clients match on them.
const (
	reasonAlreadyClaimed  = "Word already claimed"
	reasonNotInPuzzle     = "Word not in puzzle"
	reasonInvalidPosition = "Invalid word position"
)

// validateClaim checks a claim against the puzzle and what has already been
// found. On acceptance the returned FoundWord carries the puzzle's canonical
// endpoints, not the caller's, so a client cannot spoof coordinates.
func validateClaim(puzzle *PuzzleData, found []FoundWord, playerID, word string, start, end Position) (FoundWord, string) {
	for _, f := range found {
		if f.Word == word {
			return FoundWord{}, reasonAlreadyClaimed
		}
	}

	var placement *PlacedWord
	for i := range puzzle.Words {
		if puzzle.Words[i].Word == word {
			placement = &puzzle.Words[i]
			break
		}
	}
	if placement == nil {
		return FoundWord{}, reasonNotInPuzzle
	}

	// Either direction of the same run is fine; players drag both ways.
	forward := start == placement.Start && end == placement.End
	backward := start == placement.End && end == placement.Start
	if !forward && !backward {
		return FoundWord{}, reasonInvalidPosition
	}

	return FoundWord{
		Word:    word,
		FoundBy: playerID,
		Start:   placement.Start,
		End:     placement.End,
	}, ""
}
