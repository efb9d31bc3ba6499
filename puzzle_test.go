package main

import "testing"

func step(a, b int) int {
	switch {
	case b > a:
		return 1
	case b < a:
		return -1
	default:
		return 0
	}
}

// checkPlacement verifies that the grid spells the word along start->end.
func checkPlacement(t *testing.T, grid [][]string, pw PlacedWord) {
	t.Helper()
	dr := step(pw.Start.R, pw.End.R)
	dc := step(pw.Start.C, pw.End.C)
	r, c := pw.Start.R, pw.Start.C
	for i := 0; i < len(pw.Word); i++ {
		if r < 0 || r >= len(grid) || c < 0 || c >= len(grid) {
			t.Fatalf("word %q leaves the grid at (%d,%d)", pw.Word, r, c)
		}
		if grid[r][c] != string(pw.Word[i]) {
			t.Fatalf("word %q letter %d: grid has %q at (%d,%d)", pw.Word, i, grid[r][c], r, c)
		}
		r += dr
		c += dc
	}
	if r-dr != pw.End.R || c-dc != pw.End.C {
		t.Fatalf("word %q: end %v does not match its length", pw.Word, pw.End)
	}
}

func TestGeneratePuzzleEasy(t *testing.T) {
	settings := GameSettings{Theme: "animals", Difficulty: "easy", GridSize: 8, WordCount: 5}
	puzzle := generatePuzzle(settings)

	if len(puzzle.Grid) != 8 {
		t.Fatalf("grid has %d rows, want 8", len(puzzle.Grid))
	}
	for r, row := range puzzle.Grid {
		if len(row) != 8 {
			t.Fatalf("row %d has %d cells, want 8", r, len(row))
		}
		for c, cell := range row {
			if len(cell) != 1 || cell[0] < 'A' || cell[0] > 'Z' {
				t.Fatalf("cell (%d,%d) = %q, want a single uppercase letter", r, c, cell)
			}
		}
	}

	if len(puzzle.Words) > 5 {
		t.Fatalf("placed %d words, want at most 5", len(puzzle.Words))
	}
	for _, pw := range puzzle.Words {
		if len(pw.Word) < 3 || len(pw.Word) > 6 {
			t.Errorf("word %q has length %d, outside the easy band", pw.Word, len(pw.Word))
		}
		checkPlacement(t, puzzle.Grid, pw)
	}
}

func TestGeneratePuzzleEasyDirections(t *testing.T) {
	settings := GameSettings{Theme: "food", Difficulty: "easy", GridSize: 10, WordCount: 8}
	for run := 0; run < 10; run++ {
		puzzle := generatePuzzle(settings)
		for _, pw := range puzzle.Words {
			if pw.End.R < pw.Start.R || pw.End.C < pw.Start.C {
				t.Fatalf("easy puzzle placed %q backwards: %v -> %v", pw.Word, pw.Start, pw.End)
			}
			if pw.End.R != pw.Start.R && pw.End.C != pw.Start.C {
				t.Fatalf("easy puzzle placed %q diagonally: %v -> %v", pw.Word, pw.Start, pw.End)
			}
		}
	}
}

func TestGeneratePuzzleHard(t *testing.T) {
	settings := GameSettings{Theme: "space", Difficulty: "hard", GridSize: 12, WordCount: 10}
	puzzle := generatePuzzle(settings)
	for _, pw := range puzzle.Words {
		if len(pw.Word) < 5 || len(pw.Word) > 10 {
			t.Errorf("word %q has length %d, outside the hard band", pw.Word, len(pw.Word))
		}
		checkPlacement(t, puzzle.Grid, pw)
	}
}

func TestGeneratePuzzleNoDuplicateWords(t *testing.T) {
	puzzle := generatePuzzle(defaultSettings())
	seen := map[string]bool{}
	for _, pw := range puzzle.Words {
		if seen[pw.Word] {
			t.Fatalf("word %q placed twice", pw.Word)
		}
		seen[pw.Word] = true
	}
}

// A tiny grid cannot hold many long words; the generator must degrade to
// fewer placements instead of failing.
func TestGeneratePuzzleDegradesGracefully(t *testing.T) {
	settings := GameSettings{Theme: "sports", Difficulty: "hard", GridSize: 6, WordCount: 20}
	puzzle := generatePuzzle(settings)
	if len(puzzle.Words) > 20 {
		t.Fatalf("placed %d words, want at most 20", len(puzzle.Words))
	}
	for _, pw := range puzzle.Words {
		if len(pw.Word) > 6 {
			t.Errorf("word %q longer than the grid", pw.Word)
		}
		checkPlacement(t, puzzle.Grid, pw)
	}
}

func TestGeneratePuzzleUnknownThemeFallsBack(t *testing.T) {
	settings := GameSettings{Theme: "nonsense", Difficulty: "easy", GridSize: 10, WordCount: 5}
	puzzle := generatePuzzle(settings)
	if len(puzzle.Words) == 0 {
		t.Fatal("fallback theme produced no words")
	}
}
