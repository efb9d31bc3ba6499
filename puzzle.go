package main

import "math/rand"

// direction is a unit step in grid coordinates.
type direction struct {
	dr, dc int
}

var (
	forwardDirections = []direction{
		{0, 1}, // right
		{1, 0}, // down
	}
	diagonalDirections = []direction{
		{1, 1},  // down-right
		{1, -1}, // down-left
	}
	reverseDirections = []direction{
		{0, -1},  // left
		{-1, 0},  // up
		{-1, -1}, // up-left
		{-1, 1},  // up-right
	}
)

type difficultyProfile struct {
	minLen, maxLen int
	directions     []direction
}

var difficulties = map[string]difficultyProfile{
	"easy":   {3, 6, forwardDirections},
	"medium": {4, 8, append(append([]direction{}, forwardDirections...), diagonalDirections...)},
	"hard":   {5, 10, append(append(append([]direction{}, forwardDirections...), diagonalDirections...), reverseDirections...)},
}

const placementAttempts = 100

const fillLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generatePuzzle builds a grid for the given settings. It never fails: if
// the word list runs out before wordCount placements, the puzzle simply
// carries fewer words, and len(puzzle.Words) is the ground truth for a
// completed match.
func generatePuzzle(settings GameSettings) *PuzzleData {
	profile, ok := difficulties[settings.Difficulty]
	if !ok {
		profile = difficulties["easy"]
	}

	size := settings.GridSize
	grid := make([][]string, size)
	for r := range grid {
		grid[r] = make([]string, size)
	}

	candidates := []string{}
	for _, w := range wordsForTheme(settings.Theme) {
		if len(w) >= profile.minLen && len(w) <= profile.maxLen && len(w) <= size {
			candidates = append(candidates, w)
		}
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	placed := []PlacedWord{}
	for _, word := range candidates {
		if len(placed) >= settings.WordCount {
			break
		}
		if pw, ok := tryPlaceWord(grid, word, profile.directions); ok {
			placed = append(placed, pw)
		}
	}

	for r := range grid {
		for c := range grid[r] {
			if grid[r][c] == "" {
				grid[r][c] = string(fillLetters[rand.Intn(len(fillLetters))])
			}
		}
	}

	return &PuzzleData{Grid: grid, Words: placed}
}

func tryPlaceWord(grid [][]string, word string, dirs []direction) (PlacedWord, bool) {
	size := len(grid)
	for attempt := 0; attempt < placementAttempts; attempt++ {
		row := rand.Intn(size)
		col := rand.Intn(size)
		dir := dirs[rand.Intn(len(dirs))]

		if !fitsAt(grid, word, row, col, dir) {
			continue
		}

		for i := 0; i < len(word); i++ {
			grid[row+i*dir.dr][col+i*dir.dc] = string(word[i])
		}
		return PlacedWord{
			Word:  word,
			Start: Position{R: row, C: col},
			End:   Position{R: row + (len(word)-1)*dir.dr, C: col + (len(word)-1)*dir.dc},
		}, true
	}
	return PlacedWord{}, false
}

// fitsAt reports whether word can occupy the run starting at (row, col):
// every cell in bounds and either empty or already holding the same letter.
func fitsAt(grid [][]string, word string, row, col int, dir direction) bool {
	size := len(grid)
	for i := 0; i < len(word); i++ {
		r := row + i*dir.dr
		c := col + i*dir.dc
		if r < 0 || r >= size || c < 0 || c >= size {
			return false
		}
		if cell := grid[r][c]; cell != "" && cell != string(word[i]) {
			return false
		}
	}
	return true
}
