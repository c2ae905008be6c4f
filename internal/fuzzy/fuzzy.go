// Package fuzzy scores case-insensitive subsequence matches of a query
// against a target string.
package fuzzy

import "unicode"

// Bonuses awarded per matched rune.
const (
	consecutiveBonus = 3
	boundaryBonus    = 5
	caseBonus        = 1
	shortTargetBase  = 50
)

// Result reports whether query is a subsequence of the target and how well
// it fits. Positions are rune indices into the target, in match order.
type Result struct {
	Matched   bool
	Score     int
	Positions []int
}

// Match scans text once, left to right, greedily consuming query runes in
// order. An empty query matches everything with score zero. Identical inputs
// always produce identical output.
func Match(query, text string) Result {
	qr := []rune(query)
	if len(qr) == 0 {
		return Result{Matched: true}
	}
	tr := []rune(text)

	score := 0
	positions := make([]int, 0, len(qr))
	qi := 0
	last := -1

	for ti, tc := range tr {
		if qi >= len(qr) {
			break
		}
		qc := qr[qi]
		if unicode.ToLower(tc) != unicode.ToLower(qc) {
			continue
		}
		if last >= 0 && ti == last+1 {
			score += consecutiveBonus
		}
		if ti == 0 || isSeparator(tr[ti-1]) {
			score += boundaryBonus
		}
		if tc == qc {
			score += caseBonus
		}
		positions = append(positions, ti)
		last = ti
		qi++
	}

	if qi < len(qr) {
		return Result{}
	}
	if bonus := shortTargetBase - len(tr); bonus > 0 {
		score += bonus
	}
	return Result{Matched: true, Score: score, Positions: positions}
}

// MatchFields evaluates query against each candidate field and returns the
// best match plus the index of the winning field, or -1 when nothing
// matches. Empty fields are skipped.
func MatchFields(query string, fields ...string) (Result, int) {
	best := Result{}
	bestIdx := -1
	for i, field := range fields {
		if field == "" {
			continue
		}
		res := Match(query, field)
		if !res.Matched {
			continue
		}
		if bestIdx == -1 || res.Score > best.Score {
			best = res
			bestIdx = i
		}
	}
	return best, bestIdx
}

func isSeparator(ch rune) bool {
	switch ch {
	case '-', '_', '/', '.':
		return true
	}
	return unicode.IsSpace(ch)
}
