// Package difficulty maps a player's difficulty level to a maze side length.
package difficulty

const (
	MinLevel     = 1
	MaxLevel     = 15
	DefaultLevel = 5
)

// SizeFor returns the odd maze side length for level. Callers clamp level
// into [MinLevel, MaxLevel] first.
func SizeFor(level int) int {
	size := 2*level + 7
	if size%2 == 0 {
		size++
	}
	return size
}

// Clamp forces level into [MinLevel, MaxLevel].
func Clamp(level int) int {
	return min(max(level, MinLevel), MaxLevel)
}

// Advance returns the next level, stopping at MaxLevel.
func Advance(level int) int {
	return min(level+1, MaxLevel)
}

// Retreat returns the previous level, stopping at MinLevel.
func Retreat(level int) int {
	return max(level-1, MinLevel)
}

// Change applies delta to level and clamps the result.
func Change(level, delta int) int {
	return Clamp(level + delta)
}
