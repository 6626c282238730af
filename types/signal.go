package types

// Position is the per-bar signal: -1 short, 0 flat, +1 long.
type Position int8

const (
	Short Position = -1
	Flat  Position = 0
	Long  Position = 1
)

// Side maps a non-flat position to its trade side.
func (p Position) Side() Side {
	if p < 0 {
		return SideShort
	}
	return SideLong
}
