package snake

import "errors"

// ErrBoardFull is returned when no free cell is left for food.
var ErrBoardFull = errors.New("snake: no free cell for food")

// samplesPerCell bounds rejection sampling before falling back to a scan.
const samplesPerCell = 4

// PlaceFood picks a uniformly random cell not occupied by body.
// It draws random cells first and, if that keeps hitting the snake, scans the
// board for free cells and picks among those.
func PlaceFood(body []Position, size int, rng Rand) (Position, error) {
	occupied := make(map[Position]struct{}, len(body))
	for _, seg := range body {
		occupied[seg] = struct{}{}
	}

	cells := size * size
	if len(occupied) < cells {
		for range cells * samplesPerCell {
			p := Position{X: rng.Intn(size), Y: rng.Intn(size)}
			if _, taken := occupied[p]; !taken {
				return p, nil
			}
		}
	}

	free := make([]Position, 0, max(0, cells-len(occupied)))
	for y := range size {
		for x := range size {
			p := Position{X: x, Y: y}
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return Position{}, ErrBoardFull
	}
	return free[rng.Intn(len(free))], nil
}
