package domain

import (
	"errors"
	"fmt"
)

// MatrixIndex addresses a row/column of the travel-time matrix.
// The assignment is stable for a planning run: 0 = primary base,
// 1 = secondary base, stops follow in stop-list order.
type MatrixIndex int

const (
	PrimaryBaseIndex   MatrixIndex = 0
	SecondaryBaseIndex MatrixIndex = 1

	baseCount = 2
)

// StopMatrixIndex maps a position in the planning stop list to its matrix index.
func StopMatrixIndex(stopPos int) MatrixIndex {
	return MatrixIndex(stopPos + baseCount)
}

// UnreachableSeconds is the sentinel cost for pairs the oracle could not
// resolve. Large enough that the solver never treats an unreachable pair as
// free, small enough not to overflow summed arc costs.
const UnreachableSeconds = 999999

// TravelTimeMatrix holds directional travel times in seconds between all
// planning locations. Symmetry is not assumed.
type TravelTimeMatrix struct {
	seconds [][]int
}

// NewTravelTimeMatrix validates and wraps an oracle result.
// The matrix must be square and cover the two bases plus every stop.
func NewTravelTimeMatrix(seconds [][]int, stopCount int) (*TravelTimeMatrix, error) {
	want := stopCount + baseCount
	if len(seconds) != want {
		return nil, fmt.Errorf("travel time matrix: got %d rows, want %d", len(seconds), want)
	}
	for i, row := range seconds {
		if len(row) != want {
			return nil, fmt.Errorf("travel time matrix: row %d has %d columns, want %d", i, len(row), want)
		}
		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("travel time matrix: negative duration at (%d,%d)", i, j)
			}
		}
	}
	return &TravelTimeMatrix{seconds: seconds}, nil
}

// Size returns the number of rows (bases + stops).
func (m *TravelTimeMatrix) Size() int { return len(m.seconds) }

// StopCount returns the number of stops the matrix covers.
func (m *TravelTimeMatrix) StopCount() int { return len(m.seconds) - baseCount }

// Seconds returns the directional travel time between two matrix indices.
// Out-of-range lookups return the unreachable sentinel rather than panicking.
func (m *TravelTimeMatrix) Seconds(from, to MatrixIndex) int {
	if int(from) < 0 || int(from) >= len(m.seconds) || int(to) < 0 || int(to) >= len(m.seconds) {
		return UnreachableSeconds
	}
	return m.seconds[from][to]
}

// SubMatrix extracts a local cost matrix over the given matrix indices,
// preserving their order. Used to feed the route solver, whose depot is
// always local index 0.
func (m *TravelTimeMatrix) SubMatrix(indices []MatrixIndex) ([][]int, error) {
	if len(indices) == 0 {
		return nil, errors.New("sub matrix: no indices")
	}
	out := make([][]int, len(indices))
	for i, from := range indices {
		out[i] = make([]int, len(indices))
		for j, to := range indices {
			out[i][j] = m.Seconds(from, to)
		}
	}
	return out, nil
}
