package domain

import "testing"

func square(n, fill int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = make([]int, n)
		for j := range out[i] {
			if i != j {
				out[i][j] = fill
			}
		}
	}
	return out
}

func TestNewTravelTimeMatrixValidation(t *testing.T) {
	if _, err := NewTravelTimeMatrix(square(4, 60), 2); err != nil {
		t.Fatalf("valid matrix rejected: %v", err)
	}
	if _, err := NewTravelTimeMatrix(square(3, 60), 2); err == nil {
		t.Error("expected error for missing rows")
	}

	ragged := square(4, 60)
	ragged[2] = ragged[2][:3]
	if _, err := NewTravelTimeMatrix(ragged, 2); err == nil {
		t.Error("expected error for ragged row")
	}

	negative := square(4, 60)
	negative[1][3] = -5
	if _, err := NewTravelTimeMatrix(negative, 2); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestMatrixSecondsOutOfRange(t *testing.T) {
	m, err := NewTravelTimeMatrix(square(4, 60), 2)
	if err != nil {
		t.Fatal(err)
	}

	if got := m.Seconds(PrimaryBaseIndex, StopMatrixIndex(0)); got != 60 {
		t.Errorf("Seconds(base, stop0) = %d, want 60", got)
	}
	if got := m.Seconds(0, MatrixIndex(99)); got != UnreachableSeconds {
		t.Errorf("out-of-range lookup = %d, want sentinel", got)
	}
	if got := m.Seconds(-1, 0); got != UnreachableSeconds {
		t.Errorf("negative lookup = %d, want sentinel", got)
	}
}

func TestSubMatrixPreservesOrder(t *testing.T) {
	raw := square(4, 0)
	raw[0][2] = 100
	raw[2][0] = 110
	raw[2][3] = 120
	raw[3][2] = 130

	m, err := NewTravelTimeMatrix(raw, 2)
	if err != nil {
		t.Fatal(err)
	}

	sub, err := m.SubMatrix([]MatrixIndex{0, StopMatrixIndex(0), StopMatrixIndex(1)})
	if err != nil {
		t.Fatal(err)
	}
	if len(sub) != 3 {
		t.Fatalf("got %d rows, want 3", len(sub))
	}
	if sub[0][1] != 100 || sub[1][0] != 110 || sub[1][2] != 120 || sub[2][1] != 130 {
		t.Errorf("sub matrix arcs = %d/%d/%d/%d", sub[0][1], sub[1][0], sub[1][2], sub[2][1])
	}

	if _, err := m.SubMatrix(nil); err == nil {
		t.Error("expected error for empty index list")
	}
}
