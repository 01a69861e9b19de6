package facts

import (
	"errors"
	"slices"
	"testing"
)

func TestNormalizeScope(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []int
	}{
		{"empty", nil, []int{}},
		{"sorted and deduped", []int{7, 3, 7, 1}, []int{1, 3, 7}},
		{"drops out of range", []int{0, 13, -2, 12, 1}, []int{1, 12}},
		{"all invalid", []int{0, 99}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeScope(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("NormalizeScope(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeScopeDoesNotMutateInput(t *testing.T) {
	in := []int{5, 2, 9}
	NormalizeScope(in)
	if !slices.Equal(in, []int{5, 2, 9}) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestPool(t *testing.T) {
	pool := Pool([]int{2, 5})
	if len(pool) != 2*PerTable {
		t.Fatalf("len(pool) = %d, want %d", len(pool), 2*PerTable)
	}
	if pool[0] != New(2, 1) {
		t.Errorf("pool[0] = %v, want 2x1", pool[0])
	}
	if pool[len(pool)-1] != New(5, 12) {
		t.Errorf("last = %v, want 5x12", pool[len(pool)-1])
	}
}

func TestAllTables(t *testing.T) {
	got := AllTables()
	if len(got) != 12 || got[0] != 1 || got[11] != 12 {
		t.Errorf("AllTables() = %v", got)
	}
}

func TestFactCheck(t *testing.T) {
	f := New(3, 7)
	if !f.Check(21) {
		t.Error("expected 21 to be correct for 3x7")
	}
	if f.Check(20) {
		t.Error("expected 20 to be incorrect for 3x7")
	}
	if f.String() != "3x7" {
		t.Errorf("String() = %q", f.String())
	}
}

func TestFactValidate(t *testing.T) {
	if err := New(12, 1).Validate(); err != nil {
		t.Errorf("12x1: unexpected error %v", err)
	}
	for _, f := range []Fact{New(0, 1), New(13, 1), New(1, 0), New(1, 13)} {
		if err := f.Validate(); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%v: expected ErrOutOfRange, got %v", f, err)
		}
	}
}
