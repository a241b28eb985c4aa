package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougthor42/gdw/internal/model"
	"github.com/dougthor42/gdw/internal/semi"
)

// standardWafer builds a wafer using the standard flat length for its
// diameter; diameters without a standard flat get none.
func standardWafer(t *testing.T, diameter, excl, flatExcl float64) model.Wafer {
	t.Helper()
	flat, _ := semi.FlatLength(diameter)
	w, err := model.NewWafer(diameter, excl, flatExcl, flat)
	require.NoError(t, err)
	return w
}

func mustDie(t *testing.T, width, height float64) model.DieSize {
	t.Helper()
	die, err := model.NewDieSize(width, height)
	require.NoError(t, err)
	return die
}

func TestComputeKnownValues(t *testing.T) {
	odd, even := model.AlignOdd, model.AlignEven

	tests := []struct {
		name           string
		dieW, dieH     float64
		diameter       float64
		offset         model.Offset
		excl, flatExcl float64
		want           int
	}{
		{"5x5 even/even", 5, 5, 150, model.ParityOffset(even, even), 5, 5, 546},
		{"3.34x3.16 on 100mm", 3.34, 3.16, 100, model.ParityOffset(even, even), 5, 5, 548},
		{"2.43x3.30 even/odd", 2.43, 3.30, 150, model.ParityOffset(even, odd), 5, 4.5, 1814},
		{"2.43x3.30 even/even", 2.43, 3.30, 150, model.ParityOffset(even, even), 5, 4.5, 1794},
		{"2.43x3.30 odd/odd", 2.43, 3.30, 150, model.ParityOffset(odd, odd), 5, 4.5, 1800},
		{"2.43x3.30 odd/even", 2.43, 3.30, 150, model.ParityOffset(odd, even), 5, 4.5, 1804},
		{"4.34x6.44", 4.34, 6.44, 150, model.ParityOffset(even, even), 5, 5, 484},
		{"1x1 on 150mm", 1, 1, 150, model.ParityOffset(even, even), 5, 5, 14902},
		{"1x1 on 200mm", 1, 1, 200, model.ParityOffset(odd, even), 5, 15, 27435},
		{"2.9x3.3 mm offset", 2.9, 3.3, 150,
			model.OffsetMM(-1.65, 2.95, model.DieSize{Width: 2.9, Height: 3.3}), 4.5, 4.5, 1529},
		{"2.69x1.65 mm offset", 2.69, 1.65, 150,
			model.OffsetMM(1.345, 2.1, model.DieSize{Width: 2.69, Height: 1.65}), 4.5, 4.5, 3346},
		{"4.4x5.02 mm offset", 4.4, 5.02, 150,
			model.OffsetMM(0, -0.2, model.DieSize{Width: 4.4, Height: 5.02}), 4.5, 4.5, 648},
	}

	e := New(DefaultSettings())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := standardWafer(t, tt.diameter, tt.excl, tt.flatExcl)
			die := mustDie(t, tt.dieW, tt.dieH)

			res, err := e.Compute(w, die, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.TotalGross())
		})
	}
}

func TestComputeCenteredNoFlat(t *testing.T) {
	// 150mm wafer, 5mm edge exclusion, no flat, 10x10 die on a centered grid.
	w, err := model.NewWafer(150, 5, 0, 0)
	require.NoError(t, err)
	die := mustDie(t, 10, 10)

	res, err := New(DefaultSettings()).Compute(w, die, model.Offset{})
	require.NoError(t, err)

	assert.Equal(t, 129, res.TotalGross())
	assert.Zero(t, res.CountByState(model.StateFlat),
		"a wafer without a flat must never lose a die to it")
	assert.Zero(t, res.CountByState(model.StateFlatExclusion))
}

func TestComputeCountsConserveCells(t *testing.T) {
	e := New(DefaultSettings())
	for _, tt := range []struct {
		diameter, dieW, dieH float64
		offset               model.Offset
	}{
		{150, 5, 5, model.ParityOffset(model.AlignEven, model.AlignEven)},
		{100, 3.34, 3.16, model.Offset{}},
		{150, 2.9, 3.3, model.OffsetMM(-1.65, 2.95, model.DieSize{Width: 2.9, Height: 3.3})},
	} {
		w := standardWafer(t, tt.diameter, 5, 4.5)
		res, err := e.Compute(w, mustDie(t, tt.dieW, tt.dieH), tt.offset)
		require.NoError(t, err)

		total := 0
		for _, n := range res.Counts {
			total += n
		}
		assert.Equal(t, res.CellCount, total, "counts must partition the cell grid")
		assert.Len(t, res.Dies, res.CellCount-res.CountByState(model.StateWafer),
			"Dies holds exactly the cells that touch the wafer")
	}
}

func TestComputeClassifiesByPrecedence(t *testing.T) {
	w := standardWafer(t, 150, 4.5, 4.5)
	die := mustDie(t, 5, 5)

	res, err := New(DefaultSettings()).Compute(w, die, model.Offset{})
	require.NoError(t, err)

	find := func(x, y int) *model.Die {
		for i := range res.Dies {
			if res.Dies[i].XGrid == x && res.Dies[i].YGrid == y {
				return &res.Dies[i]
			}
		}
		return nil
	}

	// Off-wafer cells are counted but never retained.
	assert.Nil(t, find(21, 17))

	tests := []struct {
		x, y int
		want model.DieState
	}{
		{30, 30, model.StateProbe},
		{28, 43, model.StateFlatExclusion},
		{31, 44, model.StateFlat},
		{40, 21, model.StateExclusion},
	}
	for _, tt := range tests {
		d := find(tt.x, tt.y)
		require.NotNil(t, d, "die (%d,%d) missing from result", tt.x, tt.y)
		assert.Equal(t, tt.want, d.State, "die (%d,%d)", tt.x, tt.y)
	}
}

func TestComputeNorthLimit(t *testing.T) {
	w := standardWafer(t, 150, 4.5, 4.5)
	die := mustDie(t, 5, 5)

	base, err := New(DefaultSettings()).Compute(w, die, model.Offset{})
	require.NoError(t, err)
	require.Zero(t, base.CountByState(model.StateScribe))

	limited, err := New(Settings{NorthLimit: 60}).Compute(w, die, model.Offset{})
	require.NoError(t, err)

	assert.Positive(t, limited.CountByState(model.StateScribe))
	assert.Less(t, limited.TotalGross(), base.TotalGross())

	// The keep-out only reclassifies otherwise-good die.
	assert.Equal(t, base.TotalGross(),
		limited.TotalGross()+limited.CountByState(model.StateScribe))
}

func TestComputeEdgeExclusionMonotonic(t *testing.T) {
	e := New(DefaultSettings())
	die := mustDie(t, 5, 5)

	prev := -1
	for _, excl := range []float64{8, 5, 3, 0} {
		w := standardWafer(t, 150, excl, 4.5)
		res, err := e.Compute(w, die, model.Offset{})
		require.NoError(t, err)
		if prev != -1 {
			assert.LessOrEqual(t, prev, res.TotalGross(),
				"shrinking the exclusion must never lose die")
		}
		prev = res.TotalGross()
	}
}

func TestComputeSymmetry(t *testing.T) {
	// Without a flat and with a centered grid, the good-die pattern is
	// symmetric under a 180 degree rotation about the wafer center.
	w, err := model.NewWafer(150, 5, 0, 0)
	require.NoError(t, err)
	die := mustDie(t, 4, 4)

	res, err := New(DefaultSettings()).Compute(w, die, model.Offset{})
	require.NoError(t, err)

	probed := make(map[[2]float64]bool)
	for _, d := range res.Dies {
		if d.State == model.StateProbe {
			probed[[2]float64{d.X, d.Y}] = true
		}
	}
	require.NotEmpty(t, probed)
	for p := range probed {
		mirror := [2]float64{-p[0] - die.Width, -p[1] - die.Height}
		assert.True(t, probed[mirror], "no mirror for die at (%g, %g)", p[0], p[1])
	}
}

func TestComputeDeterministic(t *testing.T) {
	w := standardWafer(t, 150, 5, 5)
	die := mustDie(t, 5, 5)
	e := New(DefaultSettings())

	a, err := e.Compute(w, die, model.ParityOffset(model.AlignEven, model.AlignEven))
	require.NoError(t, err)
	b, err := e.Compute(w, die, model.ParityOffset(model.AlignEven, model.AlignEven))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeOversizedDie(t *testing.T) {
	w := standardWafer(t, 150, 5, 5)
	res, err := New(DefaultSettings()).Compute(w, mustDie(t, 150, 150), model.Offset{})
	require.NoError(t, err)
	assert.Zero(t, res.TotalGross())
}

func TestComputeCellCap(t *testing.T) {
	w := standardWafer(t, 150, 5, 5)
	e := New(Settings{MaxCells: 1000})

	_, err := e.Compute(w, mustDie(t, 0.1, 0.1), model.Offset{})
	require.ErrorIs(t, err, ErrGridTooLarge)

	// Large die stay under the cap.
	_, err = e.Compute(w, mustDie(t, 10, 10), model.Offset{})
	require.NoError(t, err)
}

func TestComputeParallelMatchesSerial(t *testing.T) {
	w := standardWafer(t, 150, 4.5, 4.5)
	die := mustDie(t, 2.43, 3.30)
	off := model.ParityOffset(model.AlignEven, model.AlignOdd)

	serial, err := New(DefaultSettings()).Compute(w, die, off)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8} {
		parallel, err := New(Settings{Workers: workers}).Compute(w, die, off)
		require.NoError(t, err)
		assert.Equal(t, serial, parallel, "workers=%d", workers)
	}
}
