package outcome_test

import (
	"math"
	"testing"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_LosslessChannel(t *testing.T) {
	src := outcome.NewSequenceSource(0.99)
	model := outcome.New(src)

	for _, pair := range domain.AllBitPairs() {
		got, err := model.Compute(pair, false)
		require.NoError(t, err, "pair %s", pair)
		assert.Equal(t, pair, got)
	}
	assert.Zero(t, src.Drawn(), "lossless channel must not consume randomness")
}

func TestCompute_FaultChannelPinned(t *testing.T) {
	t.Run("Always Success", func(t *testing.T) {
		model := outcome.New(outcome.AlwaysSucceed)
		for _, pair := range domain.AllBitPairs() {
			got, err := model.Compute(pair, true)
			require.NoError(t, err)
			assert.Equal(t, pair, got)
		}
	})

	t.Run("Always Failure", func(t *testing.T) {
		model := outcome.New(outcome.AlwaysFail)
		for _, pair := range domain.AllBitPairs() {
			got, err := model.Compute(pair, true)
			assert.ErrorIs(t, err, domain.ErrTransmissionFault)
			assert.Equal(t, domain.BitPair{}, got)
		}
	})
}

func TestCompute_Boundary(t *testing.T) {
	pair := domain.NewBitPair(false, true)

	_, err := outcome.New(outcome.FixedSource(0.7499)).Compute(pair, true)
	assert.NoError(t, err)

	_, err = outcome.New(outcome.FixedSource(outcome.SuccessRate)).Compute(pair, true)
	assert.ErrorIs(t, err, domain.ErrTransmissionFault, "the success branch is strictly below the rate")
}

func TestCompute_ConsumesOneSamplePerFaultyRun(t *testing.T) {
	src := outcome.NewSequenceSource(0.1, 0.8)
	model := outcome.New(src)
	pair := domain.NewBitPair(true, true)

	_, err := model.Compute(pair, true)
	assert.NoError(t, err)
	_, err = model.Compute(pair, true)
	assert.ErrorIs(t, err, domain.ErrTransmissionFault)
	assert.Equal(t, 2, src.Drawn())
}

func TestCompute_IncompletePair(t *testing.T) {
	model := outcome.New(outcome.AlwaysSucceed)
	_, err := model.Compute(domain.BitPair{Second: domain.Bit1}, false)
	assert.ErrorIs(t, err, domain.ErrBitsRequired)
}

func TestCompute_SuccessFractionConverges(t *testing.T) {
	const runs = 20000
	model := outcome.New(outcome.NewSeededSource(42))
	pair := domain.NewBitPair(true, false)

	successes := 0
	for i := 0; i < runs; i++ {
		if _, err := model.Compute(pair, true); err == nil {
			successes++
		}
	}

	p := outcome.SuccessRate
	stderr := math.Sqrt(p * (1 - p) / runs)
	frac := float64(successes) / runs
	assert.InDelta(t, p, frac, 3*stderr, "success fraction %.4f", frac)
}

func TestEncodingTable(t *testing.T) {
	rows := outcome.New(nil).EncodingTable()
	require.Len(t, rows, 4)
	assert.Equal(t, domain.BellPsiPlus, rows[1].BellState)
}
