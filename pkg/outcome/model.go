package outcome

import (
	"fmt"

	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/ports"
)

// SuccessRate is the probability that a run with gate cutting still delivers its bits.
const SuccessRate = 0.75

// Model computes transmission outcomes from an injected random source.
type Model struct {
	source ports.RandomSource
}

// New creates a Model. A nil source falls back to an unseeded uniform source.
func New(source ports.RandomSource) *Model {
	if source == nil {
		source = NewUniformSource()
	}
	return &Model{source: source}
}

// Compute returns the received bits for pair. With gateCutting disabled the
// channel is lossless and no randomness is consumed; otherwise one sample is
// drawn and values at or above SuccessRate yield domain.ErrTransmissionFault.
func (m *Model) Compute(pair domain.BitPair, gateCutting bool) (domain.BitPair, error) {
	if !pair.Complete() {
		return domain.BitPair{}, fmt.Errorf("compute outcome: %w", domain.ErrBitsRequired)
	}
	if !gateCutting {
		return pair, nil
	}
	if m.source.Float64() < SuccessRate {
		return pair, nil
	}
	return domain.BitPair{}, domain.ErrTransmissionFault
}

// EncodingTable exposes the static gate reference table for display.
func (m *Model) EncodingTable() []domain.Encoding {
	return domain.Encodings()
}
