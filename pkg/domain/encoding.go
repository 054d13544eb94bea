package domain

// BellState is the display label of one of the four maximally entangled states.
type BellState string

const (
	BellPhiPlus  BellState = "Φ⁺"
	BellPsiPlus  BellState = "Ψ⁺"
	BellPhiMinus BellState = "Φ⁻"
	BellPsiMinus BellState = "Ψ⁻"
)

// Encoding is one row of the gate reference table.
type Encoding struct {
	Bits      BitPair   `json:"bits" yaml:"bits"`
	ApplyX    bool      `json:"x_gate" yaml:"x_gate"`
	ApplyZ    bool      `json:"z_gate" yaml:"z_gate"`
	BellState BellState `json:"result" yaml:"result"`
}

var encodingTable = [4]Encoding{
	{Bits: BitPair{Bit0, Bit0}, ApplyX: false, ApplyZ: false, BellState: BellPhiPlus},
	{Bits: BitPair{Bit0, Bit1}, ApplyX: true, ApplyZ: false, BellState: BellPsiPlus},
	{Bits: BitPair{Bit1, Bit0}, ApplyX: false, ApplyZ: true, BellState: BellPhiMinus},
	{Bits: BitPair{Bit1, Bit1}, ApplyX: true, ApplyZ: true, BellState: BellPsiMinus},
}

// Encodings returns the four table rows ordered 00, 01, 10, 11.
func Encodings() []Encoding {
	out := make([]Encoding, len(encodingTable))
	copy(out, encodingTable[:])
	return out
}

// EncodingFor looks up the row for a complete pair.
func EncodingFor(pair BitPair) (Encoding, bool) {
	for _, row := range encodingTable {
		if row.Bits == pair {
			return row, true
		}
	}
	return Encoding{}, false
}

// YesNo renders a gate flag the way the reference table shows it.
func YesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
