package ports

// RandomSource yields uniform samples in [0, 1).
type RandomSource interface {
	Float64() float64
}
