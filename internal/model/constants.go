package model

// Atmospheric defaults used whenever no measured value is available. Named
// here so the estimation assumptions stay auditable instead of being inlined
// where they are used.
const (
	DefaultCO2PPM     = 410.0 // ppm
	DefaultD13CPerMil = -8.0  // ‰, atmospheric δ13C
)
