package sim

import (
	"math"

	domsvc "LOBSim/internal/domain/service"
)

// GaussianSampler converts uniform(0,1) draws into standard-normal deviates
// using the Box-Muller transform. Each call consumes exactly two uniform
// draws and yields one value; the sine companion is discarded so the
// alignment between the uniform stream and generated output stays stable.
// The only state is the injected source.
type GaussianSampler struct {
	src domsvc.Uniform
}

func NewGaussianSampler(src domsvc.Uniform) *GaussianSampler {
	return &GaussianSampler{src: src}
}

// Next returns one standard-normal deviate. A zero draw for the log argument
// is rejected and redrawn to keep ln(u) finite.
func (g *GaussianSampler) Next() float64 {
	u := g.src.Float64()
	for u == 0 {
		u = g.src.Float64()
	}
	v := g.src.Float64()
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}
