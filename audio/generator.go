package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/ballfall/parameter"
)

// ImpactGenerator synthesizes a knock: a decaying sine with a short noise transient at onset
type ImpactGenerator struct {
	sr       beep.SampleRate
	pos      int
	samples  int
	freq     float64
	decay    float64
	noiseMix float64
	seed     uint32
}

// NewImpactGenerator creates a generator for an impact of strength in [0,1]
// Harder impacts ring slightly higher and carry more noise
func NewImpactGenerator(sr beep.SampleRate, strength float64) *ImpactGenerator {
	strength = min(max(strength, 0), 1)
	return &ImpactGenerator{
		sr:       sr,
		samples:  sr.N(parameter.ImpactDuration),
		freq:     parameter.ImpactFrequency * (1 + 0.5*strength),
		decay:    parameter.ImpactDecay,
		noiseMix: parameter.ImpactNoiseMix * (0.5 + 0.5*strength),
		seed:     0x2545F491,
	}
}

func (g *ImpactGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)

		tone := math.Sin(2*math.Pi*g.freq*t) * math.Exp(-g.decay*t)

		// LCG noise, fades four times faster than the tone
		g.seed = g.seed*1664525 + 1013904223
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		transient := noise * math.Exp(-4*g.decay*t)

		val := (1-g.noiseMix)*tone + g.noiseMix*transient
		samples[i][0] = val
		samples[i][1] = val
		g.pos++
	}
	return len(samples), true
}

func (g *ImpactGenerator) Err() error { return nil }

// ImpactSound returns a finite, volume-scaled impact streamer
func ImpactSound(sr beep.SampleRate, strength float64) beep.Streamer {
	strength = min(max(strength, 0), 1)
	gen := NewImpactGenerator(sr, strength)
	return newVolume(beep.Take(sr.N(parameter.ImpactDuration), gen), 0.2+0.8*strength)
}

