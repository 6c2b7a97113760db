package audio

import (
	"math"
	"math/rand"
)

// Procedurally synthesized effect set. Everything the game plays is
// generated at startup, so there are no binary sound assets to ship.

const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

func oscillator(waveType int, freq float64, samples int) []float64 {
	buf := make([]float64, samples)
	phase := 0.0
	phaseInc := freq / float64(SampleRate)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// sweep is an oscillator whose frequency glides from f0 to f1.
func sweep(waveType int, f0, f1 float64, samples int) []float64 {
	buf := make([]float64, samples)
	phase := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := f0 + (f1-f0)*t
		switch waveType {
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		default:
			buf[i] = math.Sin(2 * math.Pi * phase)
		}
		phase += freq / float64(SampleRate)
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

func applyEnvelope(buf []float64, attackSec, releaseSec float64) {
	total := len(buf)
	attackSamples := int(attackSec * SampleRate)
	releaseSamples := int(releaseSec * SampleRate)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

func durationToSamples(d float64) int {
	return int(d * SampleRate)
}

// toSample converts a mono float buffer at unity gain into an interleaved
// stereo Sample.
func toSample(buf []float64, gain float64) *Sample {
	data := make([]int16, len(buf)*Channels)
	for i, f := range buf {
		v := f * gain * 32767
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		s := int16(v)
		data[i*2] = s
		data[i*2+1] = s
	}
	return &Sample{Data: data, Channels: Channels}
}

func generateStep() *Sample {
	buf := oscillator(waveNoise, 0, durationToSamples(0.05))
	applyEnvelope(buf, 0.005, 0.04)
	return toSample(buf, 0.35)
}

func generateJump() *Sample {
	buf := sweep(waveSine, 300, 700, durationToSamples(0.18))
	applyEnvelope(buf, 0.01, 0.1)
	return toSample(buf, 0.5)
}

func generateDash() *Sample {
	buf := sweep(waveSquare, 900, 300, durationToSamples(0.15))
	noise := oscillator(waveNoise, 0, len(buf))
	for i := range buf {
		buf[i] = buf[i]*0.6 + noise[i]*0.4
	}
	applyEnvelope(buf, 0.005, 0.1)
	return toSample(buf, 0.5)
}

func generateHitWall() *Sample {
	buf := sweep(waveSine, 220, 60, durationToSamples(0.12))
	applyEnvelope(buf, 0.002, 0.1)
	return toSample(buf, 0.6)
}

func generateNoise() *Sample {
	buf := oscillator(waveNoise, 0, durationToSamples(0.9))
	hum := oscillator(waveSaw, 55, len(buf))
	for i := range buf {
		buf[i] = buf[i]*0.7 + hum[i]*0.3
	}
	applyEnvelope(buf, 0.05, 0.4)
	return toSample(buf, 0.45)
}

func generateShock() *Sample {
	buf := sweep(waveSquare, 1400, 100, durationToSamples(0.3))
	noise := oscillator(waveNoise, 0, len(buf))
	for i := range buf {
		buf[i] = buf[i]*0.5 + noise[i]*0.5
	}
	applyEnvelope(buf, 0.002, 0.2)
	return toSample(buf, 0.55)
}

func generateHeal() *Sample {
	a := sweep(waveSine, 440, 880, durationToSamples(0.25))
	b := sweep(waveSine, 660, 1320, durationToSamples(0.25))
	for i := range a {
		a[i] = a[i]*0.6 + b[i]*0.4
	}
	applyEnvelope(a, 0.02, 0.15)
	return toSample(a, 0.4)
}

// RegisterDefaults fills the manager with the synthesized effect set.
func RegisterDefaults(m *Manager) {
	m.Register("step", generateStep())
	m.Register("jump", generateJump())
	m.Register("dash", generateDash())
	m.Register("hitWall", generateHitWall())
	m.Register("noise", generateNoise())
	m.Register("shock", generateShock())
	m.Register("heal", generateHeal())
}
