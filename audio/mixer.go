package audio

import (
	"sync"

	"github.com/milk9111/memoryparasite/common"
)

// Mixer sums every active voice into a single interleaved int16 stream.
// It is pull-based: the audio device (or anything else) drains it through
// Read. The voice list and all per-voice state are guarded by one mutex
// shared with the control side (Play/Stop/SetVolume); the lock is held for
// the mix pass only, never across the device boundary.
type Mixer struct {
	mu     sync.Mutex
	voices []*Voice

	volume   float64
	channels int
}

func NewMixer(channels int) *Mixer {
	if channels <= 0 {
		channels = 2
	}
	return &Mixer{volume: 1.0, channels: channels}
}

// Play starts a voice for the sample and returns its handle.
func (m *Mixer) Play(sample *Sample, volume float64, loop bool, lowPass float64) Handle {
	if sample == nil || len(sample.Data) == 0 {
		return Handle{}
	}
	v := newVoice(sample, volume, loop, lowPass)
	m.mu.Lock()
	m.voices = append(m.voices, v)
	m.mu.Unlock()
	return Handle{mixer: m, voice: v}
}

// SetVolume sets the global volume, clamped to [0,1].
func (m *Mixer) SetVolume(v float64) {
	m.mu.Lock()
	m.volume = common.Clamp01(v)
	m.mu.Unlock()
}

// ActiveVoices reports how many voices are currently mixed.
func (m *Mixer) ActiveVoices() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read fills p with mixed little-endian int16 PCM. It always fills a whole
// number of frames and pads with silence when nothing is playing, so the
// stream never starves the device. Voices are summed in float and the
// final buffer is clamped to the 16-bit range after summation; clipping
// under many simultaneous voices is intentional distortion, not an error.
func (m *Mixer) Read(p []byte) (int, error) {
	frameBytes := 2 * m.channels
	frames := len(p) / frameBytes
	numSamples := frames * m.channels
	if numSamples == 0 {
		return 0, nil
	}

	mixBuf := make([]float64, numSamples)

	m.mu.Lock()
	kept := m.voices[:0]
	for _, v := range m.voices {
		if !v.playing {
			continue
		}
		chunk := v.extract(numSamples)
		if v.playing {
			kept = append(kept, v)
		}
		if len(chunk) == 0 {
			continue
		}

		gain := v.volume * m.volume
		if v.lpAmount > 0.01 {
			ch := v.sample.Channels
			for i, s := range chunk {
				x := float64(s) * gain
				c := i % ch
				v.lastY[c] = v.alpha*x + (1.0-v.alpha)*v.lastY[c]
				mixBuf[i] += v.lastY[c]
			}
		} else {
			for i, s := range chunk {
				mixBuf[i] += float64(s) * gain
			}
		}
	}
	m.voices = kept
	m.mu.Unlock()

	for i, s := range mixBuf {
		clamped := common.Clamp(s, -32768, 32767)
		v := int16(clamped)
		p[i*2] = byte(v)
		p[i*2+1] = byte(v >> 8)
	}

	return numSamples * 2, nil
}

// extract returns the next numSamples samples of the voice, advancing the
// cursor. Looping voices wrap and stay continuous across reads; a
// non-looping voice returns its short tail and is marked finished. Must be
// called with the mixer lock held.
func (v *Voice) extract(numSamples int) []int16 {
	data := v.sample.Data
	end := v.offset + numSamples

	if end <= len(data) {
		chunk := data[v.offset:end]
		v.offset = end
		// A read ending exactly at the buffer boundary must leave a
		// looping voice at the start, or the wrap loop below stalls.
		if v.loop && v.offset == len(data) {
			v.offset = 0
		}
		return chunk
	}

	if !v.loop {
		chunk := data[v.offset:]
		v.playing = false
		return chunk
	}

	chunk := make([]int16, 0, numSamples)
	for len(chunk) < numSamples {
		take := numSamples - len(chunk)
		if take > len(data)-v.offset {
			take = len(data) - v.offset
		}
		chunk = append(chunk, data[v.offset:v.offset+take]...)
		v.offset = (v.offset + take) % len(data)
	}
	return chunk
}
