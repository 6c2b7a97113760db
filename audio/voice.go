package audio

import "github.com/milk9111/memoryparasite/common"

// Sample is a decoded sound: interleaved signed 16-bit PCM. The buffer is
// read-only and shared by reference across every voice playing it.
type Sample struct {
	Data     []int16
	Channels int
}

// Voice is one playing instance of a Sample. All fields except the shared
// sample buffer are guarded by the owning mixer's lock.
type Voice struct {
	sample *Sample
	offset int

	volume  float64
	loop    bool
	playing bool

	// One-pole low-pass state. alpha is precomputed from the clamped
	// low-pass amount: amount 0 leaves the signal alone, amount 1 gives
	// alpha 0.05 (heavy smoothing). lastY persists across mix callbacks.
	lpAmount float64
	alpha    float64
	lastY    []float64
}

func newVoice(sample *Sample, volume float64, loop bool, lowPass float64) *Voice {
	lp := common.Clamp01(lowPass)
	return &Voice{
		sample:   sample,
		volume:   volume,
		loop:     loop,
		playing:  true,
		lpAmount: lp,
		alpha:    1.0 - lp*0.95,
		lastY:    make([]float64, sample.Channels),
	}
}

// Handle is the caller's reference to a playing voice. A zero Handle (no
// voice) is inert: Stop and SetVolume are safe no-ops. Both methods take
// the mixer lock, so they may be called from any goroutine.
type Handle struct {
	mixer *Mixer
	voice *Voice
}

func (h Handle) Stop() {
	if h.voice == nil || h.mixer == nil {
		return
	}
	h.mixer.mu.Lock()
	h.voice.playing = false
	h.mixer.mu.Unlock()
}

func (h Handle) SetVolume(volume float64) {
	if h.voice == nil || h.mixer == nil {
		return
	}
	h.mixer.mu.Lock()
	h.voice.volume = volume
	h.mixer.mu.Unlock()
}
