package core

import "time"

// Sleeper is the time-delay capability used by the blink sequencer.
// Production code uses time.Sleep; tests inject a recorder so blink
// sequences can be verified without wall-clock waits.
type Sleeper func(time.Duration)

// Default blink waveform: 50ms high, 50ms low (100ms period, 50% duty).
const (
	DefaultOnPhase  = 50 * time.Millisecond
	DefaultOffPhase = 50 * time.Millisecond
)

// Blinker drives a timed on/off waveform on a pin. Blink blocks the
// calling goroutine for the entire sequence; there is no background
// scheduling and no cancellation. A caller that must stay responsive
// should not invoke it from its dispatch path expecting otherwise.
type Blinker struct {
	driver   PinDriver
	onPhase  time.Duration
	offPhase time.Duration

	// Sleep performs the inter-phase delay. Replaceable for tests.
	Sleep Sleeper
}

// NewBlinker returns a blinker with the default 50ms/50ms waveform.
func NewBlinker(driver PinDriver) *Blinker {
	return &Blinker{
		driver:   driver,
		onPhase:  DefaultOnPhase,
		offPhase: DefaultOffPhase,
		Sleep:    time.Sleep,
	}
}

// SetPhases overrides the high and low phase durations. Non-positive
// values keep the current setting.
func (b *Blinker) SetPhases(on, off time.Duration) {
	if on > 0 {
		b.onPhase = on
	}
	if off > 0 {
		b.offPhase = off
	}
}

// Blink runs complete set/wait/clear/wait cycles until durationMS is
// spent. The cycle count is durationMS divided by the waveform period,
// so a non-positive duration yields zero cycles and no register
// traffic. The first driver error aborts the sequence.
func (b *Blinker) Blink(pin Pin, durationMS int) error {
	period := int((b.onPhase + b.offPhase) / time.Millisecond)
	if period <= 0 {
		return nil
	}

	cycles := durationMS / period
	for i := 0; i < cycles; i++ {
		if err := b.driver.Set(pin); err != nil {
			return err
		}
		b.Sleep(b.onPhase)
		if err := b.driver.Clear(pin); err != nil {
			return err
		}
		b.Sleep(b.offPhase)
	}

	return nil
}
