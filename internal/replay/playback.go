package replay

import (
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

// Playback re-simulates a record one tick at a time.
type Playback struct {
	rec     Record
	session *jumper.Session
	next    int // Index of the next intent to apply
	dt      float64
}

// NewPlayback starts a fresh, unpersisted session for rec.
func NewPlayback(rec Record) *Playback {
	s := jumper.NewSession(rec.Config, nil, nil, nil)
	s.Start(rec.Seed)
	return &Playback{
		rec:     rec,
		session: s,
		dt:      1.0 / float64(rec.TickRate),
	}
}

// Session returns the session being replayed, for rendering.
func (p *Playback) Session() *jumper.Session {
	return p.session
}

// Done reports whether the replayed run has ended or reached the recorded
// tick count.
func (p *Playback) Done() bool {
	snap := p.session.Snapshot()
	return snap.GameOver || snap.Ticks >= p.rec.Ticks
}

// Step applies due intents and advances one tick. Returns false once done.
func (p *Playback) Step() bool {
	if p.Done() {
		return false
	}
	ticks := p.session.Snapshot().Ticks
	for p.next < len(p.rec.Intents) && p.rec.Intents[p.next].Tick <= ticks {
		switch jumper.MoveIntent(p.rec.Intents[p.next].Move) {
		case jumper.MoveLeft:
			p.session.MoveLeft()
		case jumper.MoveRight:
			p.session.MoveRight()
		default:
			p.session.StopMoving()
		}
		p.next++
	}
	p.session.Tick(p.dt)
	return true
}

// Result is the outcome of Verify.
type Result struct {
	Score float64
	Ticks int
	Match bool // Score and tick count equal the recorded values
}

// Verify replays rec to completion and compares the outcome.
func Verify(rec Record) Result {
	p := NewPlayback(rec)
	for p.Step() {
	}
	snap := p.session.Snapshot()
	return Result{
		Score: snap.Score,
		Ticks: snap.Ticks,
		Match: snap.Score == rec.Score && snap.Ticks == rec.Ticks,
	}
}
