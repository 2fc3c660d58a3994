package replay

import (
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

const testRate = 60

// playRun drives a session with a fixed steering pattern and returns it
// after the run has ended, either by dying or by quitting after maxTicks.
func playRun(t *testing.T, seed int64, maxTicks int) *jumper.Session {
	t.Helper()
	s := jumper.NewSession(config.DefaultJumperConfig(), nil, nil, nil)
	s.Start(seed)

	dt := 1.0 / testRate
	for i := 0; i < maxTicks; i++ {
		switch (i / 37) % 4 {
		case 0:
			s.MoveLeft()
		case 1:
			s.StopMoving()
		case 2:
			s.MoveRight()
		default:
			s.StopMoving()
		}
		if s.Tick(dt) {
			return s
		}
	}
	s.QuitToMenu()
	return s
}

func TestVerifyMatchesRecordedRun(t *testing.T) {
	tests := []struct {
		name     string
		seed     int64
		maxTicks int
	}{
		{"short quit", 1, 120},
		{"long run", 2024, 5000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := playRun(t, tc.seed, tc.maxTicks)
			rec := FromSession(s, testRate)

			if rec.Ticks == 0 {
				t.Fatal("recorded run should have ticks")
			}
			res := Verify(rec)
			if !res.Match {
				t.Errorf("replay diverged: got score %v ticks %d, recorded %v ticks %d",
					res.Score, res.Ticks, rec.Score, rec.Ticks)
			}
		})
	}
}

func TestRecordKeepsRunConfigAcrossReload(t *testing.T) {
	s := jumper.NewSession(config.DefaultJumperConfig(), nil, nil, nil)
	s.Start(3)

	dt := 1.0 / testRate
	s.MoveRight()
	ended := false
	for i := 0; i < 600 && !ended; i++ {
		if i == 100 {
			reloaded := config.DefaultJumperConfig()
			reloaded.Physics.Gravity = 300
			reloaded.Physics.JumpForce = -1500
			s.SetConfig(reloaded)
		}
		ended = s.Tick(dt)
	}
	if !ended {
		s.QuitToMenu()
	}

	rec := FromSession(s, testRate)
	if rec.Config.Physics.Gravity != 1200 || rec.Config.Physics.JumpForce != -750 {
		t.Errorf("recorded physics = %+v, expected the config the run started with", rec.Config.Physics)
	}
	if res := Verify(rec); !res.Match {
		t.Errorf("replay diverged after reload: got score %v ticks %d, recorded %v ticks %d",
			res.Score, res.Ticks, rec.Score, rec.Ticks)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec := FromSession(playRun(t, 5, 300), testRate)
	rec.Score += 100

	if Verify(rec).Match {
		t.Error("tampered score should not verify")
	}
}

func TestEncodeDecode(t *testing.T) {
	rec := FromSession(playRun(t, 9, 400), testRate)

	data, err := Encode(rec)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	if got.Seed != rec.Seed || got.Score != rec.Score || got.Ticks != rec.Ticks {
		t.Errorf("decoded header = %+v, expected %+v", got, rec)
	}
	if got.Config != rec.Config {
		t.Error("decoded config differs")
	}
	if len(got.Intents) != len(rec.Intents) {
		t.Fatalf("decoded %d intents, expected %d", len(got.Intents), len(rec.Intents))
	}
	if !Verify(got).Match {
		t.Error("decoded record should verify")
	}
}

func TestDecodeErrors(t *testing.T) {
	old, err := msgpack.Marshal(&Record{Version: FormatVersion + 1, TickRate: 60})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(old); !errors.Is(err, ErrVersion) {
		t.Errorf("Decode(other version) = %v, expected ErrVersion", err)
	}

	noRate, err := msgpack.Marshal(&Record{Version: FormatVersion})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(noRate); err == nil {
		t.Error("Decode() should reject a zero tick rate")
	}

	if _, err := Decode([]byte{0xc1}); err == nil {
		t.Error("Decode() should reject garbage")
	}
}

func TestPlaybackStepsUntilDone(t *testing.T) {
	rec := FromSession(playRun(t, 3, 200), testRate)
	p := NewPlayback(rec)

	steps := 0
	for p.Step() {
		steps++
	}
	if steps != rec.Ticks {
		t.Errorf("Playback stepped %d times, expected %d", steps, rec.Ticks)
	}
	if p.Step() {
		t.Error("Step after done should report false")
	}
	if p.Session().Snapshot().Ticks != rec.Ticks {
		t.Errorf("session ticks = %d, expected %d", p.Session().Snapshot().Ticks, rec.Ticks)
	}
}
