package jumper

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

const testDT = 1.0 / 60.0

// memPrefs is an in-memory Prefs. failGet and failSet make every call fail.
type memPrefs struct {
	values  map[string]float64
	failGet bool
	failSet bool
	writes  int
}

var errPrefs = errors.New("prefs unavailable")

func newMemPrefs() *memPrefs {
	return &memPrefs{values: make(map[string]float64)}
}

func (m *memPrefs) GetInt(_ context.Context, key string) (int, error) {
	if m.failGet {
		return 0, errPrefs
	}
	return int(m.values[key]), nil
}

func (m *memPrefs) GetFloat(_ context.Context, key string) (float64, error) {
	if m.failGet {
		return 0, errPrefs
	}
	return m.values[key], nil
}

func (m *memPrefs) SetInt(_ context.Context, key string, v int) error {
	if m.failSet {
		return errPrefs
	}
	m.writes++
	m.values[key] = float64(v)
	return nil
}

func (m *memPrefs) SetFloat(_ context.Context, key string, v float64) error {
	if m.failSet {
		return errPrefs
	}
	m.writes++
	m.values[key] = v
	return nil
}

func newTestSession(cfg config.JumperConfig, prefs Prefs) *Session {
	s := NewSession(cfg, nil, prefs, nil)
	s.Load(context.Background())
	return s
}

func TestSessionStartPopulatesWorld(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)

	if s.Snapshot().State != StateMainMenu {
		t.Fatalf("new session state = %v, expected main-menu", s.Snapshot().State)
	}
	if s.Tick(testDT) {
		t.Error("Tick in main menu should not end a run")
	}

	s.Start(1)
	snap := s.Snapshot()
	if snap.State != StateRunning || snap.Score != 0 || snap.CameraY != 0 {
		t.Errorf("after Start: %+v", snap)
	}
	// Ground plus four layers up to the lookahead line
	if got := s.arena.Count(KindPlatform); got != 5 {
		t.Errorf("platforms after Start = %d, expected 5", got)
	}
	if p := s.Player(); p.Pos != (core.Vec2{}) || p.Vel != (core.Vec2{}) {
		t.Errorf("player should start at rest at the origin, got %+v", p)
	}
}

func TestSessionStartIgnoredWhileRunning(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.Start(1)
	for i := 0; i < 10; i++ {
		s.Tick(testDT)
	}

	s.Start(2)
	s.Restart(3)
	if s.Snapshot().Ticks != 10 {
		t.Errorf("Start/Restart during a run should be ignored, ticks = %d", s.Snapshot().Ticks)
	}
}

func TestSessionLandsOnGround(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.Start(1)

	bounced := false
	for i := 0; i < 120 && !bounced; i++ {
		s.Tick(testDT)
		if s.Player().Vel.Y < 0 {
			bounced = true
		}
	}
	if !bounced {
		t.Fatal("player should bounce off the ground platform")
	}
	if s.Player().Vel.Y != -750 {
		t.Errorf("bounce velocity = %v, expected -750", s.Player().Vel.Y)
	}
}

func TestSessionScoreFromHeight(t *testing.T) {
	cfg := config.DefaultJumperConfig()
	cfg.Physics.Gravity = 0
	s := newTestSession(cfg, nil)
	s.Start(1)
	s.arena.Reset()

	s.player.Pos.Y = -450
	s.Tick(testDT)

	if s.Snapshot().Score != 450 {
		t.Errorf("score at y=-450 = %v, expected 450", s.Snapshot().Score)
	}
	if s.Snapshot().CameraY != -550 {
		t.Errorf("camera = %v, expected -550", s.Snapshot().CameraY)
	}

	// Falling back does not lower the score
	s.player.Pos.Y = -300
	s.Tick(testDT)
	if s.Snapshot().Score != 450 {
		t.Errorf("score after falling = %v, expected 450", s.Snapshot().Score)
	}
}

func TestSessionScoreAndCameraMonotonic(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.Start(42)

	prevScore, prevCam := 0.0, 0.0
	for i := 0; i < 3000; i++ {
		switch (i / 40) % 3 {
		case 0:
			s.MoveLeft()
		case 1:
			s.MoveRight()
		default:
			s.StopMoving()
		}
		ended := s.Tick(testDT)

		snap := s.Snapshot()
		if snap.Score < prevScore {
			t.Fatalf("tick %d: score decreased %v -> %v", i, prevScore, snap.Score)
		}
		if snap.CameraY > prevCam {
			t.Fatalf("tick %d: camera moved down %v -> %v", i, prevCam, snap.CameraY)
		}
		prevScore, prevCam = snap.Score, snap.CameraY
		if ended {
			break
		}
	}
}

func TestSessionFallDeath(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.Start(1)
	s.arena.Reset()

	ended := false
	for i := 0; i < 200 && !ended; i++ {
		ended = s.Tick(testDT)
	}
	if !ended {
		t.Fatal("falling with no platforms should end the run")
	}
	if !s.Snapshot().GameOver {
		t.Error("snapshot should report game over")
	}
	if s.Player().Pos.Y <= 400 {
		t.Errorf("run ended at y=%v, expected below the view bottom (400)", s.Player().Pos.Y)
	}

	ticks := s.Snapshot().Ticks
	if s.Tick(testDT) {
		t.Error("Tick after game over should not report another end")
	}
	if s.Snapshot().Ticks != ticks {
		t.Error("simulation should halt after game over")
	}
}

func TestSessionEnemyGameOverOnce(t *testing.T) {
	cfg := config.DefaultJumperConfig()
	cfg.Physics.Gravity = 0
	prefs := newMemPrefs()
	s := newTestSession(cfg, prefs)
	s.Start(1)
	s.arena.Reset()
	s.arena.Spawn(NewEnemy(core.Vec2{}, core.Vec2{X: 40, Y: 40}))
	s.arena.Spawn(NewEnemy(core.Vec2{X: 5}, core.Vec2{X: 40, Y: 40}))
	s.arena.Spawn(NewCoin(core.Vec2{}, core.Vec2{X: 20, Y: 20}))

	if !s.Tick(testDT) {
		t.Fatal("enemy contact should end the run")
	}
	s.endRun()

	req, ok := s.TakePendingSave()
	if !ok {
		t.Fatal("game over should queue a save")
	}
	if req.Coins != 1 || s.LastRun().Coins != 1 {
		t.Errorf("saved coins = %d, run coins = %d, expected the overlapped coin in both", req.Coins, s.LastRun().Coins)
	}
	if _, ok := s.TakePendingSave(); ok {
		t.Error("only one save should be queued per game over")
	}
}

func TestSessionCollectsCoins(t *testing.T) {
	cfg := config.DefaultJumperConfig()
	cfg.Physics.Gravity = 0
	cfg.Spawn.PCoin = 0
	s := newTestSession(cfg, nil)
	s.Start(1)
	s.arena.Reset()
	s.arena.Spawn(NewCoin(core.Vec2{}, core.Vec2{X: 20, Y: 20}))

	s.Tick(testDT)

	if s.Snapshot().Coins != 1 {
		t.Errorf("coins = %d, expected 1", s.Snapshot().Coins)
	}
	if s.arena.Count(KindCoin) != 0 {
		t.Error("collected coin should be removed")
	}
}

func TestSessionHighScorePersisted(t *testing.T) {
	tests := []struct {
		name     string
		saved    float64
		score    float64
		expected float64
		isNew    bool
	}{
		{"beats saved", 900, 1200, 1200, true},
		{"below saved", 1500, 1200, 1500, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefs := newMemPrefs()
			prefs.values[KeyHighScore] = tc.saved
			prefs.values[KeyCoins] = 7
			s := newTestSession(config.DefaultJumperConfig(), prefs)

			s.Start(1)
			s.score = tc.score
			s.endRun()

			req, ok := s.TakePendingSave()
			if !ok {
				t.Fatal("expected pending save")
			}
			if req.NewHighScore != tc.isNew || req.Coins != 7 {
				t.Errorf("save request = %+v", req)
			}
			if !SaveProgress(context.Background(), prefs, req, nil) {
				t.Error("SaveProgress should succeed")
			}
			if prefs.values[KeyHighScore] != tc.expected {
				t.Errorf("saved high score = %v, expected %v", prefs.values[KeyHighScore], tc.expected)
			}
			if s.Snapshot().HighScore != tc.expected {
				t.Errorf("session high score = %v, expected %v", s.Snapshot().HighScore, tc.expected)
			}
		})
	}
}

func TestSessionFailingPrefs(t *testing.T) {
	prefs := newMemPrefs()
	prefs.values[KeyCoins] = 50
	prefs.failGet = true
	prefs.failSet = true

	s := newTestSession(config.DefaultJumperConfig(), prefs)
	if snap := s.Snapshot(); snap.Coins != 0 || snap.HighScore != 0 {
		t.Errorf("failed load should leave defaults, got %+v", snap)
	}

	s.Start(1)
	s.score = 10
	s.endRun()
	s.Flush(context.Background())

	if !s.Snapshot().GameOver {
		t.Error("save failure must not affect the session")
	}
	if prefs.writes != 0 {
		t.Errorf("writes = %d, expected 0", prefs.writes)
	}
}

func TestSessionNilPrefs(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.Start(1)
	s.endRun()
	s.Flush(context.Background())
	if err := s.SelectCharacter(context.Background(), 0); err != nil {
		t.Errorf("SelectCharacter with nil prefs: %v", err)
	}
}

func TestSessionShop(t *testing.T) {
	ctx := context.Background()
	prefs := newMemPrefs()
	prefs.values[KeyCoins] = 150
	s := newTestSession(config.DefaultJumperConfig(), prefs)

	if err := s.SelectCharacter(ctx, 1); !errors.Is(err, ErrLocked) {
		t.Errorf("selecting a locked character: %v, expected ErrLocked", err)
	}
	if err := s.SelectCharacter(ctx, 9); !errors.Is(err, ErrUnknownCharacter) {
		t.Errorf("selecting out of range: %v, expected ErrUnknownCharacter", err)
	}
	if err := s.Purchase(ctx, 2); !errors.Is(err, ErrInsufficientCoins) {
		t.Errorf("purchase without coins: %v, expected ErrInsufficientCoins", err)
	}

	if err := s.Purchase(ctx, 1); err != nil {
		t.Fatalf("Purchase(1): %v", err)
	}
	if s.Snapshot().Coins != 50 || prefs.values[KeyCoins] != 50 {
		t.Errorf("coins after purchase = %d (saved %v), expected 50", s.Snapshot().Coins, prefs.values[KeyCoins])
	}
	if prefs.values[KeyOwnedCharacters] != 2 {
		t.Errorf("owned mask = %v, expected 2", prefs.values[KeyOwnedCharacters])
	}
	if err := s.Purchase(ctx, 1); err != nil || s.Snapshot().Coins != 50 {
		t.Errorf("buying an owned character should be a free no-op, err=%v coins=%d", err, s.Snapshot().Coins)
	}

	if err := s.SelectCharacter(ctx, 1); err != nil {
		t.Fatalf("SelectCharacter(1): %v", err)
	}
	if s.Snapshot().SelectedCharacter != 1 || prefs.values[KeySelectedCharacter] != 1 {
		t.Error("selection should be stored")
	}

	s.Start(1)
	if s.Player().Character != 1 {
		t.Errorf("run character = %d, expected 1", s.Player().Character)
	}
	if err := s.SelectCharacter(ctx, 0); !errors.Is(err, ErrRunning) {
		t.Errorf("select during run: %v, expected ErrRunning", err)
	}
	if err := s.Purchase(ctx, 3); !errors.Is(err, ErrRunning) {
		t.Errorf("purchase during run: %v, expected ErrRunning", err)
	}

	// A reloaded session keeps the selection and ownership
	s2 := newTestSession(config.DefaultJumperConfig(), prefs)
	if s2.Snapshot().SelectedCharacter != 1 || !s2.Owns(1) {
		t.Error("progress should survive a reload")
	}
}

func TestSessionLoadRejectsUnownedSelection(t *testing.T) {
	prefs := newMemPrefs()
	prefs.values[KeySelectedCharacter] = 3
	s := newTestSession(config.DefaultJumperConfig(), prefs)

	if s.Snapshot().SelectedCharacter != 0 {
		t.Errorf("unowned saved selection should fall back to 0, got %d", s.Snapshot().SelectedCharacter)
	}
}

func TestSessionPause(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.Start(1)
	s.Tick(testDT)

	s.TogglePause()
	before := s.Player()
	for i := 0; i < 10; i++ {
		s.Tick(testDT)
	}
	if s.Player() != before || s.Snapshot().Ticks != 1 {
		t.Error("paused session should not advance")
	}

	s.TogglePause()
	s.Tick(testDT)
	if s.Snapshot().Ticks != 2 {
		t.Errorf("ticks after resume = %d, expected 2", s.Snapshot().Ticks)
	}
}

func TestSessionClampsDT(t *testing.T) {
	a := newTestSession(config.DefaultJumperConfig(), nil)
	b := newTestSession(config.DefaultJumperConfig(), nil)
	a.Start(1)
	b.Start(1)

	a.Tick(1.0)
	b.Tick(a.cfg.Physics.MaxDT)

	if a.Player() != b.Player() {
		t.Errorf("large dt should be clamped: %+v vs %+v", a.Player(), b.Player())
	}
}

func TestSessionIntentJournal(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.MoveLeft() // ignored outside a run
	s.Start(1)

	s.MoveLeft()
	s.MoveLeft()
	s.Tick(testDT)
	s.Tick(testDT)
	s.MoveRight()
	s.Tick(testDT)
	s.StopMoving()

	expected := []IntentChange{{0, MoveLeft}, {2, MoveRight}, {3, MoveNone}}
	if len(s.intents) != len(expected) {
		t.Fatalf("journal = %v, expected %v", s.intents, expected)
	}
	for i := range expected {
		if s.intents[i] != expected[i] {
			t.Errorf("journal[%d] = %v, expected %v", i, s.intents[i], expected[i])
		}
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (Snapshot, Player) {
		s := newTestSession(config.DefaultJumperConfig(), nil)
		s.Start(12345)
		for i := 0; i < 1200; i++ {
			if i%90 == 0 {
				s.MoveRight()
			} else if i%90 == 45 {
				s.MoveLeft()
			}
			if s.Tick(testDT) {
				break
			}
		}
		return s.Snapshot(), s.Player()
	}

	snap1, p1 := run()
	snap2, p2 := run()
	if snap1 != snap2 || p1 != p2 {
		t.Errorf("runs diverged:\n%+v %+v\n%+v %+v", snap1, p1, snap2, p2)
	}
}

func TestSessionRestart(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.Restart(1)
	if s.Snapshot().State != StateMainMenu {
		t.Error("Restart from the main menu should be ignored")
	}

	s.Start(1)
	s.player.Pos.Y = 1000
	if !s.Tick(testDT) {
		t.Fatal("expected game over")
	}
	s.Restart(2)

	snap := s.Snapshot()
	if snap.State != StateRunning || snap.Score != 0 || snap.Ticks != 0 {
		t.Errorf("after Restart: %+v", snap)
	}
	if s.lastRun.Seed != 1 {
		t.Errorf("last run seed = %d, expected 1", s.lastRun.Seed)
	}
}

func TestSessionConfigReloadAppliesNextRun(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.Start(1)
	s.Tick(testDT)
	before := s.Player().Vel.Y

	reloaded := config.DefaultJumperConfig()
	reloaded.Physics.Gravity = 0
	s.SetConfig(reloaded)
	s.Tick(testDT)

	if gain := s.Player().Vel.Y - before; math.Abs(gain-1200*testDT) > 1e-9 {
		t.Errorf("velocity gain after reload = %v, expected %v from the run's gravity", gain, 1200*testDT)
	}
	if s.Config().Physics.Gravity != 1200 {
		t.Errorf("Config() gravity mid-run = %v, expected 1200", s.Config().Physics.Gravity)
	}
	if s.NextConfig().Physics.Gravity != 0 {
		t.Errorf("NextConfig() gravity = %v, expected 0", s.NextConfig().Physics.Gravity)
	}

	s.QuitToMenu()
	s.Start(2)
	s.Tick(testDT)
	if s.Config().Physics.Gravity != 0 {
		t.Errorf("Config() gravity in the next run = %v, expected 0", s.Config().Physics.Gravity)
	}
	if v := s.Player().Vel.Y; v != 0 {
		t.Errorf("velocity with zero gravity = %v, expected 0", v)
	}
}

func TestSessionStep(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	s.Start(1)

	in := core.NewInputFrame()
	in.Set(core.ActionMoveRight)
	res := s.Step(in, testDT)
	if s.Player().Intent != MoveRight || res.Ended {
		t.Errorf("Step should steer right without ending, intent=%v", s.Player().Intent)
	}

	in = core.NewInputFrame()
	in.Set(core.ActionPause)
	res = s.Step(in, testDT)
	if !res.State.Paused {
		t.Error("pause action should pause the session")
	}
}

func TestSessionRender(t *testing.T) {
	s := newTestSession(config.DefaultJumperConfig(), nil)
	scr := core.NewScreen(40, 24)

	s.Render(scr)
	if !strings.Contains(scr.String(), "JUMPER") {
		t.Error("main menu should show the title")
	}

	s.Start(1)
	s.Render(scr)
	if !strings.ContainsRune(scr.String(), '@') {
		t.Error("running view should show the player glyph")
	}
	if !strings.ContainsRune(scr.String(), GlyphNormal) {
		t.Error("running view should show the ground platform")
	}
	if !strings.Contains(scr.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", scr.Row(0))
	}

	s.player.Pos.Y = 1000
	s.Tick(testDT)
	s.Render(scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("game over overlay should be drawn")
	}
}
