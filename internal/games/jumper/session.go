// Package jumper implements an endless vertical jumper: the player bounces
// upward across procedurally spawned platforms, collecting coins and avoiding
// enemies, scoring by the maximum height reached.
//
// The package holds pure simulation logic. Presentation drives a Session
// through its command surface and reads it back through Snapshot and Render.
package jumper

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Errors returned by the shop commands.
var (
	ErrRunning           = errors.New("jumper: not allowed during a run")
	ErrUnknownCharacter  = errors.New("jumper: unknown character")
	ErrLocked            = errors.New("jumper: character not owned")
	ErrInsufficientCoins = errors.New("jumper: not enough coins")
)

// State is the session state machine state.
type State int

const (
	StateMainMenu State = iota // Not simulated
	StateRunning
	StateGameOver // Simulation halted until Restart
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main-menu"
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// IntentChange records a steering change for replays. Tick is the number of
// ticks simulated before the change took effect.
type IntentChange struct {
	Tick   int
	Intent MoveIntent
}

// RunSummary describes the most recently finished run.
type RunSummary struct {
	Score     float64
	Coins     int // Coins collected during the run
	Character int
	Seed      int64
	Ticks     int
	Intents   []IntentChange
}

// Snapshot is the read-only view presentation polls each frame.
type Snapshot struct {
	State             State
	Score             float64
	Coins             int
	HighScore         float64
	GameOver          bool
	Paused            bool
	SelectedCharacter int
	CameraY           float64
	Ticks             int
}

// Session owns one player's game: the live run plus wallet, high score and
// character selection. It is not safe for concurrent use; a single
// simulation goroutine drives it.
type Session struct {
	cfg     config.JumperConfig // Tunables of the current run
	nextCfg config.JumperConfig // Applied at the next reset
	catalog []Character
	prefs   Prefs
	logger  *log.Logger

	arena   Arena
	spawner *Spawner
	player  Player
	hooks   CollisionHooks

	state    State
	paused   bool
	score    float64
	cameraY  float64
	runCoins int
	seed     int64
	ticks    int
	intents  []IntentChange

	coins     int
	highScore float64
	owned     uint64
	selected  int

	pending *SaveRequest
	lastRun RunSummary
}

// NewSession creates a session in the main menu. prefs and logger may be nil.
func NewSession(cfg config.JumperConfig, catalog []Character, prefs Prefs, logger *log.Logger) *Session {
	if len(catalog) == 0 {
		catalog = DefaultCatalog()
	}
	s := &Session{
		cfg:     cfg,
		nextCfg: cfg,
		catalog: catalog,
		prefs:   prefs,
		logger:  orDiscard(logger),
		spawner: NewSpawner(cfg, 0),
		state:   StateMainMenu,
	}
	s.hooks = CollisionHooks{
		CollectCoin: s.collectCoin,
		HitEnemy:    s.endRun,
	}
	return s
}

// Load reads saved progress from prefs. Failed reads leave zero defaults.
func (s *Session) Load(ctx context.Context) {
	p := LoadProgress(ctx, s.prefs, s.logger)
	s.coins = p.Coins
	s.highScore = p.HighScore
	s.owned = p.Owned
	s.selected = 0
	if p.Selected > 0 && p.Selected < len(s.catalog) && s.Owns(p.Selected) {
		s.selected = p.Selected
	}
}

// SetConfig replaces the tunables. Takes effect at the next Start or Restart;
// a run in progress keeps the config it started with.
func (s *Session) SetConfig(cfg config.JumperConfig) {
	s.nextCfg = cfg
}

// Config returns the tunables of the current or last run.
func (s *Session) Config() config.JumperConfig {
	return s.cfg
}

// NextConfig returns the tunables the next run will start with.
func (s *Session) NextConfig() config.JumperConfig {
	return s.nextCfg
}

// Catalog returns the character catalog.
func (s *Session) Catalog() []Character {
	return s.catalog
}

// Start begins a run from the main menu or after game over.
// It is a no-op while a run is in progress.
func (s *Session) Start(seed int64) {
	if s.state == StateRunning {
		return
	}
	s.reset(seed)
}

// Restart begins a new run after game over. It is a no-op in other states.
func (s *Session) Restart(seed int64) {
	if s.state != StateGameOver {
		return
	}
	s.reset(seed)
}

// QuitToMenu abandons the current state and returns to the main menu.
// A run in progress is ended first so its progress is saved.
func (s *Session) QuitToMenu() {
	s.endRun()
	s.state = StateMainMenu
}

func (s *Session) reset(seed int64) {
	s.cfg = s.nextCfg
	cfg := s.cfg
	s.spawner = NewSpawner(cfg, seed)
	s.arena.Reset()

	s.player = Player{
		Pos:       core.Vec2{},
		Size:      vec(cfg.Sizes.Player),
		Character: s.selected,
	}
	s.arena.Spawn(NewPlatform(core.Vec2{X: 0, Y: cfg.World.GroundY}, vec(cfg.Sizes.Platform), PlatformState{Type: PlatformNormal}))

	s.state = StateRunning
	s.paused = false
	s.score = 0
	s.cameraY = 0
	s.runCoins = 0
	s.seed = seed
	s.ticks = 0
	s.intents = nil
	s.pending = nil

	s.spawner.Fill(&s.arena, s.cameraY, s.score)
}

// MoveLeft steers the player left.
func (s *Session) MoveLeft() { s.setIntent(MoveLeft) }

// MoveRight steers the player right.
func (s *Session) MoveRight() { s.setIntent(MoveRight) }

// StopMoving clears horizontal steering.
func (s *Session) StopMoving() { s.setIntent(MoveNone) }

func (s *Session) setIntent(m MoveIntent) {
	if s.state != StateRunning || s.player.Intent == m {
		return
	}
	s.player.Intent = m
	s.intents = append(s.intents, IntentChange{Tick: s.ticks, Intent: m})
}

// TogglePause pauses or resumes a run in progress.
func (s *Session) TogglePause() {
	if s.state != StateRunning {
		return
	}
	s.paused = !s.paused
}

// Tick advances the simulation by dt seconds, clamped to physics.max_dt.
// Returns true only on the tick the run ended.
func (s *Session) Tick(dt float64) bool {
	if s.state != StateRunning || s.paused || dt <= 0 {
		return false
	}
	dt = core.ClampF(dt, 0, s.cfg.Physics.MaxDT)
	s.ticks++

	world := s.cfg.World
	halfWidth := world.PlayWidth / 2

	prevBottom := s.player.Box().Bottom()
	s.player.Integrate(dt, s.cfg.Physics, halfWidth)
	advancePlatforms(&s.arena, dt, halfWidth)
	ResolveCollisions(&s.player, prevBottom, &s.arena, s.cfg.Physics, s.hooks)
	if s.state != StateRunning {
		s.arena.Sweep()
		return true
	}

	if h := -s.player.Pos.Y; h > s.score {
		s.score = h
	}
	if s.player.Pos.Y < s.cameraY+world.FollowMargin {
		s.cameraY = s.player.Pos.Y - world.FollowMargin
	}

	s.spawner.Fill(&s.arena, s.cameraY, s.score)
	s.spawner.Retire(&s.arena, s.cameraY)
	s.arena.Sweep()

	if s.player.Pos.Y > s.cameraY+world.ViewHeight/2 {
		s.endRun()
		return true
	}
	return false
}

func (s *Session) collectCoin() {
	s.coins++
	s.runCoins++
}

// endRun moves a running session to game over and queues the save.
// Calls in any other state are no-ops.
func (s *Session) endRun() {
	if s.state != StateRunning {
		return
	}
	s.state = StateGameOver
	s.paused = false

	req := SaveRequest{Coins: s.coins}
	if s.score > s.highScore {
		s.highScore = s.score
		req.HighScore = s.score
		req.NewHighScore = true
	}
	s.pending = &req

	s.lastRun = RunSummary{
		Score:     s.score,
		Coins:     s.runCoins,
		Character: s.player.Character,
		Seed:      s.seed,
		Ticks:     s.ticks,
		Intents:   append([]IntentChange(nil), s.intents...),
	}
}

// TakePendingSave returns the save queued by the last game over, once.
func (s *Session) TakePendingSave() (SaveRequest, bool) {
	if s.pending == nil {
		return SaveRequest{}, false
	}
	req := *s.pending
	s.pending = nil
	return req, true
}

// Flush synchronously writes any pending save. Failures are logged only.
func (s *Session) Flush(ctx context.Context) {
	if req, ok := s.TakePendingSave(); ok {
		SaveProgress(ctx, s.prefs, req, s.logger)
	}
}

// LastRun returns the summary of the most recently finished run.
func (s *Session) LastRun() RunSummary {
	return s.lastRun
}

// Owns reports whether catalog entry i is available to the player.
func (s *Session) Owns(i int) bool {
	if i < 0 || i >= len(s.catalog) {
		return false
	}
	return i == 0 || s.catalog[i].Price == 0 || s.owned&(1<<uint(i)) != 0
}

// SelectCharacter picks the character for the next run.
func (s *Session) SelectCharacter(ctx context.Context, i int) error {
	if s.state == StateRunning {
		return ErrRunning
	}
	if i < 0 || i >= len(s.catalog) {
		return ErrUnknownCharacter
	}
	if !s.Owns(i) {
		return ErrLocked
	}
	s.selected = i
	if s.prefs != nil {
		if err := s.prefs.SetInt(ctx, KeySelectedCharacter, i); err != nil {
			s.logger.Warn("could not save value", "key", KeySelectedCharacter, "error", err)
		}
	}
	return nil
}

// Purchase buys catalog entry i with wallet coins. Buying an owned
// character is a no-op.
func (s *Session) Purchase(ctx context.Context, i int) error {
	if s.state == StateRunning {
		return ErrRunning
	}
	if i < 0 || i >= len(s.catalog) || i >= 64 {
		return ErrUnknownCharacter
	}
	if s.Owns(i) {
		return nil
	}
	price := s.catalog[i].Price
	if s.coins < price {
		return ErrInsufficientCoins
	}
	s.coins -= price
	s.owned |= 1 << uint(i)

	if s.prefs != nil {
		if err := s.prefs.SetInt(ctx, KeyCoins, s.coins); err != nil {
			s.logger.Warn("could not save value", "key", KeyCoins, "error", err)
		}
		if err := s.prefs.SetInt(ctx, KeyOwnedCharacters, int(s.owned)); err != nil {
			s.logger.Warn("could not save value", "key", KeyOwnedCharacters, "error", err)
		}
	}
	return nil
}

// Snapshot returns the current read-only state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State:             s.state,
		Score:             s.score,
		Coins:             s.coins,
		HighScore:         s.highScore,
		GameOver:          s.state == StateGameOver,
		Paused:            s.paused,
		SelectedCharacter: s.selected,
		CameraY:           s.cameraY,
		Ticks:             s.ticks,
	}
}

// Player returns a copy of the player.
func (s *Session) Player() Player {
	return s.player
}

// Entities calls fn for every live entity.
func (s *Session) Entities(fn func(e Entity)) {
	s.arena.Each(func(_ Handle, e *Entity) {
		fn(*e)
	})
}

// Step applies one frame of platform input and advances by dt seconds.
func (s *Session) Step(in core.InputFrame, dt float64) core.StepResult {
	if in.Has(core.ActionPause) {
		s.TogglePause()
	}
	switch {
	case in.Has(core.ActionMoveLeft):
		s.MoveLeft()
	case in.Has(core.ActionMoveRight):
		s.MoveRight()
	case in.Has(core.ActionStop):
		s.StopMoving()
	}

	ended := s.Tick(dt)
	return core.StepResult{State: s.State(), Ended: ended}
}

// State returns the platform-level game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:     int(s.score),
		Coins:     s.coins,
		HighScore: int(s.highScore),
		GameOver:  s.state == StateGameOver,
		Paused:    s.paused,
	}
}
