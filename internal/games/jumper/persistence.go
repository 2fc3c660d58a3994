package jumper

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// Preference keys.
const (
	KeyCoins             = "coins"
	KeyHighScore         = "high_score"
	KeyOwnedCharacters   = "owned_characters"
	KeySelectedCharacter = "selected_character"
)

// Prefs is the key-value store the session persists progress to.
// Missing keys read as zero with a nil error.
type Prefs interface {
	GetInt(ctx context.Context, key string) (int, error)
	GetFloat(ctx context.Context, key string) (float64, error)
	SetInt(ctx context.Context, key string, v int) error
	SetFloat(ctx context.Context, key string, v float64) error
}

// Progress is the persisted state loaded at startup.
type Progress struct {
	Coins     int
	HighScore float64
	Owned     uint64 // Bit i set = catalog entry i purchased
	Selected  int
}

// SaveRequest is the snapshot written when a run ends. It is a value copy,
// so it can be saved from another goroutine while the session keeps going.
type SaveRequest struct {
	Coins        int
	HighScore    float64
	NewHighScore bool // HighScore is written only when set
}

// LoadProgress reads saved progress. Any failed read falls back to zero for
// that value and is logged; it never fails the caller.
func LoadProgress(ctx context.Context, prefs Prefs, logger *log.Logger) Progress {
	var p Progress
	if prefs == nil {
		return p
	}
	logger = orDiscard(logger)

	var err error
	if p.Coins, err = prefs.GetInt(ctx, KeyCoins); err != nil {
		logger.Warn("could not load saved value, using default", "key", KeyCoins, "error", err)
		p.Coins = 0
	}
	if p.HighScore, err = prefs.GetFloat(ctx, KeyHighScore); err != nil {
		logger.Warn("could not load saved value, using default", "key", KeyHighScore, "error", err)
		p.HighScore = 0
	}
	owned, err := prefs.GetInt(ctx, KeyOwnedCharacters)
	if err != nil {
		logger.Warn("could not load saved value, using default", "key", KeyOwnedCharacters, "error", err)
		owned = 0
	}
	p.Owned = uint64(owned)
	if p.Selected, err = prefs.GetInt(ctx, KeySelectedCharacter); err != nil {
		logger.Warn("could not load saved value, using default", "key", KeySelectedCharacter, "error", err)
		p.Selected = 0
	}
	return p
}

// SaveProgress writes a game-over snapshot. Write failures are logged and
// otherwise ignored. Returns true if every write succeeded.
func SaveProgress(ctx context.Context, prefs Prefs, req SaveRequest, logger *log.Logger) bool {
	if prefs == nil {
		return false
	}
	logger = orDiscard(logger)
	ok := true
	if req.NewHighScore {
		if err := prefs.SetFloat(ctx, KeyHighScore, req.HighScore); err != nil {
			logger.Warn("could not save value", "key", KeyHighScore, "error", err)
			ok = false
		}
	}
	if err := prefs.SetInt(ctx, KeyCoins, req.Coins); err != nil {
		logger.Warn("could not save value", "key", KeyCoins, "error", err)
		ok = false
	}
	return ok
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
