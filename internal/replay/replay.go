// Package replay records finished runs as a seed plus the steering journal
// and replays them through a fresh session. The simulation is deterministic
// for a fixed config, seed, tick rate and input journal, so a record is a
// few hundred bytes regardless of run length.
package replay

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

// FormatVersion is bumped whenever Record changes incompatibly.
const FormatVersion = 1

// ErrVersion is returned when decoding a record of another format version.
var ErrVersion = errors.New("replay: unsupported format version")

// Intent is one steering change. Tick is the number of ticks simulated
// before the change took effect.
type Intent struct {
	Tick int  `msgpack:"t"`
	Move int8 `msgpack:"m"`
}

// Record is everything needed to reproduce a run.
type Record struct {
	Version   int                 `msgpack:"v"`
	Seed      int64               `msgpack:"seed"`
	TickRate  int                 `msgpack:"rate"`
	Character int                 `msgpack:"char"`
	Config    config.JumperConfig `msgpack:"cfg"`
	Intents   []Intent            `msgpack:"in"`
	Score     float64             `msgpack:"score"`
	Ticks     int                 `msgpack:"ticks"`
}

// FromSession builds a record of the session's last finished run.
func FromSession(s *jumper.Session, tickRate int) Record {
	run := s.LastRun()
	rec := Record{
		Version:   FormatVersion,
		Seed:      run.Seed,
		TickRate:  tickRate,
		Character: run.Character,
		Config:    s.Config(),
		Score:     run.Score,
		Ticks:     run.Ticks,
		Intents:   make([]Intent, 0, len(run.Intents)),
	}
	for _, ic := range run.Intents {
		rec.Intents = append(rec.Intents, Intent{Tick: ic.Tick, Move: int8(ic.Intent)})
	}
	return rec
}

// Encode serializes a record with msgpack.
func Encode(rec Record) ([]byte, error) {
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode parses a record produced by Encode.
func Decode(data []byte) (Record, error) {
	var rec Record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return Record{}, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	if rec.TickRate <= 0 {
		return Record{}, fmt.Errorf("replay: decode: invalid tick rate %d", rec.TickRate)
	}
	return rec, nil
}
