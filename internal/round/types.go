package round

import (
	"fmt"
	"strings"
	"time"

	"bitsense/internal/bits"

	"github.com/google/uuid"
)

// Base is a number base used by a challenge.
type Base int

const (
	Binary Base = iota
	Hex
)

func (b Base) String() string {
	switch b {
	case Binary:
		return "bin"
	case Hex:
		return "hex"
	default:
		return fmt.Sprintf("base(%d)", int(b))
	}
}

// Label is the upper-case tag shown next to a representation.
func (b Base) Label() string {
	return strings.ToUpper(b.String())
}

// Direction selects which way a round converts.
type Direction int

const (
	BinToHex Direction = iota
	HexToBin
	Random
)

func (d Direction) String() string {
	switch d {
	case BinToHex:
		return "bin2hex"
	case HexToBin:
		return "hex2bin"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts the names produced by Direction.String plus a few
// spellings people type on the command line.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bin2hex", "bin-to-hex", "b2h":
		return BinToHex, nil
	case "hex2bin", "hex-to-bin", "h2b":
		return HexToBin, nil
	case "random", "rand", "mixed":
		return Random, nil
	}
	return 0, &ConfigError{Field: "direction", Reason: fmt.Sprintf("unknown direction %q", s)}
}

// Status is the lifecycle state of a round.
type Status int

const (
	Pending Status = iota
	Running
	Succeeded
	TimedOut
	Aborted
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case TimedOut:
		return "timed_out"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == Succeeded || s == TimedOut || s == Aborted
}

// Challenge is the value a round asks the player to convert.
// It is immutable once generated.
type Challenge struct {
	Source   Base
	Target   Base
	Value    uint64
	BitWidth int
}

// Representation renders the challenge value in base b.
func (c Challenge) Representation(b Base) string {
	if b == Hex {
		return bits.FormatHex(c.Value, c.BitWidth)
	}
	return bits.FormatBinary(c.Value, c.BitWidth)
}

// SourceRepresentation is the string shown to the player.
func (c Challenge) SourceRepresentation() string {
	return c.Representation(c.Source)
}

// TargetRepresentation is the canonical expected answer.
func (c Challenge) TargetRepresentation() string {
	return c.Representation(c.Target)
}

// Display is the source representation grouped for reading; binary is split
// into nibbles, hex is left alone.
func (c Challenge) Display() string {
	s := c.SourceRepresentation()
	if c.Source == Binary {
		return bits.Group(s, bits.NibbleWidth)
	}
	return s
}

// Config describes a round. It is never mutated by the engine.
type Config struct {
	TimeLimit time.Duration
	BitWidth  int
	Direction Direction
}

// State is a snapshot of a round.
type State struct {
	ID        uuid.UUID
	Challenge Challenge
	Elapsed   time.Duration
	Input     string
	Status    Status
}

// Result is produced once when a finished round is collected.
type Result struct {
	RoundID       uuid.UUID
	Correct       bool
	Status        Status
	Elapsed       time.Duration
	BitsPerSecond float64
	Challenge     Challenge
	Config        Config
}

// ElapsedSeconds is Elapsed as fractional seconds.
func (r Result) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}
