package mash

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Op identifies the operation an accessor name resolves to.
type Op int

const (
	OpUnresolved Op = iota // No rule matched
	OpSet                  // "name=" with one argument
	OpHas                  // "name?" with no arguments
	OpTouch                // "name!" with no arguments
	OpGet                  // An existing key, verbatim
	OpAbsent               // A bare identifier with no stored value
)

var opNames = [...]string{
	OpUnresolved: "unresolved",
	OpSet:        "set",
	OpHas:        "has",
	OpTouch:      "touch",
	OpGet:        "get",
	OpAbsent:     "absent",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// Accessor is the classification of an accessor name.
type Accessor struct {
	Op  Op     // The resolved operation
	Key string // The key the operation applies to, with any suffix removed
}

var bareIdentifier = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]+$`)

// Classify resolves an accessor name called with argc arguments. Rules are
// tried in order:
//
//   - "name=" with one argument sets name
//   - "name?" with no arguments tests for name
//   - "name!" with no arguments touches name
//   - a name stored verbatim as a key gets it
//   - a bare identifier with no arguments reads as absent
//
// Anything else is unresolved.
func (m *Mash) Classify(name string, argc int) Accessor {
	switch {
	case strings.HasSuffix(name, "=") && argc == 1:
		return Accessor{Op: OpSet, Key: strings.TrimSuffix(name, "=")}
	case strings.HasSuffix(name, "?") && argc == 0:
		return Accessor{Op: OpHas, Key: strings.TrimSuffix(name, "?")}
	case strings.HasSuffix(name, "!") && argc == 0:
		return Accessor{Op: OpTouch, Key: strings.TrimSuffix(name, "!")}
	case m.Has(name):
		return Accessor{Op: OpGet, Key: name}
	case bareIdentifier.MatchString(name) && argc == 0:
		return Accessor{Op: OpAbsent, Key: name}
	default:
		return Accessor{Op: OpUnresolved, Key: name}
	}
}

// Call performs the attribute-style access named by name. Set returns the
// assigned value, Has returns a bool, and Touch and Get return the stored
// value. Reading an absent bare identifier returns nil without storing
// anything. Names that match no rule yield an [*AccessorError].
func (m *Mash) Call(name string, args ...any) (any, error) {
	acc := m.Classify(name, len(args))
	switch acc.Op {
	case OpSet:
		m.Set(acc.Key, args[0])
		return args[0], nil
	case OpHas:
		return m.Has(acc.Key), nil
	case OpTouch:
		return m.Touch(acc.Key), nil
	case OpGet, OpAbsent:
		return m.Get(acc.Key), nil
	default:
		m.opts.Logger.Debug("mash: unresolved accessor",
			slog.String("name", name),
			slog.Int("args", len(args)),
		)
		return nil, &AccessorError{Name: name, Args: len(args)}
	}
}

// Send applies a dotted chain of accessor names, calling each segment on the
// result of the previous one. args are passed to the last segment only:
//
//	m.Send("author!.name=", "X")
//	name, _ := m.Send("author.name")
func (m *Mash) Send(path string, args ...any) (any, error) {
	segments := strings.Split(path, ".")
	current := m

	for i, segment := range segments {
		var segmentArgs []any
		if i == len(segments)-1 {
			segmentArgs = args
		}

		v, err := current.Call(segment, segmentArgs...)
		if err != nil {
			return nil, fmt.Errorf("failed to send %q: %w", path, err)
		}

		if i == len(segments)-1 {
			return v, nil
		}

		next, ok := v.(*Mash)
		if !ok || next == nil {
			argc := 0
			if i+1 == len(segments)-1 {
				argc = len(args)
			}
			return nil, fmt.Errorf("failed to send %q: %w", path,
				&AccessorError{Name: segments[i+1], Args: argc})
		}
		current = next
	}

	return nil, nil
}
