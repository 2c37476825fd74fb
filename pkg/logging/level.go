package logging

// Level is the verbosity threshold of a Logger. Higher values are more
// verbose; a logger emits a message only when its own level is at or above
// the level the message was logged at.
type Level uint8

const (
	// LevelDisabled suppresses all output.
	LevelDisabled Level = iota
	// LevelError emits only failures that abort a run.
	LevelError
	// LevelWarn adds recoverable problems that don't abort a run.
	LevelWarn
	// LevelInfo adds run-progress lines; the sync driver logs one when it
	// starts classifying the source tree.
	LevelInfo
	// LevelDebug adds one line per applied copy or delete operation.
	LevelDebug
	// LevelTrace adds one line per candidate path, the highest-volume
	// output the driver produces.
	LevelTrace
)

// levelNames is indexed by Level and doubles as the vocabulary accepted by
// NameToLevel (and thus by the --log-level flag built on top of it).
var levelNames = [...]string{
	LevelDisabled: "disabled",
	LevelError:    "error",
	LevelWarn:     "warn",
	LevelInfo:     "info",
	LevelDebug:    "debug",
	LevelTrace:    "trace",
}

// NameToLevel resolves a level name to its Level value, reporting whether
// the name was recognized. Unrecognized names resolve to LevelDisabled.
func NameToLevel(name string) (Level, bool) {
	for level, candidate := range levelNames {
		if candidate == name {
			return Level(level), true
		}
	}
	return LevelDisabled, false
}

// String returns the level's name.
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}
