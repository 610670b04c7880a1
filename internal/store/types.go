package store

import (
	"log/slog"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/resolve"
)

// EventKind identifies a store notification.
type EventKind int

const (
	// ConfigurationsChanged follows a completed load, merge and
	// validate. It is held back while a fabricated default still waits
	// for compiler defaults.
	ConfigurationsChanged EventKind = iota + 1

	// SelectionChanged follows a change of the current configuration.
	SelectionChanged

	// CompileCommandsChanged is sent once per configuration when its
	// resolved compile commands path changes, and when the watched file
	// is written.
	CompileCommandsChanged
)

func (k EventKind) String() string {
	switch k {
	case ConfigurationsChanged:
		return "configurations-changed"
	case SelectionChanged:
		return "selection-changed"
	case CompileCommandsChanged:
		return "compile-commands-changed"
	default:
		return "unknown"
	}
}

// Event is one notification.
type Event struct {
	Kind EventKind

	// Configurations holds the resolved configurations for
	// ConfigurationsChanged.
	Configurations []resolve.Configuration

	// Index and Name identify the configuration concerned. For
	// ConfigurationsChanged they name the current one.
	Index int
	Name  string

	// CompileCommands is the resolved path for CompileCommandsChanged.
	CompileCommands string
}

// Observer receives events.
type Observer func(Event)

// Messenger shows one-shot messages to the user.
type Messenger interface {
	Warn(msg string)
	Error(msg string)
}

// LogMessenger writes user messages to a logger.
type LogMessenger struct {
	Logger *slog.Logger
}

// Warn implements Messenger.
func (m LogMessenger) Warn(msg string) { m.logger().Warn(msg) }

// Error implements Messenger.
func (m LogMessenger) Error(msg string) { m.logger().Error(msg) }

func (m LogMessenger) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

// User-visible messages.
const (
	MsgUnknownVersion = "Unknown version number found in c_cpp_properties.json. Some features may not work as expected."
	MsgWriteFailed    = "Attempt to update %q failed (do you have write access?)"
	MsgParseFailed    = "Failed to parse %q: %v"
)

var (
	// ErrNotOpen is returned by operations that need a loaded document.
	ErrNotOpen = errors.New("properties store is not open")

	// ErrConfigurationExists is returned when adding a configuration
	// whose name is taken.
	ErrConfigurationExists = errors.New("configuration already exists")
)
