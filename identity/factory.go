package identity

import (
	"fmt"

	"github.com/debatelab/speakerkit/errors"
)

// Factory creates a Store from a database path. Drivers without one (the
// in-memory store) ignore it.
type Factory func(path string) (Store, error)

var factories = map[string]Factory{
	"memory": func(string) (Store, error) { return NewMemoryStore(), nil },
}

// RegisterFactory registers a store factory for the given driver name.
// Implementation packages call this (typically in an init function) to make
// themselves available to Open. Ensure the desired driver package has been
// imported (e.g. _ "github.com/debatelab/speakerkit/identity/sqlite") so
// its factory is registered.
func RegisterFactory(driver string, f Factory) {
	factories[driver] = f
}

// Open creates the Store the driver name routes to.
func Open(driver, path string) (Store, error) {
	f, ok := factories[driver]
	if !ok {
		return nil, errors.InvalidInput("identity.store",
			fmt.Sprintf("no identity store registered for driver %q", driver))
	}
	return f(path)
}
