// Package dialect resolves dialects by name.
package dialect

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jdp/relite/internal/dialect/fql"
	"github.com/jdp/relite/internal/dialect/simpledb"
	"github.com/jdp/relite/internal/querysql"
)

// Generic is the name of the default dialect.
const Generic = "generic"

// ErrUnknown is returned by Lookup for an unregistered name.
var ErrUnknown = errors.New("unknown dialect")

var registry = map[string]querysql.Dialect{
	Generic:    querysql.Generic{},
	"simpledb": simpledb.Dialect{},
	"fql":      fql.Dialect{},
}

// Lookup returns the dialect registered under name. An empty name selects
// the generic dialect.
func Lookup(name string) (querysql.Dialect, error) {
	if name == "" {
		name = Generic
	}
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknown, name, Names())
	}
	return d, nil
}

// Names returns the registered dialect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
