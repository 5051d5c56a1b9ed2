package radio

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	driversMu sync.RWMutex
	drivers   = map[string]Driver{}
)

// Register makes a driver available by name. Driver packages call it from
// init, so a blank import is enough to enable one.
func Register(d Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	name := strings.ToLower(d.Name())
	if _, dup := drivers[name]; dup {
		panic("radio: Register called twice for driver " + name)
	}
	drivers[name] = d
}

func Lookup(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()
	d, ok := drivers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%q is not a supported driver, pick one of: %s", name, strings.Join(driverNames(), ", "))
	}
	return d, nil
}

func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	return driverNames()
}

func driverNames() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
