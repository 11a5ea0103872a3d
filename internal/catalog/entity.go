// Package catalog defines the closed set of entity kinds the collection
// manager knows how to list.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEntity is returned when a name does not match any Entity.
var ErrUnknownEntity = errors.New("unknown entity")

// Entity identifies one of the listable categories of the collection.
// The zero value is not a valid entity.
type Entity uint8

const (
	Publishers Entity = iota + 1
	Series
	Issues
	Characters
	Creators
	Events
)

var entityNames = map[Entity]string{
	Publishers: "publishers",
	Series:     "series",
	Issues:     "issues",
	Characters: "characters",
	Creators:   "creators",
	Events:     "events",
}

// Entities returns every valid Entity in declaration order.
func Entities() []Entity {
	return []Entity{Publishers, Series, Issues, Characters, Creators, Events}
}

// Names returns the command-line names of all entities in declaration order.
func Names() []string {
	all := Entities()
	names := make([]string, 0, len(all))
	for _, e := range all {
		names = append(names, e.String())
	}
	return names
}

// ParseEntity maps a command-line name onto its Entity. Matching is exact.
func ParseEntity(name string) (Entity, error) {
	for _, e := range Entities() {
		if entityNames[e] == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w %q, must be one of %s", ErrUnknownEntity, name, strings.Join(Names(), ","))
}

// Valid reports whether e is one of the declared entities.
func (e Entity) Valid() bool {
	_, ok := entityNames[e]
	return ok
}

func (e Entity) String() string {
	if name, ok := entityNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Entity(%d)", uint8(e))
}

// Set implements kingpin.Value so the argument parser fills an Entity directly.
func (e *Entity) Set(value string) error {
	parsed, err := ParseEntity(value)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
