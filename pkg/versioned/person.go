// Package versioned converts newer record versions into older ones by
// following a chain of Downgrade methods until a target version is reached.
package versioned

import (
	"errors"
	"fmt"
)

var (
	ErrNoDowngrade = errors.New("versioned: no downgrade path, add a Downgrade() method")
	ErrChainLoop   = errors.New("versioned: downgrade did not lower the version")
)

// Versioned is a record that knows its schema version. Version 0 is the base.
type Versioned interface {
	Version() int
}

// Downgrader is implemented by every version that has a predecessor.
type Downgrader interface {
	Versioned
	Downgrade() Versioned
}

type PersonV0 struct {
	FirstName string
	LastName  string
}

func (PersonV0) Version() int { return 0 }

type PersonV1 struct {
	FirstName   string
	LastName    string
	YearOfBirth int
}

func (PersonV1) Version() int { return 1 }

func (p PersonV1) Downgrade() Versioned {
	return PersonV0{FirstName: p.FirstName, LastName: p.LastName}
}

type PersonV2 struct {
	FirstName   string
	LastName    string
	YearOfBirth int
	IDNumber    string
}

func (PersonV2) Version() int { return 2 }

func (p PersonV2) Downgrade() Versioned {
	return PersonV1{FirstName: p.FirstName, LastName: p.LastName, YearOfBirth: p.YearOfBirth}
}

// Downgrade applies Downgrade until v is a T. A value that already is a T
// comes back unchanged.
func Downgrade[T Versioned](v Versioned) (T, error) {
	var zero T
	if v == nil {
		return zero, fmt.Errorf("%w: nil record", ErrNoDowngrade)
	}
	for {
		if t, ok := v.(T); ok {
			return t, nil
		}
		d, ok := v.(Downgrader)
		if !ok {
			return zero, fmt.Errorf("%w: %T (version %d) cannot reach %T", ErrNoDowngrade, v, v.Version(), zero)
		}
		next := d.Downgrade()
		if next == nil || next.Version() >= v.Version() {
			return zero, fmt.Errorf("%w: %T (version %d)", ErrChainLoop, v, v.Version())
		}
		v = next
	}
}

// ToBase downgrades v all the way to version 0.
func ToBase(v Versioned) (PersonV0, error) {
	return Downgrade[PersonV0](v)
}

// Path lists the versions v passes through on its way to T, v's own
// version first.
func Path[T Versioned](v Versioned) ([]int, error) {
	var path []int
	for v != nil {
		path = append(path, v.Version())
		if _, ok := v.(T); ok {
			return path, nil
		}
		d, ok := v.(Downgrader)
		if !ok {
			return path, fmt.Errorf("%w: %T (version %d)", ErrNoDowngrade, v, v.Version())
		}
		next := d.Downgrade()
		if next == nil || next.Version() >= v.Version() {
			return path, fmt.Errorf("%w: %T (version %d)", ErrChainLoop, v, v.Version())
		}
		v = next
	}
	return path, fmt.Errorf("%w: nil record", ErrNoDowngrade)
}
