package runner

import "fmt"

// Kind identifies a test framework.
type Kind string

const (
	Pytest Kind = "pytest"
	Nose   Kind = "nose"
	Jest   Kind = "jest"
	Mocha  Kind = "mocha"
)

// Kinds returns every supported runner in display order.
func Kinds() []Kind {
	return []Kind{Pytest, Nose, Jest, Mocha}
}

// Valid reports whether k is one of the supported runners.
func (k Kind) Valid() bool {
	switch k {
	case Pytest, Nose, Jest, Mocha:
		return true
	}
	return false
}

// Python reports whether k runs Python tests.
func (k Kind) Python() bool {
	return k == Pytest || k == Nose
}

// JavaScript reports whether k runs JavaScript or TypeScript tests.
func (k Kind) JavaScript() bool {
	return k == Jest || k == Mocha
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a user-supplied name into a Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if !k.Valid() {
		return "", fmt.Errorf("unsupported runner %q (must be one of %v)", name, Kinds())
	}
	return k, nil
}
