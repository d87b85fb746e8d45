package internal

// UndefinedReason distinguishes the ways a value can be undefined.
type UndefinedReason int

// Ways a value can be undefined.
const (
	UndefinedVariable UndefinedReason = iota
	UndefinedAttribute
	UndefinedKey
	UndefinedIndex
)

// Undefined is the placeholder produced by looking up something that does not
// exist. Producing it is not an error; using it as a value is.
type Undefined struct {
	How UndefinedReason
	// Object is the value that was searched, or nil for variables.
	Object Value
	// Name is the variable name, attribute name, key, or index.
	Name Value
}

// Err returns the error raised when u is used.
func (u *Undefined) Err() error {
	switch u.How {
	case UndefinedVariable:
		name, _ := u.Name.(string)
		return &AttributeError{Name: name, Variable: true}
	case UndefinedAttribute:
		name, _ := u.Name.(string)
		return &AttributeError{Object: u.Object, Name: name}
	case UndefinedKey:
		return &KeyError{Key: u.Name}
	default:
		return &IndexError{Index: u.Name}
	}
}

// defined returns the error for using v if it is undefined.
func defined(v Value) error {
	if u, ok := v.(*Undefined); ok {
		return u.Err()
	}
	return nil
}

// defined2 is defined for two operands.
func defined2(a, b Value) error {
	if err := defined(a); err != nil {
		return err
	}
	return defined(b)
}

// IsUndefined reports whether v is an undefined sentinel.
func IsUndefined(v Value) bool {
	_, ok := v.(*Undefined)
	return ok
}

// Defined returns the error for using v if v is an undefined sentinel, or nil.
func Defined(v Value) error {
	return defined(v)
}
