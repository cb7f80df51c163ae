package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                    Code = "OK"
	CodeInvalidClassSelection Code = "INVALID_CLASS_SELECTION"
	CodeInsufficientMana      Code = "INSUFFICIENT_MANA"
	CodeInvalidState          Code = "INVALID_STATE"
	CodeOutOfBounds           Code = "OUT_OF_BOUNDS_POSITION"
	CodeInvalidArgument       Code = "INVALID_ARGUMENT"
	CodeInternal              Code = "INTERNAL"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}
