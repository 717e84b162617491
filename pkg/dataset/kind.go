package dataset

// Kind is the storage type of a column.
type Kind string

const (
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindTime   Kind = "time"
	KindBool   Kind = "bool"
)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNumber, KindString, KindTime, KindBool:
		return true
	default:
		return false
	}
}
