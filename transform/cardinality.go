package transform

// Cardinality describes how many inputs a transform consumes and how many
// outputs it produces per unit.
type Cardinality uint8

const (
	// OneToOne maps a sequence of n elements to n elements.
	OneToOne Cardinality = iota + 1
	// OneToMany maps a sequence of n elements to n·k elements.
	OneToMany
	// ManyToOne reduces m equal-length terms element-wise to a single sequence.
	ManyToOne
	// ManyToMany maps a sequence to a sequence of unconstrained length.
	ManyToMany
)

var cardinalityNames = map[Cardinality]string{
	OneToOne:   "OneToOne",
	OneToMany:  "OneToMany",
	ManyToOne:  "ManyToOne",
	ManyToMany: "ManyToMany",
}

// String returns the name of the cardinality.
func (c Cardinality) String() string {
	if name, ok := cardinalityNames[c]; ok {
		return name
	}

	return "Unknown"
}

// Valid reports whether c is one of the four declared cardinalities.
func (c Cardinality) Valid() bool {
	_, ok := cardinalityNames[c]
	return ok
}

// InPlace reports whether a transform of this cardinality may overwrite its input.
func (c Cardinality) InPlace() bool {
	return c == OneToOne
}
