// Package errs defines the sentinel errors returned by featx.
//
// Call sites wrap these sentinels with additional context using fmt.Errorf and
// the %w verb, so callers should compare with errors.Is:
//
//	out, err := apply.TableAppend(tbl, t, transform.WithHeader("x"))
//	if errors.Is(err, errs.ErrNameCollision) {
//	    // pick another header
//	}
package errs

import "errors"

// Data kind and selection errors.
var (
	// ErrUnsupportedData is returned when a value is neither a numeric array nor a table.
	ErrUnsupportedData = errors.New("unsupported data kind")
	// ErrUnknownColumn is returned when a column selector names a column the table does not have.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrDuplicateColumn is returned when a column name appears twice in one table or header.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrInvalidColumnName is returned for empty column names.
	ErrInvalidColumnName = errors.New("invalid column name")
	// ErrUnknownAxis is returned when a dimension selector does not resolve to an axis.
	ErrUnknownAxis = errors.New("unknown axis")
	// ErrIndexOutOfRange is returned when an index selector position is outside the selected range.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrEmptySelection is returned when a selection contains no elements where at least one is required.
	ErrEmptySelection = errors.New("empty selection")
)

// Shape and cardinality errors.
var (
	// ErrShapeMismatch is returned when container shapes or lengths are incompatible.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrHeaderLength is returned when a header does not name exactly the produced columns.
	ErrHeaderLength = errors.New("header length mismatch")
	// ErrInPlaceCardinality is returned when an in-place apply is requested for a
	// transform whose cardinality is not one-to-one.
	ErrInPlaceCardinality = errors.New("in-place apply requires one-to-one cardinality")
	// ErrCardinalityViolation is returned when a transform produces output whose size
	// contradicts its declared cardinality.
	ErrCardinalityViolation = errors.New("transform output violates declared cardinality")
	// ErrNameCollision is returned when an appended column would shadow an existing column.
	ErrNameCollision = errors.New("column name collision")
)

// Transform parameter errors.
var (
	// ErrInvalidParameter is returned for invalid transform or option parameters.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownCategory is returned by categorical encoders for values outside their category set.
	ErrUnknownCategory = errors.New("unknown category")
)

// Snapshot codec errors.
var (
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrInvalidSnapshot    = errors.New("invalid snapshot")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrCorruptPayload     = errors.New("corrupt payload")
)
