package apply

import (
	"fmt"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/transform"
)

func cardinalityOf[In, Out any](t transform.Transform[In, Out]) (transform.Cardinality, error) {
	if t == nil {
		return 0, fmt.Errorf("%w: nil transform", errs.ErrInvalidParameter)
	}

	card := t.Cardinality()
	if !card.Valid() {
		return 0, fmt.Errorf("%w: cardinality %d", errs.ErrInvalidParameter, card)
	}

	return card, nil
}

// mapUnit runs t on unit and verifies the output length. want is the input
// sequence length for OneToOne and OneToMany, the common term length for
// ManyToOne, and ignored for ManyToMany.
func mapUnit[In, Out any](t transform.Transform[In, Out], card transform.Cardinality, unit [][]In, cfg *transform.Config, want int) ([]Out, error) {
	out, err := t.Map(unit, cfg)
	if err != nil {
		return nil, err
	}

	switch card {
	case transform.OneToOne, transform.ManyToOne:
		if err := checkLen(card, len(out), want); err != nil {
			return nil, err
		}
	case transform.OneToMany:
		if _, err := multiplier(t, want, len(out)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func checkLen(card transform.Cardinality, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s transform produced %d elements, want %d", errs.ErrCardinalityViolation, card, got, want)
	}

	return nil
}

// multiplier returns k for a OneToMany output of outLen elements computed from
// n inputs. Transforms implementing FanOut must match their announced k;
// otherwise k is inferred and must be a positive whole number.
func multiplier[In, Out any](t transform.Transform[In, Out], n, outLen int) (int, error) {
	if f, ok := t.(transform.FanOut); ok {
		k := f.Multiplier()
		if k < 1 || outLen != n*k {
			return 0, fmt.Errorf("%w: OneToMany transform with multiplier %d produced %d elements from %d",
				errs.ErrCardinalityViolation, k, outLen, n)
		}

		return k, nil
	}

	if n == 0 {
		if outLen != 0 {
			return 0, fmt.Errorf("%w: OneToMany transform produced %d elements from none", errs.ErrCardinalityViolation, outLen)
		}

		return 1, nil
	}
	if outLen == 0 || outLen%n != 0 {
		return 0, fmt.Errorf("%w: OneToMany transform produced %d elements from %d, not a multiple",
			errs.ErrCardinalityViolation, outLen, n)
	}

	return outLen / n, nil
}

// knownMultiplier returns the announced k of a FanOut transform.
func knownMultiplier[In, Out any](t transform.Transform[In, Out]) (int, bool) {
	f, ok := t.(transform.FanOut)
	if !ok {
		return 0, false
	}

	return f.Multiplier(), true
}
