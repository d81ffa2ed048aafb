package pokedex

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/matzehuels/pokedex/pkg/errors"
	"github.com/matzehuels/pokedex/pkg/integrations"
)

// FetchError is the single failure type returned by every fetch operation.
// Op names the operation ("fetch page", "resolve evolution chain", ...) and
// Name the Pokémon or page it concerned.
type FetchError struct {
	Op   string
	Name string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Code classifies the failure:
//   - NOT_FOUND for an upstream 404
//   - PARSE_ERROR for an unexpected response shape
//   - TIMEOUT when the context deadline passed
//   - INTERNAL_ERROR when the caller cancelled
//   - NETWORK_ERROR otherwise
func (e *FetchError) Code() perrors.Code {
	switch {
	case errors.Is(e.Err, integrations.ErrNotFound):
		return perrors.ErrCodeNotFound
	case errors.Is(e.Err, integrations.ErrParse):
		return perrors.ErrCodeParse
	case errors.Is(e.Err, context.DeadlineExceeded):
		return perrors.ErrCodeTimeout
	case errors.Is(e.Err, context.Canceled):
		return perrors.ErrCodeInternal
	default:
		if c := perrors.GetCode(e.Err); c != "" {
			return c
		}
		return perrors.ErrCodeNetwork
	}
}

func fetchErr(op, name string, err error) error {
	var fe *FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &FetchError{Op: op, Name: name, Err: err}
}
