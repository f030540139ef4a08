package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Caller is anything that can dispatch a [RequestSpec]. *Dispatcher is the
// production implementation.
type Caller interface {
	Dispatch(ctx context.Context, spec RequestSpec) (json.RawMessage, error)
}

// Do dispatches spec through c and decodes the 2xx body into T. An empty
// body yields the zero T.
func Do[T any](ctx context.Context, c Caller, spec RequestSpec) (T, error) {
	var out T

	raw, err := c.Dispatch(ctx, spec)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &ClientError{
			Kind:    KindApplication,
			RawBody: raw,
			Message: "unexpected response from server",
			Err:     fmt.Errorf("%w: %v", ErrDecodeResponse, err),
		}
	}
	return out, nil
}
