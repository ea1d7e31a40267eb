package api

import (
	"encoding/json"
	"io"
	"math"
	"net/http"

	"github.com/bornholm/todo/internal/core/model"
	"github.com/bornholm/todo/internal/core/port"
	"github.com/pkg/errors"
)

var ErrInvalidBody = errors.New("invalid request body")

// TodoRequest is the body accepted by every mutating route. Fields are
// decoded loosely and interpreted by each operation.
type TodoRequest struct {
	ID          any `json:"id,omitempty"`
	Value       any `json:"value,omitempty"`
	IsCompleted any `json:"isCompleted,omitempty"`
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*TodoRequest, error) {
	var req TodoRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodySize))

	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty body is handled like an empty object
			return &req, nil
		}

		return nil, errors.Wrapf(ErrInvalidBody, "%s", err.Error())
	}

	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(ErrInvalidBody, "unexpected data after json object")
	}

	return &req, nil
}

// TodoValue returns the value field when it is a json string, or an
// empty string otherwise.
func (r *TodoRequest) TodoValue() string {
	value, _ := r.Value.(string)
	return value
}

// TodoID returns the id field. A missing or null id yields an empty id,
// any other non string value is an invalid id.
func (r *TodoRequest) TodoID() (model.TodoID, error) {
	switch id := r.ID.(type) {
	case nil:
		return "", nil
	case string:
		return model.TodoID(id), nil
	default:
		return "", errors.Wrapf(port.ErrInvalidID, "unexpected id type %T", id)
	}
}

// Completed coerces the isCompleted field to a boolean the way
// javascript does: false, 0, NaN, "" and null are false, anything else is true.
func (r *TodoRequest) Completed() bool {
	return isTruthy(r.IsCompleted)
}

func isTruthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case float64:
		return value != 0 && !math.IsNaN(value)
	case string:
		return value != ""
	default:
		return true
	}
}
