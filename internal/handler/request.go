package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

// requestError is a failure detected before the service layer runs:
// unreadable bodies, missing parameters and the like.
type requestError struct {
	status  int
	message string
	code    string
}

func (e *requestError) Error() string { return e.message }

func badRequest(message string) error {
	return &requestError{status: http.StatusBadRequest, message: message, code: "bad_request"}
}

// decodeJSON reads the request body into dst. Unknown fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxErr):
		return &requestError{status: http.StatusRequestEntityTooLarge, message: "Request body too large.", code: "payload_too_large"}
	case errors.Is(err, io.EOF):
		return badRequest("Request body is required")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return domain.Invalid(fmt.Sprintf("%s has the wrong type", typeErr.Field))
	default:
		return badRequest("Invalid JSON body")
	}
}

// newValidator reports fields by their JSON names so problems read the same
// as the request body.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs struct validation and converts failures into a
// *domain.ValidationError with one readable problem per field.
func (s *Server) check(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return domain.Invalid(problems...)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return field + " must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// checkURL validates an optional URL field that struct tags cannot express,
// such as a *string where "" clears the value.
func (s *Server) checkURL(field string, v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	if err := s.validate.Var(*v, "url"); err != nil {
		return domain.Invalid(field + " must be a valid URL")
	}
	return nil
}

// pathID binds the {id} path parameter. A malformed id cannot name any
// resource, so it is reported as not found.
func pathID(r *http.Request) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("handler: bind id: %w", domain.ErrNotFound)
	}
	return id, nil
}

// tripIDQuery binds the required ?tripId= parameter. Missing is a bad
// request; malformed is not found, like a malformed path id.
func tripIDQuery(r *http.Request) (uuid.UUID, error) {
	q := r.URL.Query()
	if q.Get("tripId") == "" {
		return uuid.Nil, badRequest("tripId is required")
	}
	var id uuid.UUID
	if err := runtime.BindQueryParameter("form", true, true, "tripId", q, &id); err != nil {
		return uuid.Nil, fmt.Errorf("handler: bind tripId: %w", domain.ErrNotFound)
	}
	return id, nil
}

// parseDate parses a value already checked by the datetime validator.
func parseDate(s string) time.Time {
	t, _ := time.Parse(domain.DateLayout, s)
	return t
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t := parseDate(*s)
	return &t
}

// flexNumber accepts a JSON number, a numeric string or anything else. Values
// that are not numbers decode as 0 instead of failing the request; the service
// clamps negatives.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = flexNumber(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = flexNumber(f)
			return nil
		}
	}
	*n = 0
	return nil
}

// ptr converts an optional flexNumber into the domain's *float64.
func (n *flexNumber) ptr() *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}
