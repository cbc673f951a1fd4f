// Package params reads record fields and keys from URL query parameters.
// Every failure is an *entity.ValidationError so handlers can answer 400
// through respond.FromError.
package params

import (
	"net/url"
	"strconv"

	"campus-api/internal/domain/entity"
)

// Reader reads required query parameters and keeps the first error.
//
// Example:
//
//	p := params.NewReader(r.URL.Query())
//	rec := entity.MenuItem{Name: p.String("name"), Station: p.String("station")}
//	if err := p.Err(); err != nil {
//		respond.FromError(w, err)
//		return
//	}
type Reader struct {
	q   url.Values
	err error
}

// NewReader returns a Reader over q.
func NewReader(q url.Values) *Reader {
	return &Reader{q: q}
}

// Err returns the first missing or malformed parameter, if any.
func (r *Reader) Err() error { return r.err }

func (r *Reader) raw(name string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	if !r.q.Has(name) {
		r.err = &entity.ValidationError{Field: name, Message: "is required"}
		return "", false
	}
	return r.q.Get(name), true
}

func (r *Reader) fail(name, msg string) {
	r.err = &entity.ValidationError{Field: name, Message: msg}
}

// String returns the value of name. An empty value is accepted.
func (r *Reader) String(name string) string {
	v, _ := r.raw(name)
	return v
}

// Int64 returns name parsed as a base-10 int64.
func (r *Reader) Int64(name string) int64 {
	v, ok := r.raw(name)
	if !ok {
		return 0
	}
	n, err := parseInt64(v)
	if err != nil {
		r.fail(name, "must be an integer")
		return 0
	}
	return n
}

// Int returns name parsed as a base-10 int.
func (r *Reader) Int(name string) int {
	v, ok := r.raw(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(name, "must be an integer")
		return 0
	}
	return n
}

// Bool returns name parsed with strconv.ParseBool.
func (r *Reader) Bool(name string) bool {
	v, ok := r.raw(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(name, "must be true or false")
		return false
	}
	return b
}

// LocalDateTime returns name parsed as an ISO-8601 local date-time.
func (r *Reader) LocalDateTime(name string) entity.LocalDateTime {
	v, ok := r.raw(name)
	if !ok {
		return entity.LocalDateTime{}
	}
	t, err := entity.ParseLocalDateTime(v)
	if err != nil {
		r.fail(name, "must be in YYYY-MM-DDTHH:MM:SS format")
		return entity.LocalDateTime{}
	}
	return t
}

// Key names the query parameter carrying a record key and parses it.
type Key[K comparable] struct {
	Name  string
	Parse func(string) (K, error)
}

// From reads the key from q. A missing or unparsable key is a ValidationError.
func (k Key[K]) From(q url.Values) (K, error) {
	var zero K
	if !q.Has(k.Name) {
		return zero, &entity.ValidationError{Field: k.Name, Message: "is required"}
	}
	id, err := k.Parse(q.Get(k.Name))
	if err != nil {
		return zero, &entity.ValidationError{Field: k.Name, Message: err.Error()}
	}
	return id, nil
}

// Int64Key is a generated numeric key such as "id".
func Int64Key(name string) Key[int64] {
	return Key[int64]{Name: name, Parse: func(s string) (int64, error) {
		n, err := parseInt64(s)
		if err != nil {
			return 0, errMustBeInteger
		}
		return n, nil
	}}
}

// StringKey is a natural key such as "orgCode". It must not be blank.
func StringKey(name string) Key[string] {
	return Key[string]{Name: name, Parse: func(s string) (string, error) {
		if err := entity.RequireField(name, s); err != nil {
			return "", errMustNotBeBlank
		}
		return s, nil
	}}
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
