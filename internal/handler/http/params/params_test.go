package params

import (
	"errors"
	"net/url"
	"testing"

	"campus-api/internal/domain/entity"
)

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	return q
}

func TestReader_AllFields(t *testing.T) {
	p := NewReader(mustQuery(t, "s=hello&e=&i64=42&i=-3&b=true&t=2024-01-01T00:00:00"))

	if got := p.String("s"); got != "hello" {
		t.Errorf("String = %q", got)
	}
	if got := p.String("e"); got != "" {
		t.Errorf("empty String = %q", got)
	}
	if got := p.Int64("i64"); got != 42 {
		t.Errorf("Int64 = %d", got)
	}
	if got := p.Int("i"); got != -3 {
		t.Errorf("Int = %d", got)
	}
	if got := p.Bool("b"); !got {
		t.Errorf("Bool = %v", got)
	}
	if got := p.LocalDateTime("t").String(); got != "2024-01-01T00:00:00" {
		t.Errorf("LocalDateTime = %s", got)
	}
	if err := p.Err(); err != nil {
		t.Fatalf("Err = %v", err)
	}
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		read    func(*Reader)
		field   string
		message string
	}{
		{"missing string", "", func(p *Reader) { p.String("teamId") }, "teamId", "is required"},
		{"bad int64", "itemId=x", func(p *Reader) { p.Int64("itemId") }, "itemId", "must be an integer"},
		{"bad int", "stars=4.5", func(p *Reader) { p.Int("stars") }, "stars", "must be an integer"},
		{"bad bool", "solved=maybe", func(p *Reader) { p.Bool("solved") }, "solved", "must be true or false"},
		{"bad datetime", "requestTime=yesterday", func(p *Reader) { p.LocalDateTime("requestTime") }, "requestTime", "must be in YYYY-MM-DDTHH:MM:SS format"},
		{"missing bool", "", func(p *Reader) { p.Bool("done") }, "done", "is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewReader(mustQuery(t, tt.query))
			tt.read(p)

			var ve *entity.ValidationError
			if !errors.As(p.Err(), &ve) {
				t.Fatalf("Err = %v, want *entity.ValidationError", p.Err())
			}
			if ve.Field != tt.field || ve.Message != tt.message {
				t.Errorf("got %q %q, want %q %q", ve.Field, ve.Message, tt.field, tt.message)
			}
			if !errors.Is(p.Err(), entity.ErrInvalidInput) {
				t.Error("validation error must match ErrInvalidInput")
			}
		})
	}
}

func TestReader_KeepsFirstError(t *testing.T) {
	p := NewReader(mustQuery(t, "b=nope"))
	p.String("first")
	p.Bool("b")

	var ve *entity.ValidationError
	if !errors.As(p.Err(), &ve) || ve.Field != "first" {
		t.Fatalf("Err = %v, want error on field first", p.Err())
	}
}

func TestInt64Key(t *testing.T) {
	key := Int64Key("id")

	tests := []struct {
		name    string
		query   string
		want    int64
		wantErr bool
	}{
		{"valid", "id=7", 7, false},
		{"zero", "id=0", 0, false},
		{"large", "id=9223372036854775807", 9223372036854775807, false},
		{"missing", "", 0, true},
		{"empty", "id=", 0, true},
		{"not a number", "id=abc", 0, true},
		{"overflow", "id=9223372036854775808", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := key.From(mustQuery(t, tt.query))
			if (err != nil) != tt.wantErr {
				t.Fatalf("From() err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("From() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStringKey(t *testing.T) {
	key := StringKey("orgCode")

	got, err := key.From(mustQuery(t, "orgCode=ZPR"))
	if err != nil || got != "ZPR" {
		t.Fatalf("From() = %q, %v", got, err)
	}

	if _, err := key.From(mustQuery(t, "orgCode=%20")); err == nil {
		t.Error("blank key must be rejected")
	}
	if _, err := key.From(url.Values{}); err == nil {
		t.Error("missing key must be rejected")
	}
}
