package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNoInput is returned when standard input carried nothing but whitespace.
	ErrNoInput = errors.New("no data received")
	// ErrInvalidInput is returned for malformed JSON or a JSON value that is not an object.
	ErrInvalidInput = errors.New("invalid application input")
)

// Locale defaults applied when a field is missing or blank.
const (
	DefaultProvince    = "NUEVA VIZCAYA"
	DefaultCountry     = "PHILIPPINES"
	DefaultCitizenship = "FILIPINO"
	DefaultStatus      = "SINGLE"
)

// Name is a first/middle/last triple as printed on the forms.
type Name struct {
	First  string
	Middle string
	Last   string
}

// Full joins the non-empty parts with single spaces.
func (n Name) Full() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.First, n.Middle, n.Last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Party is one applicant. All text is already upper-cased and trimmed.
type Party struct {
	Sex           string
	Name          Name
	Birthdate     string
	Age           int
	BirthPlace    string
	Barangay      string
	Town          string
	Province      string
	Country       string
	Citizenship   string
	Religion      string
	Status        string
	Father        Name
	Mother        Name
	Giver         Name
	GiverRelation string
}

// TownProvince is the "<TOWN>, <PROVINCE>" string compared against the local jurisdiction.
func (p Party) TownProvince() string {
	return p.Town + ", " + p.Province
}

// FullAddress is "<BARANGAY>, <TOWN>, <PROVINCE>".
func (p Party) FullAddress() string {
	return p.Barangay + ", " + p.TownProvince()
}

// BirthPlaceOrTown falls back to the residence town when no birth place was given.
func (p Party) BirthPlaceOrTown() string {
	if p.BirthPlace != "" {
		return p.BirthPlace
	}
	return p.TownProvince()
}

// Band is the party's age band.
func (p Party) Band() Band {
	return BandOf(p.Age)
}

// NeedsGiver reports whether the consent/advice giver block applies (ages 18–24).
func (p Party) NeedsGiver() bool {
	b := p.Band()
	return b == BandConsent || b == BandAdvice
}

// Application is the parsed request: both parties plus request-level fields.
type Application struct {
	Code      string
	ImagePath string
	Groom     Party
	Bride     Party
}

// Parse decodes one JSON object into an Application. Missing fields take their defaults;
// nothing is required.
func Parse(data []byte) (*Application, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrNoInput
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidInput)
	}

	var fields Fields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return FromFields(fields), nil
}

// FromFields builds an Application from an already decoded field map.
func FromFields(fields Fields) *Application {
	return &Application{
		Code:      fields.Text("applicationCode"),
		ImagePath: fields.Raw("coupleImagePath"),
		Groom:     partyFrom(fields, "g", "MALE"),
		Bride:     partyFrom(fields, "b", "FEMALE"),
	}
}

func partyFrom(f Fields, prefix, sex string) Party {
	key := func(name string) string { return prefix + name }
	name := func(first, middle, last string) Name {
		return Name{First: f.Text(key(first)), Middle: f.Text(key(middle)), Last: f.Text(key(last))}
	}

	return Party{
		Sex:           sex,
		Name:          name("First", "Middle", "Last"),
		Birthdate:     f.Text(key("Bday")),
		Age:           f.Int(key("Age")),
		BirthPlace:    f.Text(key("BirthPlace")),
		Barangay:      f.Text(key("Brgy")),
		Town:          f.Text(key("Town")),
		Province:      f.TextOr(key("Prov"), DefaultProvince),
		Country:       f.TextOr(key("Country"), DefaultCountry),
		Citizenship:   f.TextOr(key("Citizen"), DefaultCitizenship),
		Religion:      f.Text(key("Religion")),
		Status:        f.TextOr(key("Status"), DefaultStatus),
		Father:        name("FathF", "FathM", "FathL"),
		Mother:        name("MothF", "MothM", "MothL"),
		Giver:         name("GiverF", "GiverM", "GiverL"),
		GiverRelation: f.Text(key("GiverRelation")),
	}
}

// Fields is the flat JSON object as received. Values may be any JSON scalar.
type Fields map[string]json.RawMessage

// Raw returns the field as trimmed text without case changes. null and missing give "".
func (f Fields) Raw(key string) string {
	raw, ok := f[key]
	if !ok {
		return ""
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	// Numbers, booleans and nested values are rendered as their literal JSON text.
	return strings.TrimSpace(string(raw))
}

// Text returns the field upper-cased and trimmed.
func (f Fields) Text(key string) string {
	return strings.ToUpper(f.Raw(key))
}

// TextOr is Text with a fallback for missing or blank values.
func (f Fields) TextOr(key, fallback string) string {
	if v := f.Text(key); v != "" {
		return v
	}
	return fallback
}

// Int coerces the field to an integer. JSON numbers are truncated toward zero and clamped to
// the int32 range, strings are parsed as base-10 integers; anything else gives 0.
func (f Fields) Int(key string) int {
	raw, ok := f[key]
	if !ok {
		return 0
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0
		}
		return int(max(math.MinInt32, min(math.MaxInt32, n)))
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := strconv.ParseFloat(string(raw), 64)
		if (err != nil && !errors.Is(err, strconv.ErrRange)) || math.IsNaN(v) {
			return 0
		}
		return int(math.Trunc(math.Max(math.MinInt32, math.Min(math.MaxInt32, v))))
	default:
		return 0
	}
}

// DateParts splits t into the footer's day, upper-case month name and year.
func DateParts(t time.Time) (day, month, year string) {
	return strconv.Itoa(t.Day()), strings.ToUpper(t.Month().String()), strconv.Itoa(t.Year())
}
