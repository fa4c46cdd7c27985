// Package layout maps application fields to cell coordinates on the APPLICATION sheet.
package layout

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/orayew2002/marriage-form/excel"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML string

// Layout is the full cell map of the template.
type Layout struct {
	Version string      `yaml:"version"`
	Name    string      `yaml:"name"`
	Photo   PhotoAnchor `yaml:"photo"`
	Groom   PartyCells  `yaml:"groom"`
	Bride   PartyCells  `yaml:"bride"`
	Footer  FooterCells `yaml:"footer"`
}

// PhotoAnchor places the couple photo on the notice sheet.
type PhotoAnchor struct {
	Cell     string  `yaml:"cell"`
	WidthCm  float64 `yaml:"width_cm"`
	HeightCm float64 `yaml:"height_cm"`
}

// NameCells holds the three cells of a first/middle/last row.
type NameCells struct {
	First  string `yaml:"first"`
	Middle string `yaml:"middle"`
	Last   string `yaml:"last"`
}

// PartyCells is one applicant's column block.
type PartyCells struct {
	First            string    `yaml:"first"`
	Middle           string    `yaml:"middle"`
	Last             string    `yaml:"last"`
	Birthdate        string    `yaml:"birthdate"`
	Age              string    `yaml:"age"`
	BirthPlace       string    `yaml:"birth_place"`
	BirthCountry     string    `yaml:"birth_country"`
	Sex              string    `yaml:"sex"`
	Citizenship      string    `yaml:"citizenship"`
	Address          string    `yaml:"address"`
	ResidenceCountry string    `yaml:"residence_country"`
	Religion         string    `yaml:"religion"`
	Status           string    `yaml:"status"`
	Father           NameCells `yaml:"father"`
	Mother           NameCells `yaml:"mother"`
	Giver            NameCells `yaml:"giver"`
	GiverRelation    string    `yaml:"giver_relation"`
	GiverCitizenship string    `yaml:"giver_citizenship"`
}

// FooterCells are shared by both blocks; each value is written to every listed cell.
type FooterCells struct {
	Day          []string `yaml:"day"`
	Month        []string `yaml:"month"`
	Year         []string `yaml:"year"`
	Municipality []string `yaml:"municipality"`
}

// Default returns the layout compiled into the binary.
func Default() *Layout {
	l, err := LoadFromString(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded layout: %v", err))
	}
	return l
}

// Load reads a layout from a YAML file.
func Load(path string) (*Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout file: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader reads a layout from r, normalizes its coordinates and validates it.
func LoadFromReader(r io.Reader) (*Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing YAML layout: %w", err)
	}

	if err := l.normalize(); err != nil {
		return nil, fmt.Errorf("validating layout: %w", err)
	}

	return &l, nil
}

// LoadFromString reads a layout from a YAML string.
func LoadFromString(content string) (*Layout, error) {
	return LoadFromReader(strings.NewReader(content))
}

// normalize rewrites every coordinate into canonical A1 form, failing on the first bad one.
// Every party cell is required; footer lists may be empty.
func (l *Layout) normalize() error {
	if l.Version == "" {
		l.Version = "1.0"
	}

	for _, block := range []struct {
		name  string
		cells *PartyCells
	}{{"groom", &l.Groom}, {"bride", &l.Bride}} {
		for field, ref := range block.cells.refs() {
			cell, err := excel.NormalizeCell(*ref)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", block.name, field, err)
			}
			*ref = cell
		}
	}

	for field, refs := range l.Footer.refs() {
		for i := range *refs {
			cell, err := excel.NormalizeCell((*refs)[i])
			if err != nil {
				return fmt.Errorf("footer.%s[%d]: %w", field, i, err)
			}
			(*refs)[i] = cell
		}
	}

	cell, err := excel.NormalizeCell(l.Photo.Cell)
	if err != nil {
		return fmt.Errorf("photo.cell: %w", err)
	}
	l.Photo.Cell = cell
	if l.Photo.WidthCm <= 0 || l.Photo.HeightCm <= 0 {
		return fmt.Errorf("photo: width_cm and height_cm must be positive")
	}

	return nil
}

func (p *PartyCells) refs() map[string]*string {
	return map[string]*string{
		"first":             &p.First,
		"middle":            &p.Middle,
		"last":              &p.Last,
		"birthdate":         &p.Birthdate,
		"age":               &p.Age,
		"birth_place":       &p.BirthPlace,
		"birth_country":     &p.BirthCountry,
		"sex":               &p.Sex,
		"citizenship":       &p.Citizenship,
		"address":           &p.Address,
		"residence_country": &p.ResidenceCountry,
		"religion":          &p.Religion,
		"status":            &p.Status,
		"father.first":      &p.Father.First,
		"father.middle":     &p.Father.Middle,
		"father.last":       &p.Father.Last,
		"mother.first":      &p.Mother.First,
		"mother.middle":     &p.Mother.Middle,
		"mother.last":       &p.Mother.Last,
		"giver.first":       &p.Giver.First,
		"giver.middle":      &p.Giver.Middle,
		"giver.last":        &p.Giver.Last,
		"giver_relation":    &p.GiverRelation,
		"giver_citizenship": &p.GiverCitizenship,
	}
}

func (f *FooterCells) refs() map[string]*[]string {
	return map[string]*[]string{
		"day":          &f.Day,
		"month":        &f.Month,
		"year":         &f.Year,
		"municipality": &f.Municipality,
	}
}
