package processor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/orayew2002/marriage-form/domain"
	"github.com/orayew2002/marriage-form/template"
	"github.com/xuri/excelize/v2"
)

// placeholderValues are the {{key}} substitutions offered to the auxiliary sheets.
func placeholderValues(app *domain.Application, plan domain.Plan, now time.Time, jurisdiction string) map[string]string {
	day, month, year := domain.DateParts(now)

	values := map[string]string{
		"application_code": app.Code,
		"parental_sheet":   plan.ParentalSheet,
		"day":              day,
		"month":            month,
		"year":             year,
		"municipality":     jurisdiction,
	}

	for prefix, party := range map[string]domain.Party{"groom": app.Groom, "bride": app.Bride} {
		values[prefix+"_name"] = party.Name.Full()
		values[prefix+"_first"] = party.Name.First
		values[prefix+"_middle"] = party.Name.Middle
		values[prefix+"_last"] = party.Name.Last
		values[prefix+"_age"] = strconv.Itoa(party.Age)
		values[prefix+"_address"] = party.FullAddress()
		values[prefix+"_town"] = party.TownProvince()
		values[prefix+"_citizenship"] = party.Citizenship
		values[prefix+"_father"] = party.Father.Full()
		values[prefix+"_mother"] = party.Mother.Full()
		values[prefix+"_giver"] = party.Giver.Full()
		values[prefix+"_giver_relation"] = party.GiverRelation
	}

	return values
}

// resolvePlaceholders replaces {{key}} tokens on every kept sheet except the application
// sheet, which is filled by coordinate and holds applicant text.
func resolvePlaceholders(ctx context.Context, f *excelize.File, values map[string]string) error {
	registry := template.New()
	template.NewReplaceHandler().AddValues(values).Register(registry)
	template.RegisterUnresolvedHandler(registry)

	for _, sheet := range f.GetSheetList() {
		if sheet == domain.SheetApplication {
			continue
		}
		if err := processSheet(ctx, f, registry, sheet); err != nil {
			return fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}

	return nil
}

func processSheet(ctx context.Context, f *excelize.File, registry *template.Registry, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("get rows: %w", err)
	}

	for row := range rows {
		for col := range rows[row] {
			value := rows[row][col]
			if !strings.Contains(value, "{{") {
				continue
			}

			c := template.Cell{File: f, Sheet: sheet, Row: row, Col: col, Value: value}
			if _, err := registry.Process(ctx, c); err != nil {
				return fmt.Errorf("cell %s: %w", c.Name(), err)
			}
		}
	}

	return nil
}
