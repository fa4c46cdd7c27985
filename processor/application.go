package processor

import (
	"fmt"
	"time"

	"github.com/orayew2002/marriage-form/domain"
	"github.com/orayew2002/marriage-form/layout"
	"github.com/xuri/excelize/v2"
)

// cellValue is one write into the application sheet.
type cellValue struct {
	cell  string
	value any
}

// partyValues lists the writes for one applicant's block. The giver rows are only
// filled for parties in the consent or advice bands.
func partyValues(c layout.PartyCells, p domain.Party) []cellValue {
	values := []cellValue{
		{c.First, p.Name.First},
		{c.Middle, p.Name.Middle},
		{c.Last, p.Name.Last},
		{c.Birthdate, p.Birthdate},
		{c.Age, p.Age},
		{c.BirthPlace, p.BirthPlaceOrTown()},
		{c.BirthCountry, p.Country},
		{c.Sex, p.Sex},
		{c.Citizenship, p.Citizenship},
		{c.Address, p.FullAddress()},
		{c.ResidenceCountry, p.Country},
		{c.Religion, p.Religion},
		{c.Status, p.Status},
	}
	values = append(values, nameValues(c.Father, p.Father)...)
	values = append(values, nameValues(c.Mother, p.Mother)...)

	if p.NeedsGiver() {
		values = append(values, nameValues(c.Giver, p.Giver)...)
		values = append(values,
			cellValue{c.GiverRelation, p.GiverRelation},
			cellValue{c.GiverCitizenship, p.Citizenship},
		)
	}

	return values
}

func nameValues(c layout.NameCells, n domain.Name) []cellValue {
	return []cellValue{{c.First, n.First}, {c.Middle, n.Middle}, {c.Last, n.Last}}
}

func footerValues(c layout.FooterCells, now time.Time, jurisdiction string) []cellValue {
	day, month, year := domain.DateParts(now)

	var values []cellValue
	for _, group := range []struct {
		cells []string
		value string
	}{
		{c.Day, day},
		{c.Month, month},
		{c.Year, year},
		{c.Municipality, jurisdiction},
	} {
		for _, cell := range group.cells {
			values = append(values, cellValue{cell, group.value})
		}
	}
	return values
}

func (p *Filler) writeApplication(f *excelize.File, app *domain.Application, now time.Time) error {
	l := p.opts.Layout

	blocks := []struct {
		name   string
		values []cellValue
	}{
		{"groom", partyValues(l.Groom, app.Groom)},
		{"bride", partyValues(l.Bride, app.Bride)},
		{"footer", footerValues(l.Footer, now, p.opts.Jurisdiction)},
	}

	for _, b := range blocks {
		for _, v := range b.values {
			if err := f.SetCellValue(domain.SheetApplication, v.cell, v.value); err != nil {
				return fmt.Errorf("%s %s: %w", b.name, v.cell, err)
			}
		}
	}

	return nil
}
