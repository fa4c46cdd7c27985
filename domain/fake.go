package domain

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/bxcodec/faker/v4"
)

// FakeOptions pins the fields that drive sheet selection; everything else is random.
type FakeOptions struct {
	GroomAge  int
	BrideAge  int
	GroomTown string
	BrideTown string
}

var towns = []string{
	"Solano", "Bayombong", "Bambang", "Aritao", "Bagabag", "Diadi",
	"Dupax del Norte", "Dupax del Sur", "Kasibu", "Kayapa", "Quezon", "Villaverde",
}

var barangays = []string{
	"Poblacion North", "Poblacion South", "Quirino", "Roxas", "Osmeña", "Bascaran", "Aggub", "Bagahabag",
}

var religions = []string{
	"Roman Catholic", "Iglesia ni Cristo", "Islam", "Seventh-day Adventist", "Bible Baptist Church",
}

// GenerateInput builds a realistic application payload in the wire format read from stdin.
// Zero ages and empty towns are filled in randomly.
func GenerateInput(opts FakeOptions) map[string]any {
	if opts.GroomAge == 0 {
		opts.GroomAge = 18 + rand.Intn(20)
	}
	if opts.BrideAge == 0 {
		opts.BrideAge = 18 + rand.Intn(20)
	}
	if opts.GroomTown == "" {
		opts.GroomTown = pick(towns)
	}
	if opts.BrideTown == "" {
		opts.BrideTown = pick(towns)
	}

	groomLast, brideLast := faker.LastName(), faker.LastName()
	input := map[string]any{
		"applicationCode": "MLS-" + strconv.Itoa(100000+rand.Intn(900000)),
	}

	party(input, "g", faker.FirstNameMale(), groomLast, opts.GroomAge, opts.GroomTown)
	party(input, "b", faker.FirstNameFemale(), brideLast, opts.BrideAge, opts.BrideTown)

	return input
}

func party(input map[string]any, prefix, first, last string, age int, town string) {
	mother := faker.LastName()
	set := func(key string, v any) { input[prefix+key] = v }

	set("First", first)
	set("Middle", mother)
	set("Last", last)
	set("Bday", birthdate(age))
	set("Age", age)
	set("BirthPlace", town+", Nueva Vizcaya")
	set("Brgy", pick(barangays))
	set("Town", town)
	set("Prov", "Nueva Vizcaya")
	set("Country", "Philippines")
	set("Citizen", "Filipino")
	set("Religion", pick(religions))
	set("Status", "Single")
	set("FathF", faker.FirstNameMale())
	set("FathM", faker.LastName())
	set("FathL", last)
	set("MothF", faker.FirstNameFemale())
	set("MothM", faker.LastName())
	set("MothL", mother)

	if band := BandOf(age); band == BandConsent || band == BandAdvice {
		set("GiverF", input[prefix+"FathF"])
		set("GiverM", input[prefix+"FathM"])
		set("GiverL", last)
		set("GiverRelation", "Father")
	}
}

// birthdate returns a date that makes someone exactly age years old today.
func birthdate(age int) string {
	now := time.Now().Local()
	born := now.AddDate(-age, 0, -(1 + rand.Intn(300)))
	return born.Format("2006-01-02")
}

func pick(values []string) string {
	return values[rand.Intn(len(values))]
}
