package domain

// Sheet names of the template workbook.
const (
	SheetApplication = "APPLICATION"
	SheetNotice      = "Notice"
	SheetAddressBack = "AddressBACKnotice"
	SheetEnvelope    = "EnvelopeAddress"

	SheetConsentF       = "CONSENT F"
	SheetConsentM       = "CONSENT M"
	SheetConsentMF      = "CONSENT M&F"
	SheetAdviceF        = "ADVICE F"
	SheetAdviceM        = "ADVICE M"
	SheetAdviceMF       = "ADVICE M&F"
	SheetAdviceMConsent = "ADVICE M-CONSENT F"
	SheetAdviceFConsent = "ADVICE F-CONSENT M"
)

// Band is an age bracket relevant to parental consent and advice.
type Band int

const (
	// BandMinor covers anything below 18, including the 0 given to unparseable ages.
	BandMinor Band = iota
	// BandConsent is 18–20: parental consent required.
	BandConsent
	// BandAdvice is 21–24: parental advice required.
	BandAdvice
	// BandAdult is 25 and over.
	BandAdult
)

// BandOf maps an age to its band.
func BandOf(age int) Band {
	switch {
	case age >= 25:
		return BandAdult
	case age >= 21:
		return BandAdvice
	case age >= 18:
		return BandConsent
	default:
		return BandMinor
	}
}

func (b Band) String() string {
	switch b {
	case BandConsent:
		return "consent"
	case BandAdvice:
		return "advice"
	case BandAdult:
		return "adult"
	default:
		return "minor"
	}
}

type parentalRule struct {
	bride Band
	groom Band
	sheet string
}

// parentalRules is evaluated top to bottom; the first match wins.
var parentalRules = []parentalRule{
	{bride: BandConsent, groom: BandAdult, sheet: SheetConsentF},
	{bride: BandAdult, groom: BandConsent, sheet: SheetConsentM},
	{bride: BandConsent, groom: BandConsent, sheet: SheetConsentMF},
	{bride: BandAdvice, groom: BandAdult, sheet: SheetAdviceF},
	{bride: BandAdult, groom: BandAdvice, sheet: SheetAdviceM},
	{bride: BandAdvice, groom: BandAdvice, sheet: SheetAdviceMF},
	{bride: BandConsent, groom: BandAdvice, sheet: SheetAdviceMConsent},
	{bride: BandAdvice, groom: BandConsent, sheet: SheetAdviceFConsent},
}

// ParentalSheets lists every consent/advice sheet in decision-table order.
func ParentalSheets() []string {
	names := make([]string, len(parentalRules))
	for i, r := range parentalRules {
		names[i] = r.sheet
	}
	return names
}

// ParentalSheet returns the consent/advice sheet required for the pair, or "" when none is.
func ParentalSheet(groomAge, brideAge int) string {
	groom, bride := BandOf(groomAge), BandOf(brideAge)
	for _, r := range parentalRules {
		if r.groom == groom && r.bride == bride {
			return r.sheet
		}
	}
	return ""
}

// Plan is the sheet selection for one application.
type Plan struct {
	Keep          []string `json:"keep"`
	ParentalSheet string   `json:"parentalSheet,omitempty"`
	OutOfTown     bool     `json:"outOfTown"`
	GroomBand     string   `json:"groomBand"`
	BrideBand     string   `json:"brideBand"`
}

// NewPlan computes the keep-set. jurisdiction is the local "<TOWN>, <PROVINCE>" string; a
// party living anywhere else pulls in the address sheets.
func NewPlan(app *Application, jurisdiction string) Plan {
	p := Plan{
		Keep:          []string{SheetApplication, SheetNotice},
		ParentalSheet: ParentalSheet(app.Groom.Age, app.Bride.Age),
		OutOfTown:     app.Groom.TownProvince() != jurisdiction || app.Bride.TownProvince() != jurisdiction,
		GroomBand:     app.Groom.Band().String(),
		BrideBand:     app.Bride.Band().String(),
	}

	if p.ParentalSheet != "" {
		p.Keep = append(p.Keep, p.ParentalSheet)
	}
	if p.OutOfTown {
		p.Keep = append(p.Keep, SheetAddressBack, SheetEnvelope)
	}

	return p
}

// Keeps reports whether sheet survives pruning.
func (p Plan) Keeps(sheet string) bool {
	for _, k := range p.Keep {
		if k == sheet {
			return true
		}
	}
	return false
}
