// Package lvimport parses and validates bill-of-quantities (LV)
// uploads: CSV or Excel in, typed rows plus a structured diagnostics
// report out. Data-quality problems are collected, never thrown; only
// an unreadable container or an unmapped required column stops the
// pipeline.
package lvimport

import "strings"

// CanonicalHeader names one column of the canonical LV schema.
type CanonicalHeader string

const (
	HeaderPositionsID CanonicalHeader = "Positions-ID"
	HeaderKurztext    CanonicalHeader = "Kurztext"
	HeaderEinheit     CanonicalHeader = "Einheit"
	HeaderEP          CanonicalHeader = "EP"
	HeaderKategorie   CanonicalHeader = "Kategorie"
)

var (
	RequiredHeaders = []CanonicalHeader{HeaderPositionsID, HeaderKurztext, HeaderEinheit, HeaderEP}
	OptionalHeaders = []CanonicalHeader{HeaderKategorie}
	AllHeaders      = []CanonicalHeader{HeaderPositionsID, HeaderKurztext, HeaderEinheit, HeaderEP, HeaderKategorie}
)

// headerAliases maps normalized legacy header spellings to canonical
// headers. Grown from real customer files, extend as new ones show up.
var headerAliases = map[string]CanonicalHeader{
	"gruppe":    HeaderKategorie,
	"kategorie": HeaderKategorie,
	"category":  HeaderKategorie,

	"kompaktposition": HeaderKurztext,
	"kurztext":        HeaderKurztext,
	"kurz-text":       HeaderKurztext,
	"beschreibung":    HeaderKurztext,
	"text":            HeaderKurztext,
	"position":        HeaderKurztext,
	"leistung":        HeaderKurztext,
	"short_text":      HeaderKurztext,
	"shorttext":       HeaderKurztext,

	"umsatz (leistung) je einheit": HeaderEP,
	"umsatz je einheit":            HeaderEP,
	"einheitspreis":                HeaderEP,
	"ep":                           HeaderEP,
	"preis":                        HeaderEP,
	"unit_price":                   HeaderEP,
	"unitprice":                    HeaderEP,
	"price":                        HeaderEP,
	"ep (€)":                       HeaderEP,
	"ep €":                         HeaderEP,

	"einheit":       HeaderEinheit,
	"unit":          HeaderEinheit,
	"me":            HeaderEinheit,
	"mengeneinheit": HeaderEinheit,

	"positions-id":  HeaderPositionsID,
	"positionsid":   HeaderPositionsID,
	"position_code": HeaderPositionsID,
	"positionscode": HeaderPositionsID,
	"pos":           HeaderPositionsID,
	"pos.":          HeaderPositionsID,
	"pos-nr":        HeaderPositionsID,
	"pos-nr.":       HeaderPositionsID,
	"posnr":         HeaderPositionsID,
	"id":            HeaderPositionsID,
	"nr":            HeaderPositionsID,
	"nr.":           HeaderPositionsID,
	"lfd. nr.":      HeaderPositionsID,
	"lfd nr":        HeaderPositionsID,
}

// knownUnits is the whitelist for Einheit validation. Unknown units
// only warn, the import still proceeds.
var knownUnits = []string{
	"m", "m²", "m³", "m2", "m3",
	"STCK", "Stck", "stck", "STK", "Stk", "stk", "Stück", "stück",
	"Std", "std", "h", "H",
	"Std / MA", "std / ma", "Std/MA",
	"kg", "KG", "Kg",
	"t", "T",
	"l", "L", "Liter", "liter",
	"psch", "Psch", "PSCH", "pauschal", "Pauschal",
	"%",
	"lfm", "Lfm", "LFM", "lfdm", "Lfdm",
	"Tag", "tag", "Tage", "tage",
	"km", "Km", "KM",
}

var knownUnitSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(knownUnits))
	for _, unit := range knownUnits {
		set[NormalizeHeader(unit)] = struct{}{}
	}
	return set
}()

func isKnownUnit(einheit string) bool {
	_, ok := knownUnitSet[NormalizeHeader(einheit)]
	return ok
}

// NormalizeHeader lowercases, trims and collapses internal whitespace
// and line breaks to single spaces.
func NormalizeHeader(header string) string {
	return strings.Join(strings.Fields(strings.ToLower(header)), " ")
}

// ColumnMapping assigns a source column index to each canonical
// header. A missing key means the header is unmapped.
type ColumnMapping map[CanonicalHeader]int

// AutoMapHeaders matches uploaded headers against the canonical set
// and the alias table. The first source header claiming a canonical
// slot wins; later duplicates are ignored.
func AutoMapHeaders(sourceHeaders []string) ColumnMapping {
	mapping := make(ColumnMapping, len(AllHeaders))

	for index, header := range sourceHeaders {
		normalized := NormalizeHeader(header)

		exact := false
		for _, canonical := range AllHeaders {
			if NormalizeHeader(string(canonical)) == normalized {
				if _, taken := mapping[canonical]; !taken {
					mapping[canonical] = index
				}
				exact = true
				break
			}
		}
		if exact {
			continue
		}

		if canonical, ok := headerAliases[normalized]; ok {
			if _, taken := mapping[canonical]; !taken {
				mapping[canonical] = index
			}
		}
	}

	return mapping
}

// MappingValidation reports which required headers are still unmapped.
type MappingValidation struct {
	Valid   bool              `json:"valid"`
	Missing []CanonicalHeader `json:"missing"`
}

// ValidateMapping fails when a required canonical header is unmapped.
// Kategorie is optional and never causes failure.
func ValidateMapping(mapping ColumnMapping) MappingValidation {
	var missing []CanonicalHeader
	for _, header := range RequiredHeaders {
		if _, ok := mapping[header]; !ok {
			missing = append(missing, header)
		}
	}
	return MappingValidation{Valid: len(missing) == 0, Missing: missing}
}

// IsCanonicalSchema reports whether the uploaded headers already carry
// every required canonical header verbatim, so the UI can skip the
// mapping step.
func IsCanonicalSchema(headers []string) bool {
	normalized := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		normalized[NormalizeHeader(header)] = struct{}{}
	}
	for _, required := range RequiredHeaders {
		if _, ok := normalized[NormalizeHeader(string(required))]; !ok {
			return false
		}
	}
	return true
}
