package lvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "positions-id", NormalizeHeader("  Positions-ID "))
	assert.Equal(t, "umsatz je einheit", NormalizeHeader("Umsatz\r\nje   Einheit"))
	assert.Equal(t, "", NormalizeHeader("  \r\n "))
}

func TestAutoMapHeaders_CanonicalRoundTrip(t *testing.T) {
	headers := make([]string, len(AllHeaders))
	for i, header := range AllHeaders {
		headers[i] = string(header)
	}
	mapping := AutoMapHeaders(headers)

	for i, header := range AllHeaders {
		index, ok := mapping[header]
		assert.True(t, ok, "header %s unmapped", header)
		assert.Equal(t, i, index, "header %s", header)
	}
}

func TestAutoMapHeaders_Aliases(t *testing.T) {
	mapping := AutoMapHeaders([]string{"Pos-Nr.", "Beschreibung", "ME", "Einheitspreis", "Gruppe"})

	assert.Equal(t, 0, mapping[HeaderPositionsID])
	assert.Equal(t, 1, mapping[HeaderKurztext])
	assert.Equal(t, 2, mapping[HeaderEinheit])
	assert.Equal(t, 3, mapping[HeaderEP])
	assert.Equal(t, 4, mapping[HeaderKategorie])
}

func TestAutoMapHeaders_FirstOccurrenceWins(t *testing.T) {
	mapping := AutoMapHeaders([]string{"EP", "Preis", "ep"})
	assert.Equal(t, 0, mapping[HeaderEP])
}

func TestAutoMapHeaders_UnknownHeadersStayUnmapped(t *testing.T) {
	mapping := AutoMapHeaders([]string{"Bemerkung", "Menge"})
	assert.Empty(t, mapping)
}

func TestValidateMapping(t *testing.T) {
	full := AutoMapHeaders([]string{"Positions-ID", "Kurztext", "Einheit", "EP"})
	validation := ValidateMapping(full)
	assert.True(t, validation.Valid)
	assert.Empty(t, validation.Missing)

	partial := AutoMapHeaders([]string{"Kurztext", "EP"})
	validation = ValidateMapping(partial)
	assert.False(t, validation.Valid)
	assert.ElementsMatch(t, []CanonicalHeader{HeaderPositionsID, HeaderEinheit}, validation.Missing)
}

func TestValidateMapping_KategorieOptional(t *testing.T) {
	mapping := AutoMapHeaders([]string{"Positions-ID", "Kurztext", "Einheit", "EP"})
	delete(mapping, HeaderKategorie)
	assert.True(t, ValidateMapping(mapping).Valid)
}

func TestIsCanonicalSchema(t *testing.T) {
	assert.True(t, IsCanonicalSchema([]string{"Positions-ID", "Kurztext", "Einheit", "EP", "Kategorie"}))
	assert.True(t, IsCanonicalSchema([]string{"positions-id", "KURZTEXT", "einheit", "ep"}))
	// aliases are not canonical
	assert.False(t, IsCanonicalSchema([]string{"Pos-Nr.", "Kurztext", "Einheit", "EP"}))
	assert.False(t, IsCanonicalSchema([]string{"Kurztext", "Einheit", "EP"}))
}

func TestIsKnownUnit(t *testing.T) {
	assert.True(t, isKnownUnit("m²"))
	assert.True(t, isKnownUnit("Stück"))
	assert.True(t, isKnownUnit("STD / MA"))
	assert.False(t, isKnownUnit("Karton"))
}
