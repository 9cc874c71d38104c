package restaurant

import (
	"strconv"
	"strings"
)

// buildMinRatingQuery matches every restaurant at or above the rating floor.
func buildMinRatingQuery(minRating float64) string {
	return "@averageRating:[" + formatFloat(minRating) + " +inf]"
}

// buildTextQuery fuzzy-matches each query token against name OR cuisineType,
// AND'd with the rating floor. A document matching only the floor is not a
// hit; at least one field must fuzzy-match.
func buildTextQuery(text string, minRating float64) string {
	terms := fuzzyTerms(text)
	if terms == "" {
		return buildMinRatingQuery(minRating)
	}
	return "(@name:(" + terms + ") | @cuisineType:(" + terms + ")) " +
		buildMinRatingQuery(minRating)
}

// buildGeoQuery matches restaurants whose geoLocation lies within radiusKm
// of the given point.
func buildGeoQuery(lat, lon, radiusKm float64) string {
	return "@geoLocation:[" + formatFloat(lon) + " " + formatFloat(lat) + " " +
		formatFloat(radiusKm) + " km]"
}

// fuzzyTerms converts free text into space-separated %token% fuzzy terms
// (Levenshtein distance 1 per token).
func fuzzyTerms(text string) string {
	fields := strings.Fields(text)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := escapeToken(f)
		if tok == "" {
			continue
		}
		terms = append(terms, "%"+tok+"%")
	}
	return strings.Join(terms, " ")
}

// escapeToken backslash-escapes query-syntax characters inside a search term.
func escapeToken(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 0x80:
			// multi-byte rune, passed through as-is
			b.WriteByte(c)
		default:
			b.WriteByte('\\')
			b.WriteByte(c)
		}
	}
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
