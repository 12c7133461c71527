package locale

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength caps the header size that gets parsed.
const maxAcceptLanguageLength = 4096

type languageTag struct {
	primary string
	quality float64
}

// Negotiate returns the recognized short code that best matches an
// Accept-Language header, comparing primary subtags only ("fr-CA" -> "FR").
// The fallback is returned when the header is empty or nothing matches.
//
// Example header: "fr-CH, fr;q=0.9, en;q=0.8" returns "FR".
func Negotiate(header, fallback string) string {
	for _, tag := range parseLanguageTags(header) {
		if tag.quality <= 0 {
			continue
		}
		if code := strings.ToUpper(tag.primary); IsRecognized(code) {
			return code
		}
	}
	return fallback
}

// parseLanguageTags parses the header into primary subtags ordered by quality.
// Ties keep header order.
func parseLanguageTags(header string) []languageTag {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []languageTag

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		langPart, qPart, hasQuality := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)

		if hasQuality {
			qPart = strings.TrimSpace(qPart)
			if strings.HasPrefix(qPart, "q=") {
				if q, err := strconv.ParseFloat(qPart[2:], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if langPart == "" || langPart == "*" {
			continue
		}

		primary, _, _ := strings.Cut(strings.ReplaceAll(langPart, "_", "-"), "-")
		tags = append(tags, languageTag{
			primary: strings.ToLower(primary),
			quality: quality,
		})
	}

	slices.SortStableFunc(tags, func(a, b languageTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return tags
}
