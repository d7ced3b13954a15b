package analysis

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/biter777/countries"
)

var locationStrategies = []strategy{
	// "Austin, TX"
	match(`\b[A-Z][a-z]+(?:[ \t-][A-Z][a-z]+)*,[ \t]*[A-Z]{2}\b`),
	// "Berlin, Germany"
	match(`\b[A-Z][a-z]+(?:[ \t-][A-Z][a-z]+)*,[ \t]*[A-Z][a-z]+(?:[ \t-][A-Z][a-z]+)*\b`),
	knownCity,
	countryName,
}

var commonCities = []string{
	"New York", "Los Angeles", "London", "Berlin", "Paris", "Tokyo", "Toronto",
	"Sydney", "Singapore", "Dubai", "Mumbai", "Lagos", "Manchester", "Birmingham",
	"San Francisco", "Chicago", "Boston", "Seattle", "Austin", "Madrid", "Barcelona",
	"Rome", "Amsterdam", "Brussels", "Copenhagen", "Stockholm", "Oslo", "Zurich",
	"Geneva", "Vienna", "Warsaw", "Prague", "Budapest", "Athens", "Dublin",
}

var cityPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(commonCities))
	for i, c := range commonCities {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c) + `\b`)
	}
	return out
}()

func knownCity(_ context.Context, text string) (string, bool) {
	for i, re := range cityPatterns {
		if re.MatchString(text) {
			return commonCities[i], true
		}
	}
	return "", false
}

type countryPattern struct {
	name  string
	lower string
	re    *regexp.Regexp
}

var (
	countryOnce     sync.Once
	countryPatterns []countryPattern
)

func loadCountries() []countryPattern {
	countryOnce.Do(func() {
		for _, c := range countries.All() {
			if !c.IsValid() {
				continue
			}
			name := c.String()
			r := []rune(name)
			// names ending in punctuation cannot sit between word boundaries
			if len(r) < 4 || !unicode.IsLetter(r[0]) || !unicode.IsLetter(r[len(r)-1]) {
				continue
			}
			countryPatterns = append(countryPatterns, countryPattern{
				name:  name,
				lower: strings.ToLower(name),
				re:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`),
			})
		}
	})
	return countryPatterns
}

func countryName(_ context.Context, text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, c := range loadCountries() {
		if strings.Contains(lower, c.lower) && c.re.MatchString(text) {
			return c.name, true
		}
	}
	return "", false
}
