package engine

import (
	"strconv"
	"strings"
)

// ZoneMatches decides whether an address falls inside a zone's geographic
// rules. Exclusions are checked before inclusions; a zone declaring no
// inclusion criteria matches only when it is the default zone. The function
// is pure and deterministic for identical inputs.
func ZoneMatches(zone ZoneRules, addr *Address) bool {
	if addr == nil {
		return zone.IsDefault
	}

	country := strings.ToUpper(strings.TrimSpace(addr.Country))
	state := stateKey(country, addr.State)
	postal := cleanPostalCode(addr.PostalCode)

	if country != "" && containsFold(zone.ExcludedCountries, country) {
		return false
	}
	if state != "" && containsFold(zone.ExcludedStates, state) {
		return false
	}
	if postal != "" {
		for _, excluded := range zone.ExcludedPostalCodes {
			if cleanPostalCode(excluded) == postal {
				return false
			}
		}
	}

	if !zone.HasInclusionCriteria() {
		return zone.IsDefault
	}

	if country != "" && containsFold(zone.Countries, country) {
		return true
	}
	if state != "" && containsFold(zone.States, state) {
		return true
	}
	if postal != "" {
		for _, pattern := range zone.PostalCodePatterns {
			if matchPostalPattern(pattern, postal) {
				return true
			}
		}
	}
	if addr.City != "" && containsFold(zone.Cities, strings.TrimSpace(addr.City)) {
		return true
	}

	return false
}

// matchPostalPattern checks a cleaned postal code against one configured
// pattern: exact match, prefix wildcard ("90*"), or numeric range
// ("10001-10099"). A range whose bounds or candidate do not parse as integers
// silently does not match, keeping zone resolution total.
func matchPostalPattern(pattern, cleaned string) bool {
	trimmed := strings.ToUpper(strings.TrimSpace(pattern))
	if trimmed == "" || cleaned == "" {
		return false
	}

	if strings.HasSuffix(trimmed, "*") {
		prefix := cleanPostalCode(strings.TrimSuffix(trimmed, "*"))
		return prefix != "" && strings.HasPrefix(cleaned, prefix)
	}

	if low, high, ok := strings.Cut(trimmed, "-"); ok {
		lowN, errLow := strconv.Atoi(strings.TrimSpace(low))
		highN, errHigh := strconv.Atoi(strings.TrimSpace(high))
		candidate, errCode := strconv.Atoi(cleaned)
		if errLow != nil || errHigh != nil || errCode != nil {
			return false
		}
		return candidate >= lowN && candidate <= highN
	}

	return cleanPostalCode(trimmed) == cleaned
}

// cleanPostalCode uppercases and strips spaces and hyphens so "100-0001" and
// "100 0001" compare equal.
func cleanPostalCode(code string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(code))
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	return strings.ReplaceAll(cleaned, "-", "")
}

// stateKey builds the "{COUNTRY}-{STATE}" key zone state lists use. Either
// part missing yields no key.
func stateKey(country, state string) string {
	trimmedState := strings.ToUpper(strings.TrimSpace(state))
	if country == "" || trimmedState == "" {
		return ""
	}
	return country + "-" + trimmedState
}

func containsFold(values []string, candidate string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), candidate) {
			return true
		}
	}
	return false
}
