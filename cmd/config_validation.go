package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
)

// configGetter retrieves raw configuration values by dotted key path.
type configGetter func(key string) any

// validateStartupConfig validates startup configuration from the shared config source.
func validateStartupConfig() error {
	return validateStartupConfigWithGetter(func(key string) any {
		return gconfig.Shared.Get(key)
	})
}

// validateStartupConfigWithGetter validates startup configuration via a key-value getter.
// It collects every problem and returns them as one error, nil when all values are valid.
func validateStartupConfigWithGetter(get configGetter) error {
	if get == nil {
		return errors.New("config getter is nil")
	}

	validationErrs := make([]string, 0)

	validateRequiredStringNonEmpty(get, "settings.secret", &validationErrs)
	validateMongoConfig(get, &validationErrs)
	validateThrottleConfig(get, &validationErrs)
	validateCORSConfig(get, &validationErrs)

	if len(validationErrs) == 0 {
		return nil
	}

	return errors.Errorf("invalid configuration:\n - %s", strings.Join(validationErrs, "\n - "))
}

// validateMongoConfig validates the twitter mongo connection settings.
func validateMongoConfig(get configGetter, errs *[]string) {
	validateRequiredStringNonEmpty(get, "settings.db.twitter.addr", errs)
	validateRequiredStringNonEmpty(get, "settings.db.twitter.db", errs)
	validateOptionalStringNonEmpty(get, "settings.db.twitter.user", errs)
	validateOptionalStringNonEmpty(get, "settings.db.twitter.auth_db", errs)
	validateOptionalIntMin(get, "settings.db.twitter.max_pool_size", 1, errs)
}

// validateThrottleConfig validates write throttle settings.
// Throttling is optional, but once any key is set all of them must be.
func validateThrottleConfig(get configGetter, errs *[]string) {
	keys := []string{
		"settings.throttle.total_per_sec",
		"settings.throttle.total_burst",
		"settings.throttle.each_user_per_sec",
		"settings.throttle.each_user_burst",
	}

	configured := 0
	for _, key := range keys {
		if get(key) != nil {
			configured++
		}
		validateOptionalIntMin(get, key, 1, errs)
	}
	if configured == 0 {
		return
	}
	if configured != len(keys) {
		appendValidationError(errs, "settings.throttle requires all of %s", strings.Join(keys, ", "))
		return
	}

	validateIntNotLess(get, "settings.throttle.total_burst", "settings.throttle.total_per_sec", errs)
	validateIntNotLess(get, "settings.throttle.each_user_burst", "settings.throttle.each_user_per_sec", errs)
}

// validateCORSConfig validates allowed CORS domains, each must be a bare host.
func validateCORSConfig(get configGetter, errs *[]string) {
	const key = "settings.web.cors_domains"
	raw := get(key)
	if raw == nil {
		return
	}

	var domains []any
	switch v := raw.(type) {
	case []any:
		domains = v
	case []string:
		for _, d := range v {
			domains = append(domains, d)
		}
	default:
		appendValidationError(errs, "%s must be a list of domains", key)
		return
	}

	for i, d := range domains {
		domain, err := parseStrictString(d)
		if err != nil || !isValidHost(domain) {
			appendValidationError(errs, "%s[%d] must be a host without scheme or path", key, i)
		}
	}
}

// validateIntNotLess checks integer key is not less than another integer key.
// Unparsable values are reported by validateOptionalIntMin.
func validateIntNotLess(get configGetter, key, than string, errs *[]string) {
	value, err := parseStrictInt(get(key))
	if err != nil {
		return
	}
	other, err := parseStrictInt(get(than))
	if err != nil {
		return
	}

	if value < other {
		appendValidationError(errs, "%s must be >= %s", key, than)
	}
}

// validateRequiredStringNonEmpty validates a required non-empty string key.
func validateRequiredStringNonEmpty(get configGetter, key string, errs *[]string) {
	if get(key) == nil {
		appendValidationError(errs, "%s is required", key)
		return
	}

	validateOptionalStringNonEmpty(get, key, errs)
}

// validateOptionalIntMin validates an optionally configured integer key with a minimum constraint.
func validateOptionalIntMin(get configGetter, key string, min int, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictInt(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be an integer", key)
		return
	}

	if value < min {
		appendValidationError(errs, "%s must be >= %d", key, min)
	}
}

// validateOptionalStringNonEmpty validates an optionally configured non-empty string key.
func validateOptionalStringNonEmpty(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string", key)
		return
	}

	if strings.TrimSpace(value) == "" {
		appendValidationError(errs, "%s must not be empty", key)
	}
}

// parseStrictInt parses a value as a strict integer.
func parseStrictInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if math.Trunc(v) != v {
			return 0, errors.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, errors.New("empty integer string")
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, errors.Wrap(err, "atoi")
		}
		return parsed, nil
	default:
		return 0, errors.Errorf("unsupported int type %T", value)
	}
}

// parseStrictString parses a value as a strict string.
func parseStrictString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", errors.Errorf("unsupported string type %T", value)
	}
}

// isValidHost validates a host string without scheme or path components.
func isValidHost(host string) bool {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		return false
	}
	if strings.Contains(trimmed, "://") || strings.Contains(trimmed, "/") {
		return false
	}
	return true
}

// appendValidationError appends a formatted validation error to the collector.
func appendValidationError(errs *[]string, format string, args ...any) {
	if errs == nil {
		return
	}
	*errs = append(*errs, fmt.Sprintf(format, args...))
}
