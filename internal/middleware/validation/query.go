package validation

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
)

// Query parametre kuralları
const (
	RuleNonNegativeInt = "non_negative_int"
	RuleToken          = "token"
	RuleBool           = "bool"
)

var tokenPattern = regexp.MustCompile(`^[a-z_]{1,32}$`)

// ValidateQuery bilinen query parametrelerini kurallarına göre kontrol eder.
// Hatalı parametrenin adını döner.
func ValidateQuery(r *http.Request, config *Config) (string, error) {
	for name, values := range r.URL.Query() {
		for _, value := range values {
			if config.MaxParamSize > 0 && len(value) > config.MaxParamSize {
				return name, fmt.Errorf("%s parametresi çok uzun", name)
			}
			if err := validateParam(name, value, config.QueryRules[name]); err != nil {
				return name, err
			}
		}
	}
	return "", nil
}

func validateParam(name, value, rule string) error {
	if value == "" {
		return nil
	}

	switch rule {
	case RuleNonNegativeInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s negatif olmayan bir tam sayı olmalı", name)
		}
	case RuleToken:
		if !tokenPattern.MatchString(value) {
			return fmt.Errorf("%s geçersiz: %s", name, value)
		}
	case RuleBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s true/false olmalı", name)
		}
	}
	return nil
}
