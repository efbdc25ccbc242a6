package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Course code: department letters then a number, e.g. CS101 or MATH2010
	CourseCodePattern = `^[A-Z]{2,6}[0-9]{2,4}$`

	// Username: lowercase letters, digits, dot, underscore and dash
	UsernamePattern = `^[a-z0-9][a-z0-9._\-]*$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	CourseCode *regexp.Regexp
	Username   *regexp.Regexp
}{
	CourseCode: regexp.MustCompile(CourseCodePattern),
	Username:   regexp.MustCompile(UsernamePattern),
}

// Custom tags understood by Struct on top of the validator/v10 built-ins
const (
	TagCourseCode = "coursecode"
	TagUsername   = "username"
)

func patternRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// newValidator builds the shared validator with the custom tags registered
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	rules := map[string]*regexp.Regexp{
		TagCourseCode: CompiledPatterns.CourseCode,
		TagUsername:   CompiledPatterns.Username,
	}
	for tag, re := range rules {
		if err := v.RegisterValidation(tag, patternRule(re)); err != nil {
			panic(err)
		}
	}
	return v
}
