// Package validate checks request-body structs against `validate` tags.
//
// Rules are comma-separated. Available rules:
//
//	required            non-zero value
//	nullable            empty value skips the remaining rules
//	email               well-formed email address
//	numeric             parses as a number
//	min=N max=N         length bound for strings, value bound for numbers
//	gt=N gte=N          numeric lower bounds
//	in=a,b,c            membership in the listed values
//
// Field names in the error map come from the json tag, so handlers can echo
// them straight back to the client:
//
//	type Input struct {
//	    Email string  `json:"email" validate:"required,email"`
//	    Price float64 `json:"price" validate:"required,gt=0"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// checker evaluates one rule against a field value. A non-empty return is
// the client-facing error message.
type checker func(field string, v reflect.Value, param string) string

var checkers = map[string]checker{
	"required": func(field string, v reflect.Value, _ string) string {
		if isZero(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	},
	"email": func(field string, v reflect.Value, _ string) string {
		if !emailRE.MatchString(asString(v)) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
		return ""
	},
	"numeric": func(field string, v reflect.Value, _ string) string {
		if _, err := strconv.ParseFloat(asString(v), 64); err != nil {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
		return ""
	},
	"min": func(field string, v reflect.Value, param string) string {
		bound := parseBound(param)
		if isNumber(v) {
			if asFloat(v) < bound {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if runeLen(v) < bound {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
		return ""
	},
	"max": func(field string, v reflect.Value, param string) string {
		bound := parseBound(param)
		if isNumber(v) {
			if asFloat(v) > bound {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if runeLen(v) > bound {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
		return ""
	},
	"gt": func(field string, v reflect.Value, param string) string {
		if asFloat(v) <= parseBound(param) {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
		return ""
	},
	"gte": func(field string, v reflect.Value, param string) string {
		if asFloat(v) < parseBound(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
		return ""
	},
	"in": func(field string, v reflect.Value, param string) string {
		value := asString(v)
		for _, allowed := range strings.Split(param, ",") {
			if value == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	},
}

// Struct validates every tagged exported field of v and returns a map of
// json field name to the first failing rule's message.
func Struct(v interface{}) map[string]string {
	errs := map[string]string{}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("validate")
		if tag == "" {
			continue
		}

		field := fieldName(rt.Field(i))
		value := rv.Field(i)
		rules := parseRules(tag)

		if rules.nullable && isZero(value) {
			continue
		}

		for _, rule := range rules.list {
			check, ok := checkers[rule.name]
			if !ok {
				continue
			}
			if msg := check(field, value, rule.param); msg != "" {
				errs[field] = msg
				break
			}
		}
	}

	return errs
}

// HasErrors reports whether Struct found any failures.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

type rule struct {
	name  string
	param string
}

type ruleSet struct {
	list     []rule
	nullable bool
}

// knownRules anchors tag splitting: a comma starts a new rule only when the
// following token is a rule keyword. This keeps in= parameter lists whole,
// e.g. "in=admin,regular,max=5" parses as [in=admin,regular  max=5].
var knownRules = []string{"required", "nullable", "email", "numeric", "min=", "max=", "gt=", "gte=", "in="}

func startsRule(s string) bool {
	for _, k := range knownRules {
		if strings.HasPrefix(s, k) {
			return true
		}
	}
	return false
}

func parseRules(tag string) ruleSet {
	var out ruleSet
	var tokens []string

	rest := tag
	for rest != "" {
		cut := len(rest)
		for i := 0; i < len(rest); i++ {
			if rest[i] == ',' && startsRule(rest[i+1:]) {
				cut = i
				break
			}
		}
		tokens = append(tokens, rest[:cut])
		if cut == len(rest) {
			break
		}
		rest = rest[cut+1:]
	}

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if tok == "nullable" {
			out.nullable = true
			continue
		}
		name, param, _ := strings.Cut(tok, "=")
		out.list = append(out.list, rule{name: name, param: param})
	}

	return out
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return strings.ToLower(f.Name)
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		// false is a legitimate value, not an omission
		return false
	default:
		return v.IsZero()
	}
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func asString(v reflect.Value) string {
	return fmt.Sprintf("%v", v.Interface())
}

func asFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	f, _ := strconv.ParseFloat(asString(v), 64)
	return f
}

func runeLen(v reflect.Value) float64 {
	return float64(len([]rune(asString(v))))
}

func parseBound(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
