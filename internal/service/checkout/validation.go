package checkout

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists the form fields that failed, keyed by JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid checkout: " + strings.Join(parts, "; ")
}

var fieldLabels = map[string]string{
	"firstName":    "First name",
	"lastName":     "Last name",
	"email":        "Email",
	"phone":        "Phone",
	"addressLine1": "Address",
	"city":         "City",
	"state":        "State",
	"postalCode":   "Zip code",
	"country":      "Country",
	"type":         "Payment method",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// translate turns validator output into form messages.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; seen {
			continue
		}
		fields[name] = message(name, fe.Tag())
	}
	return &ValidationError{Fields: fields}
}

func message(field, tag string) string {
	switch {
	case tag == "email":
		return "Invalid email address"
	case tag == "oneof":
		return "Unsupported payment method"
	case field == "cardLast4":
		return "Invalid card number"
	}
	label, ok := fieldLabels[field]
	if !ok {
		label = field
	}
	return label + " is required"
}
