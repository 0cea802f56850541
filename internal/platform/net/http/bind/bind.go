// Package bind provides request binding and validation helpers for handlers
package bind

import (
	"strings"
	"sync"

	perr "devsolutions/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerShort(v, trans, "min", "{0} must be at least {1}")
		registerShort(v, trans, "max", "{0} must be at most {1}")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

// RegisterValidation registers a custom tag and, when message is non-empty,
// its translation ("{0}" is the field name)
func RegisterValidation(tag string, fn validator.Func, message string) error {
	svc := Get()
	if err := svc.Validator.RegisterValidation(tag, fn); err != nil {
		return err
	}
	if message != "" {
		registerShort(svc.Validator, svc.Translator, tag, message)
	}
	return nil
}

// Violation is one failed constraint on one field
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Tag    string `json:"-"`
}

// Rule is one field checked against validator tags. Each tag is run on its own,
// so a value that breaks several of them reports every one
type Rule struct {
	Field string
	Value any
	Tags  []string
}

// Check runs every rule and returns one Violation per failing tag, in rule order
func Check(rules ...Rule) []Violation {
	svc := Get()
	var out []Violation
	for _, r := range rules {
		for _, tag := range r.Tags {
			verrs, ok := svc.Validator.Var(r.Value, tag).(validator.ValidationErrors)
			if !ok {
				continue
			}
			for _, fe := range verrs {
				// Var has no field name, so {0} renders empty
				reason := strings.TrimSpace(fe.Translate(svc.Translator))
				out = append(out, Violation{Field: r.Field, Reason: r.Field + " " + reason, Tag: fe.Tag()})
			}
		}
	}
	return out
}

// Fail wraps a violation list in a validation error carrying it as details.
// Returns nil when vs is empty
func Fail(message string, vs []Violation) error {
	if len(vs) == 0 {
		return nil
	}
	if message == "" {
		message = vs[0].Reason
	}
	return perr.WithDetails(perr.Validationf("%s", message), vs)
}

// ViolationsOf extracts the []Violation carried by an error built by Fail
func ViolationsOf(err error) []Violation {
	e, ok := perr.As(err)
	if !ok {
		return nil
	}
	vs, _ := e.Details().([]Violation)
	return vs
}

func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error { return ut.Add(tag, text, true) },
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
