// Package validation checks survey submissions before they reach storage.
package validation

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	. "github.com/ywyher/survey/internal/models"
)

// SubmissionInput is a submission as the client sent it. Age stays textual
// until Validate coerces it.
type SubmissionInput struct {
	Gender         string   `json:"gender"`
	Age            string   `json:"age"`
	Occupation     string   `json:"occupation"`
	IsDiagnosed    string   `json:"isDiagnosed"`
	AffectedJoints []string `json:"affectedJoints"`
	HasChronicPain string   `json:"hasChronicPain"`
	ActivityLevel  string   `json:"activityLevel"`
}

// submission is the coerced shape the rules run against.
type submission struct {
	Gender         string   `json:"gender"         validate:"required,gender"`
	Age            *int     `json:"age"            validate:"required,max=120"`
	Occupation     string   `json:"occupation"     validate:"required,occupation"`
	IsDiagnosed    string   `json:"isDiagnosed"    validate:"required,answer"`
	AffectedJoints []string `json:"affectedJoints" validate:"omitempty,dive,joint"`
	HasChronicPain string   `json:"hasChronicPain" validate:"required,answer"`
	ActivityLevel  string   `json:"activityLevel"  validate:"required,activity_level"`
}

// fieldOrder is the order errors are reported in, matching the form layout.
var fieldOrder = []string{
	"gender",
	"age",
	"occupation",
	"isDiagnosed",
	"affectedJoints",
	"hasChronicPain",
	"activityLevel",
}

var fieldMessages = map[string]string{
	"gender":         "Please select a gender.",
	"age":            "Please enter a valid age.",
	"occupation":     "Please select an occupation.",
	"isDiagnosed":    "Please indicate if you have been diagnosed.",
	"affectedJoints": "Please select only the listed joints.",
	"hasChronicPain": "Please indicate if you experience chronic pain.",
	"activityLevel":  "Please select an activity level.",
}

const (
	tagJointsWhenDiagnosed = "joints_when_diagnosed"

	msgAgeTooHigh    = "Age must be at most 120."
	msgJointsWhenYes = "Please select at least one affected joint."
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	enums := map[string]func(string) bool{
		"gender":         func(s string) bool { return Gender(s).Valid() },
		"occupation":     func(s string) bool { return Occupation(s).Valid() },
		"answer":         func(s string) bool { return Answer(s).Valid() },
		"joint":          func(s string) bool { return Joint(s).Valid() },
		"activity_level": func(s string) bool { return ActivityLevel(s).Valid() },
	}
	for tag, valid := range enums {
		valid := valid
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}

	v.RegisterStructValidation(jointsWhenDiagnosed, submission{})

	return v
}

// jointsWhenDiagnosed runs after the per-field rules: a diagnosed respondent
// must name at least one joint.
func jointsWhenDiagnosed(sl validator.StructLevel) {
	s := sl.Current().Interface().(submission)
	if Answer(s.IsDiagnosed) == AnswerYes && len(s.AffectedJoints) == 0 {
		sl.ReportError(s.AffectedJoints, "affectedJoints", "AffectedJoints", tagJointsWhenDiagnosed, "")
	}
}

// Validate checks input and, when it passes, returns the response ready to
// be stored. Absent affected joints become an empty sequence.
func Validate(input SubmissionInput) (Response, Errors) {
	s := submission{
		Gender:         strings.TrimSpace(input.Gender),
		Age:            parseAge(input.Age),
		Occupation:     strings.TrimSpace(input.Occupation),
		IsDiagnosed:    strings.TrimSpace(input.IsDiagnosed),
		AffectedJoints: input.AffectedJoints,
		HasChronicPain: strings.TrimSpace(input.HasChronicPain),
		ActivityLevel:  strings.TrimSpace(input.ActivityLevel),
	}

	if errs := collect(validate.Struct(s)); len(errs) > 0 {
		return Response{}, errs
	}

	joints := make(Joints, len(s.AffectedJoints))
	for i, joint := range s.AffectedJoints {
		joints[i] = Joint(joint)
	}

	return Response{
		Age:            *s.Age,
		Gender:         Gender(s.Gender),
		Occupation:     Occupation(s.Occupation),
		IsDiagnosed:    Answer(s.IsDiagnosed),
		AffectedJoints: joints,
		HasChronicPain: Answer(s.HasChronicPain),
		ActivityLevel:  ActivityLevel(s.ActivityLevel),
	}, nil
}

// parseAge coerces textual age input. Anything that is not a whole number
// yields nil, which the required rule reports.
func parseAge(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}

	age := int(f)
	return &age
}

func collect(err error) Errors {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "", Message: err.Error()}}
	}

	byField := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		// dive reports elements as affectedJoints[1]
		field, _, _ := strings.Cut(fe.Field(), "[")
		if _, seen := byField[field]; seen {
			continue
		}
		byField[field] = messageFor(field, fe.Tag())
	}

	errs := make(Errors, 0, len(byField))
	for _, field := range fieldOrder {
		if msg, ok := byField[field]; ok {
			errs = append(errs, Error{Field: field, Message: msg})
		}
	}
	return errs
}

func messageFor(field, tag string) string {
	switch {
	case field == "age" && tag == "max":
		return msgAgeTooHigh
	case tag == tagJointsWhenDiagnosed:
		return msgJointsWhenYes
	default:
		return fieldMessages[field]
	}
}
