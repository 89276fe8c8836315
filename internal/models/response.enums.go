package models

import (
	"slices"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var Genders = []Gender{GenderMale, GenderFemale}

type Occupation string

const (
	OccupationOfficeWork      Occupation = "office_work"
	OccupationHardManualLabor Occupation = "hard_manual_labor"
	OccupationHousewife       Occupation = "housewife"
	OccupationOutdoorWork     Occupation = "outdoor_work"
	OccupationLightToModerate Occupation = "light_to_moderate_activity"
)

var Occupations = []Occupation{
	OccupationOfficeWork,
	OccupationHardManualLabor,
	OccupationHousewife,
	OccupationOutdoorWork,
	OccupationLightToModerate,
}

// Answer is the yes/no/unsure token set shared by isDiagnosed and hasChronicPain.
type Answer string

const (
	AnswerYes    Answer = "yes"
	AnswerNo     Answer = "no"
	AnswerUnsure Answer = "unsure"
)

var Answers = []Answer{AnswerYes, AnswerNo, AnswerUnsure}

type Joint string

const (
	JointKnee     Joint = "knee"
	JointHip      Joint = "hip"
	JointHand     Joint = "hand"
	JointShoulder Joint = "shoulder"
	JointSpine    Joint = "spine"
)

var JointOptions = []Joint{JointKnee, JointHip, JointHand, JointShoulder, JointSpine}

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
)

var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLightlyActive,
	ActivityModeratelyActive,
	ActivityVeryActive,
}

func (g Gender) Valid() bool { return slices.Contains(Genders, g) }
func (o Occupation) Valid() bool { return slices.Contains(Occupations, o) }
func (a Answer) Valid() bool { return slices.Contains(Answers, a) }
func (j Joint) Valid() bool { return slices.Contains(JointOptions, j) }
func (a ActivityLevel) Valid() bool { return slices.Contains(ActivityLevels, a) }

// Label turns a stored token into display text, e.g. office_work -> office work.
func Label[T ~string](token T) string {
	return strings.ReplaceAll(string(token), "_", " ")
}

// Tokens flattens an enum list for places that need plain strings
// (validator parameters, SQL CHECK constraints, select options).
func Tokens[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}
