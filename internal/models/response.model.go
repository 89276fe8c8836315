package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/lib/pq"
)

// Response is one submitted survey record, persisted in the survey table.
type Response struct {
	BaseUUIDModel
	Age            int           `gorm:"column:age;type:integer;not null"                     json:"age"`
	Gender         Gender        `gorm:"column:gender;type:gender_enum;not null"              json:"gender"`
	Occupation     Occupation    `gorm:"column:occupation;type:occupation_enum;not null"      json:"occupation"`
	IsDiagnosed    Answer        `gorm:"column:is_diagnosed;type:text;not null"               json:"isDiagnosed"`
	AffectedJoints Joints        `gorm:"column:affected_joints;type:joint_enum[]"             json:"affectedJoints"`
	HasChronicPain Answer        `gorm:"column:has_chronic_pain;type:text;not null"           json:"hasChronicPain"`
	ActivityLevel  ActivityLevel `gorm:"column:activity_level;type:activity_level_enum;not null" json:"activityLevel"`
}

func (Response) TableName() string {
	return "survey"
}

// Joints is the ordered affected-joints column. It is stored as a postgres
// array literal on both drivers; NULL reads back as an empty sequence.
type Joints []Joint

func (j Joints) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	arr := make(pq.StringArray, len(j))
	for i, joint := range j {
		arr[i] = string(joint)
	}
	return arr.Value()
}

func (j *Joints) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scan affected joints: %w", err)
	}

	out := make(Joints, len(arr))
	for i, joint := range arr {
		out[i] = Joint(joint)
	}
	*j = out
	return nil
}

func (j Joints) Strings() []string {
	return Tokens(j)
}
