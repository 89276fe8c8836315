package utils

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/ywyher/survey/internal/models"
)

func TestWriteResponsesCSV(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	responses := []Response{
		{
			BaseUUIDModel:  BaseUUIDModel{ID: "a", CreatedAt: created, UpdatedAt: created},
			Age:            45,
			Gender:         GenderFemale,
			Occupation:     OccupationOfficeWork,
			IsDiagnosed:    AnswerYes,
			AffectedJoints: Joints{JointKnee, JointHip},
			HasChronicPain: AnswerYes,
			ActivityLevel:  ActivitySedentary,
		},
		{
			BaseUUIDModel:  BaseUUIDModel{ID: "b", CreatedAt: created, UpdatedAt: created},
			Age:            30,
			Gender:         GenderMale,
			Occupation:     OccupationOutdoorWork,
			IsDiagnosed:    AnswerNo,
			AffectedJoints: Joints{},
			HasChronicPain: AnswerUnsure,
			ActivityLevel:  ActivityVeryActive,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteResponsesCSV(&buf, responses))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, ResponseCSVHeaders, records[0])
	assert.Equal(t, []string{
		"a", "2025-03-01T12:00:00Z", "2025-03-01T12:00:00Z",
		"female", "45", "office_work", "yes", "knee;hip", "yes", "sedentary",
	}, records[1])
	assert.Equal(t, "", records[2][7])
}

func TestWriteResponsesCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResponsesCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{ResponseCSVHeaders}, records)
}
