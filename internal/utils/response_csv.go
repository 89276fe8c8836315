package utils

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	. "github.com/ywyher/survey/internal/models"
)

var ResponseCSVHeaders = []string{
	"id",
	"created_at",
	"updated_at",
	"gender",
	"age",
	"occupation",
	"is_diagnosed",
	"affected_joints",
	"has_chronic_pain",
	"activity_level",
}

// WriteResponsesCSV writes a header row followed by one row per response.
// Affected joints are joined with ";" so each response stays on one row.
func WriteResponsesCSV(w io.Writer, responses []Response) error {
	buffered := bufio.NewWriterSize(w, 64*1024)
	writer := csv.NewWriter(buffered)

	if err := writer.Write(ResponseCSVHeaders); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, response := range responses {
		if err := writer.Write(responseRecord(response)); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", response.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv writer: %w", err)
	}

	return buffered.Flush()
}

func responseRecord(response Response) []string {
	return []string{
		response.ID,
		response.CreatedAt.UTC().Format(time.RFC3339),
		response.UpdatedAt.UTC().Format(time.RFC3339),
		string(response.Gender),
		strconv.Itoa(response.Age),
		string(response.Occupation),
		string(response.IsDiagnosed),
		strings.Join(response.AffectedJoints.Strings(), ";"),
		string(response.HasChronicPain),
		string(response.ActivityLevel),
	}
}
