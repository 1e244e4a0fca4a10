package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringSlice is stored as a JSON array in a text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	// Oracle CLOB binds expect a string rather than []byte.
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	raw, err := jsonBytes(value, "StringSlice")
	if err != nil {
		return err
	}
	if raw == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// AnswerMap is the submitted answer set keyed by question id.
type AnswerMap map[string]string

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (m *AnswerMap) Scan(value interface{}) error {
	raw, err := jsonBytes(value, "AnswerMap")
	if err != nil {
		return err
	}
	if raw == nil {
		*m = AnswerMap{}
		return nil
	}
	return json.Unmarshal(raw, m)
}

// QuestionResult is the stored per-question grading snapshot.
type QuestionResult struct {
	QuestionID      string `json:"questionId"`
	SubmittedAnswer string `json:"submittedAnswer"`
	CorrectAnswer   string `json:"correctAnswer"`
	IsCorrect       bool   `json:"isCorrect"`
	Points          int    `json:"points"`
	PointsAwarded   int    `json:"pointsAwarded"`
}

// QuestionResults keeps the grading snapshot of an attempt in a text column.
type QuestionResults []QuestionResult

func (r QuestionResults) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (r *QuestionResults) Scan(value interface{}) error {
	raw, err := jsonBytes(value, "QuestionResults")
	if err != nil {
		return err
	}
	if raw == nil {
		*r = QuestionResults{}
		return nil
	}
	return json.Unmarshal(raw, r)
}

// jsonBytes normalises a scanned column value. A nil slice means the column
// was NULL, empty or the literal "null".
func jsonBytes(value interface{}, typeName string) ([]byte, error) {
	if value == nil {
		return nil, nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return raw, nil
}
