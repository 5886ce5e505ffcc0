package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fellowship is a display copy of a listing record owned by the backend.
type Fellowship struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Location          string   `json:"location"`
	Continent         string   `json:"continent"`
	Deadline          string   `json:"deadline"`
	Link              string   `json:"link"`
	Description       string   `json:"description"`
	Subjects          []string `json:"subjects"`
	TotalCompensation string   `json:"total_compensation"`
	LengthYears       string   `json:"length_in_years"`
	InterestRating    int      `json:"interest_rating"`
	Favorited         bool     `json:"favorited"`
}

// fellowshipWire mirrors the backend row. The backend serializes a pandas frame,
// so ids are row indexes, flags are 0/1 and numeric columns may be floats or null.
type fellowshipWire struct {
	ID                json.RawMessage `json:"id"`
	Title             string          `json:"title"`
	Location          string          `json:"location"`
	Continent         string          `json:"continent"`
	Deadline          json.RawMessage `json:"deadline"`
	Link              string          `json:"link"`
	Description       string          `json:"description"`
	Subjects          json.RawMessage `json:"subjects"`
	TotalCompensation json.RawMessage `json:"total_compensation"`
	LengthYears       json.RawMessage `json:"length_in_years"`
	InterestRating    json.RawMessage `json:"interest_rating"`
	Favorited         json.RawMessage `json:"favorited"`
}

// UnmarshalJSON accepts both the backend's loosely typed rows and the
// canonical shape produced by json.Marshal.
func (f *Fellowship) UnmarshalJSON(data []byte) error {
	var w fellowshipWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id, err := rawText(w.ID)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	deadline, err := rawText(w.Deadline)
	if err != nil {
		return fmt.Errorf("decode deadline: %w", err)
	}
	compensation, err := rawText(w.TotalCompensation)
	if err != nil {
		return fmt.Errorf("decode total_compensation: %w", err)
	}
	length, err := rawText(w.LengthYears)
	if err != nil {
		return fmt.Errorf("decode length_in_years: %w", err)
	}
	// Refined rows sometimes carry "N/A" or similar; those count as unrated.
	rating, err := rawInt(w.InterestRating)
	if err != nil {
		rating = 0
	}
	favorited, err := rawFlag(w.Favorited)
	if err != nil {
		return fmt.Errorf("decode favorited: %w", err)
	}
	subjects := rawSubjects(w.Subjects)

	*f = Fellowship{
		ID:                id,
		Title:             w.Title,
		Location:          w.Location,
		Continent:         w.Continent,
		Deadline:          deadline,
		Link:              w.Link,
		Description:       w.Description,
		Subjects:          subjects,
		TotalCompensation: compensation,
		LengthYears:       length,
		InterestRating:    rating,
		Favorited:         favorited,
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// rawText decodes a string or number into its textual form.
func rawText(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	if math.IsNaN(n) {
		return "", nil
	}
	return strconv.FormatFloat(n, 'f', -1, 64), nil
}

func rawInt(raw json.RawMessage) (int, error) {
	text, err := rawText(raw)
	if err != nil || text == "" {
		return 0, err
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(n)), nil
}

func rawFlag(raw json.RawMessage) (bool, error) {
	if isNull(raw) {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}
	n, err := rawInt(raw)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// rawSubjects accepts a list or a single comma separated string. Entries that
// are neither strings nor numbers keep their JSON text.
func rawSubjects(raw json.RawMessage) []string {
	if isNull(raw) {
		return []string{}
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		values := make([]string, 0, len(list))
		for _, item := range list {
			values = append(values, subjectText(item))
		}
		return compact(values)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return compact([]string{subjectText(raw)})
	}
	return compact(strings.Split(s, ","))
}

func subjectText(raw json.RawMessage) string {
	text, err := rawText(raw)
	if err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return text
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
