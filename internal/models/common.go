package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Entity - любая строка листинга, идентифицируемая id из бэкенда.
type Entity interface {
	GetID() int64
}

// EntityKind names one of the four listings.
type EntityKind string

const (
	KindStudent     EntityKind = "student"
	KindCompany     EntityKind = "company"
	KindInternship  EntityKind = "internship"
	KindApplication EntityKind = "application"
)

// Text is a display value the upstream may send as a JSON string, number or null.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(data)
	return nil
}

func (t Text) String() string { return string(t) }

// ID is a backend id that may arrive as a number or as a numeric string (form selects post strings).
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*id = ID(n)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*id = ID(n)
	return nil
}

// ParseID converts a form value into an ID; bad input yields 0.
func ParseID(s string) ID {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return ID(n)
}
