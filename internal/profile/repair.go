package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "mem://shindan/user-data.json"

// userDataSchema describes the minimum shape a stored record must have to
// be trusted. Nested entries are checked one by one while decoding.
const userDataSchema = `{
  "type": "object",
  "required": [
    "userId", "completedDiagnoses", "points", "unlockedRewards",
    "preferences", "createdAt", "updatedAt"
  ],
  "properties": {
    "userId": {"type": "string"},
    "completedDiagnoses": {"type": "array", "items": {"type": "object"}},
    "points": {"type": "integer"},
    "unlockedRewards": {"type": "array", "items": {"type": "object"}},
    "preferences": {"type": "object"},
    "createdAt": {"type": "string"},
    "updatedAt": {"type": "string"}
  }
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(userDataSchema))
	if err != nil {
		return nil, fmt.Errorf("parse user data schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add user data schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// storedRecord mirrors UserData with nested entries left undecoded, so one
// unreadable entry does not cost the whole record.
type storedRecord struct {
	UserID             string            `json:"userId"`
	CompletedDiagnoses []json.RawMessage `json:"completedDiagnoses"`
	Points             json.Number       `json:"points"`
	UnlockedRewards    []json.RawMessage `json:"unlockedRewards"`
	Preferences        json.RawMessage   `json:"preferences"`
	CreatedAt          string            `json:"createdAt"`
	UpdatedAt          string            `json:"updatedAt"`
}

// maxPoints bounds a stored balance to what a float64 holds exactly.
const maxPoints = 1 << 53

// Validate decodes raw into a record, rejecting it with a
// *CorruptRecordError when its top-level fields do not have the required
// shape. Diagnoses and rewards that cannot be decoded are dropped and
// counted; unreadable timestamps become zero and unreadable preferences
// fall back to DefaultPreferences.
func Validate(raw []byte) (*UserData, int, error) {
	sch, err := compileSchema()
	if err != nil {
		return nil, 0, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, &CorruptRecordError{Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return nil, 0, &CorruptRecordError{Err: err}
	}

	var rec storedRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, 0, &CorruptRecordError{Err: err}
	}
	points, err := parsePoints(rec.Points)
	if err != nil {
		return nil, 0, &CorruptRecordError{Err: err}
	}

	ud := &UserData{
		UserID:             rec.UserID,
		CompletedDiagnoses: make([]Diagnosis, 0, len(rec.CompletedDiagnoses)),
		Points:             points,
		UnlockedRewards:    make([]Reward, 0, len(rec.UnlockedRewards)),
		Preferences:        DefaultPreferences(),
		CreatedAt:          parseTime(rec.CreatedAt),
		UpdatedAt:          parseTime(rec.UpdatedAt),
	}

	dropped := 0
	for _, entry := range rec.CompletedDiagnoses {
		var d Diagnosis
		if err := json.Unmarshal(entry, &d); err != nil {
			dropped++
			continue
		}
		ud.CompletedDiagnoses = append(ud.CompletedDiagnoses, d)
	}
	for _, entry := range rec.UnlockedRewards {
		var r Reward
		if err := json.Unmarshal(entry, &r); err != nil {
			dropped++
			continue
		}
		ud.UnlockedRewards = append(ud.UnlockedRewards, r)
	}
	if err := json.Unmarshal(rec.Preferences, &ud.Preferences); err != nil {
		ud.Preferences = DefaultPreferences()
	}
	return ud, dropped, nil
}

func parsePoints(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil && i >= -maxPoints && i <= maxPoints {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxPoints {
		return 0, fmt.Errorf("points %s out of range", n)
	}
	return int(f), nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ValidateAndRepair returns the record held in raw when it is valid, along
// with the number of nested entries dropped while decoding it. When it is
// not valid, the record is replaced by fresh() and the rejection reason is
// returned alongside it. Callers are expected to persist the replacement.
func ValidateAndRepair(raw []byte, fresh func() *UserData) (*UserData, int, error) {
	ud, dropped, err := Validate(raw)
	if err != nil {
		return fresh(), 0, err
	}
	return ud, dropped, nil
}
