package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tasktracker/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldDueAt       = "due_at"

	TitleMaxLength = 255
)

const (
	RuleRequired = "required"
	RuleString   = "string"
	RuleMax      = "max"
	RuleEnum     = "enum"
	RuleDate     = "date"
)

// Violation is one failed rule on a field. Params feed the message template.
type Violation struct {
	Rule   string
	Params map[string]any
}

// FieldErrors maps each offending field to its violations.
type FieldErrors map[string][]Violation

func (e FieldErrors) Error() string {
	return "invalid fields: " + strings.Join(e.Fields(), ", ")
}

// Fields returns the offending field names in sorted order.
func (e FieldErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (e FieldErrors) add(field, rule string, params map[string]any) {
	e[field] = append(e[field], Violation{Rule: rule, Params: params})
}

var (
	validate   = validator.New()
	titleRule  = "required,max=" + strconv.Itoa(TitleMaxLength)
	statusRule = "oneof=" + joinStatuses(domain.TaskStatusValues())
)

var dueAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// DecodePayload reads a request body as a JSON object. An empty body or a
// JSON null is an empty object.
func DecodePayload(body []byte) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, ErrInvalidTaskPayload
	}
	if raw == nil {
		raw = map[string]json.RawMessage{}
	}
	return raw, nil
}

func BuildCreateTaskInput(raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	errs := FieldErrors{}
	var input domain.CreateTaskInput

	if value, ok := raw[FieldTitle]; ok && !isJSONNull(value) {
		if title, valid := validateTitle(value, errs); valid {
			input.Title = title
		}
	} else {
		errs.add(FieldTitle, RuleRequired, nil)
	}

	if value, ok := raw[FieldDescription]; ok {
		input.Description = validateDescription(value, errs)
	}

	if value, ok := raw[FieldStatus]; ok {
		if status, valid := validateStatus(value, errs); valid {
			input.Status = &status
		}
	}

	if value, ok := raw[FieldDueAt]; ok {
		input.DueAt = validateDueAt(value, errs)
	}

	if len(errs) > 0 {
		return domain.CreateTaskInput{}, errs
	}
	return input, nil
}

func BuildUpdateTaskInput(raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	errs := FieldErrors{}
	var input domain.UpdateTaskInput

	if value, ok := raw[FieldTitle]; ok {
		if isJSONNull(value) {
			errs.add(FieldTitle, RuleRequired, nil)
		} else if title, valid := validateTitle(value, errs); valid {
			input.Title = &title
		}
	}

	if value, ok := raw[FieldDescription]; ok {
		input.Description = validateDescription(value, errs)
		input.DescriptionSet = true
	}

	if value, ok := raw[FieldStatus]; ok {
		if status, valid := validateStatus(value, errs); valid {
			input.Status = &status
		}
	}

	if value, ok := raw[FieldDueAt]; ok {
		input.DueAt = validateDueAt(value, errs)
		input.DueAtSet = true
	}

	if len(errs) > 0 {
		return domain.UpdateTaskInput{}, errs
	}
	return input, nil
}

func validateTitle(value json.RawMessage, errs FieldErrors) (string, bool) {
	title, ok := decodeString(value)
	if !ok {
		errs.add(FieldTitle, RuleString, nil)
		return "", false
	}

	if err := validate.Var(title, titleRule); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == RuleMax {
			errs.add(FieldTitle, RuleMax, map[string]any{"Max": TitleMaxLength})
		} else {
			errs.add(FieldTitle, RuleRequired, nil)
		}
		return "", false
	}
	return title, true
}

// Empty descriptions are stored as null.
func validateDescription(value json.RawMessage, errs FieldErrors) *string {
	if isJSONNull(value) {
		return nil
	}
	description, ok := decodeString(value)
	if !ok {
		errs.add(FieldDescription, RuleString, nil)
		return nil
	}
	if description == "" {
		return nil
	}
	return &description
}

func validateStatus(value json.RawMessage, errs FieldErrors) (domain.TaskStatus, bool) {
	raw, ok := decodeString(value)
	if !ok || validate.Var(raw, statusRule) != nil {
		errs.add(FieldStatus, RuleEnum, nil)
		return "", false
	}

	status, err := domain.ParseTaskStatus(raw)
	if err != nil {
		errs.add(FieldStatus, RuleEnum, nil)
		return "", false
	}
	return status, true
}

// A null or empty due_at clears the date.
func validateDueAt(value json.RawMessage, errs FieldErrors) *time.Time {
	if isJSONNull(value) {
		return nil
	}
	raw, ok := decodeString(value)
	if !ok {
		errs.add(FieldDueAt, RuleDate, nil)
		return nil
	}
	if raw == "" {
		return nil
	}

	dueAt, ok := parseDateTime(raw)
	if !ok {
		errs.add(FieldDueAt, RuleDate, nil)
		return nil
	}
	return &dueAt
}

func parseDateTime(value string) (time.Time, bool) {
	for _, layout := range dueAtLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// decodeString unmarshals a JSON string and trims surrounding whitespace.
func decodeString(value json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func joinStatuses(statuses []domain.TaskStatus) string {
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	return strings.Join(values, " ")
}
