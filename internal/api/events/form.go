package eventsapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"club-site/internal/errmodel"

	"github.com/go-playground/validator/v10"
)

// ---------- requests

// EventFormData is the payload of the create and update actions.
type EventFormData struct {
	Title          string         `json:"title" validate:"required,max=200"`
	Description    string         `json:"description"`
	DateStart      FormTime       `json:"dateStart" validate:"required"`
	DateEnd        FormTime       `json:"dateEnd"`
	ImageID        *string        `json:"imageId" validate:"omitempty,uuid"`
	OnlineURL      *string        `json:"onlineUrl" validate:"omitempty,http_url"`
	OnlinePlatform *string        `json:"onlinePlatform"`
	IsFeatured     bool           `json:"isFeatured"`
	Location       *LocationInput `json:"location"`
	Timeline       *TimelineInput `json:"timeline"`
}

type LocationInput struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state" validate:"omitempty,max=3"`
	Zip     *string `json:"zip" validate:"omitempty,max=10"`
	Country *string `json:"country"`
}

type TimelineInput struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Markers     []MarkerInput `json:"markers" validate:"min=1,dive"`
}

type MarkerInput struct {
	// ID is set for markers that already exist.
	ID          *string  `json:"id" validate:"omitempty,uuid"`
	Title       string   `json:"title" validate:"required"`
	Description *string  `json:"description"`
	Timestamp   FormTime `json:"timestamp"`
}

// ---------- timestamps

// FormTime accepts the timestamp shapes browsers and API clients send.
// Empty strings and null leave it unset.
type FormTime struct {
	Time  time.Time
	Valid bool
}

var formTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // <input type="datetime-local">
	"2006-01-02",
}

// DateError is returned when a timestamp string cannot be parsed.
type DateError struct {
	Value string
}

func (e *DateError) Error() string { return fmt.Sprintf("invalid date %q", e.Value) }

func ParseFormTime(s string) (FormTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FormTime{}, nil
	}
	for _, layout := range formTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FormTime{Time: t.UTC(), Valid: true}, nil
		}
	}
	return FormTime{}, &DateError{Value: s}
}

func At(t time.Time) FormTime { return FormTime{Time: t.UTC(), Valid: true} }

func (f *FormTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*f = FormTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &DateError{Value: string(b)}
	}
	parsed, err := ParseFormTime(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f FormTime) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Time)
}

// Ptr returns nil for an unset time.
func (f FormTime) Ptr() *time.Time {
	if !f.Valid {
		return nil
	}
	t := f.Time
	return &t
}

// ---------- validation

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(v reflect.Value) any {
		if ft, ok := v.Interface().(FormTime); ok && ft.Valid {
			return ft.Time
		}
		return nil
	}, FormTime{})
	return v
}

// Normalize trims every string and turns empty optional strings into nil.
func (in *EventFormData) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageID = trimPtr(in.ImageID)
	in.OnlineURL = trimPtr(in.OnlineURL)
	in.OnlinePlatform = trimPtr(in.OnlinePlatform)

	if l := in.Location; l != nil {
		l.Street = trimPtr(l.Street)
		l.City = trimPtr(l.City)
		l.State = trimPtr(l.State)
		l.Zip = trimPtr(l.Zip)
		l.Country = trimPtr(l.Country)
	}
	if tl := in.Timeline; tl != nil {
		tl.Title = trimPtr(tl.Title)
		tl.Description = trimPtr(tl.Description)
		for i := range tl.Markers {
			m := &tl.Markers[i]
			m.ID = trimPtr(m.ID)
			m.Title = strings.TrimSpace(m.Title)
			m.Description = trimPtr(m.Description)
		}
	}
}

// Validate normalizes the payload and returns the first problem found as a
// validation error.
func (in *EventFormData) Validate() error {
	in.Normalize()

	if err := validate.Struct(in); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return errmodel.Validation(fieldMessage(errs[0]))
		}
		return errmodel.Validation("Invalid input")
	}

	if in.DateEnd.Valid && in.DateEnd.Time.Before(in.DateStart.Time) {
		return errmodel.Validation("End date must not be before start date")
	}
	if in.OnlinePlatform != nil && in.OnlineURL == nil {
		return errmodel.Validation("Online URL is required when a platform is set")
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	inMarkers := strings.Contains(fe.Namespace(), ".markers[")

	switch fe.Field() {
	case "title":
		if inMarkers {
			return "Marker title is required"
		}
		if fe.Tag() == "max" {
			return "Title too long"
		}
		return "Title is required"
	case "dateStart":
		return "Start date is required"
	case "imageId":
		return "Invalid image id"
	case "onlineUrl":
		return "Invalid online URL"
	case "state":
		return "State must be at most 3 characters"
	case "zip":
		return "Zip must be at most 10 characters"
	case "markers":
		return "Timeline requires at least one marker"
	case "id":
		return "Invalid marker id"
	}
	return "Invalid " + fe.Field()
}

// present reports whether any location field carries a value.
func (l *LocationInput) present() bool {
	if l == nil {
		return false
	}
	for _, v := range []*string{l.Street, l.City, l.State, l.Zip, l.Country} {
		if v != nil && *v != "" {
			return true
		}
	}
	return false
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
