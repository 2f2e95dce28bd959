package worker

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kaamgar/kaamgar-backend-go/internal/domain/payroll"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateWorkerRequest struct {
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	Phone         *string         `json:"phone,omitempty"`
	DailyWage     decimal.Decimal `json:"daily_wage"`
	WorkStartTime string          `json:"work_start_time"`
	WorkEndTime   string          `json:"work_end_time"`
	Status        string          `json:"status"`
	JoiningDate   string          `json:"joining_date"`

	joiningDate time.Time
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if r.WorkStartTime == "" {
		r.WorkStartTime = DefaultWorkStartTime
	}
	if r.WorkEndTime == "" {
		r.WorkEndTime = DefaultWorkEndTime
	}
	if r.Status == "" {
		r.Status = string(StatusActive)
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	errs = append(errs, validateAge(r.Age)...)
	errs = append(errs, validateWage(r.DailyWage)...)
	errs = append(errs, validatePhone(r.Phone)...)
	errs = append(errs, validateShift(r.WorkStartTime, r.WorkEndTime)...)
	errs = append(errs, validateStatus(r.Status)...)

	if r.JoiningDate == "" {
		r.joiningDate = calendar.Day(time.Now())
	} else if d, err := calendar.ParseDate(r.JoiningDate); err != nil {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be in YYYY-MM-DD format"})
	} else {
		r.joiningDate = d
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedJoiningDate is available after a successful Validate.
func (r *CreateWorkerRequest) ParsedJoiningDate() time.Time {
	return r.joiningDate
}

type UpdateWorkerRequest struct {
	Name          *string          `json:"name,omitempty"`
	Age           *int             `json:"age,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	DailyWage     *decimal.Decimal `json:"daily_wage,omitempty"`
	WorkStartTime *string          `json:"work_start_time,omitempty"`
	WorkEndTime   *string          `json:"work_end_time,omitempty"`
	Status        *string          `json:"status,omitempty"`
	JoiningDate   *string          `json:"joining_date,omitempty"`
}

// Apply validates the patch against the current worker and returns the merged result.
func (r *UpdateWorkerRequest) Apply(current Worker) (Worker, error) {
	var errs validator.ValidationErrors
	updated := current

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
		} else if len(name) > 255 {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
		}
		updated.Name = name
	}
	if r.Age != nil {
		errs = append(errs, validateAge(*r.Age)...)
		updated.Age = *r.Age
	}
	if r.Phone != nil {
		errs = append(errs, validatePhone(r.Phone)...)
		updated.Phone = r.Phone
	}
	if r.DailyWage != nil {
		errs = append(errs, validateWage(*r.DailyWage)...)
		updated.DailyWage = *r.DailyWage
	}
	if r.WorkStartTime != nil {
		updated.WorkStartTime = *r.WorkStartTime
	}
	if r.WorkEndTime != nil {
		updated.WorkEndTime = *r.WorkEndTime
	}
	if r.WorkStartTime != nil || r.WorkEndTime != nil {
		errs = append(errs, validateShift(updated.WorkStartTime, updated.WorkEndTime)...)
	}
	if r.Status != nil {
		errs = append(errs, validateStatus(*r.Status)...)
		updated.Status = Status(*r.Status)
	}
	if r.JoiningDate != nil {
		d, err := calendar.ParseDate(*r.JoiningDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "joining_date must be in YYYY-MM-DD format"})
		}
		updated.JoiningDate = d
	}

	if len(errs) > 0 {
		return current, errs
	}
	return updated, nil
}

type WorkerFilter struct {
	Status *Status
	Search *string
}

func validateAge(age int) validator.ValidationErrors {
	if age < MinAge || age > MaxAge {
		return validator.ValidationErrors{{Field: "age", Message: fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge)}}
	}
	return nil
}

func validateWage(wage decimal.Decimal) validator.ValidationErrors {
	if wage.IsNegative() {
		return validator.ValidationErrors{{Field: "daily_wage", Message: "daily_wage must not be negative"}}
	}
	if !validator.HasMaxDecimalPlaces(wage, payroll.MoneyPlaces) {
		return validator.ValidationErrors{{Field: "daily_wage", Message: "daily_wage must have at most 2 decimal places"}}
	}
	return nil
}

func validatePhone(phone *string) validator.ValidationErrors {
	if phone != nil && *phone != "" && !validator.IsValidPhoneNumber(*phone) {
		return validator.ValidationErrors{{Field: "phone", Message: "phone must be a valid mobile number"}}
	}
	return nil
}

func validateShift(start, end string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	startMin, startErr := calendar.ParseClock(start)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{Field: "work_start_time", Message: "work_start_time must be in HH:MM format"})
	}
	endMin, endErr := calendar.ParseClock(end)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{Field: "work_end_time", Message: "work_end_time must be in HH:MM format"})
	}
	if startErr == nil && endErr == nil && endMin <= startMin {
		errs = append(errs, validator.ValidationError{Field: "work_end_time", Message: "work_end_time must be after work_start_time"})
	}
	return errs
}

func validateStatus(status string) validator.ValidationErrors {
	if !validator.IsInSlice(status, []string{string(StatusActive), string(StatusInactive)}) {
		return validator.ValidationErrors{{Field: "status", Message: "status must be 'active' or 'inactive'"}}
	}
	return nil
}

const (
	// MaxPhotoBytes bounds an upload before it is decoded.
	MaxPhotoBytes  = 10 << 20
	photoURLFormat = "/api/v1/workers/%s/photo"
)

var PhotoExtensions = []string{".jpg", ".jpeg", ".png"}

// UploadPhotoRequest is a worker photo plus the optional place it was taken.
// Coordinates arrive as form values and are only meaningful as a pair.
type UploadPhotoRequest struct {
	File      io.Reader
	Filename  string
	Latitude  string
	Longitude string
	Accuracy  string
	Timestamp string

	location *PhotoLocation
}

func (r *UploadPhotoRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil {
		errs = append(errs, validator.ValidationError{Field: "photo", Message: "photo is required"})
	} else if !validator.IsInSlice(strings.ToLower(filepath.Ext(r.Filename)), PhotoExtensions) {
		errs = append(errs, validator.ValidationError{Field: "photo", Message: "photo must be a .jpg, .jpeg or .png file"})
	}

	r.location = nil
	hasLat, hasLng := !validator.IsEmpty(r.Latitude), !validator.IsEmpty(r.Longitude)
	switch {
	case hasLat && hasLng:
		loc, locErrs := r.parseLocation()
		errs = append(errs, locErrs...)
		r.location = loc
	case hasLat || hasLng || !validator.IsEmpty(r.Accuracy) || !validator.IsEmpty(r.Timestamp):
		errs = append(errs, validator.ValidationError{Field: "location", Message: "latitude and longitude must be given together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UploadPhotoRequest) parseLocation() (*PhotoLocation, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	loc := &PhotoLocation{}

	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Latitude), 64)
	if err != nil || !inRange(lat, -90, 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be a number between -90 and 90"})
	}
	loc.Latitude = lat

	lng, err := strconv.ParseFloat(strings.TrimSpace(r.Longitude), 64)
	if err != nil || !inRange(lng, -180, 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be a number between -180 and 180"})
	}
	loc.Longitude = lng

	if !validator.IsEmpty(r.Accuracy) {
		acc, err := strconv.ParseFloat(strings.TrimSpace(r.Accuracy), 64)
		if err != nil || !inRange(acc, 0, math.MaxFloat64) {
			errs = append(errs, validator.ValidationError{Field: "accuracy", Message: "accuracy must be a non-negative number of meters"})
		}
		loc.Accuracy = &acc
	}

	if !validator.IsEmpty(r.Timestamp) {
		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(r.Timestamp))
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be an RFC 3339 date-time"})
		}
		loc.CapturedAt = ts
	}

	return loc, errs
}

// Location is set by a successful Validate and is nil when no coordinates were sent.
// A zero CapturedAt means the timestamp was omitted.
func (r *UploadPhotoRequest) Location() *PhotoLocation {
	return r.location
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}

type PhotoLocationResponse struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type WorkerResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Age           int                    `json:"age"`
	Phone         *string                `json:"phone,omitempty"`
	DailyWage     decimal.Decimal        `json:"daily_wage"`
	WorkStartTime string                 `json:"work_start_time"`
	WorkEndTime   string                 `json:"work_end_time"`
	Status        string                 `json:"status"`
	JoiningDate   string                 `json:"joining_date"`
	PhotoURL      *string                `json:"photo_url,omitempty"`
	PhotoLocation *PhotoLocationResponse `json:"photo_location,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

func (w Worker) ToResponse() WorkerResponse {
	resp := WorkerResponse{
		ID:            w.ID,
		Name:          w.Name,
		Age:           w.Age,
		Phone:         w.Phone,
		DailyWage:     w.DailyWage,
		WorkStartTime: w.WorkStartTime,
		WorkEndTime:   w.WorkEndTime,
		Status:        string(w.Status),
		JoiningDate:   calendar.FormatDate(w.JoiningDate),
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
	if w.Photo != nil {
		url := fmt.Sprintf(photoURLFormat, w.ID)
		resp.PhotoURL = &url
	}
	if loc := w.PhotoLocation; loc != nil {
		resp.PhotoLocation = &PhotoLocationResponse{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Accuracy:  loc.Accuracy,
			Timestamp: loc.CapturedAt,
		}
	}
	return resp
}
