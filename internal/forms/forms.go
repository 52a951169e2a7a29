// Package forms validates raw request field values and returns either a
// typed payload or a list of field errors. Validators never touch the store
// or the session; credential correctness is the auth service's job.
package forms

import (
	"reflect" // Reading form tags for error field names
	"strconv" // Numeric coercion
	"strings" // Tag and value handling
	"time"    // Date parsing

	"github.com/go-playground/validator/v10" // Struct tag validation
)

// Date layouts accepted on the form surface
const (
	PlantDateLayout = "02.01.2006" // dd.mm.yyyy, e.g. "31.12.2024"
	EntryDateLayout = "2006-01-02" // yyyy-mm-dd
)

// FieldError describes one invalid form field
type FieldError struct {
	Field   string `json:"field"`   // Form field name
	Message string `json:"message"` // Human-readable message
}

// Errors is the structured validation result surfaced to the caller
type Errors []FieldError

// Has reports whether an error is recorded for the given field
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// validate is the shared validator instance; field names in errors come from
// the form tags so they match what the client submitted.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// check runs tag validation on a payload and maps the result to Errors
func check(payload any) Errors {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "", Message: "invalid input"}}
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// message renders a field error for the failed validation tag
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	}
	return "is invalid"
}

// Registration is the validated payload of the registration form
type Registration struct {
	Username string `form:"username" validate:"required,min=4,max=50"`
	Email    string `form:"email" validate:"required,email,max=100"`
	Password string `form:"password" validate:"required,min=6,max=50"`
}

// ValidateRegistration validates the registration form fields
func ValidateRegistration(username, email, password string) (*Registration, Errors) {
	in := Registration{Username: username, Email: email, Password: password}
	if errs := check(in); errs != nil {
		return nil, errs
	}
	return &in, nil
}

// Login is the validated payload of the login form
type Login struct {
	Username string `form:"username" validate:"required,min=4,max=50"`
	Password string `form:"password" validate:"required,min=6,max=50"`
}

// ValidateLogin validates the login form fields
func ValidateLogin(username, password string) (*Login, Errors) {
	in := Login{Username: username, Password: password}
	if errs := check(in); errs != nil {
		return nil, errs
	}
	return &in, nil
}

// PlantCreation is the validated payload of the plant form
type PlantCreation struct {
	Name      string    // Plant name
	PlantDate time.Time // Parsed planting date
}

// plantFields carries the raw plant form values through tag validation
type plantFields struct {
	Name      string `form:"name" validate:"required,max=100"`
	PlantDate string `form:"plant_date" validate:"required"`
}

// ValidatePlantCreation validates the plant form fields. The date must be a
// real calendar date in dd.mm.yyyy form; "31.02.2024" is rejected.
func ValidatePlantCreation(name, plantDate string) (*PlantCreation, Errors) {
	raw := plantFields{Name: name, PlantDate: plantDate}
	errs := check(raw)
	var date time.Time
	if plantDate != "" {
		d, err := time.Parse(PlantDateLayout, plantDate)
		if err != nil {
			errs = append(errs, FieldError{Field: "plant_date", Message: "must be a valid date in dd.mm.yyyy format"})
		} else {
			date = d
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &PlantCreation{Name: raw.Name, PlantDate: date}, nil
}

// EntryCreation is the validated payload of the journal entry form
type EntryCreation struct {
	Date        time.Time // Journal date
	Temperature float64   // Temperature reading
	Humidity    float64   // Humidity reading
	Ventilation int       // Ventilation level, intended range 0-100 (not enforced)
	Fertilized  bool      // Care action flag
	Watered     bool      // Care action flag
	Pruned      bool      // Care action flag
}

// entryFields carries the raw entry form values through tag validation
type entryFields struct {
	Date        string `form:"date" validate:"required"`
	Temperature string `form:"temperature" validate:"required"`
	Humidity    string `form:"humidity" validate:"required"`
	Ventilation string `form:"ventilation" validate:"required"`
}

// ValidateEntryCreation validates the entry form fields. The three care
// flags come from checkboxes and default to false when absent.
func ValidateEntryCreation(date, temperature, humidity, ventilation, fertilized, watered, pruned string) (*EntryCreation, Errors) {
	raw := entryFields{Date: date, Temperature: temperature, Humidity: humidity, Ventilation: ventilation}
	errs := check(raw)
	out := EntryCreation{
		Fertilized: checkbox(fertilized),
		Watered:    checkbox(watered),
		Pruned:     checkbox(pruned),
	}
	if date != "" {
		d, err := time.Parse(EntryDateLayout, date)
		if err != nil {
			errs = append(errs, FieldError{Field: "date", Message: "must be a valid date in yyyy-mm-dd format"})
		} else {
			out.Date = d
		}
	}
	if temperature != "" {
		v, err := strconv.ParseFloat(temperature, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: "temperature", Message: "must be a number"})
		} else {
			out.Temperature = v
		}
	}
	if humidity != "" {
		v, err := strconv.ParseFloat(humidity, 64)
		if err != nil {
			errs = append(errs, FieldError{Field: "humidity", Message: "must be a number"})
		} else {
			out.Humidity = v
		}
	}
	if ventilation != "" {
		v, err := strconv.Atoi(ventilation)
		if err != nil {
			errs = append(errs, FieldError{Field: "ventilation", Message: "must be a whole number"})
		} else {
			out.Ventilation = v
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &out, nil
}

// checkbox interprets an HTML checkbox value; absent means unchecked
func checkbox(value string) bool {
	switch strings.ToLower(value) {
	case "on", "true", "1", "yes", "y":
		return true
	}
	return false
}
