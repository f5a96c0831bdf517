package showcase

import "github.com/agiangrant/fieldkit/internal/formdef"

const (
	phonePattern = `^[0-9]{10}$`
	zipPattern   = `^[0-9]{5}$`
	urlPattern   = `^https?://.+`
)

func required() formdef.Rule { return formdef.Rule{Type: "required"} }

func minLength(n int) formdef.Rule { return formdef.Rule{Type: "minlength", Length: n} }

func maxLength(n int) formdef.Rule { return formdef.Rule{Type: "maxlength", Length: n} }

func minValue(v float64) formdef.Rule { return formdef.Rule{Type: "min", Value: v} }

func maxValue(v float64) formdef.Rule { return formdef.Rule{Type: "max", Value: v} }

func pattern(p string) formdef.Rule { return formdef.Rule{Type: "pattern", Pattern: p} }

func email() formdef.Rule { return formdef.Rule{Type: "email"} }

// longErrorFields get the explanatory variant of every error message.
var longErrorFields = map[string]bool{
	"firstName":       true,
	"lastName":        true,
	"email":           true,
	"phone":           true,
	"age":             true,
	"password":        true,
	"confirmPassword": true,
	"country":         true,
	"city":            true,
	"zipCode":         true,
	"address":         true,
	"company":         true,
	"jobTitle":        true,
	"salary":          true,
	"startDate":       true,
	"endDate":         true,
}

var hints = map[string]string{
	"skill1": "This is a long hint text for the skill1 field. It should be at least 100 characters long to demonstrate the tooltip functionality.",
	"skill2": "short hint text for the skill2 field",
}

// Definition returns the demo form: 36 fields in 12 rows of three, mixing
// short and long hints with short and long error messages.
func Definition() *formdef.Definition {
	fields := []formdef.Field{
		// Row 1
		{Name: "firstName", Label: "First Name", Rules: []formdef.Rule{required(), minLength(2)}},
		{Name: "lastName", Label: "Last Name", Rules: []formdef.Rule{required(), minLength(2)}},
		{Name: "email", Label: "Email", Rules: []formdef.Rule{required(), email()}},
		// Row 2
		{Name: "phone", Label: "Phone", Rules: []formdef.Rule{required(), pattern(phonePattern)}},
		{Name: "age", Label: "Age", Rules: []formdef.Rule{required(), minValue(18), maxValue(120)}},
		{Name: "website", Label: "Website", Rules: []formdef.Rule{pattern(urlPattern)}},
		// Row 3
		{Name: "password", Label: "Password", Rules: []formdef.Rule{required(), minLength(8)}},
		{Name: "confirmPassword", Label: "Confirm Password", Rules: []formdef.Rule{required()}},
		{Name: "country", Label: "Country", Rules: []formdef.Rule{required()}},
		// Row 4
		{Name: "city", Label: "City", Rules: []formdef.Rule{required()}},
		{Name: "zipCode", Label: "Zip Code", Rules: []formdef.Rule{required(), pattern(zipPattern)}},
		{Name: "address", Label: "Address", Rules: []formdef.Rule{required(), minLength(10)}},
		// Row 5
		{Name: "company", Label: "Company", Rules: []formdef.Rule{required()}},
		{Name: "jobTitle", Label: "Job Title", Rules: []formdef.Rule{required()}},
		{Name: "salary", Label: "Salary", Rules: []formdef.Rule{required(), minValue(0)}},
		// Row 6
		{Name: "startDate", Label: "Start Date", Rules: []formdef.Rule{required()}},
		{Name: "endDate", Label: "End Date", Rules: []formdef.Rule{required()}},
		{Name: "notes", Label: "Notes", Rules: []formdef.Rule{maxLength(100)}},
		// Row 7
		{Name: "skill1", Label: "Skill 1", Rules: []formdef.Rule{required()}},
		{Name: "skill2", Label: "Skill 2", Rules: []formdef.Rule{required()}},
		{Name: "skill3", Label: "Skill 3", Rules: []formdef.Rule{required()}},
		// Row 8
		{Name: "language1", Label: "Language 1", Rules: []formdef.Rule{required()}},
		{Name: "language2", Label: "Language 2", Rules: []formdef.Rule{required()}},
		{Name: "language3", Label: "Language 3", Rules: []formdef.Rule{required()}},
		// Row 9
		{Name: "project1", Label: "Project 1", Rules: []formdef.Rule{required()}},
		{Name: "project2", Label: "Project 2", Rules: []formdef.Rule{required()}},
		{Name: "project3", Label: "Project 3", Rules: []formdef.Rule{required()}},
		// Row 10
		{Name: "reference1", Label: "Reference 1", Rules: []formdef.Rule{required()}},
		{Name: "reference2", Label: "Reference 2", Rules: []formdef.Rule{required()}},
		{Name: "reference3", Label: "Reference 3", Rules: []formdef.Rule{required()}},
		// Row 11
		{Name: "education", Label: "Education", Rules: []formdef.Rule{required()}},
		{Name: "certification", Label: "Certification", Rules: []formdef.Rule{required()}},
		{Name: "experience", Label: "Years of Experience", Rules: []formdef.Rule{required(), minValue(0)}},
		// Row 12
		{Name: "bio", Label: "Bio", Rules: []formdef.Rule{required(), minLength(50)}},
		{Name: "linkedin", Label: "LinkedIn", Rules: []formdef.Rule{pattern(urlPattern)}},
		{Name: "github", Label: "GitHub", Rules: []formdef.Rule{pattern(urlPattern)}},
	}

	for i := range fields {
		fields[i].Hint = hints[fields[i].Name]
		fields[i].LongErrors = longErrorFields[fields[i].Name]
	}

	return &formdef.Definition{
		Name:        "showcase",
		Title:       "Field Showcase",
		Columns:     3,
		FieldWidth:  "200px",
		FieldHeight: "60px",
		Fields:      fields,
	}
}
