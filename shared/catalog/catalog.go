// Package catalog holds the fixed enumerations shared by camps, children,
// registration forms and documents. The values are stored verbatim in the
// database, labels are for display only.
package catalog

import "slices"

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var Sports = []Option{
	{Value: "soccer", Label: "Soccer"},
	{Value: "basketball", Label: "Basketball"},
	{Value: "baseball", Label: "Baseball"},
	{Value: "softball", Label: "Softball"},
	{Value: "football", Label: "Football"},
	{Value: "flag_football", Label: "Flag Football"},
	{Value: "volleyball", Label: "Volleyball"},
	{Value: "tennis", Label: "Tennis"},
	{Value: "swimming", Label: "Swimming"},
	{Value: "track_and_field", Label: "Track & Field"},
	{Value: "cross_country", Label: "Cross Country"},
	{Value: "lacrosse", Label: "Lacrosse"},
	{Value: "ice_hockey", Label: "Ice Hockey"},
	{Value: "field_hockey", Label: "Field Hockey"},
	{Value: "golf", Label: "Golf"},
	{Value: "wrestling", Label: "Wrestling"},
	{Value: "gymnastics", Label: "Gymnastics"},
	{Value: "cheerleading", Label: "Cheerleading"},
	{Value: "martial_arts", Label: "Martial Arts"},
	{Value: "rugby", Label: "Rugby"},
	{Value: "multi_sport", Label: "Multi-Sport"},
}

var SkillLevels = []Option{
	{Value: "beginner", Label: "Beginner"},
	{Value: "intermediate", Label: "Intermediate"},
	{Value: "advanced", Label: "Advanced"},
	{Value: "elite", Label: "Elite"},
	{Value: "all_levels", Label: "All Levels"},
}

var JerseySizes = []Option{
	{Value: "YXS", Label: "Youth XS"},
	{Value: "YS", Label: "Youth S"},
	{Value: "YM", Label: "Youth M"},
	{Value: "YL", Label: "Youth L"},
	{Value: "YXL", Label: "Youth XL"},
	{Value: "AS", Label: "Adult S"},
	{Value: "AM", Label: "Adult M"},
	{Value: "AL", Label: "Adult L"},
	{Value: "AXL", Label: "Adult XL"},
	{Value: "AXXL", Label: "Adult XXL"},
}

var DocumentTypes = []Option{
	{Value: "waiver", Label: "Liability Waiver"},
	{Value: "medical_form", Label: "Medical Form"},
	{Value: "photo_release", Label: "Photo Release"},
	{Value: "emergency_contact", Label: "Emergency Contact Form"},
	{Value: "insurance_card", Label: "Insurance Card"},
	{Value: "birth_certificate", Label: "Birth Certificate"},
	{Value: "physical_exam", Label: "Physical Exam"},
	{Value: "other", Label: "Other"},
}

var SignatureTypes = []Option{
	{Value: "none", Label: "Not Signed"},
	{Value: "typed", Label: "Typed Name"},
	{Value: "drawn", Label: "Drawn Signature"},
	{Value: "uploaded", Label: "Uploaded Signed Copy"},
}

const (
	FieldTypeText        = "text"
	FieldTypeTextarea    = "textarea"
	FieldTypeNumber      = "number"
	FieldTypeDate        = "date"
	FieldTypeSelect      = "select"
	FieldTypeMultiselect = "multiselect"
	FieldTypeCheckbox    = "checkbox"
	FieldTypeEmail       = "email"
	FieldTypePhone       = "phone"
)

var FieldTypes = []Option{
	{Value: FieldTypeText, Label: "Short Text"},
	{Value: FieldTypeTextarea, Label: "Long Text"},
	{Value: FieldTypeNumber, Label: "Number"},
	{Value: FieldTypeDate, Label: "Date"},
	{Value: FieldTypeSelect, Label: "Dropdown"},
	{Value: FieldTypeMultiselect, Label: "Multiple Choice"},
	{Value: FieldTypeCheckbox, Label: "Checkbox"},
	{Value: FieldTypeEmail, Label: "Email"},
	{Value: FieldTypePhone, Label: "Phone"},
}

var Genders = []Option{
	{Value: "male", Label: "Male"},
	{Value: "female", Label: "Female"},
	{Value: "other", Label: "Other"},
	{Value: "prefer_not_to_say", Label: "Prefer not to say"},
}

var CampStatuses = []Option{
	{Value: "draft", Label: "Draft"},
	{Value: "published", Label: "Published"},
	{Value: "cancelled", Label: "Cancelled"},
	{Value: "completed", Label: "Completed"},
}

var RegistrationStatuses = []Option{
	{Value: "pending", Label: "Pending"},
	{Value: "confirmed", Label: "Confirmed"},
	{Value: "waitlisted", Label: "Waitlisted"},
	{Value: "cancelled", Label: "Cancelled"},
}

var PaymentStatuses = []Option{
	{Value: "unpaid", Label: "Unpaid"},
	{Value: "paid", Label: "Paid"},
	{Value: "refunded", Label: "Refunded"},
}

// Values returns the stored values of options in order.
func Values(options []Option) []string {
	values := make([]string, len(options))
	for i, option := range options {
		values[i] = option.Value
	}

	return values
}

// Contains reports whether value is one of the stored option values.
func Contains(options []Option, value string) bool {
	return slices.ContainsFunc(options, func(o Option) bool {
		return o.Value == value
	})
}

// HasOptions reports whether a custom field type needs a list of choices.
func HasOptions(fieldType string) bool {
	return fieldType == FieldTypeSelect || fieldType == FieldTypeMultiselect
}
