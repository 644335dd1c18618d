package contract

import "strings"

// MissingFields returns the JSON names of required fields that are blank.
// Every field except additional_terms is required.
func (f FormData) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"party_one_name", f.PartyOneName},
		{"party_one_position", f.PartyOnePosition},
		{"party_one_address", f.PartyOneAddress},
		{"party_two_name", f.PartyTwoName},
		{"party_two_position", f.PartyTwoPosition},
		{"party_two_address", f.PartyTwoAddress},
		{"project_title", f.ProjectTitle},
		{"scope", f.Scope},
		{"value", f.Value},
		{"start_date", f.StartDate},
		{"end_date", f.EndDate},
	}

	var missing []string
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// Validate reports a *FormError when required fields are blank.
func (f FormData) Validate() error {
	if missing := f.MissingFields(); len(missing) > 0 {
		return &FormError{Missing: missing}
	}
	return nil
}
