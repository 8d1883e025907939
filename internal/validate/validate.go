// Package validate holds pure entity validation rules, independent of the
// transport layer.
package validate

import (
	"fmt"
	"strings"
	"time"
)

// dreamDateLayout is the wire format for the optional dream date.
const dreamDateLayout = "2006-01-02"

func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// Name validates a Person or Tag name: required, at most 255 bytes.
func Name(v string) error {
	if err := NonEmpty("name", v); err != nil {
		return err
	}
	if len(v) > 255 {
		return fmt.Errorf("name exceeds 255 characters")
	}
	return nil
}

// DreamDate validates the optional dream date against YYYY-MM-DD.
func DreamDate(v *string) error {
	if v == nil {
		return nil
	}
	if _, err := time.Parse(dreamDateLayout, *v); err != nil {
		return fmt.Errorf("dreamDate must be formatted as YYYY-MM-DD")
	}
	return nil
}

// -------- Request specific helpers ----------

// CreatePerson validates input for creating a person.
func CreatePerson(name *string, description, photoURL *string) error {
	if name == nil {
		return fmt.Errorf("name is required")
	}
	if err := Name(*name); err != nil {
		return err
	}
	if err := MaxLen("description", description, 2000); err != nil {
		return err
	}
	return MaxLen("photoUrl", photoURL, 500)
}

// CreateTag validates input for creating a tag.
func CreateTag(name *string, description *string) error {
	if name == nil {
		return fmt.Errorf("name is required")
	}
	if err := Name(*name); err != nil {
		return err
	}
	return MaxLen("description", description, 2000)
}

// CreateDream validates input for creating a dream.
func CreateDream(description *string, dreamDate *string) error {
	if description == nil {
		return fmt.Errorf("description is required")
	}
	if err := NonEmpty("description", *description); err != nil {
		return err
	}
	if len(*description) > 10000 {
		return fmt.Errorf("description exceeds 10000 characters")
	}
	return DreamDate(dreamDate)
}
