package person

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hashicorp-forge/ikos/pkg/ikos"
)

// Profile is a platform user profile.
type Profile struct {
	ID            string `json:"_id"`
	WPUserID      string `json:"WPUserID"`
	AccountStatus string `json:"accountStatus"`
	AccountType   string `json:"accountType"`
	Communities   []any  `json:"communities"`
	Created       string `json:"created"`
	DisplayName   string `json:"displayName"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Modified      string `json:"modified"`
	Phone         string `json:"phone"`
}

// DecodeProfile converts the data of a Get response into a Profile.
func DecodeProfile(data any) (*Profile, error) {
	if data == nil {
		return nil, &ikos.Error{Op: "person.DecodeProfile", Err: ikos.ErrMissingField}
	}

	var p Profile
	if err := ikos.Decode(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatedAt parses Created. The platform has used several date layouts over
// time, so any layout dateparse recognises is accepted.
func (p *Profile) CreatedAt() (time.Time, error) {
	return parseTimestamp("created", p.Created)
}

// ModifiedAt parses Modified.
func (p *Profile) ModifiedAt() (time.Time, error) {
	return parseTimestamp("modified", p.Modified)
}

func parseTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing %s timestamp %q: %w", field, value, err)
	}
	return t, nil
}
