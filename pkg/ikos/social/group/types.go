package group

import (
	"github.com/hashicorp-forge/ikos/pkg/ikos"
)

// Group is the typed view of a group object.
type Group struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Parent      string   `json:"parent,omitempty"`
	Members     []Member `json:"members,omitempty"`
}

// Member is an entry in Group.Members.
type Member struct {
	ID          string `json:"_id"`
	DisplayName string `json:"displayName"`
}

// DecodeGroup converts the data of a Get response into a Group.
func DecodeGroup(data any) (*Group, error) {
	if data == nil {
		return nil, &ikos.Error{Op: "group.DecodeGroup", Err: ikos.ErrMissingField}
	}

	var g Group
	if err := ikos.Decode(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// DecodeGroups converts the data of a GetAll response.
func DecodeGroups(data any) ([]Group, error) {
	groups := []Group{}
	if data == nil {
		return groups, nil
	}
	if err := ikos.Decode(data, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
