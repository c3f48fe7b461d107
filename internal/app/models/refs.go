package models

import (
	"bytes"
	"encoding/json"
)

// PersonRef identifies a human on a record. The gateway sends either a
// display name string or a structured identity, depending on the endpoint
// and on how old the record is.
type PersonRef interface {
	isPersonRef()
}

// PersonName is a plain display name
type PersonName string

func (PersonName) isPersonRef() {}

// Identity is a structured person record
type Identity struct {
	ID        ID     `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func (Identity) isPersonRef() {}

// UnmarshalJSON accepts both firstName and first_name spellings.
// The camelCase key wins when both are present.
func (i *Identity) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         ID     `json:"id"`
		Email      string `json:"email"`
		Username   string `json:"username"`
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		FirstNameS string `json:"first_name"`
		LastNameS  string `json:"last_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = Identity{
		ID:        raw.ID,
		Email:     raw.Email,
		Username:  raw.Username,
		FirstName: firstNonEmpty(raw.FirstName, raw.FirstNameS),
		LastName:  firstNonEmpty(raw.LastName, raw.LastNameS),
	}
	return nil
}

// Person carries a PersonRef through JSON. A nil Ref means the field was
// absent or null.
type Person struct {
	Ref PersonRef
}

// NewPersonName wraps a display name
func NewPersonName(name string) Person {
	return Person{Ref: PersonName(name)}
}

// NewIdentity wraps a structured identity
func NewIdentity(identity Identity) Person {
	return Person{Ref: identity}
}

// UnmarshalJSON implements json.Unmarshaler
func (p *Person) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		p.Ref = nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		p.Ref = PersonName(s)
	case data[0] == '{':
		var identity Identity
		if err := json.Unmarshal(data, &identity); err != nil {
			return err
		}
		p.Ref = identity
	default:
		// A bare primary key keeps its id; anything else has no usable reference
		var id ID
		if err := json.Unmarshal(data, &id); err != nil {
			p.Ref = nil
			return nil
		}
		p.Ref = Identity{ID: id}
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (p Person) MarshalJSON() ([]byte, error) {
	switch ref := p.Ref.(type) {
	case PersonName:
		return json.Marshal(string(ref))
	case Identity:
		return json.Marshal(ref)
	default:
		return []byte("null"), nil
	}
}

// CategoryRef is either a plain label or a structured category
type CategoryRef interface {
	isCategoryRef()
}

// CategoryName is a plain category label
type CategoryName string

func (CategoryName) isCategoryRef() {}

// CategoryInfo is a structured category. Name is nil when the gateway
// omitted it, which is distinct from an empty name.
type CategoryInfo struct {
	ID   ID      `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
	Slug string  `json:"slug,omitempty"`
}

func (CategoryInfo) isCategoryRef() {}

// CategoryField carries a CategoryRef through JSON
type CategoryField struct {
	Ref CategoryRef
}

// NewCategoryName wraps a plain label
func NewCategoryName(name string) CategoryField {
	return CategoryField{Ref: CategoryName(name)}
}

// UnmarshalJSON implements json.Unmarshaler
func (c *CategoryField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		c.Ref = nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		c.Ref = CategoryName(s)
	case data[0] == '{':
		var info CategoryInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return err
		}
		c.Ref = info
	default:
		// Some endpoints send the bare primary key of the category
		var id ID
		if err := json.Unmarshal(data, &id); err != nil {
			c.Ref = nil
			return nil
		}
		c.Ref = CategoryInfo{ID: id}
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (c CategoryField) MarshalJSON() ([]byte, error) {
	switch ref := c.Ref.(type) {
	case CategoryName:
		return json.Marshal(string(ref))
	case CategoryInfo:
		return json.Marshal(ref)
	default:
		return []byte("null"), nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
