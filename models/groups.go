package models

// Profile is the Spond profile attached to a member or guardian.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Person holds the identity fields shared by members and guardians.
type Person struct {
	ID        string   `json:"id"`
	Email     string   `json:"email,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Phone     string   `json:"phoneNumber,omitempty"`
	Profile   *Profile `json:"profile,omitempty"`
}

// Guardian is a member's guardian. It carries the same identity fields
// as a member.
type Guardian = Person

// Member represents a member of a group, with any guardians attached.
type Member struct {
	Person
	Guardians []Guardian `json:"guardians,omitempty"`
}

// SubGroup represents a subgroup within a group.
type SubGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Group represents a group in Spond, with its members and subgroups.
type Group struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Members   []Member   `json:"members,omitempty"`
	SubGroups []SubGroup `json:"subGroups,omitempty"`
}

// FullName returns the "first last" display name used when matching a
// person by name.
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}
