package clinic

const VetsPath = "api/vets"

// Vet lleva sus especialidades como {id,name}.
type Vet struct {
	ID          *int64      `json:"id"`
	FirstName   string      `json:"firstName,omitempty"`
	LastName    string      `json:"lastName,omitempty"`
	Specialties []Specialty `json:"specialties,omitempty"`
}

func (v Vet) GetID() *int64 { return v.ID }

func (v Vet) Validate() error {
	return checkLengths(
		maxLen{"firstName", v.FirstName, 30},
		maxLen{"lastName", v.LastName, 30},
	)
}
