package clinic

const SpecialtiesPath = "api/specialties"

// Specialty lleva sus vets como {id,firstName} (para el label del select).
type Specialty struct {
	ID   *int64 `json:"id"`
	Name string `json:"name,omitempty"`
	Vets []Vet  `json:"vets,omitempty"`
}

func (s Specialty) GetID() *int64 { return s.ID }

func (s Specialty) Validate() error {
	return checkLengths(maxLen{"name", s.Name, 80})
}
