package clinic

import "petclinic-web/internal/entity"

const PetsPath = "api/pets"

// Pet lleva referencias reducidas: Type{id,name} y Owner{id,lastName}.
type Pet struct {
	ID        *int64       `json:"id"`
	Name      string       `json:"name,omitempty"`
	BirthDate *entity.Date `json:"birthDate,omitempty"`
	Type      *PetType     `json:"type,omitempty"`
	Owner     *Owner       `json:"owner,omitempty"`
}

func (p Pet) GetID() *int64 { return p.ID }

func (p Pet) Validate() error {
	return checkLengths(maxLen{"name", p.Name, 30})
}
