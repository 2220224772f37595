package clinic

const PetTypesPath = "api/pet-types"

type PetType struct {
	ID   *int64 `json:"id"`
	Name string `json:"name,omitempty"`
}

func (p PetType) GetID() *int64 { return p.ID }

func (p PetType) Validate() error {
	return checkLengths(maxLen{"name", p.Name, 80})
}
