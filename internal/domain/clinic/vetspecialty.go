package clinic

const VetSpecialtiesPath = "api/vet-specialties"

// VetSpecialty es la entidad join; solo tiene identidad.
type VetSpecialty struct {
	ID *int64 `json:"id"`
}

func (v VetSpecialty) GetID() *int64 { return v.ID }
