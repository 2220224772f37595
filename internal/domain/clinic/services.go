package clinic

import (
	"petclinic-web/internal/platform/httpclient"
	"petclinic-web/internal/rest"
)

// Services agrupa un colaborador de datos por entidad.
// Todos son la misma implementación genérica con distinto path.
type Services struct {
	Owners         *rest.Client[Owner]
	Pets           *rest.Client[Pet]
	PetTypes       *rest.Client[PetType]
	Vets           *rest.Client[Vet]
	Specialties    *rest.Client[Specialty]
	VetSpecialties *rest.Client[VetSpecialty]
	Visits         *rest.Client[Visit]
}

func NewServices(c *httpclient.Client, opts ...rest.Option) *Services {
	return &Services{
		Owners:         rest.New[Owner](c, OwnersPath, opts...),
		Pets:           rest.New[Pet](c, PetsPath, opts...),
		PetTypes:       rest.New[PetType](c, PetTypesPath, opts...),
		Vets:           rest.New[Vet](c, VetsPath, opts...),
		Specialties:    rest.New[Specialty](c, SpecialtiesPath, opts...),
		VetSpecialties: rest.New[VetSpecialty](c, VetSpecialtiesPath, opts...),
		Visits:         rest.New[Visit](c, VisitsPath, opts...),
	}
}
