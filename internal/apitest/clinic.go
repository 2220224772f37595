package apitest

import (
	"petclinic-web/internal/adapters/storage/memory"
	"petclinic-web/internal/domain/clinic"
)

// Clinic da acceso directo a los stores para sembrar datos en tests.
type Clinic struct {
	*Server

	Owners         *memory.Store[clinic.Owner]
	Pets           *memory.Store[clinic.Pet]
	PetTypes       *memory.Store[clinic.PetType]
	Vets           *memory.Store[clinic.Vet]
	Specialties    *memory.Store[clinic.Specialty]
	VetSpecialties *memory.Store[clinic.VetSpecialty]
	Visits         *memory.Store[clinic.Visit]
}

// NewClinic registra los siete recursos del API de la clínica.
func NewClinic() *Clinic {
	s := New()
	return &Clinic{
		Server:         s,
		Owners:         Register(s, clinic.OwnersPath, func(e *clinic.Owner, id int64) { e.ID = &id }),
		Pets:           Register(s, clinic.PetsPath, func(e *clinic.Pet, id int64) { e.ID = &id }),
		PetTypes:       Register(s, clinic.PetTypesPath, func(e *clinic.PetType, id int64) { e.ID = &id }),
		Vets:           Register(s, clinic.VetsPath, func(e *clinic.Vet, id int64) { e.ID = &id }),
		Specialties:    Register(s, clinic.SpecialtiesPath, func(e *clinic.Specialty, id int64) { e.ID = &id }),
		VetSpecialties: Register(s, clinic.VetSpecialtiesPath, func(e *clinic.VetSpecialty, id int64) { e.ID = &id }),
		Visits:         Register(s, clinic.VisitsPath, func(e *clinic.Visit, id int64) { e.ID = &id }),
	}
}
