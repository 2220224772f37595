package clinic

import (
	"context"

	"github.com/go-chi/chi/v5"

	"petclinic-web/internal/screens"
)

// Route es una entrada del menú de entidades.
type Route struct {
	Path      string `json:"path"`
	PageTitle string `json:"pageTitle"`
}

// Routes en el orden del menú.
var Routes = []Route{
	{Path: "owner", PageTitle: "Owners"},
	{Path: "pet", PageTitle: "Pets"},
	{Path: "pet-type", PageTitle: "PetTypes"},
	{Path: "specialty", PageTitle: "Specialties"},
	{Path: "vet", PageTitle: "Vets"},
	{Path: "vet-specialty", PageTitle: "VetSpecialties"},
	{Path: "visit", PageTitle: "Visits"},
}

func RegisterRoutes(r chi.Router, svc *Services, deps screens.Deps) {
	screens.Mount(r, screens.Screen[Owner]{
		Name:     "owner",
		Title:    "Owners",
		Data:     svc.Owners,
		Validate: Owner.Validate,
	}, deps)

	screens.Mount(r, screens.Screen[Pet]{
		Name:     "pet",
		Title:    "Pets",
		Data:     svc.Pets,
		Validate: Pet.Validate,
		Options: func(ctx context.Context, p *Pet) (any, error) {
			return svc.PetFormOptions(ctx, p)
		},
	}, deps)

	screens.Mount(r, screens.Screen[PetType]{
		Name:     "pet-type",
		Title:    "PetTypes",
		Data:     svc.PetTypes,
		Validate: PetType.Validate,
	}, deps)

	screens.Mount(r, screens.Screen[Specialty]{
		Name:     "specialty",
		Title:    "Specialties",
		Data:     svc.Specialties,
		Validate: Specialty.Validate,
		Options: func(ctx context.Context, s *Specialty) (any, error) {
			return svc.SpecialtyFormOptions(ctx, s)
		},
	}, deps)

	screens.Mount(r, screens.Screen[Vet]{
		Name:     "vet",
		Title:    "Vets",
		Data:     svc.Vets,
		Validate: Vet.Validate,
		Options: func(ctx context.Context, v *Vet) (any, error) {
			return svc.VetFormOptions(ctx, v)
		},
	}, deps)

	screens.Mount(r, screens.Screen[VetSpecialty]{
		Name:  "vet-specialty",
		Title: "VetSpecialties",
		Data:  svc.VetSpecialties,
	}, deps)

	screens.Mount(r, screens.Screen[Visit]{
		Name:     "visit",
		Title:    "Visits",
		Data:     svc.Visits,
		Validate: Visit.Validate,
		Options: func(ctx context.Context, v *Visit) (any, error) {
			return svc.VisitFormOptions(ctx, v)
		},
	}, deps)
}
