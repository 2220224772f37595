package clinic

import (
	"context"

	"golang.org/x/sync/errgroup"

	"petclinic-web/internal/entity"
)

// Opciones de los selects de relación en los formularios de edición.
// Cada lista es la primera página del API + lo que ya tiene asignado la entidad,
// para que el valor actual siempre sea seleccionable.

type PetOptions struct {
	PetTypes []PetType `json:"petTypes"`
	Owners   []Owner   `json:"owners"`
}

type VisitOptions struct {
	Pets []Pet `json:"pets"`
}

type VetOptions struct {
	Specialties []Specialty `json:"specialties"`
}

type SpecialtyOptions struct {
	Vets []Vet `json:"vets"`
}

type lister[T entity.Identifiable] interface {
	Query(ctx context.Context, req entity.PageRequest) (entity.Page[T], error)
}

func loadOptions[T entity.Identifiable](ctx context.Context, src lister[T], assigned ...*T) ([]T, error) {
	page, err := src.Query(ctx, entity.PageRequest{})
	if err != nil {
		return nil, err
	}
	return entity.Reconcile(page.Items, assigned...), nil
}

func (s *Services) PetFormOptions(ctx context.Context, p *Pet) (PetOptions, error) {
	var (
		typ   *PetType
		owner *Owner
	)
	if p != nil {
		typ, owner = p.Type, p.Owner
	}

	var out PetOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := loadOptions[PetType](gctx, s.PetTypes, typ)
		out.PetTypes = items
		return err
	})
	g.Go(func() error {
		items, err := loadOptions[Owner](gctx, s.Owners, owner)
		out.Owners = items
		return err
	})
	if err := g.Wait(); err != nil {
		return PetOptions{}, err
	}
	return out, nil
}

func (s *Services) VisitFormOptions(ctx context.Context, v *Visit) (VisitOptions, error) {
	var pet *Pet
	if v != nil {
		pet = v.Pet
	}
	pets, err := loadOptions[Pet](ctx, s.Pets, pet)
	if err != nil {
		return VisitOptions{}, err
	}
	return VisitOptions{Pets: pets}, nil
}

func (s *Services) VetFormOptions(ctx context.Context, v *Vet) (VetOptions, error) {
	var assigned []*Specialty
	if v != nil {
		assigned = entity.Ptrs(v.Specialties)
	}
	items, err := loadOptions[Specialty](ctx, s.Specialties, assigned...)
	if err != nil {
		return VetOptions{}, err
	}
	return VetOptions{Specialties: items}, nil
}

func (s *Services) SpecialtyFormOptions(ctx context.Context, sp *Specialty) (SpecialtyOptions, error) {
	var assigned []*Vet
	if sp != nil {
		assigned = entity.Ptrs(sp.Vets)
	}
	items, err := loadOptions[Vet](ctx, s.Vets, assigned...)
	if err != nil {
		return SpecialtyOptions{}, err
	}
	return SpecialtyOptions{Vets: items}, nil
}
