package entity

import "errors"

var (
	// ErrNotFound: el colaborador respondió OK pero sin entidad (o 404).
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidID: el identificador de la ruta no es numérico.
	ErrInvalidID = errors.New("invalid entity id")
)
