package entity

// Identifiable es cualquier registro del dominio con identidad numérica.
// GetID devuelve nil para la variante "nueva" (aún no persistida).
type Identifiable interface {
	GetID() *int64
}

// Key es la identidad comparable de un registro.
// Dos registros sin id comparten la misma Key.
type Key struct {
	Set bool
	ID  int64
}

func KeyOf[T Identifiable](e T) Key {
	id := e.GetID()
	if id == nil {
		return Key{}
	}
	return Key{Set: true, ID: *id}
}

// SameIdentity compara dos valores opcionales por id.
// Si ambos están presentes compara ids; si no, solo son iguales cuando ambos son nil.
func SameIdentity[T Identifiable](a, b *T) bool {
	if a != nil && b != nil {
		return KeyOf(*a) == KeyOf(*b)
	}
	return a == nil && b == nil
}

// Ptrs adapta una relación multi-valor para pasarla como candidatos a Reconcile.
func Ptrs[T any](items []T) []*T {
	out := make([]*T, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	return out
}

// IDPtr es un helper para literales (tests, fixtures).
func IDPtr(id int64) *int64 {
	return &id
}
