package entity

// Reconcile agrega a base los candidatos que todavía no están (por identidad).
//
// Los candidatos nil se descartan. Si no queda ninguno, devuelve base tal cual
// (mismo arreglo subyacente). Si no, los candidatos aceptados van primero, en su
// orden, seguidos de base en su orden original. Un candidato repetido solo entra
// la primera vez. No modifica base ni candidates.
func Reconcile[T Identifiable](base []T, candidates ...*T) []T {
	present := make([]*T, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return base
	}

	seen := make(map[Key]struct{}, len(base)+len(present))
	for _, item := range base {
		seen[KeyOf(item)] = struct{}{}
	}

	toAdd := make([]T, 0, len(present))
	for _, c := range present {
		k := KeyOf(*c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		toAdd = append(toAdd, *c)
	}

	out := make([]T, 0, len(toAdd)+len(base))
	out = append(out, toAdd...)
	out = append(out, base...)
	return out
}
