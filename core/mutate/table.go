// core/mutate/table.go
package mutate

// canonical is the uniform replacement alphabet, also used for bases the
// transition table does not cover (IUPAC ambiguity codes).
const canonical = "ATGC"

// transitions lists the substitution candidates per canonical base with
// the transition partner duplicated, giving a 2:1 transition:transversion
// ratio. Read-only.
var transitions = map[byte]string{
	'A': "GGCT",
	'G': "AACT",
	'C': "TTAG",
	'T': "CCAG",
}

// candidates returns the replacement pool for base b. Ambiguity codes
// (X N R Y W S K M D V H B) fall back to the uniform canonical alphabet.
func candidates(b byte) string {
	if pool, ok := transitions[b]; ok {
		return pool
	}
	return canonical
}
