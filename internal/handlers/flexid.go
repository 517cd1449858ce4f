package handlers

import "strings"

// flexID accepte un identifiant produit numérique ou chaîne dans le JSON
// entrant (les clients envoient l'un ou l'autre) et le normalise en chaîne.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*f = flexID(s)
	return nil
}

func (f flexID) String() string { return string(f) }
