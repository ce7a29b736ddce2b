package utils

import "strings"

// Slugify transforme un nom en slug URL : minuscules, alphanumérique,
// tirets simples ("Vieille Prune 70cl" → "vieille-prune-70cl").
func Slugify(name string) string {
	var b strings.Builder
	prevDash := true // évite un tiret en tête

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case r == 'é', r == 'è', r == 'ê', r == 'ë':
			b.WriteRune('e')
			prevDash = false
		case r == 'à', r == 'â':
			b.WriteRune('a')
			prevDash = false
		case r == 'ô', r == 'ö':
			b.WriteRune('o')
			prevDash = false
		case r == 'û', r == 'ù', r == 'ü':
			b.WriteRune('u')
			prevDash = false
		case r == 'î', r == 'ï':
			b.WriteRune('i')
			prevDash = false
		case r == 'ç':
			b.WriteRune('c')
			prevDash = false
		default:
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
