package biblio

import "strings"

// ParseNames splits a delimited author string into structured names.
//
// The input is one or more names separated by commas, each of the form
// "First Middle von Last Suffix". Particles ("van der", "von", ...) and
// generational suffixes ("Jr.", "III", ...) are recognized by membership in
// the vocabulary's fixed sets; a name using an unlisted particle parses
// incorrectly. A single-token name becomes a bare last name. As a special
// case, "Last, First" (exactly one comma, a single token on each side) is
// treated as one inverted name rather than two.
//
// Malformed input degrades to a best-effort single-surname parse; ParseNames
// never fails.
func (v *Vocabulary) ParseNames(text string) []PersonName {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	pieces := strings.Split(text, ",")

	// "Last, First" inversion: one comma, bare token on each side.
	if len(pieces) == 2 {
		last := strings.TrimSpace(pieces[0])
		first := strings.TrimSpace(pieces[1])
		if last != "" && first != "" &&
			!strings.ContainsAny(last, " \t") && !strings.ContainsAny(first, " \t") &&
			!v.Suffixes[first] {
			return []PersonName{{First: first, Last: last}}
		}
	}

	var names []PersonName
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		names = append(names, v.parseName(piece))
	}
	return names
}

// parseName parses a single "First Middle von Last Suffix" name.
func (v *Vocabulary) parseName(text string) PersonName {
	tokens := mergeParticles(strings.Fields(text), v.Particles)

	if len(tokens) == 1 {
		return PersonName{Last: tokens[0]}
	}

	var name PersonName

	// Pop suffix, then surname, then particle; the rest is the first name.
	if v.Suffixes[tokens[len(tokens)-1]] {
		name.Suffix = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		// Degenerate input like a bare suffix; fall back to a surname.
		return PersonName{Last: text}
	}

	name.Last = tokens[len(tokens)-1]
	tokens = tokens[:len(tokens)-1]

	if len(tokens) > 0 && v.Particles[tokens[len(tokens)-1]] {
		name.Particle = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	name.First = strings.Join(tokens, " ")
	return name
}

// mergeParticles joins adjacent tokens that form a multi-word particle
// ("van" "der" -> "van der") so they are popped as one unit.
func mergeParticles(tokens []string, particles map[string]bool) []string {
	if len(tokens) < 2 {
		return tokens
	}
	merged := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) && particles[tokens[i]+" "+tokens[i+1]] {
			merged = append(merged, tokens[i]+" "+tokens[i+1])
			i++
			continue
		}
		merged = append(merged, tokens[i])
	}
	return merged
}
