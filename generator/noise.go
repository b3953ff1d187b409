package generator

import (
	"math/rand/v2"
	"strings"
)

// Apply corrupts text with OCR-style noise. The text is returned untouched
// when noise is disabled, allowed is false, or the global gate fails.
// The result may be shorter or longer than the input.
func (c *NoiseConfig) Apply(r *rand.Rand, text string, allowed bool) string {
	lvl := c.Level
	if !lvl.Enabled || !allowed || r.Float64() > lvl.Global {
		return text
	}
	if r.Float64() < lvl.Word {
		text = replaceVariants(r, text, c.Tables.Words)
	}
	if r.Float64() < lvl.Spacing {
		text = replaceVariants(r, text, c.Tables.Spacing)
	}
	if r.Float64() < lvl.CharSub+lvl.CharExtra+lvl.CharMissing {
		text = c.ApplyCharacters(r, text)
	}
	return text
}

// ApplyCharacters runs the per-rune drop / substitute / duplicate / insert
// trials. A dropped rune skips the remaining trials for that rune.
func (c *NoiseConfig) ApplyCharacters(r *rand.Rand, text string) string {
	lvl := c.Level
	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, ch := range text {
		if r.Float64() < lvl.CharMissing {
			continue
		}
		emitted := string(ch)
		if sub, ok := c.Tables.Chars[ch]; ok && r.Float64() < lvl.CharSub {
			emitted = sub
		}
		b.WriteString(emitted)
		if r.Float64() < lvl.CharDouble {
			b.WriteString(emitted)
		}
		if r.Float64() < lvl.CharExtra && len(c.Tables.Fillers) > 0 {
			b.WriteString(choice(r, c.Tables.Fillers))
		}
	}
	return b.String()
}

// FieldTypo corrupts a form label: an exact table entry wins, then the first
// key found inside the label, then generic noise. Labels are left alone
// when noise is disabled.
func (c *NoiseConfig) FieldTypo(r *rand.Rand, label string) string {
	if !c.Level.Enabled {
		return label
	}
	if variants, ok := c.Tables.FieldTypos.Lookup(label); ok && len(variants) > 0 {
		return choice(r, variants)
	}
	for _, entry := range c.Tables.FieldTypos {
		if entry.Key == "" || len(entry.Variants) == 0 {
			continue
		}
		if strings.Contains(label, entry.Key) {
			return strings.ReplaceAll(label, entry.Key, choice(r, entry.Variants))
		}
	}
	return c.Apply(r, label, true)
}

func replaceVariants(r *rand.Rand, text string, table VariantTable) string {
	for _, entry := range table {
		if entry.Key == "" || len(entry.Variants) == 0 {
			continue
		}
		if strings.Contains(text, entry.Key) {
			text = strings.ReplaceAll(text, entry.Key, choice(r, entry.Variants))
		}
	}
	return text
}
