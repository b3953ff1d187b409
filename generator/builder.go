package generator

import "strings"

// sampleBuilder appends text segments and records entity spans. The cursor
// counts runes and is advanced only after a segment is final, so spans never
// see text that is corrupted later.
type sampleBuilder struct {
	buf      strings.Builder
	cursor   int
	entities []Entity
}

func (b *sampleBuilder) literal(s string) {
	b.buf.WriteString(s)
	b.cursor += RuneLen(s)
}

func (b *sampleBuilder) entity(label, value string) {
	start := b.cursor
	b.literal(value)
	b.entities = append(b.entities, Entity{Start: start, End: b.cursor, Label: label, Value: value})
}

// joined records each value as its own entity, separated by sep.
func (b *sampleBuilder) joined(values []string, sep string, label func(i int) string) {
	for i, v := range values {
		if i > 0 {
			b.literal(sep)
		}
		b.entity(label(i+1), v)
	}
}

func (b *sampleBuilder) sample() Sample {
	if b.entities == nil {
		b.entities = []Entity{}
	}
	return Sample{Text: b.buf.String(), Entities: b.entities}
}
