package generator

import (
	"math/rand/v2"
	"time"

	"golang.org/x/text/language"
)

// FieldProvider supplies locale specific person data.
type FieldProvider interface {
	Surname(r *rand.Rand) string
	GivenName(r *rand.Rand) string
	City(r *rand.Rand) string
	// BirthDate returns a date of birth for someone aged between minAge and maxAge.
	BirthDate(r *rand.Rand, minAge, maxAge int) time.Time
}

// Localized is implemented by providers that know their language, which
// selects the casing rules applied to their values.
type Localized interface {
	Language() language.Tag
}

func providerLanguage(p FieldProvider) language.Tag {
	if l, ok := p.(Localized); ok {
		return l.Language()
	}
	return language.Und
}
