package generator

import (
	"fmt"
	"strings"
)

const (
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"

	minAdultAge = 18
	maxAdultAge = 80

	// assumedBirthYear anchors expiry dates; it is not tied to the printed birth date.
	assumedBirthYear = 1980
	validityYears    = 15
)

var idShapes = []string{"numeric", "date_based", "alphanumeric"}

// IDNumber returns a card number in one of three shapes: 12 digits,
// YYMMDDT plus 5 digits, or letter digit 3 letters 2 digits letter digit.
func (g *Generator) IDNumber() string {
	switch choice(g.r, idShapes) {
	case "numeric":
		return g.randomFrom(digits, 12)
	case "date_based":
		year := between(g.r, 50, 99)
		month := between(g.r, 1, 12)
		day := between(g.r, 1, 28)
		return fmt.Sprintf("%02d%02d%02dT%s", year, month, day, g.randomFrom(digits, 5))
	default:
		return g.randomFrom(upperLetters, 1) +
			g.randomFrom(digits, 1) +
			g.randomFrom(upperLetters, 3) +
			g.randomFrom(digits, 2) +
			g.randomFrom(upperLetters, 1) +
			g.randomFrom(digits, 1)
	}
}

// BirthDate asks a provider for an adult date of birth and prints it as
// DD.MM.YYYY or DD MM YYYY.
func (g *Generator) BirthDate() string {
	d := g.provider().BirthDate(g.r, minAdultAge, maxAdultAge)
	if g.r.IntN(2) == 0 {
		return fmt.Sprintf("%02d.%02d.%d", d.Day(), int(d.Month()), d.Year())
	}
	return fmt.Sprintf("%02d %02d %d", d.Day(), int(d.Month()), d.Year())
}

// Height returns values such as "1 75m" or "2 50M". The range is not
// meant to be plausible.
func (g *Generator) Height() string {
	meters := between(g.r, 1, 2)
	cm := between(g.r, 50, 99)
	sep := choice(g.r, []string{" ", ""})
	unit := choice(g.r, []string{"m", "M"})
	return fmt.Sprintf("%d%s%d%s", meters, sep, cm, unit)
}

// ExpiryDate adds an issue age of 18-50 years and the validity window to birthYear.
func (g *Generator) ExpiryDate(birthYear int) string {
	issueYear := birthYear + between(g.r, 18, 50)
	expiryYear := issueYear + validityYears
	month := between(g.r, 1, 12)
	day := between(g.r, 1, 28)
	return fmt.Sprintf("%02d %02d %d", day, month, expiryYear)
}

// SupportNumber returns six digits without a leading zero.
func (g *Generator) SupportNumber() string {
	return fmt.Sprintf("%d", between(g.r, 100000, 999999))
}

// Surname returns an uppercased surname from a random provider.
func (g *Generator) Surname() string {
	p := g.provider()
	return UpperName(providerLanguage(p), p.Surname(g.r))
}

// GivenNames returns count uppercased given names, each from a random provider.
func (g *Generator) GivenNames(count int) []string {
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		p := g.provider()
		names = append(names, UpperName(providerLanguage(p), p.GivenName(g.r)))
	}
	return names
}

// City returns a cleaned city name from a random provider.
func (g *Generator) City() string {
	p := g.provider()
	return CleanCity(providerLanguage(p), p.City(g.r))
}

func (g *Generator) randomFrom(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[g.r.IntN(len(alphabet))])
	}
	return b.String()
}
