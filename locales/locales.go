// Package locales provides the built-in field providers: per-locale lists of
// surnames, given names and cities embedded in the binary.
package locales

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"yashubustudio/idgen/generator"
)

//go:embed data/locales.json
var rawData []byte

// DefaultLocales are used when no locale is requested.
var DefaultLocales = []string{"fr_FR", "es_ES", "it_IT"}

type localeData struct {
	Surnames   []string `json:"surnames"`
	GivenNames []string `json:"given_names"`
	Cities     []string `json:"cities"`
}

var (
	loadOnce sync.Once
	table    map[string]localeData
	loadErr  error
)

func load() (map[string]localeData, error) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(rawData, &table); err != nil {
			loadErr = fmt.Errorf("decode locale data: %w", err)
		}
	})
	return table, loadErr
}

// UnknownLocaleError reports requested locales with no embedded data.
type UnknownLocaleError struct {
	Codes []string
}

func (e *UnknownLocaleError) Error() string {
	return fmt.Sprintf("unknown locale(s) %s (use --list-locales)", strings.Join(e.Codes, ", "))
}

// Provider serves one locale's data. It implements generator.FieldProvider
// and generator.Localized.
type Provider struct {
	code string
	tag  language.Tag
	data localeData
	now  func() time.Time
}

var (
	_ generator.FieldProvider = (*Provider)(nil)
	_ generator.Localized     = (*Provider)(nil)
)

// Code returns the locale code, e.g. "fr_FR".
func (p *Provider) Code() string { return p.code }

// Language implements generator.Localized.
func (p *Provider) Language() language.Tag { return p.tag }

// Surname implements generator.FieldProvider.
func (p *Provider) Surname(r *rand.Rand) string { return pick(r, p.data.Surnames) }

// GivenName implements generator.FieldProvider.
func (p *Provider) GivenName(r *rand.Rand) string { return pick(r, p.data.GivenNames) }

// City implements generator.FieldProvider.
func (p *Provider) City(r *rand.Rand) string { return pick(r, p.data.Cities) }

// BirthDate implements generator.FieldProvider. The date is drawn uniformly
// by day between the two age bounds.
func (p *Provider) BirthDate(r *rand.Rand, minAge, maxAge int) time.Time {
	if maxAge < minAge {
		minAge, maxAge = maxAge, minAge
	}
	now := p.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	latest := today.AddDate(-minAge, 0, 0)
	earliest := today.AddDate(-maxAge-1, 0, 1)
	days := int(latest.Sub(earliest).Hours() / 24)
	if days <= 0 {
		return latest
	}
	return earliest.AddDate(0, 0, r.IntN(days+1))
}

// WithClock returns a copy whose birth dates are relative to now.
func (p *Provider) WithClock(now func() time.Time) *Provider {
	cp := *p
	cp.now = now
	return &cp
}

func pick(r *rand.Rand, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[r.IntN(len(items))]
}

// Available lists the embedded locale codes in sorted order.
func Available() []string {
	t, err := load()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(t))
	for code := range t {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Tag converts a locale code such as "pt_BR" into a language tag.
func Tag(code string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// DisplayName returns the English name of a locale, e.g. "Brazilian Portuguese".
func DisplayName(code string) string {
	tag := Tag(code)
	if tag == language.Und {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

// New builds providers for the given locale codes, or for DefaultLocales
// when none are given. Codes are trimmed; duplicates are kept once.
func New(codes ...string) ([]*Provider, error) {
	t, err := load()
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		codes = DefaultLocales
	}
	seen := make(map[string]bool, len(codes))
	out := make([]*Provider, 0, len(codes))
	var unknown []string
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		data, ok := t[code]
		if !ok {
			unknown = append(unknown, code)
			continue
		}
		out = append(out, &Provider{code: code, tag: Tag(code), data: data, now: time.Now})
	}
	if len(unknown) > 0 {
		return nil, &UnknownLocaleError{Codes: unknown}
	}
	if len(out) == 0 {
		return nil, generator.ErrNoProviders
	}
	return out, nil
}

// FieldProviders converts providers for generator.New.
func FieldProviders(ps []*Provider) []generator.FieldProvider {
	out := make([]generator.FieldProvider, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}

// ParseList splits a comma separated locale list.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
