package locales_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"yashubustudio/idgen/generator"
	"yashubustudio/idgen/locales"
)

func TestAvailableListsEveryLocale(t *testing.T) {
	codes := locales.Available()
	require.Len(t, codes, 20)
	require.IsIncreasing(t, codes)
	for _, code := range locales.DefaultLocales {
		require.Contains(t, codes, code)
	}
}

func TestEveryLocaleHasData(t *testing.T) {
	ps, err := locales.New(locales.Available()...)
	require.NoError(t, err)
	r := generator.NewRand(1, 0)
	for _, p := range ps {
		require.NotEmpty(t, p.Surname(r), p.Code())
		require.NotEmpty(t, p.GivenName(r), p.Code())
		require.NotEmpty(t, p.City(r), p.Code())
	}
}

func TestNewDefaultsAndDuplicates(t *testing.T) {
	ps, err := locales.New()
	require.NoError(t, err)
	require.Len(t, ps, len(locales.DefaultLocales))

	ps, err = locales.New("de_DE", " de_DE ", "ja_JP")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	require.Equal(t, "de_DE", ps[0].Code())
	require.Equal(t, "ja-JP", ps[1].Language().String())
}

func TestNewUnknownLocale(t *testing.T) {
	_, err := locales.New("fr_FR", "xx_YY", "zz_ZZ", "xx_YY")
	var ule *locales.UnknownLocaleError
	require.True(t, errors.As(err, &ule))
	require.Equal(t, []string{"xx_YY", "zz_ZZ"}, ule.Codes)
	require.Contains(t, err.Error(), "zz_ZZ")
}

func TestNewOnlyBlankCodes(t *testing.T) {
	_, err := locales.New(" ", "")
	require.ErrorIs(t, err, generator.ErrNoProviders)
}

func TestBirthDateWithinAgeBounds(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	ps, err := locales.New("en_US")
	require.NoError(t, err)
	p := ps[0].WithClock(func() time.Time { return now })
	r := generator.NewRand(7, 3)
	for i := 0; i < 500; i++ {
		d := p.BirthDate(r, 18, 80)
		require.False(t, d.After(time.Date(2006, 6, 15, 0, 0, 0, 0, time.UTC)), d)
		require.True(t, d.After(time.Date(1943, 6, 15, 0, 0, 0, 0, time.UTC)), d)
	}
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "French", locales.DisplayName("fr"))
	require.NotEqual(t, "pt_BR", locales.DisplayName("pt_BR"))
	require.Equal(t, "not a locale!", locales.DisplayName("not a locale!"))
}

func TestParseList(t *testing.T) {
	require.Equal(t, []string{"fr_FR", "es_ES"}, locales.ParseList(" fr_FR, ,es_ES,"))
	require.Nil(t, locales.ParseList(""))
}

func TestProvidersDriveGenerator(t *testing.T) {
	ps, err := locales.New("zh_CN", "ru_RU", "ar_EG")
	require.NoError(t, err)
	g, err := generator.New(generator.DefaultConfig(), generator.MediumNoise, locales.FieldProviders(ps), generator.NewRand(11, 0))
	require.NoError(t, err)
	rep := generator.Verify(g.GenerateBatch(200))
	require.True(t, rep.Accurate(), rep.Failures())
}
