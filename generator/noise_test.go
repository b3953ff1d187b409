package generator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"yashubustudio/idgen/generator"
)

var noiseInputs = []string{
	"RÉPUBLIQUE FRANÇAISE",
	"CARTE NATIONALE D'IDENTITÉ",
	" N° : ",
	"Signature du titulaire",
	"王 伟",
	"",
}

func TestCleanNoiseIsIdentity(t *testing.T) {
	nc := generator.DefaultConfig().NoiseConfig(generator.CleanNoise)
	r := generator.NewRand(1, 1)
	for i := 0; i < 200; i++ {
		for _, s := range noiseInputs {
			require.Equal(t, s, nc.Apply(r, s, true))
		}
	}
}

func TestNoiseNotAllowedIsIdentity(t *testing.T) {
	nc := &generator.NoiseConfig{
		Level:  generator.NoiseLevel{Enabled: true, Global: 1, Word: 1, Spacing: 1, CharSub: 1, CharMissing: 1},
		Tables: generator.DefaultConfig().Tables,
	}
	r := generator.NewRand(1, 2)
	for _, s := range noiseInputs {
		require.Equal(t, s, nc.Apply(r, s, false))
	}
}

func charNoise(level generator.NoiseLevel) *generator.NoiseConfig {
	level.Enabled = true
	level.Global = 1
	return &generator.NoiseConfig{
		Level: level,
		Tables: generator.Tables{
			Chars:   map[rune]string{'O': "0", 'm': "rn"},
			Fillers: []string{"."},
		},
	}
}

func TestCharacterSubstitution(t *testing.T) {
	nc := charNoise(generator.NoiseLevel{CharSub: 1})
	r := generator.NewRand(2, 0)
	require.Equal(t, "00-0 rnA", nc.Apply(r, "OO-O mA", true))
}

func TestCharacterMissingDropsEverything(t *testing.T) {
	nc := charNoise(generator.NoiseLevel{CharMissing: 1})
	require.Equal(t, "", nc.Apply(generator.NewRand(2, 1), "DUPONT", true))
}

func TestCharacterDoubleRepeatsEmittedString(t *testing.T) {
	nc := charNoise(generator.NoiseLevel{CharSub: 1, CharDouble: 1})
	require.Equal(t, "00AArnrn", nc.ApplyCharacters(generator.NewRand(2, 2), "OAm"))
}

func TestCharacterExtraInsertsFiller(t *testing.T) {
	nc := charNoise(generator.NoiseLevel{CharExtra: 1})
	require.Equal(t, "A.B.", nc.Apply(generator.NewRand(2, 3), "AB", true))

	nc.Tables.Fillers = nil
	require.Equal(t, "AB", nc.ApplyCharacters(generator.NewRand(2, 3), "AB"))
}

func TestWordAndSpacingReplacement(t *testing.T) {
	nc := &generator.NoiseConfig{
		Level: generator.NoiseLevel{Enabled: true, Global: 1, Word: 1, Spacing: 1},
		Tables: generator.Tables{
			Words:   generator.VariantTable{{Key: "Nom", Variants: []string{"N0m"}}, {Key: "empty", Variants: nil}},
			Spacing: generator.VariantTable{{Key: " : ", Variants: []string{": "}}},
		},
	}
	require.Equal(t, "N0m: X", nc.Apply(generator.NewRand(5, 0), "Nom : X", true))
	require.Equal(t, "empty", nc.Apply(generator.NewRand(5, 0), "empty", true))
}

func TestFieldTypoExactMatchWins(t *testing.T) {
	nc := &generator.NoiseConfig{
		Level: generator.NoiseLevel{Enabled: true},
		Tables: generator.Tables{FieldTypos: generator.VariantTable{
			{Key: "Sexe", Variants: []string{"S3xe"}},
			{Key: " Sexe : ", Variants: []string{"EXACT"}},
		}},
	}
	r := generator.NewRand(4, 4)
	require.Equal(t, "EXACT", nc.FieldTypo(r, " Sexe : "))
	require.Equal(t, "Le S3xe", nc.FieldTypo(r, "Le Sexe"))
	require.Equal(t, "Taille", nc.FieldTypo(r, "Taille"), "global gate closed")

	nc.Level = generator.CleanNoise
	require.Equal(t, " Sexe : ", nc.FieldTypo(r, " Sexe : "))
}

func TestCleanSamplesCarryNoCorruption(t *testing.T) {
	cfg := generator.DefaultConfig()
	g, err := generator.New(cfg, generator.CleanNoise, []generator.FieldProvider{frenchStub}, generator.NewRand(6, 0))
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		simple := g.GenerateSimple().Text
		require.Contains(t, simple, " Prénom(s): ")
		require.Contains(t, simple, " Sexe : ")
		require.Contains(t, simple, " Nationalité Française")
		bilingual := g.GenerateBilingual().Text
		require.Contains(t, bilingual, " NOM/Sumame DUPONT")
		require.Contains(t, bilingual, " SEXE /Sex  NATIONALITÉ / Nationality DATE DE NAISS.")
		for _, entry := range cfg.Tables.Words {
			for _, v := range entry.Variants {
				if v != entry.Key && !strings.Contains(entry.Key, v) {
					require.NotContains(t, simple, v)
					require.NotContains(t, bilingual, v)
				}
			}
		}
	}
}

func TestHeavyNoiseChangesSomething(t *testing.T) {
	cfg := generator.DefaultConfig()
	preset, err := cfg.ResolveNoise("heavy")
	require.NoError(t, err)
	nc := cfg.NoiseConfig(preset.Level)
	r := generator.NewRand(8, 8)
	changed := 0
	for i := 0; i < 500; i++ {
		if out := nc.Apply(r, "RÉPUBLIQUE FRANÇAISE", true); out != "RÉPUBLIQUE FRANÇAISE" {
			changed++
			require.False(t, strings.Contains(out, "\x00"))
		}
	}
	require.Greater(t, changed, 30)
}
