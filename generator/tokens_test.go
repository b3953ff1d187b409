package generator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"yashubustudio/idgen/generator"
)

func TestWhitespaceEncoderRuneOffsets(t *testing.T) {
	toks, err := generator.WhitespaceEncoder{}.Encode("  Nom : 欧阳\tÉLODIE ")
	require.NoError(t, err)
	require.Equal(t, []generator.Token{
		{Text: "Nom", Start: 2, End: 5},
		{Text: ":", Start: 6, End: 7},
		{Text: "欧阳", Start: 8, End: 10},
		{Text: "ÉLODIE", Start: 11, End: 17},
	}, toks)

	toks, err = generator.WhitespaceEncoder{}.Encode("")
	require.NoError(t, err)
	require.Empty(t, toks)
}

func TestTagSampleBIO(t *testing.T) {
	s := generator.Sample{
		Text: "Nom : JEAN PIERRE Sexe : M",
		Entities: []generator.Entity{
			{Start: 6, End: 17, Label: generator.LabelName, Value: "JEAN PIERRE"},
			{Start: 25, End: 26, Label: generator.LabelGender, Value: "M"},
		},
	}
	got, err := generator.TagSample(generator.WhitespaceEncoder{}, s)
	require.NoError(t, err)
	require.Equal(t, []string{"Nom", ":", "JEAN", "PIERRE", "Sexe", ":", "M"}, got.Tokens)
	require.Equal(t, []string{"O", "O", "B-Name", "I-Name", "O", "O", "B-Gender"}, got.Tags)
}

func TestTagSamplesAlignWithGeneratedSpans(t *testing.T) {
	g, err := generator.New(generator.DefaultConfig(), generator.CleanNoise, []generator.FieldProvider{frenchStub}, generator.NewRand(10, 0))
	require.NoError(t, err)
	samples := g.GenerateBatch(50)
	tagged, err := generator.TagSamples(generator.WhitespaceEncoder{}, samples)
	require.NoError(t, err)
	require.Len(t, tagged, len(samples))
	for i, ts := range tagged {
		require.Len(t, ts.Tags, len(ts.Tokens))
		begins := 0
		for _, tag := range ts.Tags {
			if len(tag) > 2 && tag[:2] == "B-" {
				begins++
			}
		}
		require.Equal(t, len(samples[i].Entities), begins, samples[i].Text)
	}
}
