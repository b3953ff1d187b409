package generator_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"yashubustudio/idgen/generator"
)

func TestEntityArrayForm(t *testing.T) {
	e := generator.Entity{Start: 4, End: 10, Label: generator.LabelName, Value: "DUPONT"}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	require.JSONEq(t, `[4, 10, "Name", "DUPONT"]`, string(data))

	var back generator.Entity
	require.NoError(t, json.Unmarshal([]byte(`[0, 2, "Surname_1", "秀英"]`), &back))
	require.Equal(t, generator.Entity{Start: 0, End: 2, Label: "Surname_1", Value: "秀英"}, back)

	require.Error(t, json.Unmarshal([]byte(`[0, 2, "Name"]`), &back))
	require.Error(t, json.Unmarshal([]byte(`{"start": 0}`), &back))
	require.Error(t, json.Unmarshal([]byte(`["0", 2, "Name", "x"]`), &back))
}

func TestEncodeSamplesKeepsTextLiteral(t *testing.T) {
	samples := []generator.Sample{
		{Text: "RÉPUBLIQUE FRANÇAISE <D'IDENTITÉ>", Entities: []generator.Entity{{Start: 0, End: 10, Label: "Country", Value: "RÉPUBLIQUE"}}},
		{Text: "empty", Entities: []generator.Entity{}},
	}
	var buf bytes.Buffer
	require.NoError(t, generator.EncodeSamples(&buf, samples))
	out := buf.String()
	require.Contains(t, out, "RÉPUBLIQUE FRANÇAISE <D'IDENTITÉ>")
	require.Contains(t, out, `"entities": []`)
	require.True(t, strings.HasPrefix(out, "[\n  {"))

	back, err := generator.DecodeSamples(&buf)
	require.NoError(t, err)
	require.Equal(t, samples, back)

	buf.Reset()
	require.NoError(t, generator.EncodeSamples(&buf, nil))
	require.Equal(t, "[]\n", buf.String())
}

func TestWriteAndReadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "data.json")
	g, err := generator.New(generator.DefaultConfig(), generator.MediumNoise, []generator.FieldProvider{frenchStub, wideStub}, generator.NewRand(77, 0))
	require.NoError(t, err)
	samples := g.GenerateBatch(25)

	require.NoError(t, generator.WriteSamples(path, samples))
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temporary file is renamed away")

	back, err := generator.ReadSamples(path)
	require.NoError(t, err)
	require.Equal(t, samples, back)
	require.True(t, generator.Verify(back).Accurate())

	_, err = generator.ReadSamples(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestWriteTaggedJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bio.jsonl")
	tagged := []generator.TokenSample{
		{Tokens: []string{"Nom", ":", "DUPONT"}, Tags: []string{"O", "O", "B-Name"}},
		{Tokens: []string{"王"}, Tags: []string{"B-Name"}},
	}
	require.NoError(t, generator.WriteTagged(path, tagged))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.JSONEq(t, `{"tokens":["王"],"tags":["B-Name"]}`, lines[1])
}
