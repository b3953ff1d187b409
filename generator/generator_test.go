package generator_test

import (
	"math/rand/v2"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"

	"yashubustudio/idgen/generator"
)

// stubProvider returns fixed values so layouts can be asserted exactly.
type stubProvider struct {
	surname, given, city string
	birth                time.Time
	tag                  language.Tag
}

func (p stubProvider) Surname(*rand.Rand) string   { return p.surname }
func (p stubProvider) GivenName(*rand.Rand) string { return p.given }
func (p stubProvider) City(*rand.Rand) string      { return p.city }
func (p stubProvider) BirthDate(*rand.Rand, int, int) time.Time {
	return p.birth
}
func (p stubProvider) Language() language.Tag { return p.tag }

var frenchStub = stubProvider{
	surname: "dupont",
	given:   "élodie",
	city:    "Ville de Saint-Denis",
	birth:   time.Date(1990, time.March, 7, 0, 0, 0, 0, time.UTC),
	tag:     language.French,
}

// wideStub exercises multi-byte runes in every provider value.
var wideStub = stubProvider{
	surname: "欧阳",
	given:   "秀英",
	city:    "北京",
	birth:   time.Date(1975, time.December, 31, 0, 0, 0, 0, time.UTC),
}

type GeneratorSuite struct {
	suite.Suite
	cfg generator.Config
}

func (s *GeneratorSuite) SetupTest() {
	s.cfg = generator.DefaultConfig()
}

func (s *GeneratorSuite) newGenerator(level generator.NoiseLevel, seed uint64, providers ...generator.FieldProvider) *generator.Generator {
	if len(providers) == 0 {
		providers = []generator.FieldProvider{frenchStub}
	}
	g, err := generator.New(s.cfg, level, providers, generator.NewRand(seed, 0))
	s.Require().NoError(err)
	return g
}

func labels(sample generator.Sample) []string {
	out := make([]string, len(sample.Entities))
	for i, e := range sample.Entities {
		out[i] = e.Label
	}
	return out
}

func indexOf(ls []string, label string) int {
	for i, l := range ls {
		if l == label {
			return i
		}
	}
	return -1
}

func (s *GeneratorSuite) requireValidSpans(sample generator.Sample) {
	runes := []rune(sample.Text)
	prevEnd := 0
	for _, e := range sample.Entities {
		s.Require().GreaterOrEqual(e.Start, prevEnd, "entities are ordered and disjoint: %q", sample.Text)
		s.Require().LessOrEqual(e.End, len(runes))
		s.Require().Equal(e.Value, string(runes[e.Start:e.End]), "span of %s in %q", e.Label, sample.Text)
		prevEnd = e.End
	}
}

func (s *GeneratorSuite) TestSpansUnderEveryPreset() {
	extreme := generator.NoiseLevel{Enabled: true, Global: 1, Word: 1, Spacing: 1, CharSub: 0.5, CharExtra: 0.3, CharMissing: 0.2, CharDouble: 0.3}
	levels := map[string]generator.NoiseLevel{"extreme": extreme}
	for _, name := range append(s.cfg.PresetNames(), generator.NoiseLevelConfig) {
		p, err := s.cfg.ResolveNoise(name)
		s.Require().NoError(err)
		levels[name] = p.Level
	}
	for name, level := range levels {
		g := s.newGenerator(level, 42, frenchStub, wideStub)
		for i := 0; i < 300; i++ {
			s.requireValidSpans(g.GenerateSimple())
			s.requireValidSpans(g.GenerateBilingual())
		}
		rep := generator.Verify(g.GenerateBatch(200))
		s.Require().True(rep.Accurate(), "preset %s: %v", name, rep.Failures())
	}
}

func (s *GeneratorSuite) TestSimpleUnconditionalLabels() {
	g := s.newGenerator(generator.CleanNoise, 7)
	required := []string{
		generator.LabelCountry, generator.LabelDocType, generator.LabelDNI, generator.LabelNationality,
		generator.LabelName, generator.LabelGender, generator.LabelBirthDate,
	}
	for i := 0; i < 200; i++ {
		sample := g.GenerateSimple()
		ls := labels(sample)
		for _, l := range required {
			s.Require().Contains(ls, l)
		}
		s.Require().Equal([]string{generator.LabelCountry, generator.LabelDocType, generator.LabelDNI, generator.LabelNationality}, ls[:4])
		for _, e := range sample.Entities {
			switch e.Label {
			case generator.LabelName:
				s.Require().Equal("DUPONT", e.Value)
			case generator.LabelNationality:
				s.Require().Equal("Française", e.Value)
			case generator.LabelBirthDate:
				s.Require().Contains([]string{"07.03.1990", "07 03 1990"}, e.Value)
			case generator.LabelBirthPlace:
				s.Require().Equal("DE SAINT-DENIS", e.Value)
			case generator.LabelGender:
				s.Require().Contains([]string{"M", "F"}, e.Value)
			}
		}
		s.Require().Contains(sample.Text, "Nom : DUPONT")
		s.Require().True(strings.HasPrefix(sample.Text, sample.Entities[0].Value+" CARTE NATIONALE D'IDENTITÉ N° : "))
	}
}

func (s *GeneratorSuite) TestGivenNamesAreNumberedInOrder() {
	g := s.newGenerator(generator.CleanNoise, 11)
	maxSimple, maxBilingual := 0, 0
	check := func(sample generator.Sample) int {
		n := 0
		for _, e := range sample.Entities {
			if strings.HasPrefix(e.Label, "Surname_") {
				n++
				s.Require().Equal(generator.GivenNameLabel(n), e.Label)
				s.Require().Equal("ÉLODIE", e.Value)
			}
		}
		s.Require().GreaterOrEqual(n, 1)
		return n
	}
	for i := 0; i < 300; i++ {
		maxSimple = max(maxSimple, check(g.GenerateSimple()))
		maxBilingual = max(maxBilingual, check(g.GenerateBilingual()))
	}
	s.Require().Equal(3, maxSimple)
	s.Require().Equal(2, maxBilingual)
}

func (s *GeneratorSuite) TestThreeGivenNamesAreCommaSeparated() {
	g := s.newGenerator(generator.CleanNoise, 13)
	for i := 0; i < 300; i++ {
		sample := g.GenerateSimple()
		if indexOf(labels(sample), generator.GivenNameLabel(3)) < 0 {
			continue
		}
		s.Require().Contains(sample.Text, ": ÉLODIE, ÉLODIE, ÉLODIE")
		return
	}
	s.Fail("no sample with three given names")
}

func (s *GeneratorSuite) TestBilingualOrder() {
	g := s.newGenerator(generator.CleanNoise, 5)
	for i := 0; i < 200; i++ {
		sample := g.GenerateBilingual()
		ls := labels(sample)
		s.Require().Equal([]string{generator.LabelCountry, generator.LabelDocType, generator.LabelName, generator.GivenNameLabel(1)}, ls[:4])
		gender := indexOf(ls, generator.LabelGender)
		nat := indexOf(ls, generator.LabelNationality)
		birth := indexOf(ls, generator.LabelBirthDate)
		dni := indexOf(ls, generator.LabelDNI)
		s.Require().True(gender < nat && nat < birth && birth < dni, "%v", ls)
		s.Require().Contains(sample.Text, "DATE DE NAISS. / Date of birth ")
		s.Require().Contains(sample.Text, " N° DU DOCUMENT / Document No ")
		for _, e := range sample.Entities {
			switch e.Label {
			case generator.LabelNationality:
				s.Require().Len(e.Value, 3)
			case generator.LabelSupportNumber:
				n, err := strconv.Atoi(e.Value)
				s.Require().NoError(err)
				s.Require().True(n >= 100000 && n <= 999999)
			case generator.LabelValidityDate:
				s.Require().Regexp(`^\d{2} \d{2} \d{4}$`, e.Value)
				year, _ := strconv.Atoi(e.Value[6:])
				s.Require().True(year >= 1980+18+15 && year <= 1980+50+15, e.Value)
			}
		}
	}
}

func (s *GeneratorSuite) TestOptionalFieldsFollowProbabilities() {
	s.cfg.Fields.Simple[generator.KeyBirthPlace] = 0
	s.cfg.Fields.Simple[generator.KeyHeight] = 1
	s.cfg.Fields.Bilingual[generator.KeySupportNumber] = 1
	s.cfg.Fields.Bilingual[generator.KeyExpiryDate] = 0
	g := s.newGenerator(generator.CleanNoise, 17)
	height := regexp.MustCompile(`^[12] ?\d{2}[mM]$`)
	for i := 0; i < 100; i++ {
		simple := labels(g.GenerateSimple())
		s.Require().Equal(-1, indexOf(simple, generator.LabelBirthPlace))
		s.Require().NotEqual(-1, indexOf(simple, generator.LabelHeight))
		bi := g.GenerateBilingual()
		s.Require().Equal(generator.LabelSupportNumber, bi.Entities[len(bi.Entities)-1].Label)
		s.Require().Equal(-1, indexOf(labels(bi), generator.LabelValidityDate))
	}
	for _, e := range g.GenerateSimple().Entities {
		if e.Label == generator.LabelHeight {
			s.Require().Regexp(height, e.Value)
		}
	}
}

func (s *GeneratorSuite) TestSameSeedSameBatch() {
	a := s.newGenerator(generator.MediumNoise, 99).GenerateBatch(50)
	b := s.newGenerator(generator.MediumNoise, 99).GenerateBatch(50)
	s.Require().Equal(a, b)
	c := s.newGenerator(generator.MediumNoise, 100).GenerateBatch(50)
	s.Require().NotEqual(a, c)
}

func (s *GeneratorSuite) TestSimpleShare() {
	s.cfg.SimpleShare = 1
	g := s.newGenerator(generator.CleanNoise, 3)
	for _, sample := range g.GenerateBatch(50) {
		s.Require().Equal(generator.LabelDNI, sample.Entities[2].Label)
	}
	s.cfg.SimpleShare = 0
	g = s.newGenerator(generator.CleanNoise, 3)
	for _, sample := range g.GenerateBatch(50) {
		s.Require().Equal(generator.LabelName, sample.Entities[2].Label)
	}
}

func (s *GeneratorSuite) TestGenerateFormat() {
	g := s.newGenerator(generator.CleanNoise, 21)
	s.Require().Equal(generator.LabelDNI, g.Generate(generator.FormatSimple).Entities[2].Label)
	s.Require().Equal(generator.LabelName, g.Generate(generator.FormatBilingual).Entities[2].Label)
	s.Require().NotEmpty(g.Generate("").Entities)
}

func (s *GeneratorSuite) TestWithRandSharesConfiguration() {
	g := s.newGenerator(generator.MediumNoise, 1)
	d := g.WithRand(generator.NewRand(1, 0))
	s.Require().Same(g.Noise(), d.Noise())
	s.Require().Equal(s.newGenerator(generator.MediumNoise, 1).GenerateOne(), d.GenerateOne())
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func TestNewRequiresProviders(t *testing.T) {
	_, err := generator.New(generator.DefaultConfig(), generator.MediumNoise, nil, nil)
	require.ErrorIs(t, err, generator.ErrNoProviders)

	g, err := generator.New(generator.DefaultConfig(), generator.MediumNoise, []generator.FieldProvider{frenchStub}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, g.GenerateOne().Text)
}

func TestIDNumberShapes(t *testing.T) {
	g, err := generator.New(generator.DefaultConfig(), generator.CleanNoise, []generator.FieldProvider{frenchStub}, generator.NewRand(4, 0))
	require.NoError(t, err)
	shapes := []*regexp.Regexp{
		regexp.MustCompile(`^\d{12}$`),
		regexp.MustCompile(`^\d{2}(0[1-9]|1[0-2])(0[1-9]|1\d|2[0-8])T\d{5}$`),
		regexp.MustCompile(`^[A-Z]\d[A-Z]{3}\d{2}[A-Z]\d$`),
	}
	seen := make([]bool, len(shapes))
	for i := 0; i < 300; i++ {
		id := g.IDNumber()
		matched := false
		for j, re := range shapes {
			if re.MatchString(id) {
				seen[j] = true
				matched = true
			}
		}
		require.True(t, matched, id)
	}
	require.Equal(t, []bool{true, true, true}, seen)
}

func TestCityAndNameCleanup(t *testing.T) {
	require.Equal(t, "ISTANBUL", generator.UpperName(language.English, "istanbul"))
	require.Equal(t, "İSTANBUL", generator.UpperName(language.Turkish, "istanbul"))
	require.Equal(t, "FRANCISCO", generator.CleanCity(language.Spanish, "San Francisco"))
	require.Equal(t, "LAKE", generator.CleanCity(language.English, "Lake City"))
	require.Equal(t, "CHARLE-MÉZIÈRES", generator.CleanCity(language.French, "Charleville-Mézières"))
	long := generator.CleanCity(language.Und, "Llanfairpwllgwyngyllgogerychwyrndrobwll")
	require.Equal(t, 20, generator.RuneLen(long))
	require.Equal(t, "a b", generator.NormalizeText(" a\t\n b "))
}

func TestStatsLabelsSorted(t *testing.T) {
	st := generator.Stats{Labels: map[string]int{"b": 1, "a": 2, "Name": 1}}
	got := st.SortedLabels()
	require.True(t, sort.StringsAreSorted(got))
	require.Len(t, got, 3)
	require.Zero(t, generator.Stats{}.AveragePerSample())
}
