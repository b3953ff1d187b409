package generator

var headerVariants = []string{
	"RÉPUBLIQUE FRANÇAISE",
	"FRANÇAISE RÉPUBLIQUE",
	"RÉPUBLIQUEFRANÇAISE",
}

var socialStatusLabels = []string{
	"Epouse: ",
	"Veuve: ",
	"Nom d'usage: ",
}

var genders = []string{"M", "F"}

const (
	simpleDocType     = "CARTE NATIONALE D'IDENTITÉ"
	simpleNationality = "Française"
	signatureNone     = "none"
)

// GenerateSimple builds the single-language layout where every value
// directly follows its label.
func (g *Generator) GenerateSimple() Sample {
	var b sampleBuilder

	b.entity(LabelCountry, g.ApplyNoise(choice(g.r, headerVariants), true))
	b.literal(" ")
	b.entity(LabelDocType, g.ApplyNoise(simpleDocType, true))

	b.literal(g.ApplyNoise(" N° : ", true))
	b.entity(LabelDNI, g.IDNumber())

	b.literal(g.FieldTypo(" Nationalité "))
	b.entity(LabelNationality, simpleNationality)
	b.literal(" ")

	// names are drawn first so the initials code can be derived from them
	surname := g.Surname()
	givenNames := g.GivenNames(between(g.r, 1, 3))

	if g.include(g.fields.Simple, KeyTwoLetterCode) {
		b.literal(initials(surname, givenNames) + " ")
	}
	if g.include(g.fields.Simple, KeySignatureBeforeNom) {
		if frag := g.fields.SimpleSignature.Choose(g.r); frag != signatureNone {
			b.literal(frag)
		}
	}

	b.literal(g.ApplyNoise("Nom : ", true))
	b.entity(LabelName, surname)

	if g.include(g.fields.Simple, KeySocialStatus) {
		b.literal(" " + g.FieldTypo(choice(g.r, socialStatusLabels)))
		alt := g.Surname()
		if g.include(g.fields.Simple, KeyHyphenatedAltNames) {
			alt += "- " + g.Surname()
		}
		b.entity(LabelAltName, alt)
	}

	b.literal(" " + g.FieldTypo("Prénom(s)") + ": ")
	b.joined(givenNames, ", ", GivenNameLabel)

	b.literal(g.FieldTypo(" Sexe : "))
	b.entity(LabelGender, choice(g.r, genders))

	b.literal(" " + g.FieldTypo("Né(e)") + " le : ")
	b.entity(LabelBirthDate, g.BirthDate())

	if g.include(g.fields.Simple, KeyBirthPlace) {
		b.literal(" à ")
		b.entity(LabelBirthPlace, g.City())
	}
	if g.include(g.fields.Simple, KeyHeight) {
		b.literal(" " + g.ApplyNoise("Taille", true) + " : ")
		b.entity(LabelHeight, g.Height())
	}
	if g.include(g.fields.Simple, KeyOptionalSignature) {
		b.literal(" " + g.ApplyNoise("Signature du titulaire", true) + " :")
	}
	return b.sample()
}

// initials joins the first letters of the surname and first given name,
// using "A" for an empty value.
func initials(surname string, givenNames []string) string {
	first := func(s string) string {
		for _, r := range s {
			return string(r)
		}
		return "A"
	}
	given := "A"
	if len(givenNames) > 0 {
		given = first(givenNames[0])
	}
	return first(surname) + given
}
