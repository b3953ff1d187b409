package generator

const (
	bilingualDocType = "CARTE NATIONALE D'IDENTITÉ / IDENTITY CARD"

	signatureRandom2Letter = "random_2letter"
	signatureRandomDigits  = "random_digits"
)

var nationalityCodes = []string{"FRA", "ESP", "PRT", "ITA", "BEL", "MAR", "TUN", "DZA"}

var twoLetterFragments = []string{"AB ", "BA ", "CA ", "DA ", "KA ", "RA ", "SA "}

// GenerateBilingual builds the French/English layout. Gender, nationality
// and birth date labels print as one block and their values follow in the
// same order.
func (g *Generator) GenerateBilingual() Sample {
	var b sampleBuilder

	b.entity(LabelCountry, g.ApplyNoise(choice(g.r, headerVariants), true))
	b.literal(" FR ")
	b.entity(LabelDocType, g.ApplyNoise(bilingualDocType, true))

	b.literal(g.FieldTypo(" NOM/Sumame "))
	b.entity(LabelName, g.Surname())

	b.literal(g.FieldTypo(" Prénoms / Given names "))
	b.joined(g.GivenNames(between(g.r, 1, 2)), ", ", GivenNameLabel)

	b.literal(g.FieldTypo(" SEXE /Sex "))
	b.literal(g.FieldTypo(" NATIONALITÉ / Nationality "))
	b.literal("DATE DE NAISS. / Date of birth ")

	b.entity(LabelGender, choice(g.r, genders))
	b.literal(" ")
	b.entity(LabelNationality, choice(g.r, nationalityCodes))
	b.literal(" ")
	b.entity(LabelBirthDate, g.BirthDate())

	if g.include(g.fields.Bilingual, KeyBirthPlace) {
		b.literal(" LIEU DE NAISSANCE / Place of birth ")
		b.entity(LabelBirthPlace, g.City())
	}
	if g.include(g.fields.Bilingual, KeyAltNameMarried) {
		b.literal(g.FieldTypo(" NOM D'USAGE / Alternate name ép. "))
		b.entity(LabelAltName, g.Surname())
	}

	b.literal(" N° DU DOCUMENT / Document No ")
	b.entity(LabelDNI, g.IDNumber())

	if g.include(g.fields.Bilingual, KeyExpiryDate) {
		b.literal(" DATE D'EXPIR. / Expiry date ")
		b.entity(LabelValidityDate, g.ExpiryDate(assumedBirthYear))
	}
	if g.include(g.fields.Bilingual, KeySupportNumber) {
		b.literal(" ")
		b.literal(g.signatureFragment(g.fields.BilingualSignature.Choose(g.r)))
		b.entity(LabelSupportNumber, g.SupportNumber())
	}
	return b.sample()
}

// signatureFragment expands a bilingual signature table key into the text
// printed before the support number.
func (g *Generator) signatureFragment(key string) string {
	switch key {
	case signatureNone, "":
		return ""
	case signatureRandom2Letter:
		return choice(g.r, twoLetterFragments)
	case signatureRandomDigits:
		return g.randomFrom(digits, between(g.r, 2, 3)) + " "
	default:
		return key
	}
}
