package lexicon

import (
	"bufio"
	_ "embed"
	"strings"
)

//go:embed data/stopwords_en.txt
var stopwordsEN string

//go:embed data/stopwords_pl.txt
var stopwordsPL string

//go:embed data/lsm_articles.txt
var lsmArticles string

//go:embed data/lsm_prepositions.txt
var lsmPrepositions string

//go:embed data/lsm_auxiliary_verbs.txt
var lsmAuxiliaryVerbs string

//go:embed data/lsm_conjunctions.txt
var lsmConjunctions string

//go:embed data/lsm_negations.txt
var lsmNegations string

//go:embed data/lsm_quantifiers.txt
var lsmQuantifiers string

//go:embed data/lsm_personal_pronouns.txt
var lsmPersonalPronouns string

//go:embed data/lsm_impersonal_pronouns.txt
var lsmImpersonalPronouns string

//go:embed data/lsm_adverbs.txt
var lsmAdverbs string

//go:embed data/emotion_positive.txt
var emotionPositive string

//go:embed data/emotion_negative.txt
var emotionNegative string

//go:embed data/demand_markers.txt
var demandMarkers string

//go:embed data/self_repair_phrases.txt
var selfRepairPhrases string

//go:embed data/other_repair_phrases.txt
var otherRepairPhrases string

//go:embed data/temporal_past.txt
var temporalPast string

//go:embed data/temporal_present.txt
var temporalPresent string

//go:embed data/temporal_future.txt
var temporalFuture string

//go:embed data/differentiation_phrases.txt
var differentiationPhrases string

//go:embed data/integration_phrases.txt
var integrationPhrases string

//go:embed data/pet_names.txt
var petNames string

//go:embed data/disclosure_openers.txt
var disclosureOpeners string

//go:embed data/dismissal_tokens.txt
var dismissalTokens string

//go:embed data/acknowledgement_tokens.txt
var acknowledgementTokens string

//go:embed data/question_words.txt
var questionWords string

//go:embed data/partner_reference.txt
var partnerReference string

//go:embed data/self_reference.txt
var selfReference string

//go:embed data/strong_assertions.txt
var strongAssertions string

//go:embed data/affectionate_phrases.txt
var affectionatePhrases string

//go:embed data/apology_tokens.txt
var apologyTokens string

//go:embed data/whatsapp_system_phrases.txt
var whatsappSystemPhrases string

//go:embed data/whatsapp_media_phrases.txt
var whatsappMediaPhrases string

// LSMCategory names one of the nine function-word categories scored by
// Language Style Matching (§4.7).
type LSMCategory string

const (
	LSMArticles           LSMCategory = "articles"
	LSMPrepositions       LSMCategory = "prepositions"
	LSMAuxiliaryVerbs     LSMCategory = "auxiliary_verbs"
	LSMConjunctions       LSMCategory = "conjunctions"
	LSMNegations          LSMCategory = "negations"
	LSMQuantifiers        LSMCategory = "quantifiers"
	LSMPersonalPronouns   LSMCategory = "personal_pronouns"
	LSMImpersonalPronouns LSMCategory = "impersonal_pronouns"
	LSMAdverbs            LSMCategory = "adverbs"
)

// LSMCategories lists the nine categories in the fixed order §4.7 reports
// them, so per-category output is reproducible across runs.
var LSMCategories = []LSMCategory{
	LSMArticles, LSMPrepositions, LSMAuxiliaryVerbs, LSMConjunctions,
	LSMNegations, LSMQuantifiers, LSMPersonalPronouns, LSMImpersonalPronouns,
	LSMAdverbs,
}

// Bundle holds every lexicon Set used by the metric modules, loaded once at
// startup from the embedded data files.
type Bundle struct {
	StopwordsEN Set
	StopwordsPL Set
	Stopwords   Set // union, the common case for tokenizer-adjacent filtering

	LSM map[LSMCategory]Set

	EmotionPositive Set
	EmotionNegative Set
	Emotional       Set // union, used for "emotional-word hit" counting

	DemandMarkers        Set
	SelfRepairPhrases    Set
	OtherRepairPhrases   Set
	TemporalPast         Set
	TemporalPresent      Set
	TemporalFuture       Set
	DifferentiationPhrases Set
	IntegrationPhrases   Set
	PetNames             Set
	DisclosureOpeners    Set
	DismissalTokens      Set
	AcknowledgementTokens Set
	QuestionWords        Set
	PartnerReference     Set
	SelfReference        Set
	StrongAssertions     Set
	AffectionatePhrases  Set
	ApologyTokens        Set

	WhatsAppSystemPhrases []string
	WhatsAppMediaPhrases  []string
}

var bundle = buildBundle()

// Default returns the process-wide lexicon bundle, built once from the
// embedded word lists.
func Default() *Bundle { return &bundle }

func buildBundle() Bundle {
	b := Bundle{
		StopwordsEN: NewSet(splitLines(stopwordsEN)...),
		StopwordsPL: NewSet(splitLines(stopwordsPL)...),

		EmotionPositive: NewSet(splitLines(emotionPositive)...),
		EmotionNegative: NewSet(splitLines(emotionNegative)...),

		DemandMarkers:          NewSet(splitLines(demandMarkers)...),
		SelfRepairPhrases:      NewSet(splitLines(selfRepairPhrases)...),
		OtherRepairPhrases:     NewSet(splitLines(otherRepairPhrases)...),
		TemporalPast:           NewSet(splitLines(temporalPast)...),
		TemporalPresent:        NewSet(splitLines(temporalPresent)...),
		TemporalFuture:         NewSet(splitLines(temporalFuture)...),
		DifferentiationPhrases: NewSet(splitLines(differentiationPhrases)...),
		IntegrationPhrases:     NewSet(splitLines(integrationPhrases)...),
		PetNames:               NewSet(splitLines(petNames)...),
		DisclosureOpeners:      NewSet(splitLines(disclosureOpeners)...),
		DismissalTokens:        NewSet(splitLines(dismissalTokens)...),
		AcknowledgementTokens:  NewSet(splitLines(acknowledgementTokens)...),
		QuestionWords:          NewSet(splitLines(questionWords)...),
		PartnerReference:       NewSet(splitLines(partnerReference)...),
		SelfReference:          NewSet(splitLines(selfReference)...),
		StrongAssertions:       NewSet(splitLines(strongAssertions)...),
		AffectionatePhrases:    NewSet(splitLines(affectionatePhrases)...),
		ApologyTokens:          NewSet(splitLines(apologyTokens)...),

		WhatsAppSystemPhrases: splitLines(whatsappSystemPhrases),
		WhatsAppMediaPhrases:  splitLines(whatsappMediaPhrases),
	}

	allStop := append(append([]string{}, b.StopwordsEN.Words()...), b.StopwordsPL.Words()...)
	b.Stopwords = NewSet(allStop...)

	allEmotional := append(append([]string{}, b.EmotionPositive.Words()...), b.EmotionNegative.Words()...)
	b.Emotional = NewSet(allEmotional...)

	b.LSM = map[LSMCategory]Set{
		LSMArticles:          NewSet(splitLines(lsmArticles)...),
		LSMPrepositions:      NewSet(splitLines(lsmPrepositions)...),
		LSMAuxiliaryVerbs:    NewSet(splitLines(lsmAuxiliaryVerbs)...),
		LSMConjunctions:      NewSet(splitLines(lsmConjunctions)...),
		LSMNegations:         NewSet(splitLines(lsmNegations)...),
		LSMQuantifiers:       NewSet(splitLines(lsmQuantifiers)...),
		LSMPersonalPronouns:  NewSet(splitLines(lsmPersonalPronouns)...),
		LSMImpersonalPronouns: NewSet(splitLines(lsmImpersonalPronouns)...),
		LSMAdverbs:           NewSet(splitLines(lsmAdverbs)...),
	}

	return b
}

func splitLines(s string) []string {
	var out []string
	scanner := bufio.NewScanner(strings.NewReader(s))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, strings.ToLower(line))
	}
	return out
}
