// Package volume computes per-person message-volume basics (spec §4.3):
// counts, lengths, emoji/question/media/link tallies, reaction give/receive
// counts, top words and n-grams, and Guiraud's vocabulary richness.
package volume

import (
	"math"
	"sort"
	"strings"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

// Excerpt records a single message's content alongside its length and when
// it was sent, used for the longest/shortest message facets.
type Excerpt struct {
	Content   string
	Words     int
	Timestamp int64
}

// Term is one (word-or-phrase, count) pair in a ranked list.
type Term struct {
	Text  string
	Count int
}

// Person holds every §4.3 facet for one participant.
type Person struct {
	MessageCount int
	WordCount    int
	CharCount    int

	Longest  Excerpt
	Shortest Excerpt

	EmojiCount    int
	QuestionCount int
	MediaCount    int
	LinkCount     int

	ReactionsGiven    int
	ReactionsReceived int

	AvgWordsPerMessage float64
	AvgCharsPerMessage float64

	UniqueWordCount     int
	VocabularyRichness  float64
	TopWords            []Term
	TopBigrams          []Term
	TopTrigrams         []Term
}

// Result is the §4.3 output: one Person per participant plus the overall
// total (which must equal metadata.TotalMessages, per §8).
type Result struct {
	PerPerson     *chatmodel.OrderedMap[Person]
	TotalMessages int
}

// Compute derives volume basics for every participant in conv.
func Compute(conv *chatmodel.ParsedConversation) Result {
	acc := map[string]*accumulator{}
	order := []string{}
	ensure := func(name string) *accumulator {
		a, ok := acc[name]
		if !ok {
			a = &accumulator{wordFreq: map[string]int{}, bigramFreq: map[string]int{}, trigramFreq: map[string]int{}, vocab: map[string]bool{}}
			acc[name] = a
			order = append(order, name)
		}
		return a
	}

	total := 0
	for _, m := range conv.Messages {
		if m.IsSystem() {
			continue
		}
		total++
		a := ensure(m.Sender)
		a.observe(m)

		for _, r := range m.Reactions {
			if r.Actor != "" {
				ensure(r.Actor).reactionsGiven++
			}
		}
		a.reactionsReceived += len(m.Reactions)
	}

	result := chatmodel.NewOrderedMap[Person]()
	for _, name := range order {
		result.Set(name, acc[name].finalize())
	}

	return Result{PerPerson: result, TotalMessages: total}
}

type accumulator struct {
	messageCount int
	wordCount    int
	charCount    int

	longest  Excerpt
	shortest Excerpt
	haveAny  bool

	emojiCount    int
	questionCount int
	mediaCount    int
	linkCount     int

	reactionsGiven    int
	reactionsReceived int

	wordFreq    map[string]int
	bigramFreq  map[string]int
	trigramFreq map[string]int
	vocab       map[string]bool
}

func (a *accumulator) observe(m chatmodel.UnifiedMessage) {
	a.messageCount++
	words := textproc.Tokenize(m.Content)
	wordCount := len(words)
	charCount := len([]rune(m.Content))

	a.wordCount += wordCount
	a.charCount += charCount

	ex := Excerpt{Content: m.Content, Words: wordCount, Timestamp: m.Timestamp}
	if !a.haveAny || wordCount > a.longest.Words {
		a.longest = ex
	}
	if !a.haveAny || wordCount < a.shortest.Words {
		a.shortest = ex
	}
	a.haveAny = true

	a.emojiCount += textproc.CountEmoji(m.Content)
	if strings.Contains(m.Content, "?") {
		a.questionCount++
	}
	if m.HasMedia || m.Type == chatmodel.TypeMedia {
		a.mediaCount++
	}
	if m.HasLink || m.Type == chatmodel.TypeLink {
		a.linkCount++
	}

	stop := lexicon.Default().Stopwords
	for _, w := range words {
		a.vocab[w] = true
		if !stop.Contains(w) {
			a.wordFreq[w]++
		}
	}
	for i := 0; i+1 < len(words); i++ {
		if stop.Contains(words[i]) || stop.Contains(words[i+1]) {
			continue
		}
		a.bigramFreq[words[i]+" "+words[i+1]]++
	}
	for i := 0; i+2 < len(words); i++ {
		if stop.Contains(words[i]) || stop.Contains(words[i+2]) {
			continue
		}
		a.trigramFreq[words[i]+" "+words[i+1]+" "+words[i+2]]++
	}
}

func (a *accumulator) finalize() Person {
	p := Person{
		MessageCount:      a.messageCount,
		WordCount:         a.wordCount,
		CharCount:         a.charCount,
		Longest:           a.longest,
		Shortest:          a.shortest,
		EmojiCount:        a.emojiCount,
		QuestionCount:     a.questionCount,
		MediaCount:        a.mediaCount,
		LinkCount:         a.linkCount,
		ReactionsGiven:    a.reactionsGiven,
		ReactionsReceived: a.reactionsReceived,
		UniqueWordCount:   len(a.vocab),
	}
	if a.messageCount > 0 {
		p.AvgWordsPerMessage = float64(a.wordCount) / float64(a.messageCount)
		p.AvgCharsPerMessage = float64(a.charCount) / float64(a.messageCount)
	}
	if a.wordCount > 0 {
		// Guiraud's R: unique / sqrt(total), length-stable unlike plain TTR.
		p.VocabularyRichness = float64(len(a.vocab)) / math.Sqrt(float64(a.wordCount))
	}
	p.TopWords = topN(a.wordFreq, 20)
	p.TopBigrams = topN(a.bigramFreq, 10)
	p.TopTrigrams = topN(a.trigramFreq, 10)
	return p
}

func topN(freq map[string]int, n int) []Term {
	terms := make([]Term, 0, len(freq))
	for text, count := range freq {
		terms = append(terms, Term{Text: text, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Text < terms[j].Text
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
