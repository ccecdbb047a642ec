// Package similarity scores how textually close two documents are on a 0..1
// scale. The primary backend is TF-IDF cosine; token-set Jaccard overlap is
// the fallback whenever the primary backend errors.
package similarity

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/textproc"
)

// ErrEmptyVocabulary is returned by TFIDF when no term survives stopword removal.
var ErrEmptyVocabulary = errors.New("empty vocabulary; documents contain only stop words")

// Backend computes a similarity between two non-empty documents.
type Backend interface {
	Name() string
	Similarity(a, b string) (float64, error)
}

// Scorer runs the primary backend and falls back to Jaccard on error.
type Scorer struct {
	primary  Backend
	fallback Backend
	logger   *zap.Logger
}

// NewScorer returns a Scorer over primary. A nil primary means TF-IDF; a nil
// logger discards fallback notices.
func NewScorer(primary Backend, logger *zap.Logger) *Scorer {
	if primary == nil {
		primary = TFIDF{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{primary: primary, fallback: Jaccard{}, logger: logger}
}

// Score returns the similarity of a and b clamped to [0,1]. Either side being
// blank yields 0.
func (s *Scorer) Score(a, b string) float64 {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0
	}

	sim, err := s.primary.Similarity(a, b)
	if err != nil {
		s.logger.Debug("similarity backend failed, using token overlap",
			zap.String("backend", s.primary.Name()),
			zap.Error(err),
		)
		sim, err = s.fallback.Similarity(a, b)
		if err != nil {
			return 0
		}
	}

	return clamp01(sim)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Jaccard is |A∩B| / |A∪B| over tokenizer sets.
type Jaccard struct{}

func (Jaccard) Name() string { return "jaccard" }

func (Jaccard) Similarity(a, b string) (float64, error) {
	ta, tb := textproc.TokenSet(a), textproc.TokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, nil
	}

	inter := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	return float64(inter) / float64(max(1, union)), nil
}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TFIDF fits unigrams and bigrams over the two documents with smoothed idf
// ln((1+n)/(1+df))+1, l2-normalises both rows and returns their cosine.
type TFIDF struct {
	// MaxFeatures keeps only the most frequent terms across both documents
	// when positive.
	MaxFeatures int
}

func (TFIDF) Name() string { return "tfidf" }

func (t TFIDF) Similarity(a, b string) (float64, error) {
	docs := []map[string]float64{terms(a), terms(b)}

	df := make(map[string]int)
	total := make(map[string]float64)
	for _, doc := range docs {
		for term, n := range doc {
			df[term]++
			total[term] += n
		}
	}
	if len(df) == 0 {
		return 0, ErrEmptyVocabulary
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	if t.MaxFeatures > 0 && len(vocab) > t.MaxFeatures {
		sort.Slice(vocab, func(i, j int) bool {
			if total[vocab[i]] != total[vocab[j]] {
				return total[vocab[i]] > total[vocab[j]]
			}
			return vocab[i] < vocab[j]
		})
		vocab = vocab[:t.MaxFeatures]
	}

	n := float64(len(docs))
	vecs := make([][]float64, len(docs))
	for i, doc := range docs {
		vec := make([]float64, len(vocab))
		var norm float64
		for k, term := range vocab {
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			vec[k] = doc[term] * idf
			norm += vec[k] * vec[k]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range vec {
				vec[k] /= norm
			}
		}
		vecs[i] = vec
	}

	var dot float64
	for k := range vocab {
		dot += vecs[0][k] * vecs[1][k]
	}
	return dot, nil
}

// terms counts unigrams and bigrams of the stopword-filtered word stream.
func terms(text string) map[string]float64 {
	var words []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if _, stop := englishStopwords[w]; stop {
			continue
		}
		words = append(words, w)
	}

	out := make(map[string]float64, len(words)*2)
	for i, w := range words {
		out[w]++
		if i > 0 {
			out[words[i-1]+" "+w]++
		}
	}
	return out
}
