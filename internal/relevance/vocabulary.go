// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Vocabulary is an immutable set of lowercase relevance terms.
type Vocabulary struct {
	terms []string
}

// NewVocabulary lowercases and trims terms, dropping empty entries and
// duplicates. The result is sorted so that iteration order is stable.
func NewVocabulary(terms []string) Vocabulary {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return Vocabulary{terms: out}
}

// Terms returns a copy of the vocabulary terms in sorted order.
func (v Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Len returns the number of terms.
func (v Vocabulary) Len() int {
	return len(v.terms)
}

// vocabularyFile is the mapping form of a vocabulary file.
type vocabularyFile struct {
	Terms []string `yaml:"terms"`
}

// LoadVocabulary reads a YAML vocabulary file. The file may be either a
// plain sequence of terms or a mapping with a "terms" sequence.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Vocabulary{}, fmt.Errorf("parsing vocabulary %s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return NewVocabulary(nil), nil
	}

	var terms []string
	switch root := node.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&terms); err != nil {
			return Vocabulary{}, fmt.Errorf("decoding vocabulary %s: %w", path, err)
		}
	case yaml.MappingNode:
		var f vocabularyFile
		if err := root.Decode(&f); err != nil {
			return Vocabulary{}, fmt.Errorf("decoding vocabulary %s: %w", path, err)
		}
		terms = f.Terms
	default:
		return Vocabulary{}, fmt.Errorf("vocabulary %s: expected a list of terms or a terms mapping", path)
	}

	return NewVocabulary(terms), nil
}

// DefaultTerms is the child health and nutrition vocabulary used when no
// vocabulary is configured.
var DefaultTerms = []string{
	"stunting", "wasting", "underweight", "malnutrition", "malnourished",
	"anemia", "anaemia", "breastfeeding", "complementary feeding",
	"micronutrient", "vitamin", "iron", "zinc", "iodine", "calcium", "folate", "folic",
	"immunization", "vaccination", "polio", "measles", "bcg",
	"diarrhea", "diarrhoea", "pneumonia", "fever", "dehydration",
	"ors", "oral rehydration", "therapeutic food", "rutf",
	"sam", "mam", "severe acute", "moderate acute",
	"muac", "mid-upper arm", "bmi", "z-score", "weight-for-height", "height-for-age",
	"nfhs", "poshan", "icds", "anganwadi", "asha",
	"who", "unicef", "guideline", "recommendation", "protocol",
	"mortality", "morbidity", "prevalence", "incidence",
	"infant", "child", "newborn", "neonatal", "maternal",
	"protein", "calorie", "energy", "nutrient", "diet", "food",
	"growth", "development", "anthropometric",
	"india", "indian", "rural", "urban", "tribal",
	"maharashtra", "uttar pradesh", "bihar", "madhya pradesh", "rajasthan",
	"district", "state", "national",
	"percentage", "percent", "%",
}
