package curriculum

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Topic IDs referenced by the placement quiz and recommendation rules.
const (
	TopicDNABasics      = "dna_basics"
	TopicMendelian      = "mendelian_inheritance"
	TopicPunnett        = "punnett_squares"
	TopicPedigree       = "pedigree_analysis"
	TopicMolecular      = "molecular_genetics"
	TopicGeneExpression = "gene_expression"
	TopicMutations      = "mutations"
)

// Topic is a node in the genetics curriculum.
type Topic struct {
	ID            string
	Name          string
	Level         Level
	Prerequisites []string
	Subtopics     []string
	Description   string
}

// topics is ordered; NextTopic scans it in this order.
var topics = []Topic{
	{
		ID:          TopicDNABasics,
		Name:        "DNA Basics",
		Level:       LevelBeginner,
		Subtopics:   []string{"dna_structure", "nucleotides", "base_pairing"},
		Description: "Understanding the structure and components of DNA",
	},
	{
		ID:            TopicMendelian,
		Name:          "Mendelian Inheritance",
		Level:         LevelBeginner,
		Prerequisites: []string{TopicDNABasics},
		Subtopics:     []string{"dominant_recessive", "genotype_phenotype", "alleles"},
		Description:   "Mendel's laws of inheritance and basic genetic patterns",
	},
	{
		ID:            TopicPunnett,
		Name:          "Punnett Squares",
		Level:         LevelBeginner,
		Prerequisites: []string{TopicMendelian},
		Subtopics:     []string{"monohybrid_cross", "dihybrid_cross", "probability"},
		Description:   "Using Punnett squares to predict genetic outcomes",
	},
	{
		ID:            TopicPedigree,
		Name:          "Pedigree Analysis",
		Level:         LevelIntermediate,
		Prerequisites: []string{TopicPunnett},
		Subtopics:     []string{"inheritance_patterns", "carrier_identification"},
		Description:   "Analyzing family trees to track inheritance patterns",
	},
	{
		ID:            TopicMolecular,
		Name:          "Molecular Genetics",
		Level:         LevelIntermediate,
		Prerequisites: []string{TopicDNABasics},
		Subtopics:     []string{"replication", "transcription", "translation"},
		Description:   "DNA replication and protein synthesis",
	},
	{
		ID:            TopicGeneExpression,
		Name:          "Gene Expression",
		Level:         LevelAdvanced,
		Prerequisites: []string{TopicMolecular},
		Subtopics:     []string{"regulation", "epigenetics"},
		Description:   "How genes are turned on and off",
	},
	{
		ID:            TopicMutations,
		Name:          "Mutations & Genetic Diseases",
		Level:         LevelAdvanced,
		Prerequisites: []string{TopicMolecular, TopicPedigree},
		Subtopics:     []string{"types_of_mutations", "genetic_disorders"},
		Description:   "Types of mutations and their effects on health",
	},
}

// learningPaths lists the suggested topic order per level.
var learningPaths = map[Level][]string{
	LevelBeginner:     {TopicDNABasics, TopicMendelian, TopicPunnett},
	LevelIntermediate: {TopicPedigree, TopicMolecular},
	LevelAdvanced:     {TopicGeneExpression, TopicMutations},
}

// Topics returns all topics in curriculum order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// GetTopic returns the topic with the given ID.
func GetTopic(id string) (Topic, bool) {
	return lo.Find(topics, func(t Topic) bool { return t.ID == id })
}

// Prerequisites returns the prerequisite IDs of a topic, or nil if unknown.
func Prerequisites(id string) []string {
	t, ok := GetTopic(id)
	if !ok {
		return nil
	}
	return t.Prerequisites
}

// TopicsForLevel returns the learning path for a level.
func TopicsForLevel(level Level) []string {
	return learningPaths[level]
}

// NextTopic suggests what to study after current. It prefers an unmastered
// topic that depends on current and whose other prerequisites are mastered,
// then walks the learning paths from current's level upward. An unknown
// current topic yields the curriculum root. The second result is false when
// everything is mastered.
func NextTopic(current string, mastered []string) (string, bool) {
	cur, ok := GetTopic(current)
	if !ok {
		return TopicDNABasics, true
	}

	for _, t := range topics {
		if lo.Contains(mastered, t.ID) || !lo.Contains(t.Prerequisites, current) {
			continue
		}
		met := lo.EveryBy(t.Prerequisites, func(p string) bool {
			return p == current || lo.Contains(mastered, p)
		})
		if met {
			return t.ID, true
		}
	}

	for _, level := range AllLevels()[cur.Level.Rank():] {
		for _, id := range learningPaths[level] {
			if !lo.Contains(mastered, id) {
				return id, true
			}
		}
	}
	return "", false
}

// SearchTopics returns topics whose ID or name fuzzily matches query, best
// match first. An empty query returns every topic.
func SearchTopics(query string) []Topic {
	query = strings.TrimSpace(query)
	if query == "" {
		return Topics()
	}

	var targets []string
	for _, t := range topics {
		targets = append(targets, t.Name+" "+strings.ReplaceAll(t.ID, "_", " "))
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.Sort(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) Topic {
		return topics[r.OriginalIndex]
	})
}

// MatchTopic resolves free text such as "punnett" or "DNA Basics" to a known
// topic. It returns false when the text names no topic in the curriculum.
func MatchTopic(text string) (Topic, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Topic{}, false
	}
	for _, t := range topics {
		if text == t.ID || text == strings.ToLower(t.Name) {
			return t, true
		}
	}
	found := SearchTopics(text)
	if len(found) == 0 {
		return Topic{}, false
	}
	return found[0], true
}
