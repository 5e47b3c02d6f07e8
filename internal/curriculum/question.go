package curriculum

// OpenEnded is the ExpectedAnswer sentinel for free-response questions
// scored by keyword patterns.
const OpenEnded = "open_ended"

// Question is a static diagnostic question.
type Question struct {
	ID                 string
	Level              Level
	Prompt             string
	ExpectedAnswer     string
	AcceptableAnswers  []string
	AcceptablePatterns []string
	Topic              string
	IsFollowup         bool
}

// IsOpenEnded reports whether the question is graded by pattern density.
func (q *Question) IsOpenEnded() bool {
	return q.ExpectedAnswer == OpenEnded
}

// questionBank is the fixed genetics placement quiz.
var questionBank = []Question{
	{
		ID:                "diag_001",
		Level:             LevelBeginner,
		Prompt:            "What molecule carries genetic information in living things?",
		ExpectedAnswer:    "DNA",
		AcceptableAnswers: []string{"dna", "deoxyribonucleic acid"},
		Topic:             TopicDNABasics,
	},
	{
		ID:                 "diag_001b",
		Level:              LevelBeginner,
		Prompt:             "Have you heard of DNA before? It stands for deoxyribonucleic acid. What do you think DNA does in your body?",
		ExpectedAnswer:     OpenEnded,
		AcceptablePatterns: []string{"instruction", "code", "information", "genes", "traits", "heredit", "blueprint"},
		Topic:              TopicDNABasics,
		IsFollowup:         true,
	},
	{
		ID:                "diag_002",
		Level:             LevelBeginner,
		Prompt:            "If brown eyes (B) are dominant over blue eyes (b), what eye color would someone with genotype 'Bb' have?",
		ExpectedAnswer:    "brown",
		AcceptableAnswers: []string{"brown", "brown eyes"},
		Topic:             TopicMendelian,
	},
	{
		ID:                 "diag_002b",
		Level:              LevelBeginner,
		Prompt:             "Do you know what 'dominant' and 'recessive' mean in genetics?",
		ExpectedAnswer:     OpenEnded,
		AcceptablePatterns: []string{"dominant shows", "dominant wins", "recessive hidden", "recessive needs two", "masks"},
		Topic:              TopicMendelian,
		IsFollowup:         true,
	},
	{
		ID:                "diag_003",
		Level:             LevelIntermediate,
		Prompt:            "If two parents with genotype Bb have children, what percentage of their children would you expect to have genotype bb?",
		ExpectedAnswer:    "25%",
		AcceptableAnswers: []string{"25%", "25", "1/4", "one fourth", "one quarter", "25 percent"},
		Topic:             TopicPunnett,
	},
	{
		ID:                 "diag_003b",
		Level:              LevelIntermediate,
		Prompt:             "Have you used Punnett squares before to predict offspring traits?",
		ExpectedAnswer:     OpenEnded,
		AcceptablePatterns: []string{"yes", "learned", "grid", "square", "cross"},
		Topic:              TopicPunnett,
		IsFollowup:         true,
	},
	{
		ID:                "diag_004",
		Level:             LevelIntermediate,
		Prompt:            "What is the term for different versions of the same gene, like B and b for eye color?",
		ExpectedAnswer:    "alleles",
		AcceptableAnswers: []string{"allele", "alleles"},
		Topic:             TopicMendelian,
	},
	{
		ID:                "diag_005",
		Level:             LevelAdvanced,
		Prompt:            "Two brown-eyed parents have a blue-eyed child. What must be true about the parents' genotypes?",
		ExpectedAnswer:    "Both must be heterozygous (Bb)",
		AcceptableAnswers: []string{"bb", "heterozygous", "Bb", "both Bb", "both heterozygous", "carriers"},
		Topic:             TopicPunnett,
	},
}

// Questions returns a copy of the question bank.
func Questions() []Question {
	out := make([]Question, len(questionBank))
	copy(out, questionBank)
	return out
}

// LookupQuestion scans the bank for id. Returns nil when not found.
func LookupQuestion(id string) *Question {
	for i := range questionBank {
		if questionBank[i].ID == id {
			q := questionBank[i]
			return &q
		}
	}
	return nil
}
