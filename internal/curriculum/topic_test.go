package curriculum

import "testing"

func TestNextTopic(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		mastered []string
		want     string
		wantOK   bool
	}{
		{"unknown current", "astrophysics", nil, TopicDNABasics, true},
		{"first dependent", TopicDNABasics, nil, TopicMendelian, true},
		{"skip mastered dependent", TopicDNABasics, []string{TopicMendelian}, TopicMolecular, true},
		{"direct dependent", TopicMolecular, nil, TopicGeneExpression, true},
		{"mutations needs pedigree", TopicMolecular, []string{TopicGeneExpression}, TopicPedigree, true},
		{"mutations unlocked", TopicPedigree, []string{TopicMolecular}, TopicMutations, true},
		{
			"all mastered",
			TopicMutations,
			[]string{TopicDNABasics, TopicMendelian, TopicPunnett, TopicPedigree, TopicMolecular, TopicGeneExpression, TopicMutations},
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextTopic(tt.current, tt.mastered)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NextTopic(%q) = (%q, %v), want (%q, %v)", tt.current, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPrerequisites(t *testing.T) {
	if got := Prerequisites(TopicMutations); len(got) != 2 {
		t.Errorf("mutations prerequisites = %v, want 2 entries", got)
	}
	if got := Prerequisites("unknown"); got != nil {
		t.Errorf("unknown prerequisites = %v, want nil", got)
	}
}

func TestTopicsForLevel(t *testing.T) {
	got := TopicsForLevel(LevelBeginner)
	want := []string{TopicDNABasics, TopicMendelian, TopicPunnett}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSearchTopics(t *testing.T) {
	found := SearchTopics("punnett")
	if len(found) == 0 {
		t.Fatal("expected a match for punnett")
	}
	if found[0].ID != TopicPunnett {
		t.Errorf("best match = %q, want %q", found[0].ID, TopicPunnett)
	}

	if got := SearchTopics(""); len(got) != len(topics) {
		t.Errorf("empty query returned %d topics, want %d", len(got), len(topics))
	}
	if got := SearchTopics("quantum chromodynamics"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestMatchTopic(t *testing.T) {
	if tp, ok := MatchTopic("DNA Basics"); !ok || tp.ID != TopicDNABasics {
		t.Errorf("MatchTopic(DNA Basics) = (%q, %v)", tp.ID, ok)
	}
	if _, ok := MatchTopic("Photosynthesis"); ok {
		t.Error("expected no match for an unrelated subject")
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel(" Advanced "); err != nil || l != LevelAdvanced {
		t.Errorf("ParseLevel = (%q, %v)", l, err)
	}
	if _, err := ParseLevel("expert"); err == nil {
		t.Error("expected error for unknown level")
	}
}
