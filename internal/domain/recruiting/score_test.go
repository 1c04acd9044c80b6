package recruiting

import "testing"

func scored(id string, v int) Applicant {
	return Applicant{ID: id, Score: NewScore(float64(v))}
}

func TestTopN_KeepsHighestInDescendingOrder(t *testing.T) {
	in := []Applicant{
		scored("a", 55),
		scored("b", 91),
		scored("c", 72),
		scored("d", 88),
		scored("e", 60),
	}

	got := TopN(in, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 applicants, got %d", len(got))
	}
	want := []string{"b", "d", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
	if in[0].ID != "a" {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestTopN_NonPositive(t *testing.T) {
	got := TopN([]Applicant{scored("a", 10)}, 0)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestRankByScore_UnscoredLast(t *testing.T) {
	in := []Applicant{
		{ID: "u1"},
		scored("a", 10),
		{ID: "u2"},
		scored("b", 99),
	}

	got := RankByScore(in)
	order := []string{"b", "a", "u1", "u2"}
	for i, id := range order {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestScore_Badge(t *testing.T) {
	cases := []struct {
		score Score
		want  string
	}{
		{NewScore(95), BadgeExcellent},
		{NewScore(90), BadgeExcellent},
		{NewScore(85), BadgeGood},
		{NewScore(70), BadgeFair},
		{NewScore(12), BadgeLow},
		{Score{}, BadgeUnscored},
	}
	for _, tc := range cases {
		if got := tc.score.Badge(); got != tc.want {
			t.Fatalf("score %+v: expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestNewScore_Clamps(t *testing.T) {
	if s := NewScore(140); s.Value != 100 {
		t.Fatalf("expected clamp to 100, got %d", s.Value)
	}
	if s := NewScore(-3); s.Value != 0 || !s.Scored {
		t.Fatalf("expected clamp to scored 0, got %+v", s)
	}
	if s := NewScore(66.6); s.String() != "67%" {
		t.Fatalf("expected 67%%, got %s", s.String())
	}
}

func TestParseJobStatus(t *testing.T) {
	if ParseJobStatus(" Closed ") != JobStatusClosed {
		t.Fatalf("expected closed")
	}
	if ParseJobStatus("") != JobStatusOpen {
		t.Fatalf("expected missing status to default to open")
	}
}
