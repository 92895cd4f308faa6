package present_test

import (
	"reflect"
	"testing"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/present"
)

func annotated(id int64, title, org, typ, deadline, salary string, score int) domain.AnnotatedOpportunity {
	return domain.AnnotatedOpportunity{
		Opportunity: domain.Opportunity{
			ID: id, Title: title, Organization: org, Type: typ,
			Deadline: deadline, Salary: salary, Status: domain.StatusOpen,
		},
		MatchPercentage: score,
		MatchReasons:    []string{},
	}
}

func sample() []domain.AnnotatedOpportunity {
	return []domain.AnnotatedOpportunity{
		annotated(1, "Software Engineering Internship", "Google", domain.TypeInternship, "Open", "$8,000/month", 92),
		annotated(2, "Research Grant", "Fulbright Commission", domain.TypeGrant, "Deadline passed", "", 0),
		annotated(3, "Data Science Fellowship", "Microsoft", domain.TypeFellowship, "2026-01-15", "$6,000/month", 75),
		annotated(4, "Exchange Program", "National University of Singapore", domain.TypeStudyAbroad, "2025-12-01", "n/a", 75),
	}
}

func ids(in []domain.AnnotatedOpportunity) []int64 {
	out := make([]int64, 0, len(in))
	for _, a := range in {
		out = append(out, a.ID)
	}
	return out
}

func TestApply_Sorts(t *testing.T) {
	cases := []struct {
		key  present.SortKey
		want []int64
	}{
		{present.SortBestMatch, []int64{1, 3, 4, 2}},
		{present.SortDeadlineSoon, []int64{4, 3, 2, 1}},
		{present.SortRecentlyAdded, []int64{4, 3, 2, 1}},
		{present.SortHighestSalary, []int64{1, 3, 2, 4}},
	}
	for _, c := range cases {
		t.Run(string(c.key), func(t *testing.T) {
			got := ids(present.Apply(sample(), present.Options{Type: present.TypeAll, Sort: c.key}))
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("order = %v, want %v", got, c.want)
			}
		})
	}
}

func TestApply_QueryMatchesTitleOrOrganization(t *testing.T) {
	got := ids(present.Apply(sample(), present.Options{Query: "  MICRO", Type: present.TypeAll}))
	if !reflect.DeepEqual(got, []int64{3}) {
		t.Errorf("organization match = %v", got)
	}
	got = ids(present.Apply(sample(), present.Options{Query: "program"}))
	if !reflect.DeepEqual(got, []int64{4}) {
		t.Errorf("title match = %v", got)
	}
}

func TestApply_TypeFilterKeepsZeroScores(t *testing.T) {
	got := present.Apply(sample(), present.Options{Type: domain.TypeGrant})
	if len(got) != 1 || got[0].ID != 2 || got[0].MatchPercentage != 0 {
		t.Errorf("grant filter = %+v", got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	opts := present.Options{Query: "e", Type: domain.TypeFellowship, Sort: present.SortBestMatch}
	once := present.Apply(sample(), opts)
	twice := present.Apply(once, opts)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("applying twice changed the result: %v vs %v", ids(once), ids(twice))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := sample()
	before := ids(in)
	_ = present.Apply(in, present.Options{Sort: present.SortRecentlyAdded})
	if !reflect.DeepEqual(ids(in), before) {
		t.Errorf("input reordered: %v", ids(in))
	}
}

func TestParseSalary(t *testing.T) {
	cases := map[string]int64{
		"$8,000/month":            8000,
		"":                        0,
		"unpaid":                  0,
		"1-2":                     12,
		"99999999999999999999999": 0,
	}
	for in, want := range cases {
		if got := present.ParseSalary(in); got != want {
			t.Errorf("ParseSalary(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseOptions(t *testing.T) {
	o, err := present.ParseOptions("x", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if o.Type != present.TypeAll || o.Sort != present.SortBestMatch {
		t.Errorf("defaults = %+v", o)
	}
	if _, err := present.ParseOptions("", "job", ""); domain.KindOf(err) != domain.KindValidation {
		t.Errorf("unknown type: %v", err)
	}
	if _, err := present.ParseOptions("", "all", "cheapest"); domain.KindOf(err) != domain.KindValidation {
		t.Errorf("unknown sort: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := present.Summarize(sample())
	if s.Total != 4 || s.HighMatches != 1 || s.Open != 4 {
		t.Errorf("summary = %+v", s)
	}
}
