package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/winprob"
)

func TestPrintTeamTable_MarksFocus(t *testing.T) {
	var buf bytes.Buffer
	PrintTeamTable(&buf, []model.TeamRecord{
		{Team: "MI", Matches: 3, Wins: 2, WinPercentage: 66.67},
		{Team: "CSK", Matches: 3, Wins: 1, WinPercentage: 33.33},
	}, "CSK")
	out := buf.String()
	if !strings.Contains(out, "66.67%") {
		t.Errorf("expected formatted win percentage, got:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "CSK") && !strings.Contains(line, ">") {
			t.Errorf("expected focus marker on CSK row: %q", line)
		}
		if strings.Contains(line, "MI ") && strings.Contains(line, ">") {
			t.Errorf("unexpected marker on MI row: %q", line)
		}
	}
}

func TestPrintSeasonTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	PrintSeasonTable(&buf, "Nobody", nil)
	if !strings.Contains(buf.String(), "no matches found") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestPrintRules(t *testing.T) {
	var buf bytes.Buffer
	PrintRules(&buf, nil)
	if !strings.Contains(buf.String(), "No rules") {
		t.Errorf("expected empty notice, got %q", buf.String())
	}

	buf.Reset()
	PrintRules(&buf, []model.AssociationRule{{
		Antecedent: []string{"CSK", "Chennai"}, Consequent: []string{"MI"},
		Support: 0.25, Confidence: 0.8, Lift: 1.6,
	}})
	out := buf.String()
	for _, want := range []string{"{CSK, Chennai}", "{MI}", "0.25", "0.80", "1.60"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintSegments(t *testing.T) {
	var buf bytes.Buffer
	PrintSegments(&buf, []model.Segment{
		{EntityID: "Kohli", ClusterID: 1, ClusterName: "Consistent", Features: []float64{131.974, 38.2}},
	}, "strike_rate", "average")
	out := buf.String()
	for _, want := range []string{"STRIKE", "Kohli", "Consistent", "131.97", "38.20"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrintOverTable_Placeholder(t *testing.T) {
	var buf bytes.Buffer
	PrintOverTable(&buf, []model.OverRuns{{Over: 1, TotalRuns: 10}, {Over: 2, TotalRuns: 0}}, true)
	out := buf.String()
	if !strings.Contains(out, "placeholder") {
		t.Errorf("expected placeholder notice:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("█", 30)) {
		t.Errorf("expected a full-width bar for the peak over:\n%s", out)
	}
}

func TestPrintWinProbability(t *testing.T) {
	var buf bytes.Buffer
	PrintWinProbability(&buf, winprob.Result{WinProbability: 0.4567, BattingTeam: "RR", RunsLeft: 40, BallsLeft: 24, WicketsLeft: 6})
	if !strings.Contains(buf.String(), "RR win probability: 46%") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPrintRawTable(t *testing.T) {
	var buf bytes.Buffer
	PrintRawTable(&buf, []string{"a"}, nil)
	if strings.TrimSpace(buf.String()) != "(no rows)" {
		t.Errorf("unexpected output %q", buf.String())
	}
	buf.Reset()
	PrintRawTable(&buf, []string{"batter", "runs"}, [][]string{{"Kohli", "6"}})
	if !strings.Contains(buf.String(), "(1 rows)") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
