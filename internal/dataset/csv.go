package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pable/go-cricket-metrics/internal/model"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidMatch rejects a matches file with a repeated id or a team
	// listed on both sides of one match.
	ErrInvalidMatch = errors.New("invalid match row")
)

// table is a header-indexed CSV file.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(ctx context.Context, path string) (*table, error) {
	f, err := open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseTable(f)
}

func parseTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &table{index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		t.index[h] = i
	}
	t.rows, err = cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *table) has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// require returns the first of names present in the header.
func (t *table) require(names ...string) (int, error) {
	for _, n := range names {
		if i, ok := t.index[n]; ok {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(names, "|"))
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	if strings.EqualFold(v, "NA") || strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

// optional returns the column index or -1.
func (t *table) optional(col string) int {
	if i, ok := t.index[col]; ok {
		return i
	}
	return -1
}

// atoi parses integer cells; blank cells are 0 and "3.0" style floats are
// accepted when integral.
func atoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

func readMatches(ctx context.Context, path string) ([]model.Match, bool, error) {
	t, err := readTable(ctx, path)
	if err != nil {
		return nil, false, err
	}
	return matchesFrom(t)
}

func matchesFrom(t *table) ([]model.Match, bool, error) {
	idCol, err := t.require("id", "match_id")
	if err != nil {
		return nil, false, err
	}
	seasonCol, err := t.require("season")
	if err != nil {
		return nil, false, err
	}
	t1, err := t.require("team1")
	if err != nil {
		return nil, false, err
	}
	t2, err := t.require("team2")
	if err != nil {
		return nil, false, err
	}
	city, winner, venue, toss := t.optional("city"), t.optional("winner"), t.optional("venue"), t.optional("toss_winner")

	out := make([]model.Match, 0, len(t.rows))
	seen := make(map[int]int, len(t.rows))
	for n, row := range t.rows {
		id, err := atoi(cell(row, idCol))
		if err != nil {
			return nil, false, fmt.Errorf("row %d id: %w", n+2, err)
		}
		if first, dup := seen[id]; dup {
			return nil, false, fmt.Errorf("row %d: %w: id %d already used on row %d", n+2, ErrInvalidMatch, id, first)
		}
		seen[id] = n + 2
		m := model.Match{
			ID:         id,
			Season:     cell(row, seasonCol),
			City:       cell(row, city),
			Team1:      cell(row, t1),
			Team2:      cell(row, t2),
			Winner:     cell(row, winner),
			Venue:      cell(row, venue),
			TossWinner: cell(row, toss),
		}
		if m.Team1 != "" && m.Team1 == m.Team2 {
			return nil, false, fmt.Errorf("row %d: %w: %s plays itself", n+2, ErrInvalidMatch, m.Team1)
		}
		out = append(out, m)
	}
	return out, t.has("toss_winner"), nil
}

func readDeliveries(ctx context.Context, path string) ([]model.Delivery, bool, bool, error) {
	t, err := readTable(ctx, path)
	if err != nil {
		return nil, false, false, err
	}
	return deliveriesFrom(t)
}

func deliveriesFrom(t *table) ([]model.Delivery, bool, bool, error) {
	cols := make([]int, 5)
	for i, names := range [][]string{
		{"match_id", "id"},
		{"batter", "batsman"},
		{"bowler"},
		{"batsman_runs"},
		{"total_runs"},
	} {
		c, err := t.require(names...)
		if err != nil {
			return nil, false, false, err
		}
		cols[i] = c
	}
	overCol, wicketCol := t.optional("over"), t.optional("is_wicket")

	out := make([]model.Delivery, 0, len(t.rows))
	for n, row := range t.rows {
		var d model.Delivery
		var err error
		if d.MatchID, err = atoi(cell(row, cols[0])); err != nil {
			return nil, false, false, fmt.Errorf("row %d match_id: %w", n+2, err)
		}
		d.Batter = cell(row, cols[1])
		d.Bowler = cell(row, cols[2])
		if d.BatsmanRuns, err = atoi(cell(row, cols[3])); err != nil {
			return nil, false, false, fmt.Errorf("row %d batsman_runs: %w", n+2, err)
		}
		if d.TotalRuns, err = atoi(cell(row, cols[4])); err != nil {
			return nil, false, false, fmt.Errorf("row %d total_runs: %w", n+2, err)
		}
		if v := cell(row, overCol); v != "" {
			if d.Over, err = atoi(v); err != nil {
				return nil, false, false, fmt.Errorf("row %d over: %w", n+2, err)
			}
			d.HasOver = true
		}
		if d.IsWicket, err = atoi(cell(row, wicketCol)); err != nil {
			return nil, false, false, fmt.Errorf("row %d is_wicket: %w", n+2, err)
		}
		out = append(out, d)
	}
	return out, overCol >= 0, wicketCol >= 0, nil
}
