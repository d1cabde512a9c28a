package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// ErrEmptyStore is returned by LoadDataset when nothing has been imported.
var ErrEmptyStore = errors.New("dataset store is empty")

// ImportInfo describes the most recent import.
type ImportInfo struct {
	ID            string
	ImportedAt    string
	Source        string
	Columns       model.Columns
	MatchCount    int
	DeliveryCount int
}

// ImportDataset replaces the stored relations with ds in one transaction and
// returns the new import id.
func (db *DB) ImportDataset(ds *model.Dataset, source string) (string, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	for _, table := range []string{"deliveries", "matches"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return "", fmt.Errorf("clear %s: %w", table, err)
		}
	}

	mstmt, err := tx.Prepare(`
		INSERT INTO matches(seq, id, season, city, team1, team2, winner, venue, toss_winner)
		VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return "", err
	}
	defer mstmt.Close()
	for i, m := range ds.Matches {
		if _, err := mstmt.Exec(i, m.ID, m.Season, m.City, m.Team1, m.Team2, m.Winner, m.Venue, m.TossWinner); err != nil {
			return "", fmt.Errorf("insert match %d: %w", m.ID, err)
		}
	}

	dstmt, err := tx.Prepare(`
		INSERT INTO deliveries(seq, match_id, batter, bowler, over, batsman_runs, total_runs, is_wicket)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return "", err
	}
	defer dstmt.Close()
	for i, d := range ds.Deliveries {
		var over, wicket sql.NullInt64
		if d.HasOver {
			over = sql.NullInt64{Int64: int64(d.Over), Valid: true}
		}
		if ds.Columns.IsWicket {
			wicket = sql.NullInt64{Int64: int64(d.IsWicket), Valid: true}
		}
		if _, err := dstmt.Exec(i, d.MatchID, d.Batter, d.Bowler, over, d.BatsmanRuns, d.TotalRuns, wicket); err != nil {
			return "", fmt.Errorf("insert delivery %d: %w", i, err)
		}
	}

	id := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO imports(id, imported_at, source, has_over, has_is_wicket, has_toss_winner, match_count, delivery_count)
		VALUES (?,?,?,?,?,?,?,?)`,
		id, time.Now().UTC().Format(time.RFC3339), source,
		boolInt(ds.Columns.Over), boolInt(ds.Columns.IsWicket), boolInt(ds.Columns.TossWinner),
		len(ds.Matches), len(ds.Deliveries),
	)
	if err != nil {
		return "", fmt.Errorf("record import: %w", err)
	}
	return id, tx.Commit()
}

// LatestImport returns the newest import record, or nil when none exists.
func (db *DB) LatestImport() (*ImportInfo, error) {
	var info ImportInfo
	var hasOver, hasWicket, hasToss int
	err := db.conn.QueryRow(`
		SELECT id, imported_at, source, has_over, has_is_wicket, has_toss_winner, match_count, delivery_count
		FROM imports ORDER BY imported_at DESC, rowid DESC LIMIT 1`).
		Scan(&info.ID, &info.ImportedAt, &info.Source, &hasOver, &hasWicket, &hasToss,
			&info.MatchCount, &info.DeliveryCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	info.Columns = model.Columns{Over: hasOver != 0, IsWicket: hasWicket != 0, TossWinner: hasToss != 0}
	return &info, nil
}

// LoadDataset reads the stored relations back in insertion order.
func (db *DB) LoadDataset() (*model.Dataset, error) {
	info, err := db.LatestImport()
	if err != nil {
		return nil, fmt.Errorf("read import record: %w", err)
	}
	if info == nil {
		return nil, ErrEmptyStore
	}
	ds := &model.Dataset{Columns: info.Columns}

	rows, err := db.conn.Query(`
		SELECT id, season, city, team1, team2, winner, venue, toss_winner
		FROM matches ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(&m.ID, &m.Season, &m.City, &m.Team1, &m.Team2, &m.Winner, &m.Venue, &m.TossWinner); err != nil {
			return nil, err
		}
		ds.Matches = append(ds.Matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	drows, err := db.conn.Query(`
		SELECT match_id, batter, bowler, over, batsman_runs, total_runs, is_wicket
		FROM deliveries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer drows.Close()
	for drows.Next() {
		var d model.Delivery
		var over, wicket sql.NullInt64
		if err := drows.Scan(&d.MatchID, &d.Batter, &d.Bowler, &over, &d.BatsmanRuns, &d.TotalRuns, &wicket); err != nil {
			return nil, err
		}
		d.Over, d.HasOver = int(over.Int64), over.Valid
		d.IsWicket = int(wicket.Int64)
		ds.Deliveries = append(ds.Deliveries, d)
	}
	if err := drows.Err(); err != nil {
		return nil, err
	}
	if len(ds.Matches) == 0 && len(ds.Deliveries) == 0 {
		return nil, ErrEmptyStore
	}
	return ds, nil
}

// QueryRaw runs an arbitrary read query and returns the column names and every
// row rendered as strings. NULL renders as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
