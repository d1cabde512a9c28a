// Package mining finds frequent co-occurrences of match context values
// (teams, city, toss winner) and derives association rules from them.
package mining

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pable/go-cricket-metrics/internal/model"
)

const (
	DefaultMinSupport    = 0.05
	DefaultMinConfidence = 0.6
	DefaultMaxRules      = 20
)

var ErrInvalidThreshold = errors.New("invalid mining threshold")

// Transaction is the sorted, duplicate-free item set of one match.
type Transaction []string

// Itemset is a frequent item combination and the fraction of transactions
// containing it.
type Itemset struct {
	Items   []string
	Support float64
}

// FrequentPatternMiner discovers every itemset with support >= minSupport.
// Implementations must return itemsets in a stable order.
type FrequentPatternMiner interface {
	Mine(tx []Transaction, minSupport float64) []Itemset
}

// Options controls MineRules.
type Options struct {
	MinSupport    float64
	MinConfidence float64
	MaxRules      int
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		MinSupport:    DefaultMinSupport,
		MinConfidence: DefaultMinConfidence,
		MaxRules:      DefaultMaxRules,
	}
}

// Validate checks support is in (0,1] and confidence in [0,1].
func (o Options) Validate() error {
	if !(o.MinSupport > 0 && o.MinSupport <= 1) {
		return fmt.Errorf("%w: min_support %v not in (0,1]", ErrInvalidThreshold, o.MinSupport)
	}
	if !(o.MinConfidence >= 0 && o.MinConfidence <= 1) {
		return fmt.Errorf("%w: min_confidence %v not in [0,1]", ErrInvalidThreshold, o.MinConfidence)
	}
	return nil
}

// Transactions builds one transaction per match from its non-empty team1,
// team2, city and toss winner values.
func Transactions(ds *model.Dataset) []Transaction {
	out := make([]Transaction, 0, len(ds.Matches))
	for _, m := range ds.Matches {
		var items []string
		for _, v := range []string{m.Team1, m.Team2, m.City, m.TossWinner} {
			if v != "" {
				items = append(items, v)
			}
		}
		slices.Sort(items)
		out = append(out, slices.Compact(items))
	}
	return out
}

// MineRules mines ds with miner and returns at most opts.MaxRules rules in
// mining order. MaxRules outside [1, DefaultMaxRules] means DefaultMaxRules.
// No frequent itemsets is an empty result, not an error.
func MineRules(ds *model.Dataset, miner FrequentPatternMiner, opts Options) ([]model.AssociationRule, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	tx := Transactions(ds)
	if len(tx) == 0 {
		return []model.AssociationRule{}, nil
	}
	rules := Rules(miner.Mine(tx, opts.MinSupport), opts.MinConfidence)
	limit := opts.MaxRules
	if limit <= 0 || limit > DefaultMaxRules {
		limit = DefaultMaxRules
	}
	if len(rules) > limit {
		rules = rules[:limit]
	}
	return rules, nil
}

// Rules derives every rule with confidence >= minConfidence. Itemsets are
// visited in the given order; within one itemset antecedents run from the
// largest size down to one item, each size in lexicographic order.
func Rules(itemsets []Itemset, minConfidence float64) []model.AssociationRule {
	support := make(map[string]float64, len(itemsets))
	for _, is := range itemsets {
		support[key(is.Items)] = is.Support
	}

	out := []model.AssociationRule{}
	for _, is := range itemsets {
		n := len(is.Items)
		if n < 2 {
			continue
		}
		for size := n - 1; size >= 1; size-- {
			for _, idx := range combinations(n, size) {
				ante, cons := split(is.Items, idx)
				anteSup, consSup := support[key(ante)], support[key(cons)]
				conf := model.Ratio(is.Support, anteSup)
				if conf < minConfidence {
					continue
				}
				out = append(out, model.AssociationRule{
					Antecedent: ante,
					Consequent: cons,
					Support:    is.Support,
					Confidence: conf,
					Lift:       model.Ratio(conf, consSup),
				})
			}
		}
	}
	return out
}

func key(items []string) string {
	return strings.Join(items, "\x1f")
}

// split partitions items into the positions listed in idx and the rest.
func split(items []string, idx []int) (in, rest []string) {
	j := 0
	for i, it := range items {
		if j < len(idx) && idx[j] == i {
			in = append(in, it)
			j++
			continue
		}
		rest = append(rest, it)
	}
	return in, rest
}

// combinations lists the size-r index subsets of [0,n) in lexicographic order.
func combinations(n, r int) [][]int {
	var out [][]int
	cur := make([]int, 0, r)
	var walk func(start int)
	walk = func(start int) {
		if len(cur) == r {
			out = append(out, slices.Clone(cur))
			return
		}
		for i := start; i <= n-(r-len(cur)); i++ {
			cur = append(cur, i)
			walk(i + 1)
			cur = cur[:len(cur)-1]
		}
	}
	walk(0)
	return out
}
