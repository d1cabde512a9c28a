package mining

import (
	"slices"
)

// Apriori is level-wise candidate generation. Frequent itemsets are returned
// grouped by size, each group in lexicographic item order.
type Apriori struct{}

func (Apriori) Mine(tx []Transaction, minSupport float64) []Itemset {
	if len(tx) == 0 {
		return nil
	}
	sets := make([]map[string]struct{}, len(tx))
	vocab := make(map[string]struct{})
	for i, t := range tx {
		sets[i] = make(map[string]struct{}, len(t))
		for _, it := range t {
			sets[i][it] = struct{}{}
			vocab[it] = struct{}{}
		}
	}

	items := make([]string, 0, len(vocab))
	for it := range vocab {
		items = append(items, it)
	}
	slices.Sort(items)

	candidates := make([][]string, len(items))
	for i, it := range items {
		candidates[i] = []string{it}
	}

	var out []Itemset
	for len(candidates) > 0 {
		var level [][]string
		for _, c := range candidates {
			sup := supportOf(c, sets)
			if sup >= minSupport {
				level = append(level, c)
				out = append(out, Itemset{Items: c, Support: sup})
			}
		}
		candidates = nextCandidates(level)
	}
	return out
}

func supportOf(items []string, sets []map[string]struct{}) float64 {
	hits := 0
	for _, s := range sets {
		all := true
		for _, it := range items {
			if _, ok := s[it]; !ok {
				all = false
				break
			}
		}
		if all {
			hits++
		}
	}
	return float64(hits) / float64(len(sets))
}

// nextCandidates joins frequent k-itemsets sharing their first k-1 items and
// prunes any candidate with an infrequent k-subset. level must be sorted.
func nextCandidates(level [][]string) [][]string {
	frequent := make(map[string]struct{}, len(level))
	for _, l := range level {
		frequent[key(l)] = struct{}{}
	}

	var out [][]string
	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			a, b := level[i], level[j]
			k := len(a)
			if !slices.Equal(a[:k-1], b[:k-1]) {
				break
			}
			cand := append(slices.Clone(a), b[k-1])
			if allSubsetsFrequent(cand, frequent) {
				out = append(out, cand)
			}
		}
	}
	return out
}

func allSubsetsFrequent(cand []string, frequent map[string]struct{}) bool {
	if len(cand) <= 2 {
		return true
	}
	sub := make([]string, 0, len(cand)-1)
	for skip := range cand {
		sub = sub[:0]
		for i, it := range cand {
			if i != skip {
				sub = append(sub, it)
			}
		}
		if _, ok := frequent[key(sub)]; !ok {
			return false
		}
	}
	return true
}
