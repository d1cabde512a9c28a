package mining

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// Four matches: MI and CSK always meet, Mumbai hosts three of them.
func makeDataset() *model.Dataset {
	return &model.Dataset{
		Matches: []model.Match{
			{ID: 1, Team1: "MI", Team2: "CSK", City: "Mumbai", TossWinner: "MI"},
			{ID: 2, Team1: "CSK", Team2: "MI", City: "Mumbai", TossWinner: "CSK"},
			{ID: 3, Team1: "MI", Team2: "CSK", City: "Mumbai"},
			{ID: 4, Team1: "MI", Team2: "CSK", City: "Chennai", TossWinner: "MI"},
		},
		Columns: model.Columns{TossWinner: true},
	}
}

func TestTransactions(t *testing.T) {
	tx := Transactions(makeDataset())
	require.Len(t, tx, 4)
	// toss winner duplicates a team and collapses
	assert.Equal(t, Transaction{"CSK", "MI", "Mumbai"}, tx[0])
	assert.Equal(t, Transaction{"CSK", "MI", "Mumbai"}, tx[2])
	assert.Equal(t, Transaction{"CSK", "Chennai", "MI"}, tx[3])

	empty := Transactions(&model.Dataset{Matches: []model.Match{{ID: 9}}})
	assert.Empty(t, empty[0])
}

func TestApriori_OrderAndSupport(t *testing.T) {
	got := Apriori{}.Mine(Transactions(makeDataset()), 0.5)
	want := []Itemset{
		{Items: []string{"CSK"}, Support: 1},
		{Items: []string{"MI"}, Support: 1},
		{Items: []string{"Mumbai"}, Support: 0.75},
		{Items: []string{"CSK", "MI"}, Support: 1},
		{Items: []string{"CSK", "Mumbai"}, Support: 0.75},
		{Items: []string{"MI", "Mumbai"}, Support: 0.75},
		{Items: []string{"CSK", "MI", "Mumbai"}, Support: 0.75},
	}
	assert.Equal(t, want, got)
}

func TestApriori_NothingFrequent(t *testing.T) {
	tx := []Transaction{{"a"}, {"b"}, {"c"}}
	assert.Empty(t, Apriori{}.Mine(tx, 0.5))
	assert.Empty(t, Apriori{}.Mine(nil, 0.5))
}

func TestRules_Order(t *testing.T) {
	itemsets := []Itemset{
		{Items: []string{"a"}, Support: 0.5},
		{Items: []string{"b"}, Support: 0.8},
		{Items: []string{"c"}, Support: 0.4},
		{Items: []string{"a", "b"}, Support: 0.4},
		{Items: []string{"a", "b", "c"}, Support: 0.2},
		{Items: []string{"a", "c"}, Support: 0.2},
		{Items: []string{"b", "c"}, Support: 0.4},
	}
	rules := Rules(itemsets, 0)
	require.NotEmpty(t, rules)
	assert.Equal(t, []string{"a"}, rules[0].Antecedent)
	assert.Equal(t, []string{"b"}, rules[0].Consequent)
	assert.InDelta(t, 0.8, rules[0].Confidence, 1e-9)
	assert.InDelta(t, 1.0, rules[0].Lift, 1e-9)
	assert.Equal(t, []string{"b"}, rules[1].Antecedent)

	// size-2 antecedents precede size-1 antecedents for {a,b,c}
	assert.Equal(t, []string{"a", "b"}, rules[2].Antecedent)
	assert.Equal(t, []string{"c"}, rules[2].Consequent)
	assert.Equal(t, []string{"a", "c"}, rules[3].Antecedent)
	assert.Equal(t, []string{"b", "c"}, rules[4].Antecedent)
	assert.Equal(t, []string{"a"}, rules[5].Antecedent)
	assert.Equal(t, []string{"b", "c"}, rules[5].Consequent)
}

func TestMineRules_Thresholds(t *testing.T) {
	rules, err := MineRules(makeDataset(), Apriori{}, Options{MinSupport: 0.5, MinConfidence: 0.9, MaxRules: 20})
	require.NoError(t, err)
	require.NotEmpty(t, rules)
	for _, r := range rules {
		assert.GreaterOrEqual(t, r.Confidence, 0.9)
		assert.GreaterOrEqual(t, r.Support, 0.5)
		assert.GreaterOrEqual(t, r.Lift, 0.0)
	}
	// {CSK} => {MI}
	assert.Equal(t, []string{"CSK"}, rules[0].Antecedent)
	assert.Equal(t, []string{"MI"}, rules[0].Consequent)
	assert.InDelta(t, 1.0, rules[0].Lift, 1e-9)

	capped, err := MineRules(makeDataset(), Apriori{}, Options{MinSupport: 0.5, MinConfidence: 0, MaxRules: 3})
	require.NoError(t, err)
	assert.Len(t, capped, 3)
	assert.Equal(t, rules[0], capped[0])
}

func TestMineRules_EmptyAndInvalid(t *testing.T) {
	rules, err := MineRules(&model.Dataset{}, Apriori{}, DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, rules)
	assert.Empty(t, rules)

	rules, err = MineRules(makeDataset(), Apriori{}, Options{MinSupport: 1, MinConfidence: 1, MaxRules: 20})
	require.NoError(t, err)
	assert.NotEmpty(t, rules, "CSK and MI appear together in every match")

	for _, o := range []Options{
		{MinSupport: 0, MinConfidence: 0.5},
		{MinSupport: 1.2, MinConfidence: 0.5},
		{MinSupport: 0.1, MinConfidence: -0.1},
		{MinSupport: 0.1, MinConfidence: 1.5},
	} {
		_, err := MineRules(makeDataset(), Apriori{}, o)
		assert.ErrorIs(t, err, ErrInvalidThreshold, "%+v", o)
	}
}

func TestMineRules_NeverMoreThanDefaultCap(t *testing.T) {
	ds := dataset.Synthetic()
	for _, limit := range []int{-1, 0, 20, 50} {
		rules, err := MineRules(ds, Apriori{}, Options{MinSupport: DefaultMinSupport, MinConfidence: 0, MaxRules: limit})
		require.NoError(t, err)
		assert.Len(t, rules, DefaultMaxRules, "max_rules %d", limit)
	}
}

func TestCombinations(t *testing.T) {
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {1, 2}}, combinations(3, 2))
	assert.Equal(t, [][]int{{0}, {1}, {2}}, combinations(3, 1))
}
