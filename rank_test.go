package holdings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func weights(holdings []Holding) []float64 {
	w := make([]float64, 0, len(holdings))
	for _, h := range holdings {
		w = append(w, float64(h.Weight.Or(-1)))
	}
	return w
}

func TestRank(t *testing.T) {
	rows := []Holding{valued("C", 20), valued("A", 50), valued("B", 30)}
	rows = InjectCash(rows, M(10, USD))
	Rank(rows, USD)

	assert.Equal(t, []string{"A", "B", "C", CashAsset}, assets(rows))
	assert.InDeltaSlice(t, []float64{5000.0 / 110, 3000.0 / 110, 2000.0 / 110, 1000.0 / 110}, weights(rows), 1e-9)
	for i, h := range rows {
		assert.Equal(t, i+1, h.Rank)
	}
}

func TestRank_WeightsSumTo100(t *testing.T) {
	rows := []Holding{valued("A", 12.5), valued("B", 1000), valued("C", 0.01), valued("D", 333.33)}
	Rank(rows, USD)

	sum := 0.0
	for _, w := range weights(rows) {
		sum += w
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestRank_Stable(t *testing.T) {
	rows := []Holding{valued("first", 10), valued("big", 30), valued("second", 10), valued("third", 10)}
	Rank(rows, USD)
	assert.Equal(t, []string{"big", "first", "second", "third"}, assets(rows))
}

func TestRank_AbsentLast(t *testing.T) {
	rows := []Holding{{Asset: "unknown"}, valued("A", 1), {Asset: "other"}, valued("B", 3)}
	Rank(rows, USD)

	assert.Equal(t, []string{"B", "A", "unknown", "other"}, assets(rows))
	assert.False(t, rows[2].Weight.IsSet())
	assert.Equal(t, 4, rows[3].Rank)
}

func TestRank_NonPositiveTotal(t *testing.T) {
	rows := []Holding{valued("A", -10), valued("B", 5)}
	Rank(rows, USD)

	// the total (-5) is replaced by 1
	assert.Equal(t, []string{"B", "A"}, assets(rows))
	assert.InDeltaSlice(t, []float64{500, -1000}, weights(rows), 1e-9)
}

func TestRank_ZeroTotal(t *testing.T) {
	rows := InjectCash([]Holding{valued("A", 0), valued("B", 0)}, M(0, USD))
	Rank(rows, USD)

	assert.Equal(t, []string{"A", "B", CashAsset}, assets(rows))
	assert.Equal(t, []float64{0, 0, 0}, weights(rows))
}

func TestTotalValue(t *testing.T) {
	rows := []Holding{valued("A", 1.5), {Asset: "B"}, NewCashHolding(M(2, USD))}
	assert.True(t, TotalValue(rows, USD).Equal(M(3.5, USD)))
}
