package index

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"Veggie Omelette eggs spinach milk whisk cook",
	"Beef Stew beef carrots potatoes simmer",
	"Chocolate Cake flour sugar cocoa eggs bake",
}

func TestSimilarityIdenticalQuery(t *testing.T) {
	idx := Build(corpus)

	scores := idx.Similarity(corpus[1])
	require.Len(t, scores, len(corpus))

	assert.InDelta(t, 1.0, scores[1], 1e-9)
	for i, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, scores[1], "record %d", i)
	}
}

func TestSimilarityNoOverlap(t *testing.T) {
	idx := Build(corpus)

	assert.Equal(t, []float64{0, 0, 0}, idx.Similarity("sushi wasabi"))
	assert.Equal(t, []float64{0, 0, 0}, idx.Similarity(""))
	assert.Equal(t, []float64{0, 0, 0}, idx.Similarity("the and of"))
}

func TestSimilarityRanking(t *testing.T) {
	idx := Build(corpus)

	scores := idx.Similarity("quick beef stew")
	assert.Greater(t, scores[1], scores[0])
	assert.Greater(t, scores[1], scores[2])
	assert.Zero(t, scores[0])

	// 兩筆共有的詞彙權重較低
	eggs := idx.Similarity("eggs")
	assert.Greater(t, eggs[0], 0.0)
	assert.Greater(t, eggs[2], 0.0)
	assert.Zero(t, eggs[1])
}

func TestSimilarityDeterministic(t *testing.T) {
	a := Build(corpus).Similarity("eggs cake bake")
	b := Build(corpus).Similarity("eggs cake bake")
	assert.Equal(t, a, b)
}

func TestSimilarityConcurrentReaders(t *testing.T) {
	idx := Build(corpus)
	want := idx.Similarity("beef carrots")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, idx.Similarity("beef carrots"))
		}()
	}
	wg.Wait()
}

func TestBuildStats(t *testing.T) {
	idx := Build(corpus)
	assert.Equal(t, 3, idx.Len())
	// "eggs" 出現兩次但只計一次
	assert.Equal(t, 18, idx.VocabularySize())

	empty := Build(nil)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.VocabularySize())
	assert.Empty(t, empty.Similarity("anything"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"crème", "brûlée", "350", "oven"},
		tokenize("The Crème Brûlée, at 350 in a oven!"))
}
