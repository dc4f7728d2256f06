package index

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]{2,}`)

// entry 稀疏向量中的一個詞項
type entry struct {
	term   int
	weight float64
}

// Index TF-IDF 相似度索引，建立後唯讀，可供多個 goroutine 同時查詢
type Index struct {
	vocabulary map[string]int
	idf        []float64
	docs       [][]entry
}

// Build 以語料建立索引；詞彙表排序以確保結果可重現
func Build(corpus []string) *Index {
	docTokens := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, text := range corpus {
		tokens := tokenize(text)
		docTokens[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	idx := &Index{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		docs:       make([][]entry, len(corpus)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		idx.vocabulary[term] = i
		// 平滑 IDF
		idx.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	for i, tokens := range docTokens {
		idx.docs[i] = idx.vectorize(tokens)
	}
	return idx
}

// Similarity 回傳查詢與每筆文件的餘弦相似度，順序與語料相同
func (idx *Index) Similarity(query string) []float64 {
	scores := make([]float64, len(idx.docs))

	q := idx.vectorize(tokenize(query))
	if len(q) == 0 {
		return scores
	}
	weights := make(map[int]float64, len(q))
	for _, e := range q {
		weights[e.term] = e.weight
	}

	for i, doc := range idx.docs {
		var dot float64
		for _, e := range doc {
			if w, ok := weights[e.term]; ok {
				dot += e.weight * w
			}
		}
		scores[i] = clamp(dot)
	}
	return scores
}

// Len 已索引的文件數
func (idx *Index) Len() int {
	return len(idx.docs)
}

// VocabularySize 詞彙表大小
func (idx *Index) VocabularySize() int {
	return len(idx.vocabulary)
}

// vectorize 以原始詞頻乘上 IDF 並做 L2 正規化；不在詞彙表中的詞忽略
func (idx *Index) vectorize(tokens []string) []entry {
	counts := make(map[int]int)
	for _, tok := range tokens {
		if t, ok := idx.vocabulary[tok]; ok {
			counts[t]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	vec := make([]entry, 0, len(counts))
	for t, c := range counts {
		vec = append(vec, entry{term: t, weight: float64(c) * idx.idf[t]})
	}
	// 依詞項排序後再累加，浮點結果才會固定
	sort.Slice(vec, func(i, j int) bool { return vec[i].term < vec[j].term })

	var norm float64
	for _, e := range vec {
		norm += e.weight * e.weight
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].weight /= norm
	}
	return vec
}

func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := englishStopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// clamp 修正浮點誤差，使分數落在 [0, 1]
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
