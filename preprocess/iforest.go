package preprocess

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// IsolationForest removes outliers from the training data the same way the
// training pipeline always has: random isolation trees, path-length anomaly
// scores, and a contamination-quantile cutoff. A fixed seed keeps runs
// reproducible.
type IsolationForest struct {
	NumTrees      int
	SampleSize    int
	Contamination float64
	Seed          int64

	trees     []*isolationTreeNode
	maxDepth  int
	threshold float64
	fitted    bool
}

type isolationTreeNode struct {
	feature int
	split   float64
	left    *isolationTreeNode
	right   *isolationTreeNode
	size    int
	leaf    bool
}

// NewIsolationForest constructs a forest with the given parameters.
func NewIsolationForest(numTrees, sampleSize int, contamination float64, seed int64) *IsolationForest {
	return &IsolationForest{
		NumTrees:      numTrees,
		SampleSize:    sampleSize,
		Contamination: contamination,
		Seed:          seed,
	}
}

// Fit builds the isolation trees on subsamples of the data and fixes the
// anomaly threshold at the contamination quantile of the training scores.
func (f *IsolationForest) Fit(data [][]float64) error {
	if len(data) == 0 {
		return fmt.Errorf("isolation forest needs at least one row")
	}
	if f.Contamination <= 0 || f.Contamination >= 1 {
		return fmt.Errorf("contamination must be in (0, 1), got %f", f.Contamination)
	}

	sampleSize := f.SampleSize
	if sampleSize <= 0 || sampleSize > len(data) {
		sampleSize = len(data)
	}
	f.maxDepth = int(math.Ceil(math.Log2(float64(sampleSize)))) + 1

	rng := rand.New(rand.NewSource(f.Seed))
	f.trees = make([]*isolationTreeNode, f.NumTrees)
	for i := 0; i < f.NumTrees; i++ {
		sample := subsample(rng, data, sampleSize)
		f.trees[i] = buildIsolationTree(rng, sample, 0, f.maxDepth)
	}
	f.fitted = true

	scores := f.Scores(data)
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	// Rows scoring above the (1 - contamination) quantile are outliers.
	cut := int(math.Floor(float64(len(sorted)) * (1 - f.Contamination)))
	if cut >= len(sorted) {
		cut = len(sorted) - 1
	}
	f.threshold = sorted[cut]

	return nil
}

// Scores returns the anomaly score in [0, 1] for every row; higher means
// more anomalous.
func (f *IsolationForest) Scores(data [][]float64) []float64 {
	scores := make([]float64, len(data))
	norm := averagePathLength(float64(f.sampleSizeUsed()))
	for i, point := range data {
		sum := 0.0
		for _, tree := range f.trees {
			sum += pathLength(tree, point, 0)
		}
		avg := sum / float64(len(f.trees))
		scores[i] = math.Pow(2, -avg/norm)
	}
	return scores
}

// Predict labels each row 1 for inliers and -1 for outliers, matching the
// sklearn convention the training pipeline filtered on.
func (f *IsolationForest) Predict(data [][]float64) ([]int, error) {
	if !f.fitted {
		return nil, fmt.Errorf("isolation forest is not fitted")
	}
	scores := f.Scores(data)
	labels := make([]int, len(scores))
	for i, s := range scores {
		if s > f.threshold {
			labels[i] = -1
		} else {
			labels[i] = 1
		}
	}
	return labels, nil
}

func (f *IsolationForest) sampleSizeUsed() int {
	if f.SampleSize > 0 {
		return f.SampleSize
	}
	return 256
}

func subsample(rng *rand.Rand, data [][]float64, size int) [][]float64 {
	if size >= len(data) {
		return data
	}
	perm := rng.Perm(len(data))
	sample := make([][]float64, size)
	for i := 0; i < size; i++ {
		sample[i] = data[perm[i]]
	}
	return sample
}

func buildIsolationTree(rng *rand.Rand, sample [][]float64, depth, maxDepth int) *isolationTreeNode {
	if len(sample) <= 1 || depth >= maxDepth {
		return &isolationTreeNode{leaf: true, size: len(sample)}
	}

	numFeatures := len(sample[0])
	feature := rng.Intn(numFeatures)

	lo, hi := sample[0][feature], sample[0][feature]
	for _, point := range sample {
		if point[feature] < lo {
			lo = point[feature]
		}
		if point[feature] > hi {
			hi = point[feature]
		}
	}
	if lo == hi {
		return &isolationTreeNode{leaf: true, size: len(sample)}
	}

	split := lo + rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, point := range sample {
		if point[feature] < split {
			left = append(left, point)
		} else {
			right = append(right, point)
		}
	}

	return &isolationTreeNode{
		feature: feature,
		split:   split,
		left:    buildIsolationTree(rng, left, depth+1, maxDepth),
		right:   buildIsolationTree(rng, right, depth+1, maxDepth),
	}
}

func pathLength(node *isolationTreeNode, point []float64, depth float64) float64 {
	if node.leaf {
		if node.size <= 1 {
			return depth
		}
		return depth + averagePathLength(float64(node.size))
	}
	if point[node.feature] < node.split {
		return pathLength(node.left, point, depth+1)
	}
	return pathLength(node.right, point, depth+1)
}

const eulerMascheroni = 0.5772156649

// averagePathLength is c(n), the expected path length of an unsuccessful
// BST search, used to normalize isolation depths.
func averagePathLength(n float64) float64 {
	if n <= 1 {
		return 0
	}
	return 2*(math.Log(n-1)+eulerMascheroni) - 2*(n-1)/n
}
