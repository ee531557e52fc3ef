package model

import "sort"

// treeNode is one node of a fitted regression tree. Internal nodes route on
// Feature <= Threshold; leaves carry the mean target of their samples. Nodes
// index into the tree's flat slice, which keeps the structure gob-friendly.
type treeNode struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
	Leaf      bool
}

// regressionTree is a CART regression tree grown by variance reduction.
type regressionTree struct {
	Nodes []treeNode
}

const (
	maxTreeDepth    = 16
	minSamplesSplit = 2
)

// fitTree grows a tree on the sample subset given by idx.
func fitTree(rows [][]float64, targets []float64, idx []int) *regressionTree {
	t := &regressionTree{}
	t.grow(rows, targets, idx, 0)
	return t
}

// grow appends the subtree for idx and returns its node index.
func (t *regressionTree) grow(rows [][]float64, targets []float64, idx []int, depth int) int {
	node := treeNode{Value: meanTarget(targets, idx)}
	self := len(t.Nodes)
	t.Nodes = append(t.Nodes, node)

	if depth >= maxTreeDepth || len(idx) < minSamplesSplit || isPure(targets, idx) {
		t.Nodes[self].Leaf = true
		return self
	}

	feature, threshold, ok := bestSplit(rows, targets, idx)
	if !ok {
		t.Nodes[self].Leaf = true
		return self
	}

	var left, right []int
	for _, i := range idx {
		if rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	t.Nodes[self].Feature = feature
	t.Nodes[self].Threshold = threshold
	t.Nodes[self].Left = t.grow(rows, targets, left, depth+1)
	t.Nodes[self].Right = t.grow(rows, targets, right, depth+1)
	return self
}

// predict walks the tree for a single feature row.
func (t *regressionTree) predict(row []float64) float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Leaf {
			return node.Value
		}
		if row[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

// bestSplit scans every feature and every midpoint between consecutive
// distinct values, picking the split with the lowest weighted squared error.
// Deterministic: ties resolve to the first (lowest feature, lowest threshold)
// candidate.
func bestSplit(rows [][]float64, targets []float64, idx []int) (int, float64, bool) {
	bestErr := splitError(targets, idx)
	bestFeature, bestThreshold := -1, 0.0

	cols := len(rows[idx[0]])
	values := make([]float64, 0, len(idx))

	for f := 0; f < cols; f++ {
		values = values[:0]
		for _, i := range idx {
			values = append(values, rows[i][f])
		}
		sort.Float64s(values)

		for k := 1; k < len(values); k++ {
			if values[k] == values[k-1] {
				continue
			}
			threshold := (values[k] + values[k-1]) / 2

			var leftSum, leftSq, rightSum, rightSq float64
			var leftN, rightN int
			for _, i := range idx {
				y := targets[i]
				if rows[i][f] <= threshold {
					leftSum += y
					leftSq += y * y
					leftN++
				} else {
					rightSum += y
					rightSq += y * y
					rightN++
				}
			}
			if leftN == 0 || rightN == 0 {
				continue
			}

			err := sse(leftSum, leftSq, leftN) + sse(rightSum, rightSq, rightN)
			if err < bestErr {
				bestErr = err
				bestFeature = f
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// sse is the sum of squared errors around the mean, from running sums.
func sse(sum, sumSq float64, n int) float64 {
	return sumSq - sum*sum/float64(n)
}

func splitError(targets []float64, idx []int) float64 {
	var sum, sumSq float64
	for _, i := range idx {
		sum += targets[i]
		sumSq += targets[i] * targets[i]
	}
	return sse(sum, sumSq, len(idx))
}

func meanTarget(targets []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += targets[i]
	}
	return sum / float64(len(idx))
}

func isPure(targets []float64, idx []int) bool {
	first := targets[idx[0]]
	for _, i := range idx[1:] {
		if targets[i] != first {
			return false
		}
	}
	return true
}
