package dataset

import (
	"golang.org/x/exp/constraints"
)

// Summary describes one numeric column.
type Summary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// Summarize computes the summary of values. The zero Summary is returned for an
// empty slice.
func Summarize[T constraints.Integer | constraints.Float](values []T) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{Count: len(values), Min: float64(values[0]), Max: float64(values[0])}
	sum := 0.0
	for _, v := range values {
		f := float64(v)
		if f < s.Min {
			s.Min = f
		}
		if f > s.Max {
			s.Max = f
		}
		sum += f
	}
	s.Mean = sum / float64(len(values))
	return s
}

// SummarizeEvaluations summarizes the feature and label columns of rows.
func SummarizeEvaluations(rows []Evaluation) map[string]Summary {
	conn := make([]int, len(rows))
	mob := make([]float64, len(rows))
	cent := make([]int, len(rows))
	score := make([]float64, len(rows))
	for i, r := range rows {
		conn[i] = r.Connection
		mob[i] = r.Mobility
		cent[i] = r.Centrality
		score[i] = r.RegressionScore
	}
	return map[string]Summary{
		"connection":       Summarize(conn),
		"mobility":         Summarize(mob),
		"centrality":       Summarize(cent),
		"regression_score": Summarize(score),
	}
}

// SummarizePositions summarizes the ply and move number columns of rows.
func SummarizePositions(rows []PositionRow) map[string]Summary {
	ply := make([]int, len(rows))
	moveNumber := make([]int, len(rows))
	for i, r := range rows {
		ply[i] = r.Ply
		moveNumber[i] = r.MoveNumber
	}
	return map[string]Summary{
		"ply":         Summarize(ply),
		"move_number": Summarize(moveNumber),
	}
}
