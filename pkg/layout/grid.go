package layout

import qerrors "github.com/quiltviz/quilt/pkg/errors"

// Dims chooses the grid shape for n panels under optional explicit
// counts. With no constraints the heuristic matches automatic
// facet-wrap paneling: among shapes that fit all panels it minimizes
// |nrow*ncol - n| with ncol >= nrow, preferring near-square grids and
// breaking remaining ties toward more columns. Three panels yield
// (1, 3), four yield (2, 2), six yield (2, 3).
func Dims(n, nrow, ncol int) (int, int, error) {
	if n <= 0 {
		return 0, 0, qerrors.New(qerrors.ErrCodeInvalidInput, "no panels to lay out")
	}

	switch {
	case nrow > 0 && ncol > 0:
		if nrow*ncol < n {
			return 0, 0, qerrors.New(qerrors.ErrCodeConstruction,
				"grid %dx%d cannot hold %d panels", nrow, ncol, n)
		}
		return nrow, ncol, nil
	case nrow > 0:
		return nrow, ceilDiv(n, nrow), nil
	case ncol > 0:
		return ceilDiv(n, ncol), ncol, nil
	}

	return autoDims(n)
}

// autoDims scans candidate shapes (r, c) with c >= r and r*c >= n,
// scoring by wasted cells first and squareness second. Larger column
// counts win remaining ties.
func autoDims(n int) (int, int, error) {
	bestR, bestC := 1, n
	bestWaste, bestSkew := n, n // worse than any candidate

	for r := 1; r*r <= n; r++ {
		c := ceilDiv(n, r)
		if c < r {
			c = r
		}
		waste := r*c - n
		skew := c - r
		if waste < bestWaste || (waste == bestWaste && skew < bestSkew) ||
			(waste == bestWaste && skew == bestSkew && c > bestC) {
			bestR, bestC, bestWaste, bestSkew = r, c, waste, skew
		}
	}
	return bestR, bestC, nil
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
