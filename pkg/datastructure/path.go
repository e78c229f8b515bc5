package datastructure

// StopCandidate boarding/alighting stop near a query point.
type StopCandidate struct {
	StopID       string
	WalkDistance float64
}

// TransitPathResult output of the multi-modal search. Routes[i] is the route used on the hop
// Stops[i] -> Stops[i+1].
type TransitPathResult struct {
	Stops            []string
	Routes           []string
	TotalFare        float64
	WorstCaseSeconds float64
	BestCaseSeconds  float64
	WaitSeconds      float64
	Transfers        int
}

func (r TransitPathResult) WorstCaseMinutes() float64 {
	return r.WorstCaseSeconds / 60
}

func (r TransitPathResult) BestCaseMinutes() float64 {
	return r.BestCaseSeconds / 60
}

func (r TransitPathResult) WaitMinutes() float64 {
	return r.WaitSeconds / 60
}

// CountTransfers distinct routes - 1, never negative.
func CountTransfers(routes []string) int {
	distinct := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		if r == "" {
			continue
		}
		distinct[r] = struct{}{}
	}
	if len(distinct) == 0 {
		return 0
	}
	return len(distinct) - 1
}
