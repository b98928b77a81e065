package assign

import (
	"math"

	"github.com/trafficlab/wardrop/flows"
	"github.com/trafficlab/wardrop/paths"
)

// NashEqualSplit approximates selfish routing by dividing demand evenly
// across all enumerated paths: each path receives demand/len(ps).
//
// A true Wardrop equilibrium equalizes marginal travel time across used
// paths; the equal split is a deliberate, simpler stand-in and callers
// comparing it against SocialOptimum should treat it as such.
//
// Zero paths yield an empty vector (never a division by zero); a negative
// or NaN demand yields ErrNegativeDemand.
func NashEqualSplit(ps []paths.Path, demand float64) (flows.PathFlows, error) {
	if math.IsNaN(demand) || demand < 0 {
		return nil, ErrNegativeDemand
	}
	if len(ps) == 0 {
		return flows.PathFlows{}, nil
	}

	share := demand / float64(len(ps))
	pf := make(flows.PathFlows, len(ps))
	for i := range pf {
		pf[i] = share
	}

	return pf, nil
}
