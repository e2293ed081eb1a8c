package usecase

// AllocationInput is one debt taking part in a net amount allocation.
type AllocationInput struct {
	Key    string
	Amount int64
}

// AllocationShare is the part of the net amount attributed to a debt.
type AllocationShare struct {
	Key   string
	Share int64
}

// AllocateNetAmount spreads net across the inputs in proportion to their
// amounts.
//
// A nil or non-positive net means the gateway reported no settlement figure:
// the result is nil and every debt keeps its face amount. Inputs with a
// non-positive amount are excluded and get no share. Every share except the
// last is floored; the last one takes the remainder so the shares always add
// up to net.
func AllocateNetAmount(inputs []AllocationInput, net *int64) []AllocationShare {
	if net == nil || *net <= 0 {
		return nil
	}

	eligible := make([]AllocationInput, 0, len(inputs))
	var total int64
	for _, in := range inputs {
		if in.Amount <= 0 {
			continue
		}
		eligible = append(eligible, in)
		total += in.Amount
	}
	if total <= 0 {
		return nil
	}

	shares := make([]AllocationShare, 0, len(eligible))
	var assigned int64
	for i, in := range eligible {
		var share int64
		if i == len(eligible)-1 {
			share = *net - assigned
		} else {
			share = mulDiv(*net, in.Amount, total)
		}
		if share < 0 {
			share = 0
		}
		assigned += share
		shares = append(shares, AllocationShare{Key: in.Key, Share: share})
	}
	return shares
}

// mulDiv returns floor(a*b/c) for non-negative operands without overflowing
// on realistic CLP amounts.
func mulDiv(a, b, c int64) int64 {
	q, r := a/c, a%c
	return q*b + (r*b)/c
}
