package usecase

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func sumShares(shares []AllocationShare) int64 {
	var total int64
	for _, s := range shares {
		total += s.Share
	}
	return total
}

func TestAllocateNetAmount(t *testing.T) {
	t.Run("floors every share but the last", func(t *testing.T) {
		inputs := []AllocationInput{{Key: "a", Amount: 1000}, {Key: "b", Amount: 2000}, {Key: "c", Amount: 3000}}
		shares := AllocateNetAmount(inputs, int64Ptr(5994))

		want := []int64{999, 1998, 2997}
		if len(shares) != len(want) {
			t.Fatalf("expected %d shares, got %d", len(want), len(shares))
		}
		for i, w := range want {
			if shares[i].Share != w || shares[i].Key != inputs[i].Key {
				t.Fatalf("share %d: got %+v, want %d", i, shares[i], w)
			}
		}
	})

	t.Run("last debt absorbs the remainder", func(t *testing.T) {
		inputs := []AllocationInput{{Key: "100", Amount: 5000}, {Key: "101", Amount: 3000}}
		shares := AllocateNetAmount(inputs, int64Ptr(7600))
		if shares[0].Share != 4750 || shares[1].Share != 2850 {
			t.Fatalf("unexpected shares: %+v", shares)
		}

		shares = AllocateNetAmount([]AllocationInput{{Key: "a", Amount: 1}, {Key: "b", Amount: 1}, {Key: "c", Amount: 1}}, int64Ptr(100))
		if shares[0].Share != 33 || shares[1].Share != 33 || shares[2].Share != 34 {
			t.Fatalf("unexpected shares: %+v", shares)
		}
	})

	t.Run("no net amount means no allocation", func(t *testing.T) {
		inputs := []AllocationInput{{Key: "a", Amount: 1000}}
		if got := AllocateNetAmount(inputs, nil); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
		if got := AllocateNetAmount(inputs, int64Ptr(0)); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
		if got := AllocateNetAmount(inputs, int64Ptr(-5)); got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})

	t.Run("non positive amounts are excluded", func(t *testing.T) {
		inputs := []AllocationInput{{Key: "a", Amount: 1000}, {Key: "zero", Amount: 0}, {Key: "b", Amount: 1000}, {Key: "neg", Amount: -10}}
		shares := AllocateNetAmount(inputs, int64Ptr(1500))
		if len(shares) != 2 {
			t.Fatalf("expected 2 shares, got %+v", shares)
		}
		if shares[0].Key != "a" || shares[1].Key != "b" || shares[0].Share != 750 || shares[1].Share != 750 {
			t.Fatalf("unexpected shares: %+v", shares)
		}
		if got := AllocateNetAmount([]AllocationInput{{Key: "zero", Amount: 0}}, int64Ptr(10)); got != nil {
			t.Fatalf("expected nil for all-zero inputs, got %+v", got)
		}
	})

	t.Run("shares always sum to net", func(t *testing.T) {
		amounts := [][]int64{
			{1},
			{7, 13},
			{1000, 2000, 3000},
			{15990, 15990, 15990, 15990},
			{999999, 1, 1},
			{123457, 98765, 5555, 42},
		}
		nets := []int64{1, 2, 3, 99, 100, 7600, 5994, 1000001, 987654321}
		for _, set := range amounts {
			inputs := make([]AllocationInput, len(set))
			for i, a := range set {
				inputs[i] = AllocationInput{Key: string(rune('a' + i)), Amount: a}
			}
			for _, net := range nets {
				shares := AllocateNetAmount(inputs, int64Ptr(net))
				if got := sumShares(shares); got != net {
					t.Fatalf("amounts=%v net=%d: sum %d", set, net, got)
				}
				for _, s := range shares {
					if s.Share < 0 {
						t.Fatalf("amounts=%v net=%d: negative share %+v", set, net, s)
					}
				}
			}
		}
	})
}
