// Package routing resolves the partner responsible for a reported issue.
// Resolution is a pure function over an explicit candidate list so the policy
// can be exercised without storage.
package routing

import (
	"sort"

	"github.com/onetouch-fm/facility-service/internal/domain"
)

// Query is one resolution request. Pinned fields come from the item's manual
// partner override, when present.
type Query struct {
	Category          domain.Category
	CompanyCode       string
	OfficeCode        string
	PinnedPartnerID   *string
	PinnedPartnerName string
}

// Resolution is the outcome. A nil PartnerID means no partner is responsible
// yet; that is a normal terminal state surfaced for manual triage, never an
// error.
type Resolution struct {
	PartnerID   *string
	PartnerName string
}

// Assigned reports whether a partner was found.
func (r Resolution) Assigned() bool {
	return r.PartnerID != nil
}

// ResolvePartner applies the layered routing policy:
//
//  1. a pinned partner on the item wins outright;
//  2. among active contracts for the company covering the category, an
//     office-specific contract for the query's office outranks a company-wide
//     one; ties within a tier break by earliest creation so routing is
//     reproducible for the same inputs;
//  3. no match resolves to unassigned.
func ResolvePartner(contracts []domain.Contract, q Query) Resolution {
	if q.PinnedPartnerID != nil && *q.PinnedPartnerID != "" {
		return Resolution{PartnerID: q.PinnedPartnerID, PartnerName: q.PinnedPartnerName}
	}

	candidates := make([]domain.Contract, 0, len(contracts))
	for _, contract := range contracts {
		if contract.Status != domain.RecordStatusActive {
			continue
		}
		if contract.CompanyCode != q.CompanyCode {
			continue
		}
		if !contract.CoversCategory(q.Category) {
			continue
		}
		if contract.OfficeCode != nil && *contract.OfficeCode != "" && *contract.OfficeCode != q.OfficeCode {
			continue
		}
		candidates = append(candidates, contract)
	}
	if len(candidates) == 0 {
		return Resolution{}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := tierOf(candidates[i]), tierOf(candidates[j])
		if ti != tj {
			return ti < tj
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	winner := candidates[0]
	partnerID := winner.PartnerID
	return Resolution{PartnerID: &partnerID, PartnerName: winner.PartnerName}
}

// tierOf ranks office-specific contracts ahead of company-wide ones.
func tierOf(c domain.Contract) int {
	if c.OfficeCode != nil && *c.OfficeCode != "" {
		return 0
	}
	return 1
}
