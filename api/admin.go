package api

import (
	"context"
	"time"
)

// AdminStats is the admin console headline, derived client-side from the
// companies list the way the product console does.
type AdminStats struct {
	TotalCompanies  int
	ActiveCompanies int
	PendingApproval int
}

// OnboardingStep names the next step a pending company is waiting on.
type OnboardingStep string

const (
	// StepContract: the contract has not been signed yet.
	StepContract OnboardingStep = "contract"
	// StepPayment: the contract is signed but payment is not active.
	StepPayment OnboardingStep = "payment"
	// StepValidation: contract and payment are done; admin review remains.
	StepValidation OnboardingStep = "validation"
)

// PendingAction is one entry of the admin approval queue.
type PendingAction struct {
	CompanyID   string
	CompanyName string
	TaxID       string
	Step        OnboardingStep
	Date        time.Time
}

// AdminStats derives the console headline from the full companies list: a
// company counts as active when its payment is active, and as pending until
// an admin has verified it.
func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	companies, err := c.Companies(ctx)
	if err != nil {
		return nil, err
	}

	stats := &AdminStats{TotalCompanies: len(companies)}
	for _, company := range companies {
		if company.PaymentActive {
			stats.ActiveCompanies++
		}
		if !company.AdminVerified {
			stats.PendingApproval++
		}
	}
	return stats, nil
}

// PendingQueue lists unverified companies with their inferred onboarding
// step: contract first, then payment, then admin validation.
func (c *Client) PendingQueue(ctx context.Context) ([]PendingAction, error) {
	companies, err := c.Companies(ctx)
	if err != nil {
		return nil, err
	}

	var queue []PendingAction
	for _, company := range companies {
		if company.AdminVerified {
			continue
		}
		step := StepValidation
		switch {
		case !company.ContractSigned:
			step = StepContract
		case !company.PaymentActive:
			step = StepPayment
		}
		name := company.LegalName
		if name == "" {
			name = company.TradeName
		}
		queue = append(queue, PendingAction{
			CompanyID:   company.ID,
			CompanyName: name,
			TaxID:       company.TaxID,
			Step:        step,
			Date:        company.CreatedAt,
		})
	}
	return queue, nil
}
