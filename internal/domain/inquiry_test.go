package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestorCloneSharesNoPointers(t *testing.T) {
	subject := "Seed round"
	company := "Example Capital"
	amount := 250000.0
	orig := InvestorInquiry{
		Inquiry:          Inquiry{Name: "Grace Hopper", Subject: &subject},
		Company:          &company,
		InvestmentAmount: &amount,
	}

	c := orig.Clone()
	*c.Subject = "changed"
	*c.Company = "changed"
	*c.InvestmentAmount = -1

	assert.Equal(t, "Seed round", *orig.Subject)
	assert.Equal(t, "Example Capital", *orig.Company)
	assert.InDelta(t, 250000.0, *orig.InvestmentAmount, 0.001)
}

func TestCloneKeepsAbsentFieldsAbsent(t *testing.T) {
	c := InvestorInquiry{Inquiry: Inquiry{Name: "No Company"}}.Clone()
	assert.Nil(t, c.Subject)
	assert.Nil(t, c.Company)
	assert.Nil(t, c.InvestmentAmount)

	name := "System Administrator"
	acc := Account{Username: "admin", DisplayName: &name}
	cloned := acc.Clone()
	require.NotNil(t, cloned.DisplayName)
	*cloned.DisplayName = "changed"
	assert.Equal(t, "System Administrator", *acc.DisplayName)
}
