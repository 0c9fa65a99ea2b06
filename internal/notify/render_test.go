package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "250,000.00", FormatAmount(250000))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "1,234,567.89", FormatAmount(1234567.891))
}

func TestRenderGeneralEscapesHTML(t *testing.T) {
	in := generalInquiry()
	in.Message = `<script>alert("hi")</script>`
	subject := "Partnership\r\nBcc: someone@example.com"
	in.Subject = &subject

	c, err := renderGeneral(in)
	require.NoError(t, err)

	assert.Equal(t, "New contact inquiry from Ada Lovelace: Partnership Bcc: someone@example.com", c.Subject)
	assert.NotContains(t, c.HTML, "<script>")
	assert.Contains(t, c.HTML, "&lt;script&gt;")
	assert.Contains(t, c.Text, `<script>alert("hi")</script>`)
	assert.Contains(t, c.Text, "Subject: Partnership")
	assert.Contains(t, c.Text, "Reference: "+in.ID)
}

func TestRenderInvestorOmitsAbsentFields(t *testing.T) {
	in := investorInquiry()
	in.Company = nil
	in.InvestmentAmount = nil

	c, err := renderInvestor(in)
	require.NoError(t, err)

	assert.Equal(t, "New investor inquiry from Grace Hopper", c.Subject)
	assert.NotContains(t, c.Text, "Company:")
	assert.NotContains(t, c.Text, "Amount:")
	assert.NotContains(t, c.HTML, "Investment amount")
}
