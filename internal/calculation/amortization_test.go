package calculation

import (
	"testing"
	"time"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testLoan(id string, typ domain.RepaymentType, amount, rate string, term int) domain.LoanPart {
	return domain.LoanPart{
		ID:                id,
		Name:              id,
		Type:              typ,
		Amount:            dec(amount),
		Rate:              dec(rate),
		FixedPeriodMonths: term,
		StartMonth:        dateutil.NewYearMonth(2024, time.January),
		TermMonths:        term,
	}
}

func TestAmortizeLinear(t *testing.T) {
	loan := testLoan("lin", domain.Linear, "120000", "3", 120)
	s := Amortize(loan)
	require.Len(t, s.Months, 120)

	first := s.Months[0]
	assert.True(t, first.Principal.Equal(dec("1000")))
	assert.True(t, first.Interest.Equal(dec("300")))
	assert.True(t, first.Gross.Equal(dec("1300")))
	assert.True(t, first.BalanceAfter.Equal(dec("119000")))

	for i, e := range s.Months {
		assert.True(t, e.Principal.Equal(dec("1000")), "month %d principal %s", i, e.Principal)
		assert.True(t, e.BalanceAfter.Equal(decimal.NewFromInt(int64(120000-1000*(i+1)))), "month %d", i)
	}
	assert.True(t, s.Months[119].BalanceAfter.IsZero())
	assert.True(t, s.Months[60].Gross.LessThan(s.Months[59].Gross), "linear payments decline")
}

func TestAmortizeAnnuity(t *testing.T) {
	loan := testLoan("ann", domain.Annuity, "300000", "4", 360)
	s := Amortize(loan)
	require.Len(t, s.Months, 360)

	assert.InDelta(t, 1432.25, s.Months[0].Gross.InexactFloat64(), 0.01)
	assert.InDelta(t, 1000.0, s.Months[0].Interest.InexactFloat64(), 1e-9)

	principal := decimal.Zero
	for i, e := range s.Months {
		assert.True(t, e.Gross.Equal(s.Months[0].Gross), "month %d gross changed", i)
		assert.True(t, e.Gross.Equal(e.Interest.Add(e.Principal)), "month %d", i)
		principal = principal.Add(e.Principal)
	}
	assert.True(t, s.Months[359].BalanceAfter.IsZero())
	assert.InDelta(t, 300000.0, principal.InexactFloat64(), 0.01)
}

func TestAmortizeZeroRate(t *testing.T) {
	for _, typ := range []domain.RepaymentType{domain.Annuity, domain.Linear} {
		t.Run(string(typ), func(t *testing.T) {
			s := Amortize(testLoan("zero", typ, "36000", "0", 36))
			require.Len(t, s.Months, 36)
			for _, e := range s.Months {
				assert.True(t, e.Interest.IsZero())
				assert.True(t, e.Gross.Equal(dec("1000")), "gross %s", e.Gross)
			}
			assert.True(t, s.Months[35].BalanceAfter.IsZero())
		})
	}
}

func TestAmortizeRateReset(t *testing.T) {
	loan := testLoan("reset", domain.Annuity, "200000", "3", 360)
	loan.FixedPeriodMonths = 12
	loan.RateAfterFixed = decPtr("5")
	s := Amortize(loan)

	assert.True(t, s.Months[11].Rate.Equal(dec("3")))
	assert.True(t, s.Months[12].Rate.Equal(dec("5")))
	assert.True(t, s.Months[12].Gross.GreaterThan(s.Months[11].Gross))
	assert.True(t, s.Months[13].Gross.Equal(s.Months[12].Gross))
	assert.True(t, s.Months[359].BalanceAfter.IsZero())

	t.Run("without rate after fixed the payment holds", func(t *testing.T) {
		loan := testLoan("hold", domain.Annuity, "200000", "3", 360)
		loan.FixedPeriodMonths = 12
		s := Amortize(loan)
		assert.True(t, s.Months[12].Gross.Equal(s.Months[11].Gross))
		assert.True(t, s.Months[200].Rate.Equal(dec("3")))
	})

	t.Run("fixed period longer than term", func(t *testing.T) {
		loan := testLoan("long", domain.Annuity, "100000", "4", 120)
		loan.FixedPeriodMonths = 240
		loan.RateAfterFixed = decPtr("8")
		s := Amortize(loan)
		for _, e := range s.Months {
			assert.True(t, e.Rate.Equal(dec("4")))
		}
	})
}

func TestAmortizeExtraRepayment(t *testing.T) {
	loan := testLoan("extra", domain.Annuity, "100000", "4", 120)
	prepay := loan.StartMonth.AddMonths(24)
	loan.ExtraRepayments = []domain.ExtraRepayment{
		{Month: prepay, Amount: dec("6000")},
		{Month: prepay, Amount: dec("4000")},
	}
	s := Amortize(loan)

	before := s.Months[23]
	at := s.Months[24]
	assert.True(t, at.ExtraRepayment.Equal(dec("10000")), "same-month repayments sum")
	expectedInterest := before.BalanceAfter.Sub(dec("10000")).Mul(monthlyRate(dec("4"))).Round(calcPlaces)
	assert.True(t, at.Interest.Equal(expectedInterest), "interest accrues on the reduced balance")
	assert.True(t, at.Gross.LessThan(before.Gross), "payment is recomputed after a prepayment")
	assert.True(t, s.Months[119].BalanceAfter.IsZero(), "term is kept")
}

func TestAmortizeFullPrepayment(t *testing.T) {
	for _, typ := range []domain.RepaymentType{domain.Annuity, domain.Linear} {
		t.Run(string(typ), func(t *testing.T) {
			loan := testLoan("full", typ, "50000", "4", 120)
			loan.ExtraRepayments = []domain.ExtraRepayment{{Month: loan.StartMonth.AddMonths(5), Amount: dec("1000000")}}
			s := Amortize(loan)
			require.Len(t, s.Months, 120)
			for i := 5; i < 120; i++ {
				e := s.Months[i]
				assert.True(t, e.Interest.IsZero(), "month %d", i)
				assert.True(t, e.Principal.IsZero(), "month %d", i)
				assert.True(t, e.Gross.IsZero(), "month %d", i)
				assert.True(t, e.BalanceAfter.IsZero(), "month %d", i)
			}
		})
	}
}

func TestAmortizeLinearCapsPrincipal(t *testing.T) {
	loan := testLoan("cap", domain.Linear, "12000", "2", 12)
	loan.ExtraRepayments = []domain.ExtraRepayment{{Month: loan.StartMonth.AddMonths(3), Amount: dec("7500")}}
	s := Amortize(loan)

	// 12000 - 3*1000 - 7500 leaves 1500: one full installment, then a 500 remainder.
	assert.True(t, s.Months[3].Principal.Equal(dec("1000")))
	assert.True(t, s.Months[4].Principal.Equal(dec("500")))
	assert.True(t, s.Months[4].BalanceAfter.IsZero())
	assert.True(t, s.Months[5].Gross.IsZero())
}

func TestLoanScheduleEntry(t *testing.T) {
	loan := testLoan("idx", domain.Annuity, "10000", "5", 12)
	s := Amortize(loan)

	e, ok := s.Entry(loan.StartMonth.AddMonths(3))
	require.True(t, ok)
	assert.Equal(t, loan.StartMonth.AddMonths(3), e.Month)

	_, ok = s.Entry(loan.StartMonth.AddMonths(-1))
	assert.False(t, ok)
	_, ok = s.Entry(loan.StartMonth.AddMonths(12))
	assert.False(t, ok)

	empty := Amortize(testLoan("none", domain.Annuity, "10000", "5", 0))
	assert.Empty(t, empty.Months)
}
