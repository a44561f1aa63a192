package calculation

import (
	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// payment is one month's split of a loan payment.
type payment struct {
	interest  decimal.Decimal
	principal decimal.Decimal
	gross     decimal.Decimal
}

// regime computes the monthly payment for one repayment type. reset marks a
// month in which the balance or the rate changed outside the normal schedule
// (origination, rate reset, prepayment).
type regime interface {
	pay(balance decimal.Decimal, monthsRemaining int, rate decimal.Decimal, reset bool) payment
}

// newRegime returns a fresh regime for one amortization run.
func newRegime(t domain.RepaymentType, principal decimal.Decimal, termMonths int) regime {
	if t == domain.Linear {
		return &linearRegime{
			installment: principal.DivRound(decimal.NewFromInt(int64(termMonths)), calcPlaces),
		}
	}
	return &annuityRegime{}
}

// linearRegime repays a constant share of the original principal each month.
type linearRegime struct {
	installment decimal.Decimal
}

func (l *linearRegime) pay(balance decimal.Decimal, _ int, rate decimal.Decimal, _ bool) payment {
	if !balance.IsPositive() {
		return payment{}
	}
	interest := balance.Mul(rate).Round(calcPlaces)
	principal := decimal.Min(l.installment, balance)
	return payment{interest: interest, principal: principal, gross: principal.Add(interest)}
}

// annuityRegime keeps the payment constant until the next reset, at which
// point it is recomputed from the remaining balance and months.
type annuityRegime struct {
	payment decimal.Decimal
	set     bool
}

func (a *annuityRegime) pay(balance decimal.Decimal, monthsRemaining int, rate decimal.Decimal, reset bool) payment {
	if !balance.IsPositive() {
		return payment{}
	}
	if reset || !a.set {
		a.payment = annuityPayment(balance, rate, monthsRemaining)
		a.set = true
	}
	interest := balance.Mul(rate).Round(calcPlaces)
	return payment{interest: interest, principal: a.payment.Sub(interest), gross: a.payment}
}

// annuityPayment is the level payment that repays balance over n months at
// monthly rate r. n must be positive.
func annuityPayment(balance, r decimal.Decimal, n int) decimal.Decimal {
	if r.IsZero() {
		return balance.DivRound(decimal.NewFromInt(int64(n)), calcPlaces)
	}
	f := compound(r, n)
	return balance.Mul(r).Mul(f).DivRound(f.Sub(one), calcPlaces)
}

// settle subtracts principal and snaps payoff residues to exactly zero.
func settle(balance, principal decimal.Decimal) decimal.Decimal {
	balance = balance.Sub(principal)
	if balance.LessThan(payoffResidue) {
		return decimal.Zero
	}
	return balance
}

// Amortize produces the month-by-month schedule of a single loan part from
// its start month to the end of its term.
func Amortize(loan domain.LoanPart) domain.LoanSchedule {
	schedule := domain.LoanSchedule{LoanID: loan.ID, Start: loan.StartMonth}
	if loan.TermMonths <= 0 {
		return schedule
	}
	schedule.Months = make([]domain.AmortizationEntry, 0, loan.TermMonths)

	reg := newRegime(loan.Type, loan.Amount, loan.TermMonths)
	balance := loan.Amount
	var prevRate decimal.Decimal

	for i := 0; i < loan.TermMonths; i++ {
		month := loan.StartMonth.AddMonths(i)
		annual := loan.RateForMonth(i)

		// Extra repayments reduce the balance before this month's interest accrues.
		extra := loan.ExtraRepaymentIn(month)
		if !extra.IsZero() {
			balance = balance.Sub(extra)
			if balance.IsNegative() {
				balance = decimal.Zero
			}
		}

		reset := i == 0 || !annual.Equal(prevRate) || !extra.IsZero()
		p := reg.pay(balance, loan.TermMonths-i, monthlyRate(annual), reset)
		balance = settle(balance, p.principal)
		prevRate = annual

		schedule.Months = append(schedule.Months, domain.AmortizationEntry{
			Month:          month,
			Rate:           annual,
			Interest:       p.interest,
			Principal:      p.principal,
			Gross:          p.gross,
			BalanceAfter:   balance,
			ExtraRepayment: extra,
		})
	}
	return schedule
}
