package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"ledgerly/internal/domain/bankaccount"
	"ledgerly/internal/domain/banktransaction"
	"ledgerly/internal/domain/budget"
	"ledgerly/internal/domain/goal"
	"ledgerly/internal/domain/investment"
	"ledgerly/internal/domain/overview"
)

type creator[C any] interface {
	Create(ctx context.Context, userID int64, params C) (int64, error)
}

type seeder struct {
	budgets      creator[budget.CreateParams]
	goals        creator[goal.CreateParams]
	overviews    creator[overview.CreateParams]
	investments  creator[investment.CreateParams]
	accounts     creator[bankaccount.CreateParams]
	transactions creator[banktransaction.CreateParams]
}

func insertAll[C any](ctx context.Context, c creator[C], userID int64, rows []C, what string) (int, error) {
	for i, row := range rows {
		if _, err := c.Create(ctx, userID, row); err != nil {
			return i, fmt.Errorf("failed to insert %s #%d: %w", what, i+1, err)
		}
	}
	return len(rows), nil
}

func (s seeder) seed(ctx context.Context, userID int64) (int, error) {
	total := 0
	steps := []func() (int, error){
		func() (int, error) { return insertAll(ctx, s.budgets, userID, sampleBudgets(), "budgeting entry") },
		func() (int, error) { return insertAll(ctx, s.goals, userID, sampleGoals(), "financial goal") },
		func() (int, error) { return insertAll(ctx, s.overviews, userID, sampleOverviews(), "finance overview") },
		func() (int, error) { return insertAll(ctx, s.investments, userID, sampleInvestments(), "investment") },
		func() (int, error) { return insertAll(ctx, s.accounts, userID, sampleAccounts(), "bank account") },
		func() (int, error) { return insertAll(ctx, s.transactions, userID, sampleTransactions(), "bank transaction") },
	}

	for _, step := range steps {
		n, err := step()
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func str(s string) *string { return &s }

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func date(s string) *civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func sampleBudgets() []budget.CreateParams {
	rows := []struct{ category, amount string }{
		{"Entertainment", "150.00"},
		{"Health Insurance", "400.00"},
		{"Childcare", "600.00"},
		{"Savings", "300.00"},
		{"Pet Care", "120.00"},
		{"Internet", "85.00"},
		{"Groceries", "400.00"},
		{"Gym Membership", "60.00"},
	}
	out := make([]budget.CreateParams, 0, len(rows))
	for _, r := range rows {
		out = append(out, budget.CreateParams{Category: str(r.category), Amount: money(r.amount)})
	}
	return out
}

func sampleGoals() []goal.CreateParams {
	rows := []struct{ goal, target, current, due string }{
		{"Home Down Payment", "20000.00", "7000.00", "2025-12-31"},
		{"New Car", "30000.00", "12000.00", "2026-06-30"},
		{"Wedding Fund", "15000.00", "8000.00", "2024-09-01"},
		{"Retirement Savings", "500000.00", "160000.00", "2050-01-01"},
		{"Family Vacation", "10000.00", "5000.00", "2024-07-15"},
		{"Education Fund", "30000.00", "15000.00", "2030-06-01"},
	}
	out := make([]goal.CreateParams, 0, len(rows))
	for _, r := range rows {
		out = append(out, goal.CreateParams{
			Goal:          str(r.goal),
			TargetAmount:  money(r.target),
			CurrentAmount: money(r.current),
			DueDate:       date(r.due),
		})
	}
	return out
}

func sampleOverviews() []overview.CreateParams {
	rows := []struct{ income, expenses, savings string }{
		{"4800.00", "2400.00", "1200.00"},
		{"5200.00", "2500.00", "1500.00"},
		{"5000.00", "2700.00", "1000.00"},
		{"5400.00", "3000.00", "1400.00"},
		{"5100.00", "2600.00", "1300.00"},
		{"5500.00", "2800.00", "1700.00"},
		{"6000.00", "3200.00", "1800.00"},
	}
	out := make([]overview.CreateParams, 0, len(rows))
	for _, r := range rows {
		out = append(out, overview.CreateParams{Income: money(r.income), Expenses: money(r.expenses), Savings: money(r.savings)})
	}
	return out
}

func sampleInvestments() []investment.CreateParams {
	rows := []struct{ name, amount string }{
		{"Stocks - Tech Giants", "5000.00"},
		{"Bonds - Municipal", "2500.00"},
		{"Mutual Fund - Growth", "4500.00"},
		{"Cryptocurrency - Ethereum", "2000.00"},
		{"Commodities - Gold", "3500.00"},
		{"Private Equity", "8000.00"},
		{"Real Estate - Residential", "12000.00"},
		{"Savings Bonds", "3000.00"},
	}
	out := make([]investment.CreateParams, 0, len(rows))
	for _, r := range rows {
		out = append(out, investment.CreateParams{InvestmentName: str(r.name), Amount: money(r.amount)})
	}
	return out
}

func sampleAccounts() []bankaccount.CreateParams {
	return []bankaccount.CreateParams{
		{Name: str("Checking Account"), Balance: money("2500.00")},
		{Name: str("Savings Account"), Balance: money("15000.00")},
		{Name: str("Investment Account"), Balance: money("50000.00")},
	}
}

func sampleTransactions() []banktransaction.CreateParams {
	rows := []struct{ date, desc, amount, typ, category string }{
		{"2024-12-01", "Grocery Shopping", "75.50", "debit", "Groceries"},
		{"2024-12-02", "Salary", "2000.00", "credit", "Income"},
		{"2024-12-03", "Electricity Bill", "120.00", "debit", "Utilities"},
		{"2024-12-04", "Coffee Shop", "15.75", "debit", "Entertainment"},
		{"2024-12-05", "Freelance Payment", "500.00", "credit", "Income"},
		{"2024-12-06", "Gasoline", "45.20", "debit", "Transport"},
		{"2024-12-07", "Dining Out", "60.00", "debit", "Dining"},
		{"2024-12-08", "Monthly Rent", "1200.00", "debit", "Housing"},
	}
	out := make([]banktransaction.CreateParams, 0, len(rows))
	for _, r := range rows {
		out = append(out, banktransaction.CreateParams{
			TransactionDate: date(r.date),
			Description:     str(r.desc),
			Amount:          money(r.amount),
			TransactionType: str(r.typ),
			Category:        str(r.category),
		})
	}
	return out
}
