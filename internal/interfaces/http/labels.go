package http

var (
	BudgetLabels = Labels{
		Entity:   "Budgeting entry",
		Plural:   "budgeting entries",
		NotFound: "Record not found",
		NotOwned: "Record not found or not yours",
	}
	GoalLabels = Labels{
		Entity:   "Financial goal",
		Plural:   "financial goals",
		NotFound: "Record not found",
		NotOwned: "Record not found or not yours",
	}
	OverviewLabels = Labels{
		Entity:   "Finance overview entry",
		Plural:   "finance overview entries",
		NotFound: "Record not found",
		NotOwned: "Record not found or not yours",
	}
	InvestmentLabels = Labels{
		Entity:   "Investment overview entry",
		Plural:   "investment overview entries",
		NotFound: "Record not found",
		NotOwned: "Record not found or not yours",
	}
	BankAccountLabels = Labels{
		Entity:   "Bank account",
		Plural:   "bank accounts",
		NotFound: "Account not found",
		NotOwned: "Account not found or not yours",
	}
	BankTransactionLabels = Labels{
		Entity:   "Transaction",
		Plural:   "bank transactions",
		NotFound: "Transaction not found",
		NotOwned: "Transaction not found or not yours",
	}
)
