package http

import (
	"context"
	"log"
	"net/http"

	"ledgerly/internal/domain/bankaccount"
	"ledgerly/internal/domain/banktransaction"
)

type AccountSummarizer interface {
	Summary(ctx context.Context, userID int64) ([]bankaccount.Summary, error)
}

type RecentTransactionLister interface {
	Recent(ctx context.Context, userID int64) ([]*banktransaction.Transaction, error)
}

// BankingHandler serves the read-only banking views that sit beside the CRUD routes.
type BankingHandler struct {
	accounts     AccountSummarizer
	transactions RecentTransactionLister
}

func NewBankingHandler(accounts AccountSummarizer, transactions RecentTransactionLister) *BankingHandler {
	return &BankingHandler{accounts: accounts, transactions: transactions}
}

// HandleAccountSummary returns [{name, balance}] for the caller's accounts.
func (h *BankingHandler) HandleAccountSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.accounts.Summary(r.Context(), userID)
	if err != nil {
		log.Printf("Error summarizing bank accounts for user %d: %v", userID, err)
		writeServiceError(w, err, BankAccountLabels.NotFound)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleRecentTransactions returns the caller's five newest transactions.
func (h *BankingHandler) HandleRecentTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	txs, err := h.transactions.Recent(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing recent transactions for user %d: %v", userID, err)
		writeServiceError(w, err, BankTransactionLabels.NotFound)
		return
	}

	writeJSON(w, http.StatusOK, txs)
}
