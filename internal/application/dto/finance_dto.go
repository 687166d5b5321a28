package dto

import "github.com/shopspring/decimal"

// ── Requests ──────────────────────────────────────────────────────────────────

// SummaryRequest parámetros para GET /api/finance/summary.
// Todas las dimensiones son opcionales: un campo vacío no restringe.
type SummaryRequest struct {
	UserID    string `query:"user_id"`
	StartDate string `query:"start_date"` // YYYY-MM-DD, inclusive
	EndDate   string `query:"end_date"`   // YYYY-MM-DD, inclusive
}

// RevenueChartRequest parámetros para GET /api/finance/revenue-chart.
type RevenueChartRequest struct {
	UserID      string `query:"user_id"`
	Periods     int    `query:"periods"`     // número de períodos; default 6
	Granularity string `query:"granularity"` // day | month | year; default month
}

// CreateTransactionRequest cuerpo de POST /api/finance/transactions.
type CreateTransactionRequest struct {
	Type        string `json:"type" validate:"required,oneof=income expense"`
	Amount      string `json:"amount" validate:"required"` // decimal como string, ej. "1250.50"
	Description string `json:"description" validate:"omitempty,max=500"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Date        string `json:"date" validate:"required"` // YYYY-MM-DD
	UserID      string `json:"user_id" validate:"omitempty,uuid4"`
}

// UpdateTransactionRequest cuerpo de PUT /api/finance/transactions/:id.
type UpdateTransactionRequest struct {
	Type        string `json:"type" validate:"omitempty,oneof=income expense"`
	Amount      string `json:"amount" validate:"omitempty"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Date        string `json:"date" validate:"omitempty"` // YYYY-MM-DD
}

// ListTransactionsRequest parámetros para GET /api/finance/transactions.
type ListTransactionsRequest struct {
	PageRequest
	UserID    string `query:"user_id"`
	Type      string `query:"type" validate:"omitempty,oneof=income expense"`
	Category  string `query:"category"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// FinancialSummaryDTO respuesta de GET /api/finance/summary.
// NetProfit es siempre TotalIncome - TotalExpenses, por construcción.
type FinancialSummaryDTO struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	IncomeCount   int             `json:"income_count"`
	ExpenseCount  int             `json:"expense_count"`
}

// RevenueBucketDTO un período del gráfico de ingresos/gastos.
type RevenueBucketDTO struct {
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// TransactionDTO representación de salida de una transacción.
type TransactionDTO struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Date        string          `json:"date"` // YYYY-MM-DD
}
