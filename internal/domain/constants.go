package domain

// CategoryType fixes the sign of every transaction posted under a category.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
	CategoryDebt    CategoryType = "debt"
	CategoryLoan    CategoryType = "loan"
)

// Reserved category names seeded at registration. Repayment/collection children
// are posted under these, which is what gives them the opposite sign of their
// debt/loan parent.
const (
	CategoryNameRepayment  = "Repayment"
	CategoryNameCollection = "Debt Collection"
)

const (
	WalletTypeCash    = "cash"
	WalletTypeBank    = "bank"
	WalletTypeEwallet = "ewallet"
)

const (
	ChatStatusInput = "input"
	ChatStatusAsk   = "ask"
)

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusExpired   = "EXPIRED"
)

const (
	NotifLowBalance       = "LOW_BALANCE"
	NotifPaymentConfirmed = "PAYMENT_CONFIRMED"
)

// How many previous "ask" messages are replayed to the model for context.
const AskHistoryLimit = 10
