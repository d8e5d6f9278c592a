package payroll

const (
	MethodBankTransfer = "bank_transfer"
	MethodMobileMoney  = "mobile_money"
	MethodCash         = "cash"

	ElementTypeEarning   = "earning"
	ElementTypeDeduction = "deduction"

	DefaultCurrency = "USD"
)
