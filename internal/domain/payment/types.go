package payment

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// Committed reports whether the payment counts toward the reservation's
// committed sum (the total-amount bound applies to pending and paid).
func (s Status) Committed() bool {
	return s == StatusPending || s == StatusPaid
}

type Method string

const (
	MethodPix    Method = "pix"
	MethodCard   Method = "card"
	MethodCash   Method = "cash"
	MethodBoleto Method = "boleto"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodPix, MethodCard, MethodCash, MethodBoleto:
		return true
	default:
		return false
	}
}

// Purpose is informational only; it is never enforced against amounts.
type Purpose string

const (
	PurposeDeposit Purpose = "deposit"
	PurposeBalance Purpose = "balance"
)

func (p Purpose) String() string {
	return string(p)
}

func (p Purpose) IsValid() bool {
	switch p {
	case PurposeDeposit, PurposeBalance:
		return true
	default:
		return false
	}
}
