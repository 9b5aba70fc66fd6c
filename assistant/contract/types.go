package contract

// QueryKind tags the backend lookup a Query resolves to.
type QueryKind string

const (
	KindServiceLookup QueryKind = "servicio"
	KindContractList  QueryKind = "contrato"
	KindDebtLookup    QueryKind = "deuda"
)

// Currency is the settlement currency for debt lookups.
type Currency string

const (
	CurrencyPEN Currency = "PEN"
	CurrencyUSD Currency = "USD"
)

// DefaultCompanyID is the Odoo company used when the user omits one.
const DefaultCompanyID = "5"

// Query is a validated backend request. Exactly one variant is populated,
// matching Kind; the resolver never constructs a Query from unvalidated input.
type Query struct {
	Kind QueryKind

	ServiceLookup *ServiceLookup
	ContractList  *ContractList
	DebtLookup    *DebtLookup
}

type ServiceLookup struct {
	CompanyID string
	ServiceID string
}

type ContractList struct {
	CompanyID  string
	NationalID string
}

type DebtLookup struct {
	NationalID string
	Currency   Currency
}

func NewServiceLookup(companyID, serviceID string) Query {
	return Query{
		Kind:          KindServiceLookup,
		ServiceLookup: &ServiceLookup{CompanyID: companyID, ServiceID: serviceID},
	}
}

func NewContractList(companyID, nationalID string) Query {
	return Query{
		Kind:         KindContractList,
		ContractList: &ContractList{CompanyID: companyID, NationalID: nationalID},
	}
}

func NewDebtLookup(nationalID string, currency Currency) Query {
	return Query{
		Kind:       KindDebtLookup,
		DebtLookup: &DebtLookup{NationalID: nationalID, Currency: currency},
	}
}

// BackendResult is the normalized outcome of a single backend call attempt.
// Success reflects the transport/HTTP outcome only; the gateway never injects
// success markers into Payload. When Success is false, Error is set and
// Payload must not be trusted for reduction.
type BackendResult struct {
	Success bool
	Payload any
	Error   string
}

// RejectReason classifies why the resolver refused to build a Query.
type RejectReason string

const (
	RejectMissingArgument RejectReason = "missing-argument"
	RejectInvalidArgument RejectReason = "invalid-argument"
	RejectInvalidCurrency RejectReason = "invalid-currency"
	RejectUnrecognized    RejectReason = "unrecognized"
)

// Rejection is the resolver's corrective answer when input does not yield a
// Query. Message is ready for delivery to the user as-is.
type Rejection struct {
	Reason  RejectReason
	Message string
}
