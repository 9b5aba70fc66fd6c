// Package gateway issues the outbound REST calls behind the assistant: Odoo
// service lookups, Odoo contract listings, and BCP debt lookups. Every call is
// fire-once with a hard timeout; transport and HTTP failures come back as a
// BackendResult, never as an error.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/fiberlux/odoo-assistant/assistant/contract"
)

const (
	serviceLookupPath = "/sojo/api/v1/ConsultaServicios"
	contractListPath  = "/Contact/api/v1/DetailContract"
	debtLookupPath    = "/ConsultarDeuda"

	// Fixed BCP request constants; the endpoint rejects anything else.
	debtOperationNumber = "01234567"
	debtFinancialEntity = "002"
	debtChannel         = "IB"
	debtServicePEN      = "1001"
	debtServiceUSD      = "1002"

	operationDateLayout = "2006-01-02T15:04:05"

	maxResponseSizeBytes = 2 << 20
)

// Placeholder defaults that must be replaced before the endpoint is usable.
const (
	placeholderServiceToken  = "configura_tu_token_de_servicios"
	placeholderContractToken = "configura_tu_token_de_contratos"
)

// Config is the environment surface for all three endpoints.
type Config struct {
	OdooBaseURL   string        `envconfig:"ODOO_API_BASE_URL" default:"https://testapi.fiberlux.pe"`
	ServiceToken  string        `envconfig:"ODOO_API_TOKEN_SERVICIOS" default:"configura_tu_token_de_servicios"`
	ContractToken string        `envconfig:"ODOO_API_TOKEN_CONTRATOS" default:"configura_tu_token_de_contratos"`
	OdooCookie    string        `envconfig:"ODOO_SESSION_COOKIE" default:"session_id=808254928910e2da70c349ca2b3d9aec2a33ba66"`
	BCPBaseURL    string        `envconfig:"BCP_API_URL" default:"https://api.fiberlux.pe/bcp/api/v1"`
	BCPCookie     string        `envconfig:"BCP_SESSION_COOKIE" default:"session_id=2001d21ad8b5e8fdc798e117fc43a710479df8dc"`
	Timeout       time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
}

// UnconfiguredEndpoints names the endpoints still carrying a placeholder
// credential. Startup refuses to proceed when any remain.
func (c Config) UnconfiguredEndpoints() []string {
	var missing []string
	if token := strings.TrimSpace(c.ServiceToken); token == "" || token == placeholderServiceToken {
		missing = append(missing, "servicios")
	}
	if token := strings.TrimSpace(c.ContractToken); token == "" || token == placeholderContractToken {
		missing = append(missing, "contratos")
	}
	return missing
}

// EndpointConfig describes one backend endpoint. Built once at construction
// and shared read-only by all calls.
type EndpointConfig struct {
	BaseURL        string
	Path           string
	AuthHeaderName string
	AuthToken      string
	ExtraHeaders   map[string]string
}

func (e EndpointConfig) url() string {
	return strings.TrimRight(e.BaseURL, "/") + e.Path
}

// Option customizes a Gateway, mainly for tests.
type Option func(*Gateway)

func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if client != nil {
			g.httpClient = client
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

func WithUUIDSource(newUUID func() string) Option {
	return func(g *Gateway) {
		if newUUID != nil {
			g.newUUID = newUUID
		}
	}
}

// Gateway holds the immutable endpoint table and the shared HTTP client.
// It is safe for concurrent use.
type Gateway struct {
	endpoints  map[contractx.QueryKind]EndpointConfig
	httpClient *http.Client
	now        func() time.Time
	newUUID    func() string
}

var _ contractx.Gateway = (*Gateway)(nil)

func New(cfg Config, opts ...Option) (*Gateway, error) {
	odooBase := strings.TrimSpace(cfg.OdooBaseURL)
	if _, err := url.ParseRequestURI(odooBase); err != nil {
		return nil, fmt.Errorf("%w: odoo base url: %v", contractx.ErrInvalidEndpoint, err)
	}
	bcpBase := strings.TrimSpace(cfg.BCPBaseURL)
	if _, err := url.ParseRequestURI(bcpBase); err != nil {
		return nil, fmt.Errorf("%w: bcp base url: %v", contractx.ErrInvalidEndpoint, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	g := &Gateway{
		endpoints: map[contractx.QueryKind]EndpointConfig{
			contractx.KindServiceLookup: {
				BaseURL:        odooBase,
				Path:           serviceLookupPath,
				AuthHeaderName: "token",
				AuthToken:      strings.TrimSpace(cfg.ServiceToken),
				ExtraHeaders:   map[string]string{"Cookie": cfg.OdooCookie},
			},
			contractx.KindContractList: {
				BaseURL:        odooBase,
				Path:           contractListPath,
				AuthHeaderName: "token",
				AuthToken:      strings.TrimSpace(cfg.ContractToken),
				ExtraHeaders:   map[string]string{"Cookie": cfg.OdooCookie},
			},
			contractx.KindDebtLookup: {
				BaseURL:      bcpBase,
				Path:         debtLookupPath,
				ExtraHeaders: map[string]string{"Cookie": cfg.BCPCookie},
			},
		},
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		newUUID:    uuid.NewString,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g, nil
}

// Execute dispatches q to the operation matching its kind.
func (g *Gateway) Execute(ctx context.Context, q contractx.Query) contractx.BackendResult {
	switch q.Kind {
	case contractx.KindServiceLookup:
		return g.LookupService(ctx, q.ServiceLookup.CompanyID, q.ServiceLookup.ServiceID)
	case contractx.KindContractList:
		return g.ListContracts(ctx, q.ContractList.CompanyID, q.ContractList.NationalID)
	case contractx.KindDebtLookup:
		return g.LookupDebt(ctx, q.DebtLookup.NationalID, q.DebtLookup.Currency)
	default:
		return failure(contractx.ErrUnknownQueryKind.Error())
	}
}

// LookupService queries an Odoo service record by company and service id.
func (g *Gateway) LookupService(ctx context.Context, companyID, serviceID string) contractx.BackendResult {
	body := map[string]any{
		"company_id": companyID,
		"service_id": serviceID,
	}
	return g.post(ctx, contractx.KindServiceLookup, body)
}

// ListContracts queries Odoo contracts attached to a RUC/DNI.
func (g *Gateway) ListContracts(ctx context.Context, companyID, nationalID string) contractx.BackendResult {
	body := map[string]any{
		"company_id":            companyID,
		"number_identification": nationalID,
	}
	return g.post(ctx, contractx.KindContractList, body)
}

// LookupDebt queries BCP debt for a customer in the given currency.
func (g *Gateway) LookupDebt(ctx context.Context, nationalID string, currency contractx.Currency) contractx.BackendResult {
	serviceID := debtServicePEN
	if currency == contractx.CurrencyUSD {
		serviceID = debtServiceUSD
	}
	body := map[string]any{
		"rqUUID":          g.newUUID(),
		"operationDate":   g.now().Format(operationDateLayout),
		"operationNumber": debtOperationNumber,
		"financialEntity": debtFinancialEntity,
		"channel":         debtChannel,
		"serviceId":       serviceID,
		"customerId":      nationalID,
	}
	return g.post(ctx, contractx.KindDebtLookup, body)
}

func (g *Gateway) post(ctx context.Context, kind contractx.QueryKind, body any) contractx.BackendResult {
	endpoint, ok := g.endpoints[kind]
	if !ok {
		return failure(contractx.ErrUnknownQueryKind.Error())
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return failure(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.url(), bytes.NewReader(raw))
	if err != nil {
		return failure(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	if endpoint.AuthHeaderName != "" {
		req.Header.Set(endpoint.AuthHeaderName, endpoint.AuthToken)
	}
	for name, value := range endpoint.ExtraHeaders {
		req.Header.Set(name, value)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Warn().Str("kind", string(kind)).Err(err).Msg("backend call failed")
		return failure(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Str("kind", string(kind)).Int("status", resp.StatusCode).Msg("backend returned non-2xx")
		return failure(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	var decoded any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSizeBytes)).Decode(&decoded); err != nil {
		log.Warn().Str("kind", string(kind)).Err(err).Msg("backend response body is not valid json")
		return failure("invalid response body")
	}

	// Success is the transport/HTTP outcome only; the payload is handed over
	// untouched, whatever success markers it does or does not carry.
	return contractx.BackendResult{Success: true, Payload: decoded}
}

func failure(msg string) contractx.BackendResult {
	return contractx.BackendResult{Success: false, Error: msg}
}
