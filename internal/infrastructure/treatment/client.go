// Package treatment implements the HTTP client for the official tax-treatment
// authority, translating its wire shapes into the domain model with a strict
// parse that fails closed on unexpected responses.
package treatment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/OLVCORE/smartimport/internal/config"
	domain "github.com/OLVCORE/smartimport/internal/domain/treatment"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// operationDateLayout is the authority's request date format.
const operationDateLayout = "2006-01-02"

const maxErrorBody = 512

// lookupPayload is the authority's request body.  Field names are a
// bit-exact wire contract.
type lookupPayload struct {
	ClassificationCode string `json:"classificationCode"`
	CountryCode        string `json:"countryCode"`
	OperationDate      string `json:"operationDate"`
	OperationType      string `json:"operationType"`
}

// Wire shapes of the authority's success response.
type wireResponse struct {
	OfficialDescription string               `json:"officialDescription"`
	Treatments          []wireTreatment      `json:"treatments"`
	LegalBases          []wireLegalBasis     `json:"legalBases"`
	Regimes             []wireRegime         `json:"regimes"`
	Attributes          []wireAttribute      `json:"attributes"`
	CalculatedDuties    []wireCalculatedDuty `json:"calculatedDuties"`
}

type wireTreatment struct {
	DutyKind      string   `json:"dutyKind"`
	RegimeName    string   `json:"regimeName"`
	LegalBasisRef string   `json:"legalBasisRef"`
	AttributeRefs []string `json:"attributeRefs"`
}

type wireLegalBasis struct {
	Ref         string `json:"ref"`
	Description string `json:"description"`
}

type wireRegime struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type wireAttribute struct {
	Ref   string `json:"ref"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type wireCalculatedDuty struct {
	DutyKind string `json:"dutyKind"`
	Rate     string `json:"rate"`
	Amount   string `json:"amount"`
}

// Client calls the tax authority.  It implements domain.LookupClient and
// performs exactly one outbound request per Lookup; retry policy belongs to
// callers.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient builds a Client from configuration.
func NewClient(cfg *config.TaxAuthorityConfig, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("tax-authority"),
	}
}

// Lookup implements domain.LookupClient.
func (c *Client) Lookup(ctx context.Context, req domain.LookupRequest) (*domain.TaxTreatment, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload := lookupPayload{
		ClassificationCode: req.ClassificationCode,
		CountryCode:        req.CountryCode,
		OperationDate:      req.OperationDate.Format(operationDateLayout),
		OperationType:      req.OperationType.Wire(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode lookup request")
	}

	endpoint := c.baseURL + "/tratamento-tributario"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build lookup request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTreatmentLookupFailed, "tax-authority request failed").
			WithDetail("endpoint=" + endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(errors.ErrCodeTreatmentNotFound, "no tax treatment for classification code").
			WithDetail("code=" + req.ClassificationCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.New(errors.ErrCodeTreatmentLookupFailed,
			fmt.Sprintf("tax authority returned status %d", resp.StatusCode)).
			WithDetail(string(upstream))
	}

	var wire wireResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&wire); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTreatmentResponseInvalid, "failed to decode tax-authority response")
	}

	tt := toDomain(req, wire)
	if err := tt.Validate(); err != nil {
		return nil, err
	}

	c.logger.Debug("tax treatment retrieved",
		logging.String("code", req.ClassificationCode),
		logging.Int("treatments", len(tt.Treatments)),
	)
	return tt, nil
}

// toDomain maps the wire response onto the immutable domain record.
func toDomain(req domain.LookupRequest, wire wireResponse) *domain.TaxTreatment {
	tt := &domain.TaxTreatment{
		ClassificationCode:  req.ClassificationCode,
		CountryCode:         req.CountryCode,
		OperationDate:       req.OperationDate,
		OperationType:       req.OperationType,
		OfficialDescription: wire.OfficialDescription,
		Treatments:          make([]domain.Treatment, 0, len(wire.Treatments)),
		LegalBases:          make([]domain.LegalBasis, 0, len(wire.LegalBases)),
		Regimes:             make([]domain.Regime, 0, len(wire.Regimes)),
		Attributes:          make([]domain.Attribute, 0, len(wire.Attributes)),
		CalculatedDuties:    make([]domain.CalculatedDuty, 0, len(wire.CalculatedDuties)),
		RetrievedAt:         time.Now().UTC(),
	}
	for _, w := range wire.Treatments {
		tt.Treatments = append(tt.Treatments, domain.Treatment{
			DutyKind:      w.DutyKind,
			RegimeName:    w.RegimeName,
			LegalBasisRef: w.LegalBasisRef,
			AttributeRefs: w.AttributeRefs,
		})
	}
	for _, w := range wire.LegalBases {
		tt.LegalBases = append(tt.LegalBases, domain.LegalBasis{Ref: w.Ref, Description: w.Description})
	}
	for _, w := range wire.Regimes {
		tt.Regimes = append(tt.Regimes, domain.Regime{Code: w.Code, Name: w.Name, Description: w.Description})
	}
	for _, w := range wire.Attributes {
		tt.Attributes = append(tt.Attributes, domain.Attribute{Ref: w.Ref, Name: w.Name, Value: w.Value})
	}
	for _, w := range wire.CalculatedDuties {
		tt.CalculatedDuties = append(tt.CalculatedDuties, domain.CalculatedDuty{DutyKind: w.DutyKind, Rate: w.Rate, Amount: w.Amount})
	}
	return tt
}

//Personal.AI order the ending
