// Package advisor suggests a tariff classification code for a free-text
// product description via a natural-language completion service.
package advisor

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/OLVCORE/smartimport/internal/domain/treatment"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// Completer is the completion-service dependency: one prompt in, reply text
// out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// codePattern matches an 8-digit classification with or without the usual
// XXXX.XX.XX punctuation.
var codePattern = regexp.MustCompile(`\d{4}\.?\d{2}\.?\d{2}`)

// Suggestion is the advisor's answer.  Found is false when the reply text
// carried no recognizable code — a recoverable outcome, not a hard error.
type Suggestion struct {
	Code    string `json:"code,omitempty"`
	Found   bool   `json:"found"`
	RawText string `json:"raw_text"`
}

// Advisor turns product descriptions into best-guess classification codes.
// Its output is advisory input to the validation flow, never authoritative.
type Advisor struct {
	completer Completer
	logger    logging.Logger
}

// New wires an Advisor over a Completer.
func New(completer Completer, logger logging.Logger) *Advisor {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Advisor{completer: completer, logger: logger.Named("advisor")}
}

// Suggest asks the completion service for a classification code.  specs is an
// optional set of structured characteristics added to the prompt.  A reply
// with no extractable code yields Found=false and no error; only transport
// and malformed-response failures surface as errors.
func (a *Advisor) Suggest(ctx context.Context, description string, specs map[string]string) (*Suggestion, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.InvalidParam("product description is required")
	}

	reply, err := a.completer.Complete(ctx, buildPrompt(description, specs))
	if err != nil {
		return nil, err
	}

	code, found := extractCode(reply)
	if !found {
		a.logger.Info("completion reply carried no classification code",
			logging.String("description", description),
		)
		return &Suggestion{Found: false, RawText: reply}, nil
	}

	a.logger.Info("classification suggested",
		logging.String("description", description),
		logging.String("code", code),
	)
	return &Suggestion{Code: code, Found: true, RawText: reply}, nil
}

// buildPrompt assembles the single free-text prompt sent to the service.
func buildPrompt(description string, specs map[string]string) string {
	var b strings.Builder
	b.WriteString("Você é um especialista em classificação fiscal de mercadorias. ")
	b.WriteString("Informe o código NCM de 8 dígitos mais adequado para o produto abaixo. ")
	b.WriteString("Responda apenas com o código no formato XXXX.XX.XX.\n\n")
	b.WriteString("Produto: ")
	b.WriteString(description)

	if len(specs) > 0 {
		keys := make([]string, 0, len(specs))
		for k := range specs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("\nCaracterísticas:")
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("\n- %s: %s", k, specs[k]))
		}
	}
	return b.String()
}

// extractCode scans reply text for the first 8-digit pattern and normalizes
// away the punctuation.
func extractCode(text string) (string, bool) {
	match := codePattern.FindString(text)
	if match == "" {
		return "", false
	}
	code := treatment.NormalizeClassificationCode(match)
	if !treatment.IsValidClassificationCode(code) {
		return "", false
	}
	return code, true
}

//Personal.AI order the ending
