package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	apperrors "github.com/OLVCORE/smartimport/pkg/errors"
)

type mockCompleter struct {
	reply      string
	err        error
	lastPrompt string
}

func (m *mockCompleter) Complete(_ context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func TestSuggestExtractsPunctuatedCode(t *testing.T) {
	c := &mockCompleter{reply: "O código NCM mais adequado é 8517.12.00."}
	s, err := New(c, logging.NewNopLogger()).Suggest(context.Background(), "smartphone 5G", nil)
	require.NoError(t, err)
	assert.True(t, s.Found)
	assert.Equal(t, "85171200", s.Code)
	assert.Equal(t, c.reply, s.RawText)
}

func TestSuggestExtractsBareCode(t *testing.T) {
	c := &mockCompleter{reply: "85171200"}
	s, err := New(c, logging.NewNopLogger()).Suggest(context.Background(), "smartphone 5G", nil)
	require.NoError(t, err)
	assert.True(t, s.Found)
	assert.Equal(t, "85171200", s.Code)
}

func TestSuggestNoCodeIsRecoverable(t *testing.T) {
	c := &mockCompleter{reply: "Preciso de mais detalhes sobre o produto para classificar."}
	s, err := New(c, logging.NewNopLogger()).Suggest(context.Background(), "coisa", nil)
	require.NoError(t, err, "absence of a code is not a hard error")
	assert.False(t, s.Found)
	assert.Empty(t, s.Code)
	assert.NotEmpty(t, s.RawText)
}

func TestSuggestTransportErrorSurfaces(t *testing.T) {
	c := &mockCompleter{err: apperrors.New(apperrors.ErrCodeAdvisorUnavailable, "timeout")}
	_, err := New(c, logging.NewNopLogger()).Suggest(context.Background(), "smartphone", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeAdvisorUnavailable, apperrors.GetCode(err))
}

func TestSuggestEmptyDescriptionRejected(t *testing.T) {
	c := &mockCompleter{reply: "8517.12.00"}
	_, err := New(c, logging.NewNopLogger()).Suggest(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.Empty(t, c.lastPrompt, "no call on empty description")
}

func TestSuggestPromptCarriesSpecs(t *testing.T) {
	c := &mockCompleter{reply: "8517.12.00"}
	_, err := New(c, logging.NewNopLogger()).Suggest(context.Background(), "smartphone 5G", map[string]string{
		"marca": "Genérica",
		"tela":  "6.5 polegadas",
	})
	require.NoError(t, err)
	assert.Contains(t, c.lastPrompt, "smartphone 5G")
	assert.Contains(t, c.lastPrompt, "marca: Genérica")
	assert.Contains(t, c.lastPrompt, "tela: 6.5 polegadas")
}

func TestExtractCodeVariants(t *testing.T) {
	cases := []struct {
		text  string
		code  string
		found bool
	}{
		{"sugestão: 8517.12.00", "85171200", true},
		{"use 851712.00 por favor", "85171200", true},
		{"o capítulo 85 cobre eletrônicos", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		code, found := extractCode(tc.text)
		assert.Equal(t, tc.found, found, "text %q", tc.text)
		assert.Equal(t, tc.code, code, "text %q", tc.text)
	}
}

//Personal.AI order the ending
