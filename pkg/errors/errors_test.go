package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(ErrCodeExchangeQuoteNotFound, "no quote for USD")

	assert.Equal(t, ErrCodeExchangeQuoteNotFound, err.Code)
	assert.Contains(t, err.Error(), "FX_002")
	assert.Contains(t, err.Error(), "no quote for USD")
	assert.NotEmpty(t, err.Stack)
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestWrapPreservesCodeWhenUnknown(t *testing.T) {
	inner := New(ErrCodeTreatmentNotFound, "no treatment")
	wrapped := Wrap(inner, CodeUnknown, "lookup layer")

	assert.Equal(t, ErrCodeTreatmentNotFound, wrapped.Code)
	assert.True(t, stderrors.Is(wrapped, wrapped))
	assert.ErrorIs(t, wrapped, inner)
}

func TestWithDetailClones(t *testing.T) {
	base := New(ErrCodeBadRequest, "bad input")
	detailed := base.WithDetail("field=currency")

	assert.Empty(t, base.Detail)
	assert.Equal(t, "field=currency", detailed.Detail)
	assert.Contains(t, detailed.Error(), "field=currency")

	var nilErr *AppError
	assert.Nil(t, nilErr.WithDetail("x"))
}

func TestIsCodeTraversesChain(t *testing.T) {
	inner := New(ErrCodeClassificationCodeInvalid, "7 digits")
	outer := fmt.Errorf("handler: %w", inner)

	assert.True(t, IsCode(outer, ErrCodeClassificationCodeInvalid))
	assert.False(t, IsCode(outer, ErrCodeTreatmentNotFound))
}

func TestIsNotFoundVariants(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"generic", NotFound("x"), true},
		{"exchange quote", New(ErrCodeExchangeQuoteNotFound, "x"), true},
		{"treatment", New(ErrCodeTreatmentNotFound, "x"), true},
		{"simulation", New(ErrCodeSimulationNotFound, "x"), true},
		{"validation", InvalidParam("x"), false},
		{"plain error", stderrors.New("boom"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsNotFound(tc.err))
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("raw")))
	assert.Equal(t, ErrCodeCacheError, GetCode(New(ErrCodeCacheError, "x")))
}

func TestHTTPStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatusForCode(ErrCodeExchangeQuoteNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeClassificationCodeInvalid))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("NOPE_999")))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "FX", ModuleForCode(ErrCodeExchangeQuoteNotFound))
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
}

func TestIsClientServerError(t *testing.T) {
	require.True(t, IsClientError(ErrCodeBadRequest))
	require.False(t, IsClientError(ErrCodeDatabaseError))
	require.True(t, IsServerError(ErrCodeSimulationSaveFailed))
}

//Personal.AI order the ending
