package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
)

func TestNewRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"config", "log-level", "output", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "smartimport", cmd.Use)
}

func TestRegisterCommands_SkipsNilDependencies(t *testing.T) {
	cmd := NewRootCommand()
	RegisterCommands(cmd, CommandDependencies{Logger: logging.NewNopLogger()})

	assert.Empty(t, cmd.Commands())
}

func TestRegisterCommands_AddsBenefits(t *testing.T) {
	cmd := NewRootCommand()
	catalog := benefit.NewCatalog()
	RegisterCommands(cmd, CommandDependencies{
		Logger:     logging.NewNopLogger(),
		Catalog:    catalog,
		Aggregator: benefit.NewAggregator(catalog, logging.NewNopLogger()),
	})

	require.Len(t, cmd.Commands(), 1)
	assert.Equal(t, "benefits", cmd.Commands()[0].Use)
}

func TestParseKeyValuePairs(t *testing.T) {
	pairs, err := parseKeyValuePairs([]string{"marca=ACME", "modelo=X1"})
	require.NoError(t, err)
	assert.Equal(t, "ACME", pairs["marca"])
	assert.Equal(t, "X1", pairs["modelo"])
}

func TestParseKeyValuePairs_Invalid(t *testing.T) {
	_, err := parseKeyValuePairs([]string{"sem-igual"})
	assert.Error(t, err)
}

func TestParseKeyValuePairs_Empty(t *testing.T) {
	pairs, err := parseKeyValuePairs(nil)
	require.NoError(t, err)
	assert.Nil(t, pairs)
}

func TestBenefitsRegionsCommand(t *testing.T) {
	catalog := benefit.NewCatalog()
	root := NewRootCommand()
	RegisterCommands(root, CommandDependencies{
		Logger:     logging.NewNopLogger(),
		Catalog:    catalog,
		Aggregator: benefit.NewAggregator(catalog, logging.NewNopLogger()),
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"benefits", "regions"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "AM")
}

func TestBenefitsEstimateCommand(t *testing.T) {
	catalog := benefit.NewCatalog()
	root := NewRootCommand()
	RegisterCommands(root, CommandDependencies{
		Logger:     logging.NewNopLogger(),
		Catalog:    catalog,
		Aggregator: benefit.NewAggregator(catalog, logging.NewNopLogger()),
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"benefits", "estimate",
		"--fob", "100000",
		"--region", "AM",
		"--incentive", "zona-franca-manaus",
		"--regime", "drawback",
	})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "60000")
}

//Personal.AI order the ending
