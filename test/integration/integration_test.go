package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rpgo/withdrawal-simulator/internal/calculation"
	"github.com/rpgo/withdrawal-simulator/internal/config"
	"github.com/rpgo/withdrawal-simulator/internal/domain"
	"github.com/rpgo/withdrawal-simulator/internal/output"
	"github.com/rpgo/withdrawal-simulator/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputGeneration(t *testing.T) {
	parser := &config.InputParser{Strict: true}
	assumptions, err := parser.LoadFromFile("../testdata/example_assumptions.yaml")
	require.NoError(t, err)

	result := calculation.NewCalculationEngine().Project(*assumptions)

	for _, format := range output.AvailableFormatterNames() {
		var buf bytes.Buffer
		assert.NoError(t, output.Render(&buf, result, format), format)
		assert.NotEmpty(t, buf.Bytes(), format)
	}
}

func TestBasicCalculations(t *testing.T) {
	parser := config.NewInputParser()
	assumptions, err := parser.LoadFromFile("../testdata/example_assumptions.yaml")
	require.NoError(t, err)

	result := calculation.NewCalculationEngine().Project(*assumptions)

	assert.Equal(t, 38, result.Len())
	summary := output.AnalyzeProjection(result)
	assert.True(t, summary.TotalContributions.IsPositive())
	assert.True(t, summary.TotalWithdrawn.IsPositive())
	assert.Equal(t, calculation.MRDStartAge, summary.FirstMRDAge)
	assert.Zero(t, summary.DepletionAge, "real withdrawals below the real return should not exhaust the account")
}

// The CLI file path and the HTTP path must produce the same projection.
func TestServerMatchesFileProjection(t *testing.T) {
	body, err := os.ReadFile("../testdata/example_assumptions.yaml")
	require.NoError(t, err)
	assumptions, err := config.NewInputParser().Parse(body)
	require.NoError(t, err)
	payload, err := json.Marshal(assumptions)
	require.NoError(t, err)

	srv := httptest.NewServer(server.New(server.Options{StrictValidation: true}, nil, nil).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/balances", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fromServer domain.ProjectionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fromServer))

	direct := calculation.NewCalculationEngine().Project(*assumptions)
	assert.Equal(t, direct.Age, fromServer.Age)
	assert.Equal(t, direct.TaxDeferredAccount, fromServer.TaxDeferredAccount)
	assert.Equal(t, direct.TaxableAccount, fromServer.TaxableAccount)
	assert.Equal(t, direct.Withdrawal, fromServer.Withdrawal)
}
