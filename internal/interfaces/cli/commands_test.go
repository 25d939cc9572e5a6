package cli

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BrandGuard-Intelligence/pkg/client"
)

func TestAnalyzeCmd_WithFlags(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/listings/analyze", r.URL.Path)

		var in client.Listing
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "NIKE Air Max", in.Title)

		json.NewEncoder(w).Encode(client.ScoreResult{
			ListingID: "l1",
			Score:     85,
			RiskLevel: "HIGH",
			Outcome:   "scored",
		})
	})

	out, err := runCommand(t, NewAnalyzeCmd(), handler, "text",
		"--id", "l1", "--title", "NIKE Air Max", "--brand", "Nike", "--price", "30")

	require.NoError(t, err)
	assert.Contains(t, out, "Score:      85/100")
	assert.Contains(t, out, "Risk:       HIGH")
	assert.Contains(t, out, "WARNING: listing l1 has HIGH counterfeit risk")
}

func TestAnalyzeCmd_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"l2","title":"Adidas hoodie","declared_brand":"Adidas"}`), 0644))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in client.Listing
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "l2", in.ID)

		json.NewEncoder(w).Encode(client.ScoreResult{ListingID: "l2", Score: 5, RiskLevel: "LOW", Outcome: "scored"})
	})

	out, err := runCommand(t, NewAnalyzeCmd(), handler, "json", "--file", path)

	require.NoError(t, err)
	assert.Contains(t, out, `"risk_level": "LOW"`)
}

func TestAnalyzeCmd_RequiresTitleOrFile(t *testing.T) {
	_, err := runCommand(t, NewAnalyzeCmd(), http.NotFoundHandler(), "text")
	assert.Error(t, err)
}

func TestBatchCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"l1","title":"a"},{"id":"l2"}]`), 0644))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/listings/batch", r.URL.Path)
		json.NewEncoder(w).Encode(client.BatchResult{
			Results: []client.BatchItem{
				{Result: &client.ScoreResult{ListingID: "l1", Score: 40, RiskLevel: "LOW", Outcome: "scored"}},
				{Error: &client.ErrorDetail{Code: "LST_001", Message: "listing rejected"}},
			},
			Scored:   1,
			Rejected: 1,
		})
	})

	outFile := filepath.Join(t.TempDir(), "result.json")
	out, err := runCommand(t, NewBatchCmd(), handler, "text", "--file", path, "--out", outFile)

	require.NoError(t, err)
	assert.Contains(t, out, "1 scored, 1 rejected, 0 incomplete")
	assert.Contains(t, out, "FAILED: listing rejected (LST_001)")

	written, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(written), `"scored": 1`)
}

func TestBatchCmd_MissingFile(t *testing.T) {
	_, err := runCommand(t, NewBatchCmd(), http.NotFoundHandler(), "text", "--file", "/nonexistent/batch.json")
	assert.Error(t, err)
}

func TestRebuildIndexCmd(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/admin/index/rebuild", r.URL.Path)
		w.Write([]byte(`{"status":"rebuilt","index":{"ready":true,"brands":7,"entries":120}}`))
	})

	out, err := runCommand(t, NewRebuildIndexCmd(), handler, "text")

	require.NoError(t, err)
	assert.Contains(t, out, "OK: index rebuilt: 7 brands, 120 entries")
}

func TestRebuildIndexCmd_Status(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/admin/index/status", r.URL.Path)
		w.Write([]byte(`{"ready":true,"brands":7,"entries":120}`))
	})

	out, err := runCommand(t, NewRebuildIndexCmd(), handler, "text", "--status")

	require.NoError(t, err)
	assert.Contains(t, out, "index ready=true brands=7 entries=120")
}

func TestBrandsListCmd(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"brands":["Adidas","Nike"]}`))
	})

	out, err := runCommand(t, NewBrandsCmd(), handler, "text", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Adidas")
	assert.Contains(t, out, "Nike")
}

func TestBrandsGetCmd(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/brands/Nike", r.URL.Path)
		json.NewEncoder(w).Encode(client.BrandDetail{
			Record: &client.BrandRecord{
				Name:       "Nike",
				Variations: []client.Variation{{Name: "N1ke", RiskWeight: 0.9}},
			},
			Patterns: []client.CounterfeitPattern{{Name: "price_anomaly", Weight: 0.8}},
		})
	})

	out, err := runCommand(t, NewBrandsCmd(), handler, "text", "get", "Nike")

	require.NoError(t, err)
	assert.Contains(t, out, "Brand: Nike")
	assert.Contains(t, out, "N1ke")
	assert.Contains(t, out, "price_anomaly")
}

func TestBrandsAddVariationCmd(t *testing.T) {
	var gotBody client.Variation
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/brands/Nike/variations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"brand":"Nike","variation":"N!ke"}`))
	})

	out, err := runCommand(t, NewBrandsCmd(), handler, "text",
		"add-variation", "Nike", "--name", "N!ke", "--risk-weight", "0.85")

	require.NoError(t, err)
	assert.Equal(t, "N!ke", gotBody.Name)
	assert.Equal(t, 0.85, gotBody.RiskWeight)
	assert.Contains(t, out, `OK: variation "N!ke" added to brand Nike`)
}

func TestBrandsAddPatternCmd(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/brands/Nike/patterns", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"brand":"Nike","pattern":"seller_mismatch"}`))
	})

	out, err := runCommand(t, NewBrandsCmd(), handler, "text",
		"add-pattern", "Nike", "--name", "seller_mismatch", "--weight", "0.6")

	require.NoError(t, err)
	assert.Contains(t, out, `OK: pattern "seller_mismatch" added to brand Nike`)
}

//Personal.AI order the ending
