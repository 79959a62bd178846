package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pipeerrors "fuelflow/internal/errors"
)

func testParams() Params {
	return Params{
		APIKey:    "test-key",
		Products:  []string{"EPMR", "EPMP"},
		Regions:   []string{"NUS", "SCA"},
		Process:   "PTE",
		StartYear: 2000,
		EndYear:   2024,
		PageSize:  5000,
	}
}

func TestFetchBuildsExpectedQuery(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"response":{"data":[]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Fetch(context.Background(), testParams())
	require.NoError(t, err)

	assert.Equal(t, "test-key", got.Get("api_key"))
	assert.Equal(t, "annual", got.Get("frequency"))
	assert.Equal(t, "value", got.Get("data[0]"))
	assert.Equal(t, []string{"EPMR", "EPMP"}, got["facets[product][]"])
	assert.Equal(t, []string{"NUS", "SCA"}, got["facets[duoarea][]"])
	assert.Equal(t, []string{"PTE"}, got["facets[process][]"])
	assert.Equal(t, "2000", got.Get("start"))
	assert.Equal(t, "2024", got.Get("end"))
	assert.Equal(t, "period", got.Get("sort[0][column]"))
	assert.Equal(t, "asc", got.Get("sort[0][direction]"))
	assert.Equal(t, "0", got.Get("offset"))
	assert.Equal(t, "5000", got.Get("length"))
}

func TestFetchParsesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"total":"2","data":[
			{"period":"2024","duoarea":"NUS","area-name":"U.S.","product":"EPMR","value":"3.459","units":"$/GAL"},
			{"period":"2023","duoarea":"SCA","product":"EPMP","value":4.1}
		]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	records, err := client.Fetch(context.Background(), testParams())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2024", records[0]["period"])
	assert.Equal(t, "3.459", records[0].FieldString("value"))
	assert.Equal(t, "4.1", records[1].FieldString("value"))
	assert.Equal(t, "", records[1].FieldString("units"))
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Fetch(context.Background(), testParams())
	require.Error(t, err)

	assert.True(t, pipeerrors.IsRequestError(err))
	var reqErr *pipeerrors.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
}

func TestFetchEmptyAndMissingData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty data array", `{"response":{"data":[]}}`},
		{"missing data key", `{"response":{}}`},
		{"missing response key", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			records, err := client.Fetch(context.Background(), testParams())
			require.NoError(t, err)
			assert.Empty(t, records)
			assert.NotNil(t, records)
		})
	}
}

func TestColumnsCanonicalOrder(t *testing.T) {
	records := []Record{
		{"value": 3.1, "period": "2024", "custom": "x"},
		{"duoarea": "NUS"},
	}

	assert.Equal(t, []string{"period", "duoarea", "value", "custom"}, Columns(records))
}
