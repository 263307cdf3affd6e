package testhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTestCasesClientList(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/projects/42/test-cases", r.URL.Path)
				require.Equal(t, "api", r.URL.Query().Get("test_type"))
				fmt.Fprintln(w, `[{"id": 7, "project_id": 42, "name": "login flow", "type": "api"}]`) // nolint: lll
			},
		),
	)
	defer server.Close()
	client := newTestClient(server)
	testCases, err := client.TestCases().List(
		context.Background(),
		42,
		TestCaseListOptions{Type: TestCaseTypeAPI},
	)
	require.NoError(t, err)
	require.Len(t, testCases, 1)
	require.Equal(t, TestCaseTypeAPI, testCases[0].Type)
}

func TestTestCasesClientGet(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/test-cases/7", r.URL.Path)
				fmt.Fprintln(w, `{"id": 7, "name": "login flow", "type": "ui"}`)
			},
		),
	)
	defer server.Close()
	client := newTestClient(server)
	testCase, err := client.TestCases().Get(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 7, testCase.ID)
	require.Equal(t, TestCaseTypeUI, testCase.Type)
}

// The test data blob must survive the round trip untouched; the client
// never interprets it.
func TestTestCasesClientCreatePreservesTestData(t *testing.T) {
	testData := `{"steps": [{"action": "visit", "url": "/login"}], "retries": 2}`
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/projects/42/test-cases", r.URL.Path)
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				reqBody := map[string]json.RawMessage{}
				require.NoError(t, json.Unmarshal(bodyBytes, &reqBody))
				require.JSONEq(t, testData, string(reqBody["test_data"]))
				fmt.Fprintf(
					w,
					`{"id": 7, "project_id": 42, "name": "login flow", "type": "ui", "test_data": %s}`, // nolint: lll
					testData,
				)
			},
		),
	)
	defer server.Close()
	client := newTestClient(server)
	testCase, err := client.TestCases().Create(
		context.Background(),
		42,
		TestCaseSpec{
			Name:     "login flow",
			Type:     TestCaseTypeUI,
			TestData: json.RawMessage(testData),
		},
	)
	require.NoError(t, err)
	require.JSONEq(t, testData, string(testCase.TestData))
}

func TestTestCasesClientDelete(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(t, "/test-cases/7", r.URL.Path)
				fmt.Fprintln(w, `{"message": "Test case deleted"}`)
			},
		),
	)
	defer server.Close()
	client := newTestClient(server)
	require.NoError(t, client.TestCases().Delete(context.Background(), 7))
}
