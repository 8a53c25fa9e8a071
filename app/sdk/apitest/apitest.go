// Package apitest contains supporting code for running app layer tests
// against the full route table.
package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/headless-cms/api/cmd/build/all"
	"github.com/jcpaschoal/headless-cms/app/sdk/auth"
	"github.com/jcpaschoal/headless-cms/app/sdk/mux"
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/dbtest"
	"go.opentelemetry.io/otel/trace/noop"
)

const secret = "apitest-secret"

// Test contains functions for executing an api test.
type Test struct {
	DB   *dbtest.Database
	Auth *auth.Auth
	mux  http.Handler
}

// New constructs a Test value bound to a fresh in-memory database.
func New(t *testing.T, testName string, opts ...dbtest.Option) *Test {
	db := dbtest.New(t, testName, opts...)

	ath, err := auth.New(auth.Config{
		Log:     db.Log,
		UserBus: db.BusDomain.User,
		Secret:  secret,
		Issuer:  "apitest",
	})
	if err != nil {
		t.Fatalf("constructing auth: %s", err)
	}

	cfg := mux.Config{
		Build:    "test",
		Log:      db.Log,
		Beginner: db.DB,
		Tracer:   noop.NewTracerProvider().Tracer("apitest"),
		BusConfig: mux.BusConfig{
			TenantBus:  db.BusDomain.Tenant,
			UserBus:    db.BusDomain.User,
			SchemaBus:  db.BusDomain.Schema,
			ContentBus: db.BusDomain.Content,
		},
		AuthConfig: mux.AuthConfig{
			Auth: ath,
		},
	}

	return &Test{
		DB:   db,
		Auth: ath,
		mux:  mux.WebAPI(cfg, all.Routes()),
	}
}

// Token generates a signed token for the user.
func (at *Test) Token(t *testing.T, usr userbus.User) string {
	t.Helper()

	token, err := at.Auth.GenerateToken(auth.NewClaims(usr))
	if err != nil {
		t.Fatalf("generating token: %s", err)
	}

	return token
}

// Do executes a request against the route table. A nil body sends no body.
func (at *Test) Do(t *testing.T, method string, url string, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			if err := json.NewEncoder(&buf).Encode(v); err != nil {
				t.Fatalf("encoding request body: %s", err)
			}
		}
	}

	r := httptest.NewRequest(method, url, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	at.mux.ServeHTTP(w, r)

	return w
}

// =============================================================================

// Response is the decoded envelope of any api response.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Fields  []Field         `json:"fields,omitempty"`
}

// Field is one validation failure reported in an error response.
type Field struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Decode reads the envelope from the recorder. When data is non-nil the
// envelope data is decoded into it.
func Decode(t *testing.T, w *httptest.ResponseRecorder, data any) Response {
	t.Helper()

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response %q: %s", w.Body.String(), err)
	}

	if data != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, data); err != nil {
			t.Fatalf("decoding response data %q: %s", resp.Data, err)
		}
	}

	return resp
}

// =============================================================================

// Table represent fields needed for running an api test.
type Table struct {
	Name       string
	URL        string
	Token      string
	Method     string
	StatusCode int
	Input      any
	ExpResp    Response
	CmpFunc    func(got Response, exp Response) string
}

// Run performs the actual test logic based on the table data.
func (at *Test) Run(t *testing.T, table []Table, testName string) {
	for _, tt := range table {
		f := func(t *testing.T) {
			w := at.Do(t, tt.Method, tt.URL, tt.Token, tt.Input)

			if w.Code != tt.StatusCode {
				t.Fatalf("%s: status: got %d, want %d: %s", tt.Name, w.Code, tt.StatusCode, w.Body.String())
			}

			got := Decode(t, w, nil)

			cmpFunc := tt.CmpFunc
			if cmpFunc == nil {
				cmpFunc = CmpEnvelope
			}

			if diff := cmpFunc(got, tt.ExpResp); diff != "" {
				t.Errorf("%s: response mismatch (-got +exp):\n%s", tt.Name, diff)
			}
		}

		t.Run(testName+"-"+tt.Name, f)
	}
}

// CmpEnvelope compares everything except the data payload.
func CmpEnvelope(got Response, exp Response) string {
	got.Data = nil
	exp.Data = nil
	return cmp.Diff(got, exp)
}
