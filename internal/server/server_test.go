package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shoplite/shoplite/internal/auth"
	"github.com/shoplite/shoplite/internal/config"
	"github.com/shoplite/shoplite/internal/logging"
)

const testSecret = "test-signing-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{
		AppName:    "Shoplite",
		Port:       "8080",
		JWTSecret:  testSecret,
		TokenTTL:   24 * time.Hour,
		BcryptCost: bcrypt.MinCost,
	}

	srv, err := New(cfg, nil, nil, logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv.App()
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, bearer string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, bearer)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test %s %s: %v", method, path, err)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode, payload
}

func signup(t *testing.T, app *fiber.App, email, username, password string) (string, string) {
	t.Helper()
	body := `{"email":"` + email + `","username":"` + username + `","password":"` + password + `"}`
	status, payload := doJSON(t, app, fiber.MethodPost, "/auth/signup", body, "")
	if status != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", status, payload)
	}

	var decoded struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	return decoded.User.ID, decoded.Token
}

func decodeEnvelope(t *testing.T, payload []byte) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		t.Fatalf("decode envelope %s: %v", payload, err)
	}
	return env
}

func TestSignupReturnsTokenAndOmitsHash(t *testing.T) {
	app := newTestApp(t)

	status, payload := doJSON(t, app, fiber.MethodPost, "/auth/signup",
		`{"email":"a@x.com","username":"alice","password":"secret1"}`, "")
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, payload)
	}

	var decoded struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if decoded.Token == "" {
		t.Fatalf("expected a token field")
	}
	if decoded.User.Email != "a@x.com" {
		t.Fatalf("expected user email a@x.com, got %q", decoded.User.Email)
	}
	if uuid.Validate(decoded.User.ID) != nil {
		t.Fatalf("expected a valid subject id, got %q", decoded.User.ID)
	}
	if strings.Contains(string(payload), "password") || strings.Contains(string(payload), "hash") {
		t.Fatalf("response must not carry password material: %s", payload)
	}
}

func TestSignupRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name string
		body string
	}{
		{name: "malformed body", body: `{"email": `},
		{name: "missing email", body: `{"username":"alice","password":"secret1"}`},
		{name: "missing username", body: `{"email":"a@x.com","password":"secret1"}`},
		{name: "short password", body: `{"email":"a@x.com","username":"alice","password":"12345"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := doJSON(t, app, fiber.MethodPost, "/auth/signup", tc.body, "")
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", status, payload)
			}
			if env := decodeEnvelope(t, payload); env.Code != http.StatusBadRequest {
				t.Fatalf("envelope code mismatch: %+v", env)
			}
		})
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "a@x.com", "alice", "secret1")

	status, payload := doJSON(t, app, fiber.MethodPost, "/auth/signup",
		`{"email":"a@x.com","username":"someone","password":"secret1"}`, "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d: %s", status, payload)
	}
}

func TestSigninFailureDoesNotRevealAccountExistence(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "a@x.com", "alice", "secret1")

	wrongStatus, wrongPayload := doJSON(t, app, fiber.MethodPost, "/auth/signin",
		`{"email":"a@x.com","password":"wrong-1"}`, "")
	unknownStatus, unknownPayload := doJSON(t, app, fiber.MethodPost, "/auth/signin",
		`{"email":"nobody@x.com","password":"secret1"}`, "")

	if wrongStatus != http.StatusUnauthorized || unknownStatus != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongStatus, unknownStatus)
	}
	if string(wrongPayload) != string(unknownPayload) {
		t.Fatalf("responses must be identical: %s vs %s", wrongPayload, unknownPayload)
	}
}

func TestSigninSuccess(t *testing.T) {
	app := newTestApp(t)
	userID, _ := signup(t, app, "a@x.com", "alice", "secret1")

	status, payload := doJSON(t, app, fiber.MethodPost, "/auth/signin",
		`{"email":"a@x.com","password":"secret1"}`, "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, payload)
	}

	var decoded struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if decoded.User.ID != userID {
		t.Fatalf("expected subject %s, got %s", userID, decoded.User.ID)
	}
	if decoded.Token == "" {
		t.Fatalf("expected a token")
	}
}

func TestMeReturnsAccount(t *testing.T) {
	app := newTestApp(t)
	userID, token := signup(t, app, "a@x.com", "alice", "secret1")

	status, payload := doJSON(t, app, fiber.MethodGet, "/auth/me", "", "Bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, payload)
	}

	var account struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &account); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if account.ID != userID || account.Email != "a@x.com" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestMeCredentialFailuresAreUniform(t *testing.T) {
	app := newTestApp(t)
	signup(t, app, "a@x.com", "alice", "secret1")

	expired := expiredToken(t, "a@x.com")

	cases := []struct {
		name   string
		bearer string
	}{
		{name: "missing header", bearer: ""},
		{name: "malformed header", bearer: "abc123"},
		{name: "scheme only", bearer: "Bearer"},
		{name: "garbage token", bearer: "Bearer not.a.token"},
		{name: "expired token", bearer: "Bearer " + expired},
	}

	var first string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := doJSON(t, app, fiber.MethodGet, "/auth/me", "", tc.bearer)
			if status != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", status, payload)
			}
			if first == "" {
				first = string(payload)
			} else if string(payload) != first {
				t.Fatalf("401 bodies must be identical: %s vs %s", first, payload)
			}
		})
	}
}

func TestMeUnknownSubjectIs404(t *testing.T) {
	app := newTestApp(t)

	codec, err := auth.NewTokenCodec([]byte(testSecret), 24*time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	token, err := codec.Issue(uuid.NewString(), "ghost@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	status, payload := doJSON(t, app, fiber.MethodGet, "/auth/me", "", "Bearer "+token)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", status, payload)
	}
}

func TestProductsRequireToken(t *testing.T) {
	app := newTestApp(t)

	status, payload := doJSON(t, app, fiber.MethodGet, "/products", "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", status, payload)
	}
}

func TestProductsListing(t *testing.T) {
	app := newTestApp(t)
	_, token := signup(t, app, "a@x.com", "alice", "secret1")

	status, payload := doJSON(t, app, fiber.MethodGet, "/products", "", "Bearer "+token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, payload)
	}

	var items []struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(payload, &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 products, got %d", len(items))
	}
	wantNames := []string{"Laptop", "Mouse", "Keyboard"}
	wantPrices := []float64{999.99, 29.99, 79.99}
	for i := range items {
		if items[i].Name != wantNames[i] || items[i].Price != wantPrices[i] {
			t.Fatalf("unexpected product at %d: %+v", i, items[i])
		}
	}
}

func TestWrongVerbIs405(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		method string
		path   string
	}{
		{method: fiber.MethodGet, path: "/auth/signup"},
		{method: fiber.MethodGet, path: "/auth/signin"},
		{method: fiber.MethodPost, path: "/auth/me"},
		{method: fiber.MethodPost, path: "/products"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, payload := doJSON(t, app, tc.method, tc.path, "", "")
			if status != http.StatusMethodNotAllowed {
				t.Fatalf("expected 405, got %d: %s", status, payload)
			}
			if env := decodeEnvelope(t, payload); env.Code != http.StatusMethodNotAllowed {
				t.Fatalf("envelope code mismatch: %+v", env)
			}
		})
	}
}

func TestServerRefusesToBuildWithoutSecret(t *testing.T) {
	cfg := config.Config{AppName: "Shoplite", TokenTTL: 24 * time.Hour, BcryptCost: bcrypt.MinCost}

	if _, err := New(cfg, nil, nil, logging.Discard()); err == nil {
		t.Fatalf("expected construction to fail without a signing secret")
	}
}

func TestHealthzReportsDisabledDependencies(t *testing.T) {
	app := newTestApp(t)

	status, payload := doJSON(t, app, fiber.MethodGet, "/healthz", "", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, payload)
	}
	if !strings.Contains(string(payload), "disabled") {
		t.Fatalf("expected disabled dependency status: %s", payload)
	}
}

// expiredToken signs a token whose 24h lifetime ran out an hour ago.
func expiredToken(t *testing.T, email string) string {
	t.Helper()
	past := time.Now().Add(-25 * time.Hour)
	codec, err := auth.NewTokenCodec([]byte(testSecret), 24*time.Hour,
		auth.WithTimeFunc(func() time.Time { return past }))
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	token, err := codec.Issue(uuid.NewString(), email)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}
