package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReadJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
		Age   int    `json:"age"`
	}

	cases := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantMsg    string
	}{
		{name: "ok", body: `{"email":"a@b.c","age":3}`, wantOK: true},
		{name: "empty", body: ``, wantStatus: http.StatusBadRequest, wantMsg: "request body is empty"},
		{name: "unknown field", body: `{"password":"x"}`, wantStatus: http.StatusBadRequest, wantMsg: `unknown field "password"`},
		{name: "wrong type", body: `{"age":"three"}`, wantStatus: http.StatusBadRequest, wantMsg: `field "age" has the wrong type`},
		{name: "two values", body: `{} {}`, wantStatus: http.StatusBadRequest, wantMsg: "invalid json"},
		{name: "too large", body: `{"email":"` + strings.Repeat("x", maxBodyBytes) + `"}`, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			var dst payload
			ok := readJSON(rec, req, &dst)
			if ok != tc.wantOK {
				t.Fatalf("ok=%v want %v (body %s)", ok, tc.wantOK, rec.Body.String())
			}
			if tc.wantOK {
				if dst.Email != "a@b.c" || dst.Age != 3 {
					t.Fatalf("decoded %+v", dst)
				}
				return
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("status=%d want %d", rec.Code, tc.wantStatus)
			}
			var env errorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if tc.wantMsg != "" && env.Error.Message != tc.wantMsg {
				t.Fatalf("message=%q want %q", env.Error.Message, tc.wantMsg)
			}
		})
	}
}
