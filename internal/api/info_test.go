package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seantiz/directory/internal/metadata"
)

func TestInfoReportsInstance(t *testing.T) {
	env := newTestEnv(t)
	env.meta.values[metadata.PathInstanceID] = "i-0abc"
	env.meta.values[metadata.PathAvailabilityZone] = "eu-west-1a"

	rec := doRequest(env.srv, httptest.NewRequest("GET", "/info", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := "<h1>Instance Info</h1><p><b>Instance ID:</b> i-0abc</p><p><b>Availability Zone:</b> eu-west-1a</p>"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestInfoFallsBackPerField(t *testing.T) {
	env := newTestEnv(t)
	env.meta.values[metadata.PathInstanceID] = "i-0abc"

	rec := doRequest(env.srv, httptest.NewRequest("GET", "/info", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := "<h1>Instance Info</h1><p><b>Instance ID:</b> i-0abc</p><p><b>Availability Zone:</b> " +
		metadata.Unavailable + "</p>"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestInfoOffCloud(t *testing.T) {
	srv := newDisabledTestServer(t)

	rec := doRequest(srv, httptest.NewRequest("GET", "/info", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := "<h1>Instance Info</h1><p><b>Instance ID:</b> " + metadata.Unavailable +
		"</p><p><b>Availability Zone:</b> " + metadata.Unavailable + "</p>"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}
