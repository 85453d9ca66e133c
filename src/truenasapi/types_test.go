package truenasapi

import (
	"encoding/json"
	"testing"
)

func TestDecodeDownload_ObjectForm(t *testing.T) {
	d, err := decodeDownload(json.RawMessage(`{"url": "/download/1", "token": "abc"}`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if d.URL != "/download/1" || d.Token != "abc" {
		t.Fatalf("got %+v, want URL=/download/1 token=abc", d)
	}
}

func TestDecodeDownload_ObjectForm_AltKeys(t *testing.T) {
	d, err := decodeDownload(json.RawMessage(`{"job_url": "/download/7", "auth_token": "xyz"}`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if d.URL != "/download/7" || d.Token != "xyz" {
		t.Fatalf("got %+v, want URL=/download/7 token=xyz", d)
	}
}

func TestDecodeDownload_ArrayForm(t *testing.T) {
	d, err := decodeDownload(json.RawMessage(`["ok", "/download/2"]`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if d.URL != "/download/2" {
		t.Fatalf("URL = %q, want /download/2", d.URL)
	}
	if d.Token != "" {
		t.Fatalf("token = %q, want empty", d.Token)
	}
}

func TestDecodeDownload_ArrayForm_WithToken(t *testing.T) {
	d, err := decodeDownload(json.RawMessage(`[42, "/download/3", "tok"]`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if d.URL != "/download/3" || d.Token != "tok" {
		t.Fatalf("got %+v, want URL=/download/3 token=tok", d)
	}
}

func TestDecodeDownload_MissingURL(t *testing.T) {
	if _, err := decodeDownload(json.RawMessage(`{"token": "abc"}`)); err == nil {
		t.Fatalf("expected error for reply without URL")
	}
}

func TestDecodeDownload_UnexpectedShape(t *testing.T) {
	for _, raw := range []string{`42`, `"just a string"`, `["only-one"]`, `null`} {
		if _, err := decodeDownload(json.RawMessage(raw)); err == nil {
			t.Errorf("expected error for reply %s", raw)
		}
	}
}
