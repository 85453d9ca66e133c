package truenasapi

import (
	"context"
	"errors"
)

// FakeClient is an in-memory implementation for unit tests.
type FakeClient struct {
	AcceptKey string   // key LoginWithAPIKey accepts; "" accepts anything
	Result    Download // returned by DownloadConfig
	Err       error    // forced error for DownloadConfig

	LoggedInWith string
	SecretsAsked []bool
	Closed       bool
}

func NewFake() *FakeClient {
	return &FakeClient{Result: Download{URL: "/download/1", Token: "tok"}}
}

func (f *FakeClient) LoginWithAPIKey(ctx context.Context, key string) error {
	f.LoggedInWith = key
	if f.AcceptKey != "" && key != f.AcceptKey {
		return errors.New("login: remote error 22: invalid credentials")
	}
	return nil
}

func (f *FakeClient) DownloadConfig(ctx context.Context, includeSecrets bool) (Download, error) {
	f.SecretsAsked = append(f.SecretsAsked, includeSecrets)
	if f.Err != nil {
		return Download{}, f.Err
	}
	return f.Result, nil
}

func (f *FakeClient) Close() error {
	f.Closed = true
	return nil
}
