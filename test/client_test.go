//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/footsies/internal/middleware"
	"github.com/2beens/footsies/internal/misc"
	"github.com/2beens/footsies/internal/profile"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

// testUser is a freshly signed up and logged in profile.
type testUser struct {
	profile  *profile.Profile
	password string
	token    string
}

func (s *IntegrationTestSuite) do(
	ctx context.Context,
	method, path, token string,
	body any,
) (int, []byte) {
	t := s.T()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bodyReader)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthTokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) doInto(
	ctx context.Context,
	method, path, token string,
	body any,
	expectedStatus int,
	into any,
) {
	t := s.T()
	status, respBytes := s.do(ctx, method, path, token, body)
	require.Equal(t, expectedStatus, status, string(respBytes))
	if into != nil {
		require.NoError(t, json.Unmarshal(respBytes, into), string(respBytes))
	}
}

func (s *IntegrationTestSuite) newUser(ctx context.Context, t *testing.T) *testUser {
	username := fmt.Sprintf("%s_%d", gofakeit.Username(), gofakeit.Number(1000, 9999))
	password := gofakeit.Password(true, true, true, false, false, 12)

	var p profile.Profile
	s.doInto(ctx, "POST", "/signup", "", map[string]string{
		"username": username,
		"email":    gofakeit.Email(),
		"password": password,
	}, http.StatusCreated, &p)
	require.Equal(t, username, p.Username)

	var loginResp misc.LoginResponse
	s.doInto(ctx, "POST", "/login", "", map[string]string{
		"username": username,
		"password": password,
	}, http.StatusOK, &loginResp)
	require.NotEmpty(t, loginResp.Token)

	return &testUser{
		profile:  &p,
		password: password,
		token:    loginResp.Token,
	}
}
