// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package rgwadmin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeHTTPClient struct {
	resp    *http.Response
	err     error
	lastReq *http.Request
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New("", "admin", "ak", "sk", nil)
	assert.Error(t, err)

	_, err = New("http://rgw:80", "admin", "", "sk", nil)
	assert.Error(t, err)

	_, err = New("http://rgw:80", "admin", "ak", "", nil)
	assert.Error(t, err)

	api, err := New("http://rgw:80/", "", "ak", "sk", nil)
	assert.NoError(t, err)
	assert.Equal(t, "http://rgw:80", api.Endpoint)
	assert.Equal(t, DefaultAdminEntry, api.AdminEntry)
	assert.NotNil(t, api.HTTPClient)
}

func TestCallBuildsSignedAdminURL(t *testing.T) {
	client := &fakeHTTPClient{resp: jsonResponse(http.StatusOK, `["alice","bob"]`)}
	api, err := New("http://rgw:80", "custom-admin", "ak", "sk", client)
	assert.NoError(t, err)

	users, err := api.GetUserIDs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)

	assert.Equal(t, "/custom-admin/metadata/user/", client.lastReq.URL.Path)
	assert.Equal(t, "format=json", client.lastReq.URL.RawQuery)
	assert.Contains(t, client.lastReq.Header.Get("Authorization"), "AWS4-HMAC-SHA256")
}

func TestCallClassifiesTransportFailure(t *testing.T) {
	client := &fakeHTTPClient{err: errors.New("connection refused")}
	api, _ := New("http://rgw:80", "admin", "ak", "sk", client)

	_, err := api.GetUsage(context.Background())
	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Error(), "connection refused")
}

func TestCallClassifiesRejectedRequest(t *testing.T) {
	// Usage caps absent or wrong admin entry
	client := &fakeHTTPClient{resp: jsonResponse(http.StatusForbidden, `{"Code":"AccessDenied"}`)}
	api, _ := New("http://rgw:80", "admin", "ak", "sk", client)

	_, err := api.GetUsage(context.Background())
	var statusErr *StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "AccessDenied")
}

func TestCallClassifiesMalformedResponse(t *testing.T) {
	client := &fakeHTTPClient{resp: jsonResponse(http.StatusOK, `<html>not json</html>`)}
	api, _ := New("http://rgw:80", "admin", "ak", "sk", client)

	_, err := api.GetUserIDs(context.Background())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGetUsageQuery(t *testing.T) {
	client := &fakeHTTPClient{resp: jsonResponse(http.StatusOK, `{"entries":[]}`)}
	api, _ := New("http://rgw:80", "admin", "ak", "sk", client)

	usage, err := api.GetUsage(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, usage.Entries)
	assert.Equal(t, "format=json&show-summary=false", client.lastReq.URL.RawQuery)
}

func TestListBucketStatsKeepsRawElements(t *testing.T) {
	client := &fakeHTTPClient{resp: jsonResponse(http.StatusOK, `[{"bucket":"b1"},"hammer-junk"]`)}
	api, _ := New("http://rgw:80", "admin", "ak", "sk", client)

	stats, err := api.ListBucketStats(context.Background())
	assert.NoError(t, err)
	assert.Len(t, stats, 2)
	assert.Equal(t, "format=json&stats=true", client.lastReq.URL.RawQuery)
}

func TestGetUserQuotaQuery(t *testing.T) {
	client := &fakeHTTPClient{resp: jsonResponse(http.StatusOK, `{"enabled":true,"max_size":1024,"max_objects":-1}`)}
	api, _ := New("http://rgw:80", "admin", "ak", "sk", client)

	quota, err := api.GetUserQuota(context.Background(), "alice")
	assert.NoError(t, err)
	assert.NotNil(t, quota.MaxSize)
	assert.Equal(t, int64(1024), *quota.MaxSize)
	// the v4 signer re-encodes the query, so the bare quota key gains a "="
	assert.Equal(t, "format=json&quota=&quota-type=user&uid=alice", client.lastReq.URL.RawQuery)
}

func TestGetUserStatsQuery(t *testing.T) {
	client := &fakeHTTPClient{resp: jsonResponse(http.StatusOK,
		`{"user_id":"alice","display_name":"Alice","stats":{"size":100,"size_actual":104,"num_objects":2}}`)}
	api, _ := New("http://rgw:80", "admin", "ak", "sk", client)

	info, err := api.GetUserStats(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, "alice", info.UserID)
	assert.NotNil(t, info.Stats)
	assert.Equal(t, uint64(104), *info.Stats.SizeActual)
	assert.Equal(t, "format=json&stats=true&uid=alice", client.lastReq.URL.RawQuery)
}
