// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package rgwadmin

import (
	"context"
	"encoding/json"
	"net/url"
)

// UserQuotaSpec is the per-user quota configuration. MaxSize is -1 when no
// quota is configured.
type UserQuotaSpec struct {
	Enabled    *bool  `json:"enabled"`
	MaxSize    *int64 `json:"max_size"`
	MaxSizeKb  *int64 `json:"max_size_kb"`
	MaxObjects *int64 `json:"max_objects"`
}

// UserStats reports storage consumption for a user. size_actual exists on
// current releases; older ones only report size.
type UserStats struct {
	Size        *uint64 `json:"size"`
	SizeActual  *uint64 `json:"size_actual"`
	SizeRounded *uint64 `json:"size_rounded"`
	NumObjects  *uint64 `json:"num_objects"`
}

// UserInfo is the subset of a user record the exporter consumes. Stats is
// only populated when the request asked for stats=true and the user has
// synced statistics.
type UserInfo struct {
	UserID      string     `json:"user_id"`
	DisplayName string     `json:"display_name"`
	Suspended   *int       `json:"suspended"`
	Tenant      string     `json:"tenant"`
	Stats       *UserStats `json:"stats"`
}

// GetUserIDs retrieves the list of all user IDs in the object store.
func (api *API) GetUserIDs(ctx context.Context) ([]string, error) {
	body, err := api.call(ctx, "metadata/user", "")
	if err != nil {
		return nil, err
	}

	var users []string
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, malformedResponse(err, body)
	}

	return users, nil
}

// GetUserQuota retrieves the user-type quota configuration for one user.
func (api *API) GetUserQuota(ctx context.Context, uid string) (UserQuotaSpec, error) {
	args := url.Values{}
	args.Add("uid", uid)
	args.Add("quota-type", "user")

	// The quota sub-resource is selected by a bare "quota" query key.
	body, err := api.call(ctx, "user", "quota&"+args.Encode())
	if err != nil {
		return UserQuotaSpec{}, err
	}

	var quota UserQuotaSpec
	if err := json.Unmarshal(body, &quota); err != nil {
		return UserQuotaSpec{}, malformedResponse(err, body)
	}

	return quota, nil
}

// GetUserStats retrieves one user's record including storage statistics.
func (api *API) GetUserStats(ctx context.Context, uid string) (UserInfo, error) {
	args := url.Values{}
	args.Add("stats", "true")
	args.Add("uid", uid)

	body, err := api.call(ctx, "user", args.Encode())
	if err != nil {
		return UserInfo{}, err
	}

	var info UserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return UserInfo{}, malformedResponse(err, body)
	}

	return info, nil
}
