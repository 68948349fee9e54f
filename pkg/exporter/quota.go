// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and rgw-usage-exporter contributors
//
// SPDX-License-Identifier: Apache-2.0
package exporter

import (
	"context"

	"github.com/rs/zerolog/log"
)

// evaluateUserQuota produces the quota-utilization record for one user, or
// reports absence. Users without quota enforcement (limit <= 0) are
// intentionally excluded, not an error; a failed stats lookup also yields
// absence so no record with an undefined "used" value is emitted.
//
// The two requests are sequential and dependent (quota first, stats only
// when a limit exists); user count dominates the cost of a poll cycle.
func evaluateUserQuota(ctx context.Context, client AdminClient, uid string) (UserQuota, bool) {
	quota, err := client.GetUserQuota(ctx, uid)
	if err != nil {
		log.Warn().
			Err(err).
			Str("uid", uid).
			Msg("user quota fetch failed")
		return UserQuota{}, false
	}

	if quota.MaxSize == nil || *quota.MaxSize <= 0 {
		return UserQuota{}, false
	}
	limit := uint64(*quota.MaxSize)

	info, err := client.GetUserStats(ctx, uid)
	if err != nil {
		log.Warn().
			Err(err).
			Str("uid", uid).
			Msg("user stats fetch failed")
		return UserQuota{}, false
	}
	if info.Stats == nil {
		log.Debug().
			Str("uid", uid).
			Msg("user has no synced stats; skipping quota record")
		return UserQuota{}, false
	}

	var used uint64
	switch {
	case info.Stats.SizeActual != nil:
		used = *info.Stats.SizeActual
	case info.Stats.Size != nil:
		// pre-size_actual releases
		used = *info.Stats.Size
	}

	projectID := info.UserID
	if projectID == "" {
		projectID = uid
	}

	return UserQuota{
		ProjectName: info.DisplayName,
		ProjectID:   projectID,
		LimitBytes:  limit,
		UsedBytes:   used,
		// Floor division: the percentage truncates, matching the admin
		// API's own integer arithmetic.
		UtilizedPercent: float64(used * 100 / limit),
	}, true
}
