package obs_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/discount-function/internal/obs"
)

func TestRecordDiscountRun(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs.MustRegisterDomainMetrics("discount", registry)

	obs.RecordDiscountRun("applied", 2, "metafield")
	obs.RecordDiscountRun("empty", 0, "invalid")
	obs.RecordDiscountRun("not_applicable", 0, "")

	require.Equal(t, 1.0, testutil.ToFloat64(obs.DiscountRunsTotal.WithLabelValues("applied")))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.DiscountRunsTotal.WithLabelValues("empty")))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.DiscountRunsTotal.WithLabelValues("not_applicable")))
	require.Equal(t, 2.0, testutil.ToFloat64(obs.DiscountCandidatesTotal))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.DiscountConfigResolutionsTotal.WithLabelValues("metafield")))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.DiscountConfigResolutionsTotal.WithLabelValues("invalid")))
	require.Equal(t, 2, testutil.CollectAndCount(obs.DiscountConfigResolutionsTotal))
}
