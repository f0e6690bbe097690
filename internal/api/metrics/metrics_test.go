package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLoginsTotal_CountsByResult(t *testing.T) {
	before := testutil.ToFloat64(LoginsTotal.WithLabelValues("failure"))
	LoginsTotal.WithLabelValues("failure").Inc()

	if got := testutil.ToFloat64(LoginsTotal.WithLabelValues("failure")); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}
}

func TestMetricNames(t *testing.T) {
	if n := testutil.CollectAndCount(SignupsTotal, "recipes_signups_total"); n != 1 {
		t.Fatalf("expected recipes_signups_total, got %d series", n)
	}
	if n := testutil.CollectAndCount(RecipesCreatedTotal, "recipes_created_total"); n != 1 {
		t.Fatalf("expected recipes_created_total, got %d series", n)
	}
}
