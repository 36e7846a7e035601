// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/polls", "200"))
	RecordAPIRequest("GET", "/api/polls", "200", 12*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/polls", "200"))

	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestRecordMediaOp(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("bucket unreachable"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MediaStoreOps.WithLabelValues("local", "put", tt.result)
			before := testutil.ToFloat64(c)
			RecordMediaOp("local", "put", time.Millisecond, tt.err)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("counter delta = %v, want 1", got)
			}
		})
	}
}
